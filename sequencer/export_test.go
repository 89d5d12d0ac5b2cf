package sequencer

import (
	"bytes"
	"path/filepath"
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestSaveSMF(t *testing.T) {
	var g Grid
	g.Set(0, 0, true)
	g.Set(1, 4, true)
	g.Set(1, 15, true)
	seq := Compile(g, GetKit(DefaultKit))

	path := filepath.Join(t.TempDir(), "beat.mid")
	if err := SaveSMF(path, seq, 120); err != nil {
		t.Fatal(err)
	}

	rd, err := smf.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rd.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(rd.Tracks))
	}
	if tc := rd.TempoChanges(); len(tc) == 0 || tc[0].BPM != 120 {
		t.Errorf("tempo changes: %v", tc)
	}

	type hit struct {
		key  uint8
		tick uint32
	}
	var hits []hit
	var abs uint32
	for _, ev := range rd.Tracks[1] {
		abs += ev.Delta
		var ch, key, vel uint8
		if gomidi.Message(ev.Message).GetNoteOn(&ch, &key, &vel) {
			hits = append(hits, hit{key, abs})
		}
	}
	want := []hit{{35, 0}, {42, 4}, {42, 15}}
	if len(hits) != len(want) {
		t.Fatalf("got hits %v, want %v", hits, want)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Errorf("hit %d: got %v, want %v", i, hits[i], want[i])
		}
	}
}

func TestWriteSMF(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSMF(&buf, Compile(Grid{}, GetKit(DefaultKit)), 90); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("MThd")) {
		t.Errorf("output does not start with an SMF header: % X", buf.Bytes()[:4])
	}
}

func TestWriteSMFRejectsBadInput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSMF(&buf, Sequence{}, 120); !IsInvalidArgument(err) {
		t.Errorf("empty sequence: %v", err)
	}
	if err := WriteSMF(&buf, Compile(Grid{}, GetKit(DefaultKit)), 0); !IsInvalidArgument(err) {
		t.Errorf("zero tempo: %v", err)
	}
}
