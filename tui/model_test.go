package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"go-beatbox/pattern"
	"go-beatbox/sequencer"
	"go-beatbox/theme"
)

type recordingDevice struct {
	sequences []*sequencer.Sequence
	running   bool
}

func (d *recordingDevice) SetSequence(s *sequencer.Sequence) error {
	d.sequences = append(d.sequences, s)
	return nil
}
func (d *recordingDevice) SetLoopContinuous()  {}
func (d *recordingDevice) SetTempoBPM(float64) {}
func (d *recordingDevice) Start() error        { d.running = true; return nil }
func (d *recordingDevice) Stop() error         { d.running = false; return nil }
func (d *recordingDevice) Close() error        { return nil }

func newTestModel(t *testing.T, dir string) (Model, *recordingDevice) {
	t.Helper()
	dev := &recordingDevice{}
	p, err := sequencer.NewPlayback(func() (sequencer.Device, error) { return dev, nil })
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(p, theme.New(theme.DefaultPalette()), Options{
		KitName:     sequencer.DefaultKit,
		PatternDir:  dir,
		PatternName: "test",
	})
	return m, dev
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestCursorAndToggle(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(m, runes("l"), runes("l"), runes("j"), tea.KeyMsg{Type: tea.KeySpace})

	g := m.Snapshot()
	if !g.Active(1, 2) || g.Count() != 1 {
		t.Errorf("expected only (1,2) active, got %v", g.Rows())
	}

	// wraps around the edges
	m = press(m, runes("k"), runes("k"), tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursorRow != sequencer.Rows-1 || m.cursorStep != sequencer.Steps-1 {
		t.Errorf("cursor at (%d,%d)", m.cursorRow, m.cursorStep)
	}

	m = press(m, runes("c"))
	if m.Snapshot().Count() != 0 {
		t.Error("clear left active cells")
	}
}

func TestStartStopAndTempo(t *testing.T) {
	m, dev := newTestModel(t, "")
	m = press(m, tea.KeyMsg{Type: tea.KeySpace}, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Playback.Playing() || !dev.running {
		t.Fatal("enter should start playback")
	}
	if len(dev.sequences) != 1 || dev.sequences[0].NoteOns() != 1 {
		t.Fatalf("device got %d sequences", len(dev.sequences))
	}

	// editing while playing only marks the grid dirty
	m = press(m, runes("l"), tea.KeyMsg{Type: tea.KeySpace})
	if !m.dirty || len(dev.sequences) != 1 {
		t.Error("edit while playing should wait for enter")
	}
	m = press(m, runes("s"))
	if m.dirty || len(dev.sequences) != 2 || dev.sequences[1].NoteOns() != 2 {
		t.Error("start should re-arm with the edited grid")
	}

	m = press(m, runes("+"))
	if m.Playback.Tempo() <= 1.0 {
		t.Errorf("tempo %v after +", m.Playback.Tempo())
	}
	m = press(m, runes("x"))
	if m.Playback.Playing() || dev.running {
		t.Error("x should stop playback")
	}
	if m.playhead() != -1 {
		t.Error("stopped model should have no playhead")
	}
}

func TestPlayheadAdvances(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})

	t0 := time.Unix(1000, 0)
	// 120 bpm: one step is 125ms
	m = press(m, tickMsg(t0), tickMsg(t0.Add(375*time.Millisecond)))
	if m.playhead() != 3 {
		t.Errorf("playhead %d, want 3", m.playhead())
	}
}

func TestSaveAndExport(t *testing.T) {
	dir := t.TempDir()
	m, _ := newTestModel(t, dir)
	m = press(m, tea.KeyMsg{Type: tea.KeySpace}, runes("w"), runes("e"))
	if m.err != nil {
		t.Fatal(m.err)
	}

	f, err := pattern.Load(filepath.Join(dir, "test.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	g, err := f.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if !g.Active(0, 0) || f.Kit != sequencer.DefaultKit {
		t.Errorf("saved pattern %+v", f)
	}

	if _, err := os.Stat(filepath.Join(dir, "test.mid")); err != nil {
		t.Errorf("midi export missing: %v", err)
	}
}

func TestExportFollowsPlaybackOptions(t *testing.T) {
	dir := t.TempDir()
	p, err := sequencer.NewPlayback(
		func() (sequencer.Device, error) { return &recordingDevice{}, nil },
		sequencer.WithCompileOptions(sequencer.WithRowMarkers(false)),
	)
	if err != nil {
		t.Fatal(err)
	}
	m := NewModel(p, theme.New(theme.DefaultPalette()), Options{
		KitName:     sequencer.DefaultKit,
		PatternDir:  dir,
		PatternName: "live: a/b",
	})
	m = press(m, tea.KeyMsg{Type: tea.KeySpace}, runes("e"))
	if m.err != nil {
		t.Fatal(m.err)
	}

	rd, err := smf.ReadFile(filepath.Join(dir, "live--a-b.mid"))
	if err != nil {
		t.Fatal(err)
	}
	for _, track := range rd.Tracks {
		for _, ev := range track {
			var ch, ctrl, val uint8
			if gomidi.Message(ev.Message).GetControlChange(&ch, &ctrl, &val) {
				t.Fatalf("row marker exported with markers disabled: cc %d", ctrl)
			}
		}
	}
}

func TestSaveWithoutDir(t *testing.T) {
	m, _ := newTestModel(t, "")
	m = press(m, runes("w"))
	if m.err == nil {
		t.Error("save without a pattern dir should report an error")
	}
	if !strings.Contains(m.View(), "error:") {
		t.Error("error not shown in the view")
	}
}

func TestViewAndQuit(t *testing.T) {
	m, _ := newTestModel(t, "")
	view := m.View()
	if !strings.Contains(view, "go-beatbox") || !strings.Contains(view, "Bass Drum") || !strings.Contains(view, "STOP") {
		t.Errorf("view missing header or grid:\n%s", view)
	}

	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quit")
	}
}
