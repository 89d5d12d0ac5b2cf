package pattern

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go-beatbox/sequencer"
)

const fourOnTheFloor = `name: four
kit: gm
tempo: 1.25
rows:
- x...x...x...x...
- ..x...x...x...x.
- ................
- ....x.......x...
- ................
- ................
- ................
- ................
- ................
- ................
- ................
- ................
- ................
- ................
- ................
- ...............x
`

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(fourOnTheFloor))
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "four" || f.Kit != "gm" || f.Tempo != 1.25 {
		t.Errorf("header: %+v", f)
	}
	g, err := f.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if g.Count() != 11 {
		t.Errorf("got %d active cells, want 11", g.Count())
	}
	if !g.Active(0, 0) || !g.Active(3, 12) || !g.Active(15, 15) || g.Active(2, 0) {
		t.Error("cells parsed into the wrong places")
	}
}

func TestReadRejectsMalformedRows(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing rows", "name: x\nrows:\n- x...............\n"},
		{"short row", strings.Replace(fourOnTheFloor, "- ................\n", "- ....\n", 1)},
		{"bad char", strings.Replace(fourOnTheFloor, "x...x...x...x...", "x...x...x...x..?", 1)},
	}
	for _, tt := range tests {
		_, err := Read(strings.NewReader(tt.doc))
		if !sequencer.IsInvalidArgument(err) {
			t.Errorf("%s: expected InvalidArgument, got %v", tt.name, err)
		}
	}

	if _, err := Read(strings.NewReader("rows: [")); err == nil {
		t.Error("broken yaml should fail")
	}
}

func TestSaveLoad(t *testing.T) {
	var g sequencer.Grid
	g.Set(0, 0, true)
	g.Set(9, 7, true)

	dir := t.TempDir()
	path := PathFor(filepath.Join(dir, "patterns"), "groove")
	if err := FromGrid("", g, "rd8", 0.97).Save(path); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name != "groove" {
		t.Errorf("name %q, want file name", f.Name)
	}
	if f.Kit != "rd8" || f.Tempo != 0.97 {
		t.Errorf("header: %+v", f)
	}
	loaded, err := f.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != g {
		t.Error("grid changed on the way through the file")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	names, err := List(filepath.Join(dir, "missing"))
	if err != nil || len(names) != 0 {
		t.Errorf("missing dir: %v %v", names, err)
	}

	for _, name := range []string{"b.yaml", "a.yaml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "c.yaml"), 0755); err != nil {
		t.Fatal(err)
	}

	names, err = List(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("names %v", names)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"four on floor", "four-on-floor"},
		{"a/b\\c:d", "a-b-c-d"},
		{" what? <x>|\"y\"* ", "what-xy"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	if err := FromGrid("my beat", sequencer.Grid{}, sequencer.DefaultKit, 1).Save(PathFor(dir, "my beat")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "my-beat.yaml")); err != nil {
		t.Fatalf("sanitized file missing: %v", err)
	}
	if err := Delete(dir, "my beat"); err != nil {
		t.Fatal(err)
	}
	if names, _ := List(dir); len(names) != 0 {
		t.Errorf("left %v", names)
	}
}
