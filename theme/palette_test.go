package theme

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	if p.Name != "plasma" || len(p.Colors) != 11 {
		t.Fatalf("palette %q with %d colors", p.Name, len(p.Colors))
	}
	if p.Lookup(0) != (RGB{13, 8, 135}) || p.Lookup(1) != (RGB{240, 249, 33}) {
		t.Errorf("endpoints %v %v", p.Lookup(0), p.Lookup(1))
	}
}

func TestLookupInterpolates(t *testing.T) {
	p, err := ParseGPL(strings.NewReader("GIMP Palette\nName: bw\n0 0 0\n200 100 50\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Lookup(0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("midpoint %v", got)
	}
	if got := p.Lookup(-3); got != (RGB{0, 0, 0}) {
		t.Errorf("below range %v", got)
	}
}

func TestParseGPLEmpty(t *testing.T) {
	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n# nothing\n")); err == nil {
		t.Error("expected error for a palette without colors")
	}
}

func TestLoadOrDefault(t *testing.T) {
	if p := LoadOrDefault(filepath.Join(t.TempDir(), "missing.gpl")); p.Name != "plasma" {
		t.Errorf("fallback palette %q", p.Name)
	}
	if p := LoadOrDefault(""); p.Name != "plasma" {
		t.Errorf("empty path palette %q", p.Name)
	}
}

func TestThemeColors(t *testing.T) {
	th := New(DefaultPalette())
	if string(th.Muted()) == "" || !strings.HasPrefix(string(th.Accent()), "#") {
		t.Errorf("colors %q %q", th.Muted(), th.Accent())
	}
}
