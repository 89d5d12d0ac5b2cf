package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")

	Log("play", "dropped before enable")
	if err := EnableAt(path); err != nil {
		t.Fatal(err)
	}
	defer Disable()

	if !Enabled() {
		t.Fatal("expected logging enabled")
	}
	Log("play", "start gen=%d", 3)
	for i := 0; i < 4; i++ {
		LogEvery(2, "engine", "tick")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "dropped before enable") {
		t.Error("message logged before Enable")
	}
	if !strings.Contains(out, "start gen=3") {
		t.Errorf("missing log line in %q", out)
	}
	if got := strings.Count(out, "tick (every 2"); got != 2 {
		t.Errorf("LogEvery wrote %d lines, want 2", got)
	}
}

func TestDisableStopsLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := EnableAt(path); err != nil {
		t.Fatal(err)
	}
	Disable()
	Log("ui", "after disable")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "after disable") {
		t.Error("message logged after Disable")
	}
}
