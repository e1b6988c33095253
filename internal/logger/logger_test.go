package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestLevels_CarryTag(t *testing.T) {
	out := capture(t, func() {
		Info("GameData", "loading")
		Success("GameData", "loaded")
		Warn("Backup", "retrying")
		Error("Server", "failed")
	})
	for _, tag := range []string{"[GameData]", "[Backup]", "[Server]"} {
		if !strings.Contains(out, tag) {
			t.Errorf("output missing %s", tag)
		}
	}
}

func TestBanner_NoPanic(t *testing.T) {
	out := capture(t, func() {
		Banner("v1.0.0")
		Banner("")
	})
	if !strings.Contains(out, "v1.0.0") || !strings.Contains(out, "dev") {
		t.Error("banner should print the version, defaulting to dev")
	}
}

func TestSectionAndStats_NoPanic(t *testing.T) {
	out := capture(t, func() {
		Section("Game Data Snapshot")
		Stats("Materials", 42)
		Server("127.0.0.1:8001")
	})
	if !strings.Contains(out, "Game Data Snapshot") || !strings.Contains(out, "42") {
		t.Errorf("output = %q", out)
	}
}
