package logging

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithLevel(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_STATE_HOME", dir)
	t.Setenv("LOCALAPPDATA", dir)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := NewWithLevel(tt.level).GetLevel(); got != tt.want {
			t.Errorf("NewWithLevel(%q) level = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestPathEndsInAppDir(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_STATE_HOME", "/tmp/state")
		if got := Path(); got != filepath.Join("/tmp/state", "click-tray", "click-tray.log") {
			t.Fatalf("unexpected path %q", got)
		}
		return
	}
	if filepath.Base(Path()) != "click-tray.log" {
		t.Fatalf("unexpected path %q", Path())
	}
}
