package event

import (
	"testing"

	"github.com/petems/click-tray/internal/inject"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"registered", NewRegistered(1, inject.Right), "registered{id=1 click=right}"},
		{"unregistered", NewUnregistered(2), "unregistered{id=2}"},
		{"pressed", NewHotkeyPressed(3), "hotkey_pressed{id=3}"},
		{"config", NewConfigChanged(5, 100), "config_changed{times=5 duration_ms=100}"},
		{"manual", NewManualToggled(4, true), "manual_toggled{id=4 start=true}"},
		{"completed", NewTaskCompleted(6, 2), "task_completed{id=6 task=2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUnknownKindString(t *testing.T) {
	if got := Kind(42).String(); got != "Kind(42)" {
		t.Errorf("unexpected string %q", got)
	}
}
