package hotkey

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		mods    uint32
		key     uint32
		wantErr bool
	}{
		{in: "F6", key: VKF1 + 5},
		{in: "ctrl+f1", mods: ModCtrl, key: VKF1},
		{in: "Ctrl + Shift + A", mods: ModCtrl | ModShift, key: 'A'},
		{in: "alt+win+9", mods: ModAlt | ModWin, key: '9'},
		{in: "shift+space", mods: ModShift, key: VKSpace},
		{in: "numpad3", key: VKNumpad0 + 3},
		{in: "kp0", key: VKNumpad0},
		{in: "f24", key: VKF24},
		{in: "f", key: 'F'},
		{in: "", wantErr: true},
		{in: "ctrl+", wantErr: true},
		{in: "hyper+a", wantErr: true},
		{in: "f25", wantErr: true},
		{in: "ctrl+banana", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			mods, key, err := Parse(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got mods=0x%x key=0x%x", tt.in, mods, key)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mods != tt.mods || key != tt.key {
				t.Errorf("expected mods=0x%x key=0x%x, got mods=0x%x key=0x%x", tt.mods, tt.key, mods, key)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	for _, accel := range []string{"F6", "Ctrl+Shift+A", "Alt+Win+Numpad7", "Ctrl+Space", "Esc"} {
		mods, key, err := Parse(accel)
		if err != nil {
			t.Fatalf("parse %q: %v", accel, err)
		}
		if got := Format(mods, key); got != accel {
			t.Errorf("expected %q, got %q", accel, got)
		}
	}
}

func TestFormatUnknownKey(t *testing.T) {
	if got := Format(ModCtrl, 0xE7); got != "Ctrl+0xE7" {
		t.Errorf("unexpected format %q", got)
	}
}
