//go:build !windows

package inject

import "testing"

func TestRobotgoButton(t *testing.T) {
	tests := []struct {
		button ClickType
		want   string
	}{
		{Left, "left"},
		{Right, "right"},
		{Middle, "center"},
	}
	for _, tt := range tests {
		if got := robotgoButton(tt.button); got != tt.want {
			t.Errorf("robotgoButton(%v) = %q, want %q", tt.button, got, tt.want)
		}
	}
}
