package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Modifier bits, as accepted by RegisterHotKey.
const (
	ModAlt   uint32 = 0x0001
	ModCtrl  uint32 = 0x0002
	ModShift uint32 = 0x0004
	ModWin   uint32 = 0x0008
)

// Virtual-key codes outside the letter/digit/function ranges.
const (
	VKBack     = 0x08
	VKTab      = 0x09
	VKReturn   = 0x0D
	VKEscape   = 0x1B
	VKSpace    = 0x20
	VKPageUp   = 0x21
	VKPageDown = 0x22
	VKEnd      = 0x23
	VKHome     = 0x24
	VKLeft     = 0x25
	VKUp       = 0x26
	VKRight    = 0x27
	VKDown     = 0x28
	VKInsert   = 0x2D
	VKDelete   = 0x2E
	VKNumpad0  = 0x60
	VKAdd      = 0x6B
	VKSubtract = 0x6D
	VKF1       = 0x70
	VKF24      = 0x87
)

var namedKeys = map[string]uint32{
	"backspace": VKBack,
	"tab":       VKTab,
	"enter":     VKReturn,
	"return":    VKReturn,
	"esc":       VKEscape,
	"escape":    VKEscape,
	"space":     VKSpace,
	"pageup":    VKPageUp,
	"pagedown":  VKPageDown,
	"end":       VKEnd,
	"home":      VKHome,
	"left":      VKLeft,
	"up":        VKUp,
	"right":     VKRight,
	"down":      VKDown,
	"insert":    VKInsert,
	"delete":    VKDelete,
	"add":       VKAdd,
	"plus":      VKAdd,
	"subtract":  VKSubtract,
	"minus":     VKSubtract,
}

// Parse turns an accelerator such as "ctrl+shift+f6" into RegisterHotKey
// modifier bits and a virtual-key code. The key comes last; modifiers may
// appear in any order.
func Parse(s string) (modifiers, keyCode uint32, err error) {
	if strings.TrimSpace(s) == "" {
		return 0, 0, fmt.Errorf("empty hotkey")
	}
	parts := strings.Split(s, "+")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}

	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "alt", "option":
			modifiers |= ModAlt
		case "ctrl", "control":
			modifiers |= ModCtrl
		case "shift":
			modifiers |= ModShift
		case "win", "super", "meta", "cmd":
			modifiers |= ModWin
		default:
			return 0, 0, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}

	keyCode, err = parseKey(parts[len(parts)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("hotkey %q: %w", s, err)
	}
	return modifiers, keyCode, nil
}

func parseKey(token string) (uint32, error) {
	if len(token) == 1 {
		ch := token[0]
		switch {
		case ch >= 'a' && ch <= 'z':
			return uint32(ch - 'a' + 'A'), nil
		case ch >= '0' && ch <= '9':
			return uint32(ch), nil
		}
	}
	if vk, ok := namedKeys[token]; ok {
		return vk, nil
	}
	if n, ok := numberedKey(token, "f"); ok && n >= 1 && n <= 24 {
		return VKF1 + uint32(n-1), nil
	}
	for _, prefix := range []string{"numpad", "num", "kp"} {
		if n, ok := numberedKey(token, prefix); ok && n >= 0 && n <= 9 {
			return VKNumpad0 + uint32(n), nil
		}
	}
	return 0, fmt.Errorf("unsupported key %q", token)
}

func numberedKey(token, prefix string) (int, bool) {
	if !strings.HasPrefix(token, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(token, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format renders modifiers and key code back into accelerator form, e.g.
// "Ctrl+Shift+F6".
func Format(modifiers, keyCode uint32) string {
	var b strings.Builder
	if modifiers&ModCtrl != 0 {
		b.WriteString("Ctrl+")
	}
	if modifiers&ModAlt != 0 {
		b.WriteString("Alt+")
	}
	if modifiers&ModShift != 0 {
		b.WriteString("Shift+")
	}
	if modifiers&ModWin != 0 {
		b.WriteString("Win+")
	}
	b.WriteString(keyName(keyCode))
	return b.String()
}

func keyName(vk uint32) string {
	switch {
	case vk >= 'A' && vk <= 'Z', vk >= '0' && vk <= '9':
		return string(rune(vk))
	case vk >= VKF1 && vk <= VKF24:
		return "F" + strconv.Itoa(int(vk-VKF1)+1)
	case vk >= VKNumpad0 && vk <= VKNumpad0+9:
		return "Numpad" + strconv.Itoa(int(vk-VKNumpad0))
	}
	switch vk {
	case VKBack:
		return "Backspace"
	case VKTab:
		return "Tab"
	case VKReturn:
		return "Enter"
	case VKEscape:
		return "Esc"
	case VKSpace:
		return "Space"
	case VKPageUp:
		return "PageUp"
	case VKPageDown:
		return "PageDown"
	case VKEnd:
		return "End"
	case VKHome:
		return "Home"
	case VKLeft:
		return "Left"
	case VKUp:
		return "Up"
	case VKRight:
		return "Right"
	case VKDown:
		return "Down"
	case VKInsert:
		return "Insert"
	case VKDelete:
		return "Delete"
	case VKAdd:
		return "Add"
	case VKSubtract:
		return "Subtract"
	}
	return fmt.Sprintf("0x%02X", vk)
}
