//go:build linux

package hotkey

import "golang.design/x/hotkey"

// Alt and Super are Mod1 and Mod4 on X11.
var modifierMap = map[uint32]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.Mod1,
	ModWin:   hotkey.Mod4,
}
