//go:build darwin

package hotkey

import "golang.design/x/hotkey"

var modifierMap = map[uint32]hotkey.Modifier{
	ModCtrl:  hotkey.ModCtrl,
	ModShift: hotkey.ModShift,
	ModAlt:   hotkey.ModOption,
	ModWin:   hotkey.ModCmd,
}
