//go:build darwin || linux

package hotkey

import (
	"sort"

	"golang.design/x/hotkey"
)

// designOS adapts golang.design/x/hotkey to the registry/message-source
// shape of the Loop. Keydown notifications are read without blocking and
// re-encoded as WM_HOTKEY messages, so the Loop has one conversion path on
// every platform.
type designOS struct {
	bound map[int]*hotkey.Hotkey
	ids   []int
	next  int
}

func newPlatformOS() OS {
	return &designOS{bound: make(map[int]*hotkey.Hotkey)}
}

func (d *designOS) Register(id int, modifiers, keyCode uint32) bool {
	if _, exists := d.bound[id]; exists {
		return false
	}
	key, ok := keyMap[keyCode]
	if !ok {
		return false
	}

	mods := make([]hotkey.Modifier, 0, 4)
	for _, bit := range []uint32{ModCtrl, ModShift, ModAlt, ModWin} {
		if modifiers&bit != 0 {
			mods = append(mods, modifierMap[bit])
		}
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return false
	}
	d.bound[id] = hk
	d.ids = append(d.ids, id)
	sort.Ints(d.ids)
	return true
}

func (d *designOS) Unregister(id int) bool {
	hk, ok := d.bound[id]
	if !ok {
		return false
	}
	if err := hk.Unregister(); err != nil {
		return false
	}
	delete(d.bound, id)
	for i, v := range d.ids {
		if v == id {
			d.ids = append(d.ids[:i], d.ids[i+1:]...)
			break
		}
	}
	return true
}

// Peek checks each binding once, starting after the one that fired last so a
// held key cannot starve the others.
func (d *designOS) Peek() (Message, bool) {
	n := len(d.ids)
	for i := 0; i < n; i++ {
		idx := (d.next + i) % n
		id := d.ids[idx]
		select {
		case <-d.bound[id].Keydown():
			d.next = (idx + 1) % n
			return Message{Msg: MsgHotkey, WParam: uintptr(id)}, true
		default:
		}
	}
	return Message{}, false
}

// keyMap translates virtual-key codes into platform key codes.
var keyMap = map[uint32]hotkey.Key{
	'A': hotkey.KeyA, 'B': hotkey.KeyB, 'C': hotkey.KeyC, 'D': hotkey.KeyD,
	'E': hotkey.KeyE, 'F': hotkey.KeyF, 'G': hotkey.KeyG, 'H': hotkey.KeyH,
	'I': hotkey.KeyI, 'J': hotkey.KeyJ, 'K': hotkey.KeyK, 'L': hotkey.KeyL,
	'M': hotkey.KeyM, 'N': hotkey.KeyN, 'O': hotkey.KeyO, 'P': hotkey.KeyP,
	'Q': hotkey.KeyQ, 'R': hotkey.KeyR, 'S': hotkey.KeyS, 'T': hotkey.KeyT,
	'U': hotkey.KeyU, 'V': hotkey.KeyV, 'W': hotkey.KeyW, 'X': hotkey.KeyX,
	'Y': hotkey.KeyY, 'Z': hotkey.KeyZ,

	'0': hotkey.Key0, '1': hotkey.Key1, '2': hotkey.Key2, '3': hotkey.Key3,
	'4': hotkey.Key4, '5': hotkey.Key5, '6': hotkey.Key6, '7': hotkey.Key7,
	'8': hotkey.Key8, '9': hotkey.Key9,

	VKF1:      hotkey.KeyF1,
	VKF1 + 1:  hotkey.KeyF2,
	VKF1 + 2:  hotkey.KeyF3,
	VKF1 + 3:  hotkey.KeyF4,
	VKF1 + 4:  hotkey.KeyF5,
	VKF1 + 5:  hotkey.KeyF6,
	VKF1 + 6:  hotkey.KeyF7,
	VKF1 + 7:  hotkey.KeyF8,
	VKF1 + 8:  hotkey.KeyF9,
	VKF1 + 9:  hotkey.KeyF10,
	VKF1 + 10: hotkey.KeyF11,
	VKF1 + 11: hotkey.KeyF12,

	VKSpace:  hotkey.KeySpace,
	VKReturn: hotkey.KeyReturn,
	VKEscape: hotkey.KeyEscape,
	VKTab:    hotkey.KeyTab,
	VKDelete: hotkey.KeyDelete,
	VKLeft:   hotkey.KeyLeft,
	VKRight:  hotkey.KeyRight,
	VKUp:     hotkey.KeyUp,
	VKDown:   hotkey.KeyDown,
}
