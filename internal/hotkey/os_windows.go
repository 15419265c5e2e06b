//go:build windows

package hotkey

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey   = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey = user32.NewProc("UnregisterHotKey")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
)

const pmRemove = 0x0001

type msg struct {
	hwnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       [2]int32
	lPrivate uint32
}

// win32OS registers thread hotkeys (NULL window). It must only be used from
// the Loop goroutine.
type win32OS struct{}

func newPlatformOS() OS {
	return &win32OS{}
}

func (w *win32OS) Register(id int, modifiers, keyCode uint32) bool {
	r, _, _ := procRegisterHotKey.Call(0, uintptr(id), uintptr(modifiers), uintptr(keyCode))
	return r != 0
}

func (w *win32OS) Unregister(id int) bool {
	r, _, _ := procUnregisterHotKey.Call(0, uintptr(id))
	return r != 0
}

func (w *win32OS) Peek() (Message, bool) {
	var m msg
	r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
	if r == 0 {
		return Message{}, false
	}
	return Message{Msg: m.message, WParam: m.wParam, LParam: m.lParam}, true
}
