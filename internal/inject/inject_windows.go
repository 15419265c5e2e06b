//go:build windows

package inject

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputMouse = 0

	mouseEventLeftDown   = 0x0002
	mouseEventLeftUp     = 0x0004
	mouseEventRightDown  = 0x0008
	mouseEventRightUp    = 0x0010
	mouseEventMiddleDown = 0x0020
	mouseEventMiddleUp   = 0x0040
)

type mouseInput struct {
	dx          int32
	dy          int32
	mouseData   uint32
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors the Win32 INPUT struct; MOUSEINPUT is the largest union
// member so no trailing padding is needed.
type input struct {
	inputType uint32
	mi        mouseInput
}

type sendInputInjector struct{}

func newPlatformInjector() Injector {
	return &sendInputInjector{}
}

func buttonFlags(button ClickType) (down, up uint32, err error) {
	switch button {
	case Left:
		return mouseEventLeftDown, mouseEventLeftUp, nil
	case Right:
		return mouseEventRightDown, mouseEventRightUp, nil
	case Middle:
		return mouseEventMiddleDown, mouseEventMiddleUp, nil
	}
	return 0, 0, fmt.Errorf("unsupported button %v", button)
}

func (s *sendInputInjector) SendClick(button ClickType) (int, error) {
	down, up, err := buttonFlags(button)
	if err != nil {
		return 0, err
	}

	inputs := [EventsPerClick]input{
		{inputType: inputMouse, mi: mouseInput{dwFlags: down}},
		{inputType: inputMouse, mi: mouseInput{dwFlags: up}},
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent == 0 {
		return 0, fmt.Errorf("SendInput: %w", callErr)
	}
	return int(sent), nil
}
