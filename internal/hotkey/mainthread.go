package hotkey

import "golang.design/x/hotkey/mainthread"

// RunOnMainThread runs fn while the main goroutine serves the platform
// event loop that hotkeys and the tray need on macOS. Call it from main.
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}
