//go:build !windows && !darwin && !linux

package hotkey

type unsupportedOS struct{}

func newPlatformOS() OS {
	return unsupportedOS{}
}

func (unsupportedOS) Register(id int, modifiers, keyCode uint32) bool { return false }

func (unsupportedOS) Unregister(id int) bool { return false }

func (unsupportedOS) Peek() (Message, bool) { return Message{}, false }
