// Package hotkey owns the live OS hotkey bindings. A single Loop applies
// registration commands against the OS and turns hotkey notifications into
// events for the handler.
package hotkey

import (
	"github.com/petems/click-tray/internal/inject"
)

// OS is the platform hotkey registry and message source. All methods are
// called from the Loop goroutine only, which is locked to one OS thread.
type OS interface {
	// Register binds (modifiers, keyCode) to id process-wide.
	Register(id int, modifiers, keyCode uint32) bool
	// Unregister removes the binding for id.
	Unregister(id int) bool
	// Peek returns at most one pending message without blocking.
	Peek() (Message, bool)
}

// Message is a native OS message as read from the thread's queue.
type Message struct {
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

const (
	// MsgHotkey is WM_HOTKEY; WParam carries the binding id.
	MsgHotkey = 0x0312

	// RegisterHotKey reserves ids above 0xBFFF for shared DLLs.
	maxHotkeyID = 0xBFFF
)

// ValidID reports whether id can be carried back in a WM_HOTKEY message.
func ValidID(id int) bool {
	return id >= 0 && id <= maxHotkeyID
}

// NewOS returns the registry for the current platform.
func NewOS() OS {
	return newPlatformOS()
}

type CommandKind int

const (
	CmdRegister CommandKind = iota + 1
	CmdUnregister
	CmdConfigChange
	CmdManualToggle
)

func (k CommandKind) String() string {
	switch k {
	case CmdRegister:
		return "register"
	case CmdUnregister:
		return "unregister"
	case CmdConfigChange:
		return "config_change"
	case CmdManualToggle:
		return "manual_toggle"
	}
	return "unknown"
}

// Command is a request into the Loop. Register and Unregister carry a
// single-use Ack channel with capacity 1.
type Command struct {
	Kind       CommandKind
	ID         int
	Modifiers  uint32
	KeyCode    uint32
	ClickType  inject.ClickType
	Times      int
	DurationMS int
	Start      bool
	Ack        chan bool
}

func NewRegister(id int, modifiers, keyCode uint32, clickType inject.ClickType) Command {
	return Command{
		Kind:      CmdRegister,
		ID:        id,
		Modifiers: modifiers,
		KeyCode:   keyCode,
		ClickType: clickType,
		Ack:       make(chan bool, 1),
	}
}

func NewUnregister(id int) Command {
	return Command{Kind: CmdUnregister, ID: id, Ack: make(chan bool, 1)}
}

func NewConfigChange(times, durationMS int) Command {
	return Command{Kind: CmdConfigChange, Times: times, DurationMS: durationMS}
}

func NewManualToggle(id int, start bool) Command {
	return Command{Kind: CmdManualToggle, ID: id, Start: start}
}
