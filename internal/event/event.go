// Package event defines the notifications that flow from the hotkey loop and
// click tasks into the handler, and from the handler to observers.
package event

import (
	"fmt"

	"github.com/petems/click-tray/internal/inject"
)

type Kind int

const (
	Registered Kind = iota + 1
	Unregistered
	HotkeyPressed
	ConfigChanged
	ManualToggled
	TaskCompleted
)

func (k Kind) String() string {
	switch k {
	case Registered:
		return "registered"
	case Unregistered:
		return "unregistered"
	case HotkeyPressed:
		return "hotkey_pressed"
	case ConfigChanged:
		return "config_changed"
	case ManualToggled:
		return "manual_toggled"
	case TaskCompleted:
		return "task_completed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Event is a flat union; which fields are meaningful depends on Kind.
type Event struct {
	Kind       Kind
	ID         int
	ClickType  inject.ClickType // Registered
	Times      int              // ConfigChanged
	DurationMS int              // ConfigChanged
	Start      bool             // ManualToggled
	Task       uint64           // TaskCompleted: which run of the id finished
}

func NewRegistered(id int, clickType inject.ClickType) Event {
	return Event{Kind: Registered, ID: id, ClickType: clickType}
}

func NewUnregistered(id int) Event {
	return Event{Kind: Unregistered, ID: id}
}

func NewHotkeyPressed(id int) Event {
	return Event{Kind: HotkeyPressed, ID: id}
}

func NewConfigChanged(times, durationMS int) Event {
	return Event{Kind: ConfigChanged, Times: times, DurationMS: durationMS}
}

func NewManualToggled(id int, start bool) Event {
	return Event{Kind: ManualToggled, ID: id, Start: start}
}

func NewTaskCompleted(id int, task uint64) Event {
	return Event{Kind: TaskCompleted, ID: id, Task: task}
}

func (e Event) String() string {
	switch e.Kind {
	case Registered:
		return fmt.Sprintf("%s{id=%d click=%s}", e.Kind, e.ID, e.ClickType)
	case ConfigChanged:
		return fmt.Sprintf("%s{times=%d duration_ms=%d}", e.Kind, e.Times, e.DurationMS)
	case ManualToggled:
		return fmt.Sprintf("%s{id=%d start=%t}", e.Kind, e.ID, e.Start)
	case TaskCompleted:
		return fmt.Sprintf("%s{id=%d task=%d}", e.Kind, e.ID, e.Task)
	default:
		return fmt.Sprintf("%s{id=%d}", e.Kind, e.ID)
	}
}
