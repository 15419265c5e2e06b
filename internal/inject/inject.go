package inject

import (
	"fmt"
	"strings"
)

// ClickType selects the pointer button a click is sent to.
type ClickType int

const (
	Left ClickType = iota
	Right
	Middle
)

func (c ClickType) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Middle:
		return "middle"
	default:
		return fmt.Sprintf("ClickType(%d)", int(c))
	}
}

// ParseClickType accepts "left", "right" or "middle", case-insensitively.
func ParseClickType(s string) (ClickType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "middle":
		return Middle, nil
	}
	return Left, fmt.Errorf("unknown click type %q", s)
}

func (c ClickType) MarshalText() ([]byte, error) {
	switch c {
	case Left, Right, Middle:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("invalid click type %d", int(c))
}

func (c *ClickType) UnmarshalText(text []byte) error {
	v, err := ParseClickType(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// EventsPerClick is the number of input events in one click: button down
// followed by button up.
const EventsPerClick = 2

// Injector submits synthetic pointer input to the OS.
type Injector interface {
	// SendClick submits a down/up pair for the button and reports how many
	// of the two events the OS accepted.
	SendClick(button ClickType) (int, error)
}

// New returns the injector for the current platform.
func New() Injector {
	return newPlatformInjector()
}
