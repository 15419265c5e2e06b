//go:build !windows

package inject

import (
	"github.com/go-vgo/robotgo"
)

type robotgoInjector struct{}

func newPlatformInjector() Injector {
	return &robotgoInjector{}
}

// SendClick presses and releases the button in place. A failed press still
// attempts the release so the button is never left held down.
func (r *robotgoInjector) SendClick(button ClickType) (int, error) {
	name := robotgoButton(button)

	accepted := 0
	var firstErr error
	if err := robotgo.Toggle(name); err != nil {
		firstErr = err
	} else {
		accepted++
	}
	if err := robotgo.Toggle(name, "up"); err != nil {
		if firstErr == nil {
			firstErr = err
		}
	} else {
		accepted++
	}

	return accepted, firstErr
}

// robotgoButton names the button the way robotgo expects. robotgo calls the
// middle button "center" and treats unknown names as left.
func robotgoButton(button ClickType) string {
	switch button {
	case Right:
		return "right"
	case Middle:
		return "center"
	default:
		return "left"
	}
}
