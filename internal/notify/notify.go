// Package notify shows desktop notifications for clicker state changes.
package notify

import (
	"sync/atomic"

	"github.com/gen2brain/beeep"
)

const appName = "Click Tray"

// Notifier sends desktop notifications. It is safe for concurrent use and
// never blocks the caller.
type Notifier struct {
	enabled atomic.Bool
	send    func(title, message string) error
}

func New(enabled bool) *Notifier {
	n := &Notifier{
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
	n.enabled.Store(enabled)
	return n
}

func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

func (n *Notifier) Enabled() bool {
	return n.enabled.Load()
}

// StatusChanged reports a run starting or finishing.
func (n *Notifier) StatusChanged(running bool) {
	if running {
		n.Started()
	} else {
		n.Stopped()
	}
}

func (n *Notifier) Started() {
	n.notify("Clicking", "Press the hotkey again to stop")
}

func (n *Notifier) Stopped() {
	n.notify("Stopped", "Clicking has stopped")
}

func (n *Notifier) Error(msg string) {
	n.notify("Error", msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled.Load() {
		return
	}
	// Notification failures are not fatal
	go func() {
		_ = n.send(appName+": "+title, message)
	}()
}
