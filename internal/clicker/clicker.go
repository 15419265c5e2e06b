// Package clicker wires the hotkey loop and the click handler together and
// exposes the request API used by the control layer.
package clicker

import (
	"context"
	"time"

	"github.com/petems/click-tray/internal/app"
	"github.com/petems/click-tray/internal/event"
	"github.com/petems/click-tray/internal/hotkey"
	"github.com/petems/click-tray/internal/inject"
	"github.com/petems/click-tray/internal/queue"
	"github.com/rs/zerolog"
)

// commandBuffer bounds how many requests may wait for the hotkey loop.
const commandBuffer = 10

type Config struct {
	OS       hotkey.OS
	Injector inject.Injector
	Logger   zerolog.Logger
	Status   app.StatusObserver // Optional - can be nil
	// PublishEvents exposes every handled event on Events(). Leave it off
	// when nothing reads the stream.
	PublishEvents bool
	Idle          time.Duration // Optional - hotkey loop idle sleep
}

type Clicker struct {
	cmds     chan hotkey.Command
	inbound  *queue.Queue[event.Event]
	outbound *queue.Queue[event.Event]

	loop    *hotkey.Loop
	handler *app.App
	log     zerolog.Logger

	loopDone chan struct{}
}

func New(cfg Config) *Clicker {
	c := &Clicker{
		cmds:     make(chan hotkey.Command, commandBuffer),
		inbound:  queue.New[event.Event](),
		log:      cfg.Logger,
		loopDone: make(chan struct{}),
	}

	var published chan<- event.Event
	if cfg.PublishEvents {
		c.outbound = queue.New[event.Event]()
		published = c.outbound.In()
	}

	c.loop = hotkey.NewLoop(hotkey.LoopConfig{
		OS:       cfg.OS,
		Commands: c.cmds,
		Events:   c.inbound.In(),
		Logger:   cfg.Logger,
		Idle:     cfg.Idle,
	})
	c.handler = app.New(app.Config{
		Injector: cfg.Injector,
		Emit:     c.inbound.In(),
		Events:   published,
		Logger:   cfg.Logger,
		Status:   cfg.Status,
	})
	return c
}

// Run starts the hotkey loop on its own goroutine and handles events on the
// calling one. It returns after ctx is cancelled and the loop has stopped.
func (c *Clicker) Run(ctx context.Context) {
	go func() {
		defer close(c.loopDone)
		c.loop.Run(ctx)
	}()

	c.handler.Run(ctx, c.inbound.Out())
	<-c.loopDone
	c.log.Info().Msg("Clicker stopped")
}

// Events returns the stream of handled events, or nil when the Clicker was
// built without PublishEvents.
func (c *Clicker) Events() <-chan event.Event {
	if c.outbound == nil {
		return nil
	}
	return c.outbound.Out()
}

// RegisterHotkey binds modifiers+keyCode to id and waits for the OS answer.
func (c *Clicker) RegisterHotkey(ctx context.Context, id int, modifiers, keyCode uint32, clickType inject.ClickType) error {
	if !hotkey.ValidID(id) {
		return &HotkeyError{ID: id, Err: ErrInvalidID}
	}
	ok, err := c.request(ctx, hotkey.NewRegister(id, modifiers, keyCode, clickType))
	if err != nil {
		return err
	}
	if !ok {
		return &HotkeyError{ID: id, Err: ErrDuplicateRegister}
	}
	return nil
}

// UnregisterHotkey removes the binding for id, stopping its clicks.
func (c *Clicker) UnregisterHotkey(ctx context.Context, id int) error {
	ok, err := c.request(ctx, hotkey.NewUnregister(id))
	if err != nil {
		return err
	}
	if !ok {
		return &HotkeyError{ID: id, Err: ErrNotRegistered}
	}
	return nil
}

// ConfigChange sets the click budget (0 for no limit) and interval for runs
// started from now on. Negative values are treated as 0.
func (c *Clicker) ConfigChange(ctx context.Context, times, durationMS int) error {
	if times < 0 {
		times = 0
	}
	if durationMS < 0 {
		durationMS = 0
	}
	return c.send(ctx, hotkey.NewConfigChange(times, durationMS))
}

// Start begins clicking for id unless it is already running. Unknown ids are
// ignored.
func (c *Clicker) Start(ctx context.Context, id int) error {
	return c.send(ctx, hotkey.NewManualToggle(id, true))
}

// Stop halts clicking for id if it is running.
func (c *Clicker) Stop(ctx context.Context, id int) error {
	return c.send(ctx, hotkey.NewManualToggle(id, false))
}

func (c *Clicker) send(ctx context.Context, cmd hotkey.Command) error {
	select {
	case <-c.loopDone:
		return ErrInternal
	default:
	}

	select {
	case c.cmds <- cmd:
		return nil
	case <-c.loopDone:
		return ErrInternal
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Clicker) request(ctx context.Context, cmd hotkey.Command) (bool, error) {
	if err := c.send(ctx, cmd); err != nil {
		return false, err
	}

	select {
	case ok, open := <-cmd.Ack:
		if !open {
			return false, ErrInternal
		}
		return ok, nil
	case <-c.loopDone:
		// The loop may have answered just before it stopped.
		select {
		case ok, open := <-cmd.Ack:
			if open {
				return ok, nil
			}
		default:
		}
		return false, ErrInternal
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
