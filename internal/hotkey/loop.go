package hotkey

import (
	"context"
	"runtime"
	"time"

	"github.com/petems/click-tray/internal/event"
	"github.com/rs/zerolog"
)

// DefaultIdle is how long the loop sleeps when the OS queue was empty.
const DefaultIdle = 10 * time.Millisecond

type LoopConfig struct {
	OS       OS
	Commands <-chan Command
	Events   chan<- event.Event
	Logger   zerolog.Logger
	Idle     time.Duration // Optional - defaults to DefaultIdle
}

type Loop struct {
	os       OS
	commands <-chan Command
	events   chan<- event.Event
	log      zerolog.Logger
	idle     time.Duration
}

func NewLoop(cfg LoopConfig) *Loop {
	idle := cfg.Idle
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Loop{
		os:       cfg.OS,
		commands: cfg.Commands,
		events:   cfg.Events,
		log:      cfg.Logger.With().Str("component", "hotkey").Logger(),
		idle:     idle,
	}
}

// Run polls until ctx is cancelled. Hotkeys registered with a NULL window
// are delivered to the registering thread, so the goroutine stays locked to
// its OS thread for the whole run.
func (l *Loop) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	l.log.Debug().Msg("Hotkey loop started")
	defer l.log.Debug().Msg("Hotkey loop stopped")

	for {
		if ctx.Err() != nil {
			l.rejectPending()
			return
		}

		l.drainCommands(ctx)

		msg, ok := l.os.Peek()
		if ok {
			if ev, valid := toEvent(msg); valid {
				l.emit(ctx, ev)
			}
			continue
		}

		select {
		case <-ctx.Done():
		case <-time.After(l.idle):
		}
	}
}

func (l *Loop) drainCommands(ctx context.Context) {
	for {
		select {
		case cmd := <-l.commands:
			l.apply(ctx, cmd)
		default:
			return
		}
	}
}

func (l *Loop) apply(ctx context.Context, cmd Command) {
	switch cmd.Kind {
	case CmdRegister:
		if !ValidID(cmd.ID) {
			reply(cmd, false)
			l.log.Warn().Int("id", cmd.ID).Msg("Hotkey id out of range")
			return
		}
		ok := l.os.Register(cmd.ID, cmd.Modifiers, cmd.KeyCode)
		reply(cmd, ok)
		if !ok {
			l.log.Warn().Int("id", cmd.ID).
				Str("hotkey", Format(cmd.Modifiers, cmd.KeyCode)).
				Msg("RegisterHotKey failed")
			return
		}
		l.log.Info().Int("id", cmd.ID).
			Str("hotkey", Format(cmd.Modifiers, cmd.KeyCode)).
			Str("click", cmd.ClickType.String()).
			Msg("Hotkey registered")
		l.emit(ctx, event.NewRegistered(cmd.ID, cmd.ClickType))

	case CmdUnregister:
		ok := l.os.Unregister(cmd.ID)
		reply(cmd, ok)
		if !ok {
			l.log.Warn().Int("id", cmd.ID).Msg("UnregisterHotKey failed")
			return
		}
		l.log.Info().Int("id", cmd.ID).Msg("Hotkey unregistered")
		l.emit(ctx, event.NewUnregistered(cmd.ID))

	case CmdConfigChange:
		l.emit(ctx, event.NewConfigChanged(cmd.Times, cmd.DurationMS))

	case CmdManualToggle:
		l.emit(ctx, event.NewManualToggled(cmd.ID, cmd.Start))

	default:
		l.log.Error().Int("kind", int(cmd.Kind)).Msg("Unknown command")
		reply(cmd, false)
	}
}

// rejectPending closes the ack of every queued command so waiting callers
// see the loop is gone instead of blocking.
func (l *Loop) rejectPending() {
	for {
		select {
		case cmd := <-l.commands:
			if cmd.Ack != nil {
				close(cmd.Ack)
			}
		default:
			return
		}
	}
}

func (l *Loop) emit(ctx context.Context, ev event.Event) {
	select {
	case l.events <- ev:
	case <-ctx.Done():
	}
}

func reply(cmd Command, ok bool) {
	if cmd.Ack == nil {
		return
	}
	cmd.Ack <- ok
	close(cmd.Ack)
}

// toEvent validates a native message before anything past the loop sees it.
// Only WM_HOTKEY carries an id, in WParam.
func toEvent(msg Message) (event.Event, bool) {
	if msg.Msg != MsgHotkey {
		return event.Event{}, false
	}
	if msg.WParam > maxHotkeyID {
		return event.Event{}, false
	}
	return event.NewHotkeyPressed(int(msg.WParam)), true
}
