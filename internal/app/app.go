package app

import (
	"context"

	"github.com/petems/click-tray/internal/event"
	"github.com/petems/click-tray/internal/inject"
	"github.com/rs/zerolog"
)

// StatusObserver is told the new running state every time a binding toggles.
// It is called from the handler goroutine and from click tasks, so it must
// not block.
type StatusObserver interface {
	StatusChanged(running bool)
}

// StatusFunc adapts a plain function to StatusObserver.
type StatusFunc func(running bool)

func (f StatusFunc) StatusChanged(running bool) { f(running) }

// ClickConfig applies to click tasks started after it is set.
type ClickConfig struct {
	Times      int // 0 clicks until stopped
	DurationMS int
}

func DefaultClickConfig() ClickConfig {
	return ClickConfig{Times: 0, DurationMS: 50}
}

type Config struct {
	Injector inject.Injector
	// Emit feeds back into the handler's own inbound queue; click tasks use
	// it to report natural completion.
	Emit   chan<- event.Event
	Events chan<- event.Event // Optional - receives every handled event
	Logger zerolog.Logger
	Status StatusObserver // Optional - can be nil
}

type binding struct {
	clickType inject.ClickType
	status    bool
}

type activeTask struct {
	seq    uint64
	cancel context.CancelFunc
}

// App is the single owner of hotkey bindings, the click config and the
// running tasks. Every field below is touched only from the goroutine that
// calls Run, one event at a time.
type App struct {
	inj    inject.Injector
	emit   chan<- event.Event
	events chan<- event.Event
	log    zerolog.Logger
	status StatusObserver

	base     context.Context
	bindings map[int]*binding
	tasks    map[int]activeTask
	click    ClickConfig
	seq      uint64
}

func New(cfg Config) *App {
	return &App{
		inj:      cfg.Injector,
		emit:     cfg.Emit,
		events:   cfg.Events,
		log:      cfg.Logger.With().Str("component", "handler").Logger(),
		status:   cfg.Status,
		base:     context.Background(),
		bindings: make(map[int]*binding),
		tasks:    make(map[int]activeTask),
		click:    DefaultClickConfig(),
	}
}

// Run handles events in arrival order until ctx is cancelled or in is
// closed. Running click tasks are cancelled on return.
func (a *App) Run(ctx context.Context, in <-chan event.Event) {
	a.base = ctx
	defer a.cancelAll()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			a.handle(ev)
			a.publish(ctx, ev)
		}
	}
}

func (a *App) handle(ev event.Event) {
	a.log.Debug().Stringer("event", ev).Msg("Handling event")

	switch ev.Kind {
	case event.Registered:
		// A fresh binding starts idle, so a run left over from an earlier
		// binding under the same id must not survive it.
		a.cancelTask(ev.ID)
		a.bindings[ev.ID] = &binding{clickType: ev.ClickType}

	case event.Unregistered:
		delete(a.bindings, ev.ID)
		a.cancelTask(ev.ID)

	case event.HotkeyPressed:
		b, ok := a.bindings[ev.ID]
		if !ok {
			return
		}
		a.toggle(ev.ID, b, !b.status)

	case event.ManualToggled:
		b, ok := a.bindings[ev.ID]
		if !ok || b.status == ev.Start {
			return
		}
		a.toggle(ev.ID, b, ev.Start)

	case event.ConfigChanged:
		a.click = ClickConfig{Times: ev.Times, DurationMS: ev.DurationMS}
		a.log.Info().Int("times", ev.Times).Int("duration_ms", ev.DurationMS).Msg("Click config changed")

	case event.TaskCompleted:
		t, ok := a.tasks[ev.ID]
		if !ok || t.seq != ev.Task {
			// A run that was already cancelled, possibly replaced by a newer
			// one for the same id.
			return
		}
		delete(a.tasks, ev.ID)
		if b, ok := a.bindings[ev.ID]; ok {
			b.status = false
		}

	default:
		a.log.Warn().Stringer("event", ev).Msg("Unknown event")
	}
}

// toggle sets the new status, tells the observer, then starts or stops the
// task in that order.
func (a *App) toggle(id int, b *binding, running bool) {
	b.status = running
	a.log.Info().Int("id", id).Bool("running", running).Msg("Clicker toggled")

	if a.status != nil {
		a.status.StatusChanged(running)
	}

	if running {
		a.startTask(id, b.clickType)
	} else {
		a.cancelTask(id)
	}
}

func (a *App) startTask(id int, clickType inject.ClickType) {
	// Never leave an older run untracked.
	a.cancelTask(id)

	a.seq++
	ctx, cancel := context.WithCancel(a.base)
	a.tasks[id] = activeTask{seq: a.seq, cancel: cancel}

	t := &clickTask{
		id:        id,
		seq:       a.seq,
		clickType: clickType,
		times:     a.click.Times,
		interval:  durationFromMS(a.click.DurationMS),
		inj:       a.inj,
		emit:      a.emit,
		status:    a.status,
		log:       a.log,
	}
	go t.run(ctx)
}

func (a *App) cancelTask(id int) {
	t, ok := a.tasks[id]
	if !ok {
		return
	}
	delete(a.tasks, id)
	t.cancel()
}

func (a *App) cancelAll() {
	for id := range a.tasks {
		a.cancelTask(id)
	}
}

func (a *App) publish(ctx context.Context, ev event.Event) {
	if a.events == nil {
		return
	}
	select {
	case a.events <- ev:
	case <-ctx.Done():
	}
}
