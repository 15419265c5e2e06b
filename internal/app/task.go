package app

import (
	"context"
	"time"

	"github.com/petems/click-tray/internal/event"
	"github.com/petems/click-tray/internal/inject"
	"github.com/rs/zerolog"
)

// clickTask holds a copy of the click config taken when it was started.
type clickTask struct {
	id        int
	seq       uint64
	clickType inject.ClickType
	times     int
	interval  time.Duration

	inj    inject.Injector
	emit   chan<- event.Event
	status StatusObserver
	log    zerolog.Logger
}

func durationFromMS(ms int) time.Duration {
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// run races the click sequence against cancellation. Only a natural finish
// reports back.
func (t *clickTask) run(ctx context.Context) {
	if !t.clickAll(ctx) {
		t.log.Debug().Int("id", t.id).Uint64("task", t.seq).Msg("Click task cancelled")
		return
	}

	t.log.Info().Int("id", t.id).Int("clicks", t.times).Msg("Click task finished")
	if t.status != nil {
		t.status.StatusChanged(false)
	}
	select {
	case t.emit <- event.NewTaskCompleted(t.id, t.seq):
	case <-ctx.Done():
	}
}

// clickAll returns true once the budget is used up and false if ctx was
// cancelled first. There is no wait after the last click.
func (t *clickTask) clickAll(ctx context.Context) bool {
	for n := 1; ; n++ {
		if ctx.Err() != nil {
			return false
		}
		t.clickOnce()

		if t.times > 0 && n >= t.times {
			return ctx.Err() == nil
		}

		wait := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			wait.Stop()
			return false
		case <-wait.C:
		}
	}
}

func (t *clickTask) clickOnce() {
	sent, err := t.inj.SendClick(t.clickType)
	if err != nil || sent != inject.EventsPerClick {
		t.log.Warn().Err(err).
			Int("id", t.id).
			Int("sent", sent).
			Int("expected", inject.EventsPerClick).
			Msg("Input injection accepted fewer events than submitted")
	}
}
