package hotkey

import (
	"context"
	"testing"
	"time"

	"github.com/petems/click-tray/internal/event"
	"github.com/petems/click-tray/internal/inject"
	"github.com/rs/zerolog"
)

// fakeOS is touched by the loop goroutine only, except for the messages
// channel which tests write to.
type fakeOS struct {
	bound    map[int]bool
	messages chan Message
}

func newFakeOS() *fakeOS {
	return &fakeOS{
		bound:    make(map[int]bool),
		messages: make(chan Message, 16),
	}
}

func (f *fakeOS) Register(id int, modifiers, keyCode uint32) bool {
	if f.bound[id] {
		return false
	}
	f.bound[id] = true
	return true
}

func (f *fakeOS) Unregister(id int) bool {
	if !f.bound[id] {
		return false
	}
	delete(f.bound, id)
	return true
}

func (f *fakeOS) Peek() (Message, bool) {
	select {
	case m := <-f.messages:
		return m, true
	default:
		return Message{}, false
	}
}

func startLoop(t *testing.T, os OS) (chan Command, chan event.Event, context.CancelFunc, chan struct{}) {
	t.Helper()
	cmds := make(chan Command, 10)
	events := make(chan event.Event, 32)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	loop := NewLoop(LoopConfig{
		OS:       os,
		Commands: cmds,
		Events:   events,
		Logger:   zerolog.Nop(),
		Idle:     time.Millisecond,
	})
	go func() {
		loop.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cmds, events, cancel, done
}

func nextEvent(t *testing.T, events <-chan event.Event) event.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return event.Event{}
	}
}

func expectNoEvent(t *testing.T, events <-chan event.Event) {
	t.Helper()
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %v", ev)
	case <-time.After(30 * time.Millisecond):
	}
}

func waitAck(t *testing.T, cmd Command) bool {
	t.Helper()
	select {
	case ok := <-cmd.Ack:
		return ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for ack")
		return false
	}
}

func TestRegisterAcksAndEmits(t *testing.T) {
	cmds, events, _, _ := startLoop(t, newFakeOS())

	cmd := NewRegister(1, ModCtrl, VKF1, inject.Right)
	cmds <- cmd
	if !waitAck(t, cmd) {
		t.Fatal("expected successful registration")
	}

	ev := nextEvent(t, events)
	if ev.Kind != event.Registered || ev.ID != 1 || ev.ClickType != inject.Right {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestFailedRegisterEmitsNothing(t *testing.T) {
	os := newFakeOS()
	os.bound[1] = true
	cmds, events, _, _ := startLoop(t, os)

	cmd := NewRegister(1, 0, VKF1+5, inject.Left)
	cmds <- cmd
	if waitAck(t, cmd) {
		t.Fatal("expected registration to be declined")
	}
	expectNoEvent(t, events)
}

func TestUnregister(t *testing.T) {
	cmds, events, _, _ := startLoop(t, newFakeOS())

	missing := NewUnregister(7)
	cmds <- missing
	if waitAck(t, missing) {
		t.Fatal("expected unregister of unknown id to fail")
	}
	expectNoEvent(t, events)

	reg := NewRegister(7, 0, 'Q', inject.Left)
	cmds <- reg
	waitAck(t, reg)
	nextEvent(t, events)

	unreg := NewUnregister(7)
	cmds <- unreg
	if !waitAck(t, unreg) {
		t.Fatal("expected unregister to succeed")
	}
	ev := nextEvent(t, events)
	if ev.Kind != event.Unregistered || ev.ID != 7 {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRegisterRejectsOutOfRangeID(t *testing.T) {
	os := newFakeOS()
	cmds, events, _, _ := startLoop(t, os)

	for _, id := range []int{-1, maxHotkeyID + 1} {
		cmd := NewRegister(id, 0, VKF1+5, inject.Left)
		cmds <- cmd
		if waitAck(t, cmd) {
			t.Fatalf("expected id %d to be declined", id)
		}
	}
	expectNoEvent(t, events)

	edge := NewRegister(maxHotkeyID, 0, VKF1+5, inject.Left)
	cmds <- edge
	if !waitAck(t, edge) {
		t.Fatal("expected highest id to register")
	}
	if ev := nextEvent(t, events); ev.Kind != event.Registered || ev.ID != maxHotkeyID {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   int
		want bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{maxHotkeyID, true},
		{maxHotkeyID + 1, false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%d) = %t, want %t", tt.id, got, tt.want)
		}
	}
}

func TestPassThroughCommands(t *testing.T) {
	cmds, events, _, _ := startLoop(t, newFakeOS())

	cmds <- NewConfigChange(3, 120)
	cmds <- NewManualToggle(2, true)

	ev := nextEvent(t, events)
	if ev.Kind != event.ConfigChanged || ev.Times != 3 || ev.DurationMS != 120 {
		t.Fatalf("unexpected event %v", ev)
	}
	ev = nextEvent(t, events)
	if ev.Kind != event.ManualToggled || ev.ID != 2 || !ev.Start {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestHotkeyMessageBecomesPressed(t *testing.T) {
	os := newFakeOS()
	_, events, _, _ := startLoop(t, os)

	os.messages <- Message{Msg: 0x0200} // WM_MOUSEMOVE, ignored
	os.messages <- Message{Msg: MsgHotkey, WParam: 4}

	ev := nextEvent(t, events)
	if ev.Kind != event.HotkeyPressed || ev.ID != 4 {
		t.Fatalf("unexpected event %v", ev)
	}
	expectNoEvent(t, events)
}

func TestPendingCommandsRejectedOnStop(t *testing.T) {
	os := newFakeOS()
	cmds, _, cancel, done := startLoop(t, os)
	cancel()
	<-done

	cmd := NewRegister(1, 0, VKF1, inject.Left)
	cmds <- cmd

	// The loop is gone; a second run that is already cancelled drains the
	// queue and closes the ack.
	loop := NewLoop(LoopConfig{OS: os, Commands: cmds, Events: make(chan event.Event), Logger: zerolog.Nop()})
	ctx, stop := context.WithCancel(context.Background())
	stop()
	loop.Run(ctx)

	if _, ok := <-cmd.Ack; ok {
		t.Fatal("expected ack to be closed without a value")
	}
}

func TestToEvent(t *testing.T) {
	tests := []struct {
		name  string
		msg   Message
		valid bool
		id    int
	}{
		{"hotkey", Message{Msg: MsgHotkey, WParam: 1}, true, 1},
		{"max id", Message{Msg: MsgHotkey, WParam: maxHotkeyID}, true, maxHotkeyID},
		{"reserved id", Message{Msg: MsgHotkey, WParam: maxHotkeyID + 1}, false, 0},
		{"other message", Message{Msg: 0x0100, WParam: 1}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := toEvent(tt.msg)
			if ok != tt.valid {
				t.Fatalf("expected valid=%t, got %t", tt.valid, ok)
			}
			if ok && ev.ID != tt.id {
				t.Errorf("expected id %d, got %d", tt.id, ev.ID)
			}
		})
	}
}
