package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/thermostat/internal/gpio"
	"github.com/sweeney/thermostat/internal/logic"
)

// recordWait is a WaitFunc that records the requested durations and runs
// during, if set, to simulate edges arriving inside the quiet interval.
type recordWait struct {
	calls  []time.Duration
	during func()
}

func (w *recordWait) wait(ctx context.Context, d time.Duration) error {
	w.calls = append(w.calls, d)
	if w.during != nil {
		w.during()
	}
	return ctx.Err()
}

func newTestAdjuster(state *State) (*Adjuster, *gpio.Latch, *recordWait) {
	latch := gpio.NewLatch()
	w := &recordWait{}
	return NewAdjuster(state, latch, logic.SetpointStep, DefaultDebounce, w.wait), latch, w
}

func TestHandleDecrement(t *testing.T) {
	state := NewState(70)
	a, latch, w := newTestAdjuster(state)

	latch.Raise(logic.ButtonDown)
	p, err := a.Handle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Button != logic.ButtonDown || p.Before != 70 || p.After != 68 {
		t.Errorf("press: got %+v, want DOWN 70->68", p)
	}
	if state.Setpoint() != 68 {
		t.Errorf("setpoint: got %d, want 68", state.Setpoint())
	}
	if latch.Pending(logic.ButtonDown) {
		t.Error("pending flag should be cleared")
	}
	if len(w.calls) != 1 || w.calls[0] != DefaultDebounce {
		t.Errorf("wait calls: got %v, want one of %v", w.calls, DefaultDebounce)
	}
}

func TestHandleIncrement(t *testing.T) {
	state := NewState(70)
	a, latch, _ := newTestAdjuster(state)

	latch.Raise(logic.ButtonUp)
	p, err := a.Handle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Button != logic.ButtonUp || p.After != 72 {
		t.Errorf("press: got %+v, want UP ->72", p)
	}
	if state.Setpoint() != 72 {
		t.Errorf("setpoint: got %d, want 72", state.Setpoint())
	}
}

func TestHandleDownWinsAndClearsBoth(t *testing.T) {
	state := NewState(70)
	a, latch, _ := newTestAdjuster(state)

	latch.Raise(logic.ButtonUp)
	latch.Raise(logic.ButtonDown)
	p, _ := a.Handle(context.Background())

	if p.Button != logic.ButtonDown {
		t.Errorf("button: got %s, want DOWN", p.Button)
	}
	if state.Setpoint() != 68 {
		t.Errorf("setpoint: got %d, want 68", state.Setpoint())
	}
	if latch.Pending(logic.ButtonUp) || latch.Pending(logic.ButtonDown) {
		t.Error("both pending flags should be cleared")
	}
}

func TestHandleNothingPending(t *testing.T) {
	state := NewState(70)
	a, _, w := newTestAdjuster(state)

	p, err := a.Handle(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Button != logic.ButtonNone {
		t.Errorf("button: got %s, want NONE", p.Button)
	}
	if state.Setpoint() != 70 {
		t.Errorf("setpoint: got %d, want 70", state.Setpoint())
	}
	if len(w.calls) != 0 {
		t.Errorf("no quiet interval expected, got %v", w.calls)
	}
}

func TestHandleBounceCountsOnce(t *testing.T) {
	state := NewState(70)
	a, latch, w := newTestAdjuster(state)

	// The contact keeps bouncing through the whole quiet interval.
	w.during = func() {
		for i := 0; i < 20; i++ {
			latch.Raise(logic.ButtonDown)
		}
	}

	latch.Raise(logic.ButtonDown)
	if _, err := a.Handle(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Setpoint() != 68 {
		t.Fatalf("setpoint after bouncing press: got %d, want 68", state.Setpoint())
	}
	if latch.Pending(logic.ButtonDown) {
		t.Error("edges latched during the quiet interval should be discarded")
	}

	// The leftover notification finds nothing to do.
	w.during = nil
	p, _ := a.Handle(context.Background())
	if p.Button != logic.ButtonNone || state.Setpoint() != 68 {
		t.Errorf("follow-up handle: got %+v setpoint %d, want NONE at 68", p, state.Setpoint())
	}
}

func TestHandleNeverExceedsStepPerCycle(t *testing.T) {
	for _, b := range []logic.Button{logic.ButtonDown, logic.ButtonUp} {
		state := NewState(70)
		a, latch, w := newTestAdjuster(state)
		w.during = func() { latch.Raise(b) }

		for cycle := 0; cycle < 10; cycle++ {
			latch.Raise(b)
			before := state.Setpoint()
			if _, err := a.Handle(context.Background()); err != nil {
				t.Fatalf("%s cycle %d: unexpected error: %v", b, cycle, err)
			}
			diff := int(state.Setpoint() - before)
			if diff != b.Delta(logic.SetpointStep) {
				t.Fatalf("%s cycle %d: setpoint moved by %d", b, cycle, diff)
			}
		}
	}
}

func TestHandleContextCancelledDuringQuiet(t *testing.T) {
	state := NewState(70)
	latch := gpio.NewLatch()
	a := NewAdjuster(state, latch, 0, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	latch.Raise(logic.ButtonUp)
	p, err := a.Handle(ctx)
	if err == nil {
		t.Fatal("expected context error")
	}
	if p.After != 72 || state.Setpoint() != 72 {
		t.Errorf("setpoint should still move before the quiet interval, got %d", state.Setpoint())
	}
}

func TestRunServicesEdges(t *testing.T) {
	state := NewState(70)
	latch := gpio.NewLatch()
	a := NewAdjuster(state, latch, logic.SetpointStep, time.Millisecond, nil)

	presses := make(chan Press, 4)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Run(ctx, func(p Press) { presses <- p })
	}()

	for _, b := range []logic.Button{logic.ButtonUp, logic.ButtonUp, logic.ButtonDown} {
		latch.Raise(b)
		select {
		case p := <-presses:
			if p.Button != b {
				t.Errorf("press: got %s, want %s", p.Button, b)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %s press", b)
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned error: %v", err)
	}
	if state.Setpoint() != 72 {
		t.Errorf("setpoint: got %d, want 72", state.Setpoint())
	}
}

func TestRunStopsDuringQuietInterval(t *testing.T) {
	state := NewState(70)
	latch := gpio.NewLatch()
	a := NewAdjuster(state, latch, logic.SetpointStep, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	pressed := make(chan struct{})
	go func() {
		done <- a.Run(ctx, func(Press) { close(pressed) })
	}()

	latch.Raise(logic.ButtonDown)
	deadline := time.After(2 * time.Second)
	for state.Setpoint() != 68 {
		select {
		case <-deadline:
			t.Fatal("timed out waiting for setpoint change")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}

	select {
	case <-pressed:
		t.Error("an interrupted press should not be reported")
	default:
	}
}

func TestSamplerAndAdjusterConcurrently(t *testing.T) {
	r := newRig(t, logic.DefaultLaw(), 70)
	latch := gpio.NewLatch()
	a := NewAdjuster(r.state, latch, logic.SetpointStep, 0, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	presses := make(chan Press)
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Run(ctx, func(p Press) { presses <- p })
	}()

	seen := make(chan logic.Temperature, 100)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			c, err := r.sampler.Tick(ctx)
			if err != nil {
				t.Errorf("tick %d: %v", i, err)
				return
			}
			seen <- c.Setpoint
		}
	}()

	for i := 0; i < 5; i++ {
		latch.Raise(logic.ButtonUp)
		<-presses
	}
	cancel()
	wg.Wait()
	close(seen)

	if r.state.Setpoint() != 80 {
		t.Errorf("setpoint: got %d, want 80", r.state.Setpoint())
	}
	for sp := range seen {
		if sp < 70 || sp > 80 || sp%2 != 0 {
			t.Errorf("sampler observed a setpoint off the step grid: %d", sp)
		}
	}
}
