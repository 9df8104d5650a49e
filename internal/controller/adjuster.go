package controller

import (
	"context"
	"time"

	"github.com/sweeney/thermostat/internal/gpio"
	"github.com/sweeney/thermostat/internal/logic"
)

// DefaultDebounce is the quiet interval after an accepted press.
const DefaultDebounce = 250 * time.Millisecond

// Press describes the outcome of one Handle call.
type Press struct {
	Button logic.Button // ButtonNone when no line was pending
	Before logic.Temperature
	After  logic.Temperature
}

// Adjuster is the button activity: Armed, Triggered, Debouncing, Armed again.
type Adjuster struct {
	state  *State
	inputs gpio.EdgeInputs
	step   int
	quiet  time.Duration
	wait   WaitFunc
}

// NewAdjuster returns an adjuster that moves the setpoint by step per press
// and stays deaf for quiet afterwards. A nil wait uses Sleep.
func NewAdjuster(state *State, inputs gpio.EdgeInputs, step int, quiet time.Duration, wait WaitFunc) *Adjuster {
	if step == 0 {
		step = logic.SetpointStep
	}
	if wait == nil {
		wait = Sleep
	}
	return &Adjuster{
		state:  state,
		inputs: inputs,
		step:   step,
		quiet:  quiet,
		wait:   wait,
	}
}

// Handle services one edge notification. The down line wins when both are
// pending. An accepted press clears both pending flags, adjusts the setpoint,
// waits out the quiet interval and then discards any edges latched while
// waiting, so a bouncing contact counts once. With nothing pending, all flags
// are cleared and the setpoint is left alone.
func (a *Adjuster) Handle(ctx context.Context) (Press, error) {
	var b logic.Button
	switch {
	case a.inputs.Pending(logic.ButtonDown):
		b = logic.ButtonDown
	case a.inputs.Pending(logic.ButtonUp):
		b = logic.ButtonUp
	default:
		a.inputs.ClearAll()
		s := a.state.Setpoint()
		return Press{Button: logic.ButtonNone, Before: s, After: s}, nil
	}

	delta := b.Delta(a.step)
	after := a.state.AdjustSetpoint(delta)
	p := Press{
		Button: b,
		Before: after - logic.Temperature(delta),
		After:  after,
	}

	a.inputs.Clear(logic.ButtonDown)
	a.inputs.Clear(logic.ButtonUp)

	err := a.wait(ctx, a.quiet)
	a.inputs.ClearAll()
	return p, err
}

// Run services edge notifications until ctx is done. onPress, if non-nil, is
// called for every accepted press.
func (a *Adjuster) Run(ctx context.Context, onPress func(Press)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.inputs.Edges():
			p, err := a.Handle(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			// Edges latched during the quiet interval leave a
			// notification with nothing pending behind.
			if p.Button != logic.ButtonNone && onPress != nil {
				onPress(p)
			}
		}
	}
}
