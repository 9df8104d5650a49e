// Package controller runs the two activities of the thermostat: the periodic
// sampler and the button-driven setpoint adjuster. They share only a State.
package controller

import (
	"sync/atomic"

	"github.com/sweeney/thermostat/internal/logic"
)

// DefaultSetpoint is the setpoint at process start.
const DefaultSetpoint logic.Temperature = 70

// State holds the two values shared between the sampler and the adjuster.
// Every access is a single atomic load, store or add, so a reader sees either
// the value before or after a concurrent update.
type State struct {
	current  atomic.Int64
	setpoint atomic.Int64
}

// NewState returns a State with the given initial setpoint and a zero reading.
func NewState(setpoint logic.Temperature) *State {
	s := &State{}
	s.setpoint.Store(int64(setpoint))
	return s
}

// Current returns the latest converted reading.
func (s *State) Current() logic.Temperature {
	return logic.Temperature(s.current.Load())
}

// SetCurrent stores a new reading. Only the sampler calls it.
func (s *State) SetCurrent(t logic.Temperature) {
	s.current.Store(int64(t))
}

// Setpoint returns the desired temperature.
func (s *State) Setpoint() logic.Temperature {
	return logic.Temperature(s.setpoint.Load())
}

// AdjustSetpoint adds delta and returns the new setpoint. Only the adjuster calls it.
func (s *State) AdjustSetpoint(delta int) logic.Temperature {
	return logic.Temperature(s.setpoint.Add(int64(delta)))
}
