package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/sweeney/thermostat/internal/gpio"
	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/pwm"
	"github.com/sweeney/thermostat/internal/report"
)

// Cycle records what one sampling period observed and commanded.
type Cycle struct {
	Current  logic.Temperature
	Setpoint logic.Temperature
	Outputs  logic.Outputs
}

// Sampler is the periodic activity: sample, compute, actuate, report.
type Sampler struct {
	state    *State
	sensor   *SensorReader
	law      logic.Law
	bank     pwm.Bank
	leds     gpio.Indicators
	reporter *report.Reporter
}

// NewSampler wires the periodic activity to its collaborators.
func NewSampler(state *State, sensor *SensorReader, law logic.Law, bank pwm.Bank, leds gpio.Indicators, reporter *report.Reporter) *Sampler {
	return &Sampler{
		state:    state,
		sensor:   sensor,
		law:      law,
		bank:     bank,
		leds:     leds,
		reporter: reporter,
	}
}

// Law returns the control law the sampler evaluates.
func (s *Sampler) Law() logic.Law {
	return s.law
}

// Tick runs one sampling period. The setpoint is loaded once, so a
// concurrent button press takes effect in this period or the next.
// A failed conversion aborts the period before anything is actuated; output
// and report errors are collected and returned after the whole period ran.
func (s *Sampler) Tick(ctx context.Context) (Cycle, error) {
	current, err := s.sensor.Sample(ctx)
	if err != nil {
		return Cycle{}, fmt.Errorf("sample: %w", err)
	}
	s.state.SetCurrent(current)
	setpoint := s.state.Setpoint()

	out := s.law.Compute(current, setpoint)
	c := Cycle{Current: current, Setpoint: setpoint, Outputs: out}

	var errs []error
	for _, ch := range logic.Channels {
		if !out.Drives(ch) {
			continue
		}
		if err := s.bank.SetDuty(ch, out.Duty(ch)); err != nil {
			errs = append(errs, fmt.Errorf("apply %s duty: %w", ch, err))
		}
	}

	if out.SetsIndicators() {
		if err := s.applyIndicators(out); err != nil {
			errs = append(errs, err)
		}
	}

	if err := s.reporter.Report(current, setpoint); err != nil {
		errs = append(errs, fmt.Errorf("report: %w", err))
	}

	return c, errors.Join(errs...)
}

// applyIndicators asserts the active LED before clearing the other one.
func (s *Sampler) applyIndicators(out logic.Outputs) error {
	on, off := logic.IndicatorCooling, logic.IndicatorHeating
	if out.HeatingOn {
		on, off = off, on
	}
	if err := s.leds.Set(on, true); err != nil {
		return fmt.Errorf("set indicator: %w", err)
	}
	if err := s.leds.Set(off, false); err != nil {
		return fmt.Errorf("clear indicator: %w", err)
	}
	return nil
}
