// Package logic contains the pure control rules of the thermostat.
// This package has NO hardware dependencies (no GPIO, PWM, serial, or time.Sleep).
// Every function is deterministic in its arguments.
package logic

import "fmt"

// Temperature is a reading or setpoint in whole degrees, as printed on the status line.
type Temperature int

// Channel identifies one PWM actuator output.
type Channel int

const (
	ChannelCooling Channel = iota
	ChannelHeating
	ChannelExhaust
)

// Channels lists every actuator channel in apply order.
var Channels = [...]Channel{ChannelCooling, ChannelHeating, ChannelExhaust}

func (c Channel) String() string {
	switch c {
	case ChannelCooling:
		return "cooling"
	case ChannelHeating:
		return "heating"
	case ChannelExhaust:
		return "exhaust"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// Indicator identifies one status LED.
type Indicator int

const (
	IndicatorCooling Indicator = iota
	IndicatorHeating
)

func (i Indicator) String() string {
	if i == IndicatorCooling {
		return "cooling"
	}
	return "heating"
}

// Branch names the control-law branch that produced a set of outputs.
type Branch string

const (
	BranchCool    Branch = "COOL"
	BranchExhaust Branch = "EXHAUST"
	BranchHeat    Branch = "HEAT"
)

// Outputs is the result of one control-law evaluation.
// Duty values are in PWM timer ticks. Channels the branch does not drive keep
// whatever duty the bank already holds.
type Outputs struct {
	Branch    Branch
	Error     float64 // setpoint - current
	Cooling   int
	Heating   int
	Exhaust   int
	CoolingOn bool
	HeatingOn bool
}

// Drives reports whether the branch writes a new duty to ch.
func (o Outputs) Drives(ch Channel) bool {
	switch o.Branch {
	case BranchCool:
		return ch == ChannelCooling || ch == ChannelHeating
	case BranchExhaust:
		return ch == ChannelExhaust
	case BranchHeat:
		return ch == ChannelHeating
	}
	return false
}

// Duty returns the commanded duty for ch.
func (o Outputs) Duty(ch Channel) int {
	switch ch {
	case ChannelCooling:
		return o.Cooling
	case ChannelHeating:
		return o.Heating
	case ChannelExhaust:
		return o.Exhaust
	}
	return 0
}

// SetsIndicators reports whether the indicator flags should be applied.
// The exhaust branch leaves both LEDs as they were.
func (o Outputs) SetsIndicators() bool {
	return o.Branch == BranchCool || o.Branch == BranchHeat
}

// Button identifies one of the two setpoint buttons.
type Button int

const (
	ButtonNone Button = iota
	ButtonDown
	ButtonUp
)

func (b Button) String() string {
	switch b {
	case ButtonDown:
		return "DOWN"
	case ButtonUp:
		return "UP"
	default:
		return "NONE"
	}
}

// SetpointStep is the setpoint change for one accepted button press.
const SetpointStep = 2

// Delta returns the signed setpoint change for a press of b.
func (b Button) Delta(step int) int {
	switch b {
	case ButtonDown:
		return -step
	case ButtonUp:
		return step
	}
	return 0
}
