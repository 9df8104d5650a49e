// Package gpio provides the indicator LEDs and setpoint buttons with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "github.com/sweeney/thermostat/internal/logic"

// Indicators drives the two status LEDs.
type Indicators interface {
	// Set switches one indicator on or off.
	Set(ind logic.Indicator, on bool) error

	// Close turns the LEDs off and releases GPIO resources.
	Close() error
}

// EdgeInputs exposes latched falling edges on the two button lines.
// An edge sets the line's pending flag and posts a notification on Edges.
type EdgeInputs interface {
	// Pending reports whether an edge is latched for the button.
	Pending(b logic.Button) bool

	// Clear drops the pending flag for one button.
	Clear(b logic.Button)

	// ClearAll drops every pending flag.
	ClearAll()

	// Edges delivers a notification after one or more edges were latched.
	Edges() <-chan struct{}

	// Close releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering)
const (
	DefaultPinDown    = 20 // setpoint down button
	DefaultPinUp      = 21 // setpoint up button
	DefaultPinCoolLED = 5  // cooling indicator (blue)
	DefaultPinHeatLED = 6  // heating indicator (red)
)
