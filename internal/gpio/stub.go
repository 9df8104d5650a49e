//go:build !linux

package gpio

import (
	"errors"
	"time"

	"github.com/sweeney/thermostat/internal/logic"
)

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealIndicators is not available on non-Linux platforms.
type RealIndicators struct{}

// NewRealIndicators returns an error on non-Linux platforms.
func NewRealIndicators(chipName string, pinCool, pinHeat int) (*RealIndicators, error) {
	return nil, errUnsupported
}

// Set is not implemented on non-Linux platforms.
func (r *RealIndicators) Set(ind logic.Indicator, on bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealIndicators) Close() error {
	return nil
}

// RealEdgeInputs is not available on non-Linux platforms.
type RealEdgeInputs struct {
	*Latch
}

// NewRealEdgeInputs returns an error on non-Linux platforms.
func NewRealEdgeInputs(chipName string, pinDown, pinUp int, glitch time.Duration) (*RealEdgeInputs, error) {
	return nil, errUnsupported
}
