package gpio

import "github.com/sweeney/thermostat/internal/logic"

// FakeIndicators is a test double that records indicator writes.
type FakeIndicators struct {
	// On holds the current state of each indicator.
	On map[logic.Indicator]bool

	// Writes counts Set calls.
	Writes int

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, will be returned by Set()
	SetError error
}

var _ Indicators = (*FakeIndicators)(nil)

// NewFakeIndicators creates a FakeIndicators with both LEDs off.
func NewFakeIndicators() *FakeIndicators {
	return &FakeIndicators{On: make(map[logic.Indicator]bool, 2)}
}

// Set records the indicator state.
func (f *FakeIndicators) Set(ind logic.Indicator, on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On[ind] = on
	f.Writes++
	return nil
}

// Close marks the indicators as closed.
func (f *FakeIndicators) Close() error {
	f.Closed = true
	return nil
}
