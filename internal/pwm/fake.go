package pwm

import (
	"sync"

	"github.com/sweeney/thermostat/internal/logic"
)

// Write is one recorded duty write.
type Write struct {
	Channel logic.Channel
	Ticks   int
}

// FakeBank records duty and period writes for test assertions.
type FakeBank struct {
	mu sync.Mutex

	// Duty holds the last duty written per channel.
	Duty map[logic.Channel]int

	// Period holds the last period written per channel.
	Period map[logic.Channel]int

	// Writes lists every duty write in order.
	Writes []Write

	// DutyError, if set, will be returned by SetDuty.
	DutyError error
}

var _ Bank = (*FakeBank)(nil)

// NewFakeBank creates an empty FakeBank.
func NewFakeBank() *FakeBank {
	return &FakeBank{
		Duty:   make(map[logic.Channel]int, 3),
		Period: make(map[logic.Channel]int, 3),
	}
}

// SetDuty records the duty.
func (f *FakeBank) SetDuty(ch logic.Channel, ticks int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DutyError != nil {
		return f.DutyError
	}
	f.Duty[ch] = ticks
	f.Writes = append(f.Writes, Write{Channel: ch, Ticks: ticks})
	return nil
}

// SetPeriod records the period.
func (f *FakeBank) SetPeriod(ch logic.Channel, ticks int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Period[ch] = ticks
	return nil
}

// Reset clears recorded writes.
func (f *FakeBank) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = nil
	f.DutyError = nil
}
