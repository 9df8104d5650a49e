// Package pwm provides the three-channel actuator bank (cooling, heating, exhaust fans).
// The real implementation uses the Linux PWM sysfs interface.
// The fake implementation allows testing without hardware.
package pwm

import (
	"fmt"

	"github.com/sweeney/thermostat/internal/logic"
)

// Bank sets duty cycle and period per channel, both in PWM clock ticks.
type Bank interface {
	// SetDuty sets the active time of one period.
	SetDuty(ch logic.Channel, ticks int) error

	// SetPeriod sets the period length.
	SetPeriod(ch logic.Channel, ticks int) error
}

// DefaultPeriodTicks is one period at 1 kHz from a 16 MHz PWM clock.
const DefaultPeriodTicks = 16000

// DefaultClockHz is the PWM clock the tick values are expressed in.
const DefaultClockHz = 16_000_000

// InitialDuty returns the compare values written at start-up, before the
// first control cycle.
func InitialDuty() map[logic.Channel]int {
	return map[logic.Channel]int{
		logic.ChannelCooling: 10000,
		logic.ChannelHeating: 1000,
		logic.ChannelExhaust: 8000,
	}
}

// Init programs the period of every channel, then the initial duties.
func Init(b Bank, periodTicks int, initial map[logic.Channel]int) error {
	for _, ch := range logic.Channels {
		if err := b.SetPeriod(ch, periodTicks); err != nil {
			return fmt.Errorf("set %s period: %w", ch, err)
		}
		if err := b.SetDuty(ch, initial[ch]); err != nil {
			return fmt.Errorf("set %s initial duty: %w", ch, err)
		}
	}
	return nil
}
