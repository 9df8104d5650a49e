//go:build linux

package gpio

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/sweeney/thermostat/internal/logic"
)

const consumer = "thermostat"

// RealIndicators drives the LEDs through the Linux GPIO character device.
type RealIndicators struct {
	chip *gpiocdev.Chip
	cool *gpiocdev.Line
	heat *gpiocdev.Line
}

// NewRealIndicators requests both LED lines as outputs, initially off.
func NewRealIndicators(chipName string, pinCool, pinHeat int) (*RealIndicators, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	cool, err := chip.RequestLine(pinCool, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request cooling LED pin %d: %w", pinCool, err)
	}

	heat, err := chip.RequestLine(pinHeat, gpiocdev.AsOutput(0))
	if err != nil {
		cool.Close()
		chip.Close()
		return nil, fmt.Errorf("request heating LED pin %d: %w", pinHeat, err)
	}

	return &RealIndicators{chip: chip, cool: cool, heat: heat}, nil
}

// Set drives one LED.
func (r *RealIndicators) Set(ind logic.Indicator, on bool) error {
	line := r.cool
	if ind == logic.IndicatorHeating {
		line = r.heat
	}
	v := 0
	if on {
		v = 1
	}
	if err := line.SetValue(v); err != nil {
		return fmt.Errorf("set %s LED: %w", ind, err)
	}
	return nil
}

// Close turns both LEDs off and releases the lines.
func (r *RealIndicators) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{r.cool, r.heat} {
		if l == nil {
			continue
		}
		if err := l.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED %d: %w", l.Offset(), err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED %d: %w", l.Offset(), err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealEdgeInputs latches falling edges from the two buttons.
// Buttons pull the line low when pressed, so lines use pull-ups.
type RealEdgeInputs struct {
	*Latch
	chip *gpiocdev.Chip
	down *gpiocdev.Line
	up   *gpiocdev.Line
}

// NewRealEdgeInputs requests both button lines with falling-edge detection.
// glitch, when non-zero, enables the kernel's hardware debounce filter; it is
// independent of the setpoint debounce interval.
func NewRealEdgeInputs(chipName string, pinDown, pinUp int, glitch time.Duration) (*RealEdgeInputs, error) {
	chip, err := gpiocdev.NewChip(chipName, gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	r := &RealEdgeInputs{Latch: NewLatch(), chip: chip}

	handler := func(evt gpiocdev.LineEvent) {
		if evt.Type != gpiocdev.LineEventFallingEdge {
			return
		}
		switch evt.Offset {
		case pinDown:
			r.Raise(logic.ButtonDown)
		case pinUp:
			r.Raise(logic.ButtonUp)
		}
	}

	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(handler),
	}
	if glitch > 0 {
		opts = append(opts, gpiocdev.WithDebounce(glitch))
	}

	r.down, err = chip.RequestLine(pinDown, opts...)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request down button pin %d: %w", pinDown, err)
	}

	r.up, err = chip.RequestLine(pinUp, opts...)
	if err != nil {
		r.down.Close()
		chip.Close()
		return nil, fmt.Errorf("request up button pin %d: %w", pinUp, err)
	}

	return r, nil
}

// Close releases the button lines.
// Reconfigures pins to input with pull-down (matching Pi boot defaults) before
// closing to ensure clean state for system shutdown/reboot.
func (r *RealEdgeInputs) Close() error {
	var errs []error
	for _, l := range []*gpiocdev.Line{r.down, r.up} {
		if l == nil {
			continue
		}
		if err := l.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure button %d: %w", l.Offset(), err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button %d: %w", l.Offset(), err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
