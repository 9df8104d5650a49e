package pwm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/mathx"
)

// ChipPath returns the sysfs directory of a PWM chip.
func ChipPath(chip int) string {
	return fmt.Sprintf("/sys/class/pwm/pwmchip%d", chip)
}

// Sysfs drives PWM channels through /sys/class/pwm.
// Tick values are converted to nanoseconds with the configured clock.
// The kernel rejects a duty longer than the period, so duties saturate to
// [0, period] at this layer.
type Sysfs struct {
	chipDir  string
	index    map[logic.Channel]int
	clockHz  uint64
	period   map[logic.Channel]int
	exported []logic.Channel
}

var _ Bank = (*Sysfs)(nil)

// NewSysfs maps each logical channel to a hardware PWM index on the chip.
func NewSysfs(chipDir string, index map[logic.Channel]int, clockHz uint64) *Sysfs {
	if clockHz == 0 {
		clockHz = DefaultClockHz
	}
	return &Sysfs{
		chipDir: chipDir,
		index:   index,
		clockHz: clockHz,
		period:  make(map[logic.Channel]int, len(index)),
	}
}

func (s *Sysfs) channelDir(ch logic.Channel) (string, error) {
	n, ok := s.index[ch]
	if !ok {
		return "", fmt.Errorf("pwm: no hardware channel for %s", ch)
	}
	return filepath.Join(s.chipDir, fmt.Sprintf("pwm%d", n)), nil
}

// Export makes every mapped channel available. Channels already exported are
// left as they are. On failure the channels this call exported are unexported
// again.
func (s *Sysfs) Export() error {
	for _, ch := range logic.Channels {
		if err := s.export(ch); err != nil {
			return errors.Join(err, s.unexport())
		}
	}
	return nil
}

func (s *Sysfs) export(ch logic.Channel) error {
	dir, err := s.channelDir(ch)
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := writeAttr(filepath.Join(s.chipDir, "export"), strconv.Itoa(s.index[ch])); err != nil {
		return fmt.Errorf("export %s: %w", ch, err)
	}
	s.exported = append(s.exported, ch)
	return nil
}

// unexport releases the channels Export created.
func (s *Sysfs) unexport() error {
	var errs []error
	for _, ch := range s.exported {
		if err := writeAttr(filepath.Join(s.chipDir, "unexport"), strconv.Itoa(s.index[ch])); err != nil {
			errs = append(errs, fmt.Errorf("unexport %s: %w", ch, err))
		}
	}
	s.exported = nil
	return errors.Join(errs...)
}

// Enable switches the output of every mapped channel on.
func (s *Sysfs) Enable() error {
	return s.setEnable("1")
}

func (s *Sysfs) setEnable(v string) error {
	var errs []error
	for _, ch := range logic.Channels {
		dir, err := s.channelDir(ch)
		if err != nil {
			return err
		}
		if err := writeAttr(filepath.Join(dir, "enable"), v); err != nil {
			errs = append(errs, fmt.Errorf("enable=%s %s: %w", v, ch, err))
		}
	}
	return errors.Join(errs...)
}

// SetPeriod writes the period in nanoseconds.
func (s *Sysfs) SetPeriod(ch logic.Channel, ticks int) error {
	dir, err := s.channelDir(ch)
	if err != nil {
		return err
	}
	if ticks < 0 {
		ticks = 0
	}
	if err := writeAttr(filepath.Join(dir, "period"), strconv.FormatUint(s.nanos(ticks), 10)); err != nil {
		return fmt.Errorf("set %s period: %w", ch, err)
	}
	s.period[ch] = ticks
	return nil
}

// SetDuty writes the duty cycle in nanoseconds, saturated to the period.
func (s *Sysfs) SetDuty(ch logic.Channel, ticks int) error {
	dir, err := s.channelDir(ch)
	if err != nil {
		return err
	}
	if p, ok := s.period[ch]; ok {
		ticks = mathx.Clamp(ticks, 0, p)
	} else if ticks < 0 {
		ticks = 0
	}
	if err := writeAttr(filepath.Join(dir, "duty_cycle"), strconv.FormatUint(s.nanos(ticks), 10)); err != nil {
		return fmt.Errorf("set %s duty: %w", ch, err)
	}
	return nil
}

// Close disables every channel and unexports the ones Export created.
func (s *Sysfs) Close() error {
	return errors.Join(s.setEnable("0"), s.unexport())
}

func (s *Sysfs) nanos(ticks int) uint64 {
	return uint64(ticks) * 1_000_000_000 / s.clockHz
}

func writeAttr(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(value); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
