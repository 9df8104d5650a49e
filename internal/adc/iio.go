package adc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IIOPath returns the sysfs directory of an IIO device.
func IIOPath(device int) string {
	return fmt.Sprintf("/sys/bus/iio/devices/iio:device%d", device)
}

// IIO reads one voltage channel of a Linux Industrial I/O device.
// Reading in_voltageN_raw performs a one-shot conversion in the driver, so the
// result is latched at StartConversion and Ready is true until cleared.
// Not safe for concurrent use.
type IIO struct {
	path  string
	raw   uint16
	ready bool
}

var _ FrontEnd = (*IIO)(nil)

// NewIIO returns a front end for channel on the IIO device at dir.
func NewIIO(dir string, channel int) *IIO {
	return &IIO{path: filepath.Join(dir, fmt.Sprintf("in_voltage%d_raw", channel))}
}

// Path returns the sysfs attribute the front end reads.
func (a *IIO) Path() string {
	return a.path
}

// StartConversion reads the raw attribute and latches the result.
func (a *IIO) StartConversion() error {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", a.path, err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 16)
	if err != nil {
		return fmt.Errorf("parse %s: %w", a.path, err)
	}
	a.raw = uint16(v)
	a.ready = true
	return nil
}

// Ready reports whether a result is latched.
func (a *IIO) Ready() bool {
	return a.ready
}

// ReadRaw returns the latched result.
func (a *IIO) ReadRaw() uint16 {
	return a.raw
}

// ClearReady drops the latch.
func (a *IIO) ClearReady() {
	a.ready = false
}
