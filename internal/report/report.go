// Package report formats the status line and sends it over the serial link.
package report

import (
	"fmt"
	"strconv"

	"github.com/sweeney/thermostat/internal/logic"
	"github.com/sweeney/thermostat/internal/serial"
)

// lineSize covers the fixed text plus two 11-digit integers.
const lineSize = 96

// Reporter emits one status line per call. It owns a fixed buffer and is not
// safe for concurrent use.
type Reporter struct {
	tx  serial.Transmitter
	buf [lineSize]byte
}

// New returns a Reporter that transmits through tx.
func New(tx serial.Transmitter) *Reporter {
	return &Reporter{tx: tx}
}

// Format appends the status line for current and setpoint to dst.
func Format(dst []byte, current, setpoint logic.Temperature) []byte {
	dst = append(dst, "\r\nCurrent Temperature = "...)
	dst = strconv.AppendInt(dst, int64(current), 10)
	dst = append(dst, "F, Desired Temperature = "...)
	dst = strconv.AppendInt(dst, int64(setpoint), 10)
	dst = append(dst, "F\n"...)
	return dst
}

// Report transmits the status line byte by byte. It stops at the first
// transmit error.
func (r *Reporter) Report(current, setpoint logic.Temperature) error {
	line := Format(r.buf[:0], current, setpoint)
	for i, b := range line {
		if err := r.tx.Transmit(b); err != nil {
			return fmt.Errorf("transmit byte %d of status line: %w", i, err)
		}
	}
	return nil
}
