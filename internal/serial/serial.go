// Package serial provides the byte-at-a-time transmit side of the status link.
package serial

// Transmitter sends one byte, blocking until the link accepts it.
type Transmitter interface {
	Transmit(b byte) error
}

// Default line settings: 9600 baud, 8 data bits, no parity, one stop bit.
const (
	DefaultBaudRate = 9600
	DefaultPort     = "/dev/ttyS0"
)
