package serial

import (
	"fmt"
	"log"

	bugserial "go.bug.st/serial"
)

// Port transmits over a serial device.
type Port struct {
	name string
	conn bugserial.Port
	one  [1]byte
}

var _ Transmitter = (*Port)(nil)

// Open opens name at baud, 8N1.
func Open(name string, baud int) (*Port, error) {
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &bugserial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugserial.NoParity,
		StopBits: bugserial.OneStopBit,
	}
	conn, err := bugserial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", name, err)
	}
	return &Port{name: name, conn: conn}, nil
}

// Transmit writes one byte and waits for the driver to drain it.
func (p *Port) Transmit(b byte) error {
	p.one[0] = b
	if _, err := p.conn.Write(p.one[:]); err != nil {
		return fmt.Errorf("write %s: %w", p.name, err)
	}
	if err := p.conn.Drain(); err != nil {
		return fmt.Errorf("drain %s: %w", p.name, err)
	}
	return nil
}

// Close closes the device.
func (p *Port) Close() error {
	if err := p.conn.Close(); err != nil {
		log.Printf("serial: error closing %s: %v", p.name, err)
		return err
	}
	return nil
}

// Ports lists the serial devices present on the system.
func Ports() ([]string, error) {
	ports, err := bugserial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}
