package serial

import (
	"bytes"
	"sync"
)

// Fake records transmitted bytes for test assertions.
type Fake struct {
	mu  sync.Mutex
	buf bytes.Buffer

	// TransmitError, if set, will be returned by Transmit.
	TransmitError error

	// FailAfter, if positive, makes Transmit fail once that many bytes were sent.
	FailAfter int
}

var _ Transmitter = (*Fake)(nil)

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{}
}

// Transmit records one byte.
func (f *Fake) Transmit(b byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.TransmitError != nil && (f.FailAfter <= 0 || f.buf.Len() >= f.FailAfter) {
		return f.TransmitError
	}
	f.buf.WriteByte(b)
	return nil
}

// String returns everything transmitted so far.
func (f *Fake) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.String()
}

// Reset discards recorded bytes.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buf.Reset()
}
