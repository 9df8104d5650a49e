// Package adc provides the analog front end that digitises the temperature probe.
// The real implementation reads a Linux IIO channel through sysfs.
// The fake implementation allows testing without hardware.
package adc

// FrontEnd is a single-channel converter with a software trigger and a
// conversion-complete flag.
type FrontEnd interface {
	// StartConversion triggers one conversion.
	StartConversion() error

	// Ready reports whether the last conversion has completed.
	Ready() bool

	// ReadRaw returns the last conversion result.
	ReadRaw() uint16

	// ClearReady drops the completion flag.
	ClearReady()
}
