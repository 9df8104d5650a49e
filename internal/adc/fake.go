package adc

import (
	"errors"
	"sync"
)

// Fake is a test double that returns scripted conversion results.
type Fake struct {
	mu sync.Mutex

	// Samples contains scripted raw codes.
	// Each StartConversion consumes the next one; the last repeats.
	Samples []uint16
	index   int

	// NotReadyPolls is how many Ready calls report false after each start.
	NotReadyPolls int

	// Stuck makes Ready report false forever.
	Stuck bool

	// StartError, if set, will be returned by StartConversion()
	StartError error

	// Starts and Clears count calls for assertions.
	Starts int
	Clears int

	raw     uint16
	started bool
	polls   int
}

var _ FrontEnd = (*Fake)(nil)

// NewFake creates a Fake with the given samples.
func NewFake(samples ...uint16) *Fake {
	return &Fake{Samples: samples}
}

// StartConversion latches the next scripted sample.
func (f *Fake) StartConversion() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.StartError != nil {
		return f.StartError
	}
	if len(f.Samples) == 0 {
		return errors.New("no samples configured")
	}

	f.raw = f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	f.started = true
	f.polls = 0
	f.Starts++
	return nil
}

// Ready reports completion after NotReadyPolls calls.
func (f *Fake) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.started || f.Stuck {
		return false
	}
	if f.polls < f.NotReadyPolls {
		f.polls++
		return false
	}
	return true
}

// ReadRaw returns the latched sample.
func (f *Fake) ReadRaw() uint16 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

// ClearReady drops the completion flag.
func (f *Fake) ClearReady() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started = false
	f.Clears++
}

// Set replaces the script with a single repeating sample.
func (f *Fake) Set(raw uint16) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Samples = []uint16{raw}
	f.index = 0
}
