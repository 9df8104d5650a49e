// Package status provides a thread-safe status tracker for the thermostat daemon.
// It is written by the control loop and the button activity, and read for the
// heartbeat log line and the -print-state output.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/thermostat/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PeriodMs    int64
	DebounceMs  int64
	HeartbeatMs int64
	Exhaust     string
	Clamp       bool
	SerialPort  string
}

// LEDs is the last indicator state written to the hardware.
type LEDs struct {
	Cooling bool
	Heating bool
}

// PressCounts tracks accepted button presses since startup.
type PressCounts struct {
	Down int
	Up   int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Current   logic.Temperature
	Setpoint  logic.Temperature
	Outputs   logic.Outputs
	Sampled   bool
	LEDs      LEDs
	LEDsSet   bool // false until a cycle has written the indicators
	Cycles    int
	Faults    int
	LastError string
	Presses   PressCounts
	StartTime time.Time
	Now       time.Time
	Config    Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time, config and setpoint.
func NewTracker(startTime time.Time, setpoint logic.Temperature, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Setpoint:  setpoint,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// RecordCycle stores the outcome of one sampling period.
// Called from runLoop on every tick. Branches that leave the indicators alone
// keep the previously recorded LED state.
func (t *Tracker) RecordCycle(current, setpoint logic.Temperature, out logic.Outputs) {
	t.mu.Lock()
	t.snap.Current = current
	t.snap.Setpoint = setpoint
	t.snap.Outputs = out
	t.snap.Sampled = true
	if out.SetsIndicators() {
		t.snap.LEDs = LEDs{Cooling: out.CoolingOn, Heating: out.HeatingOn}
		t.snap.LEDsSet = true
	}
	t.snap.Cycles++
	t.mu.Unlock()
}

// RecordPress counts an accepted press and stores the resulting setpoint.
func (t *Tracker) RecordPress(b logic.Button, setpoint logic.Temperature) {
	t.mu.Lock()
	switch b {
	case logic.ButtonDown:
		t.snap.Presses.Down++
	case logic.ButtonUp:
		t.snap.Presses.Up++
	}
	t.snap.Setpoint = setpoint
	t.mu.Unlock()
}

// RecordFault counts a failed period and keeps its message.
func (t *Tracker) RecordFault(err error) {
	t.mu.Lock()
	t.snap.Faults++
	t.snap.LastError = err.Error()
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
