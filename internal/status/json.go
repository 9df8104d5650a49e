package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/thermostat/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Current       *int        `json:"current"`
	Setpoint      int         `json:"setpoint"`
	Branch        string      `json:"branch"`
	Duty          DutyJSON    `json:"duty"`
	Indicators    *LEDJSON    `json:"indicators,omitempty"`
	Cycles        int         `json:"cycles"`
	Faults        int         `json:"faults"`
	LastError     string      `json:"last_error,omitempty"`
	Presses       PressesJSON `json:"presses"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Config        ConfigJSON  `json:"config"`
}

// DutyJSON is the JSON representation of commanded duties, in PWM ticks.
type DutyJSON struct {
	Cooling *int `json:"cooling,omitempty"`
	Heating *int `json:"heating,omitempty"`
	Exhaust *int `json:"exhaust,omitempty"`
}

// LEDJSON is the JSON representation of the indicators as last written.
type LEDJSON struct {
	Cooling bool `json:"cooling"`
	Heating bool `json:"heating"`
}

// PressesJSON is the JSON representation of press counts.
type PressesJSON struct {
	Down int `json:"down"`
	Up   int `json:"up"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PeriodMs    int64  `json:"period_ms"`
	DebounceMs  int64  `json:"debounce_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Exhaust     string `json:"exhaust_predicate"`
	Clamp       bool   `json:"clamp"`
	SerialPort  string `json:"serial_port"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Setpoint:      int(snap.Setpoint),
		Branch:        "UNKNOWN",
		Cycles:        snap.Cycles,
		Faults:        snap.Faults,
		LastError:     snap.LastError,
		Presses:       PressesJSON{Down: snap.Presses.Down, Up: snap.Presses.Up},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Config: ConfigJSON{
			PeriodMs:    snap.Config.PeriodMs,
			DebounceMs:  snap.Config.DebounceMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Exhaust:     snap.Config.Exhaust,
			Clamp:       snap.Config.Clamp,
			SerialPort:  snap.Config.SerialPort,
		},
	}
	if snap.LEDsSet {
		inner.Indicators = &LEDJSON{Cooling: snap.LEDs.Cooling, Heating: snap.LEDs.Heating}
	}
	if !snap.Sampled {
		return inner
	}

	cur := int(snap.Current)
	inner.Current = &cur
	inner.Branch = string(snap.Outputs.Branch)
	for _, ch := range logic.Channels {
		if !snap.Outputs.Drives(ch) {
			continue
		}
		d := snap.Outputs.Duty(ch)
		switch ch {
		case logic.ChannelCooling:
			inner.Duty.Cooling = &d
		case logic.ChannelHeating:
			inner.Duty.Heating = &d
		case logic.ChannelExhaust:
			inner.Duty.Exhaust = &d
		}
	}
	return inner
}

// FormatJSON returns the indented JSON status (used by -print-state).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the compact JSON status tagged with an event name
// (STARTUP, HEARTBEAT, SHUTDOWN) for the log.
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
