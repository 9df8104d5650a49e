package controller

import (
	"context"
	"fmt"

	"github.com/sweeney/thermostat/internal/adc"
	"github.com/sweeney/thermostat/internal/logic"
)

// SensorReader performs one conversion and converts the result.
type SensorReader struct {
	fe   adc.FrontEnd
	conv logic.Conversion
}

// NewSensorReader returns a reader for fe using conv.
func NewSensorReader(fe adc.FrontEnd, conv logic.Conversion) *SensorReader {
	return &SensorReader{fe: fe, conv: conv}
}

// Sample triggers a conversion, waits for completion, clears the completion
// flag and returns the converted temperature. The wait has no timeout of its
// own; it returns early only when ctx is done.
func (r *SensorReader) Sample(ctx context.Context) (logic.Temperature, error) {
	if err := r.fe.StartConversion(); err != nil {
		return 0, fmt.Errorf("start conversion: %w", err)
	}
	if err := pollUntil(ctx, r.fe.Ready); err != nil {
		return 0, fmt.Errorf("wait for conversion: %w", err)
	}
	raw := r.fe.ReadRaw()
	r.fe.ClearReady()
	return r.conv.Temperature(raw), nil
}
