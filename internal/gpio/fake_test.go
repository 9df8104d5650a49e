package gpio

import (
	"errors"
	"testing"

	"github.com/sweeney/thermostat/internal/logic"
)

func TestFakeIndicatorsSet(t *testing.T) {
	f := NewFakeIndicators()

	if err := f.Set(logic.IndicatorCooling, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Set(logic.IndicatorHeating, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.On[logic.IndicatorCooling] {
		t.Error("expected cooling LED on")
	}
	if f.On[logic.IndicatorHeating] {
		t.Error("expected heating LED off")
	}
	if f.Writes != 2 {
		t.Errorf("Writes: got %d, want 2", f.Writes)
	}
}

func TestFakeIndicatorsError(t *testing.T) {
	f := NewFakeIndicators()
	f.SetError = errors.New("simulated error")

	err := f.Set(logic.IndicatorCooling, true)
	if err == nil {
		t.Fatal("expected error to be returned")
	}
	if f.On[logic.IndicatorCooling] {
		t.Error("state should not change on error")
	}
}

func TestFakeIndicatorsClose(t *testing.T) {
	f := NewFakeIndicators()

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}
