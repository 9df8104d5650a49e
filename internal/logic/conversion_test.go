package logic

import "testing"

func TestConversion(t *testing.T) {
	c := DefaultConversion()
	tests := []struct {
		raw  uint16
		want Temperature
	}{
		{0, 27},
		{311, 72},
		{2048, 324},
		{4095, 620},
	}
	for _, tt := range tests {
		if got := c.Temperature(tt.raw); got != tt.want {
			t.Errorf("raw %d: got %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestConversionTruncatesBeforeOffset(t *testing.T) {
	// 7*594/4096 = 1.015 -> 1
	if got := DefaultConversion().Temperature(7); got != 28 {
		t.Errorf("got %d, want 28", got)
	}
}

func TestConversionZeroMaxCode(t *testing.T) {
	c := Conversion{Scale: 594, Offset: 27}
	if got := c.Temperature(1000); got != 27 {
		t.Errorf("got %d, want offset 27", got)
	}
}

func TestButtonDelta(t *testing.T) {
	if d := ButtonDown.Delta(SetpointStep); d != -2 {
		t.Errorf("down delta: got %d, want -2", d)
	}
	if d := ButtonUp.Delta(SetpointStep); d != 2 {
		t.Errorf("up delta: got %d, want 2", d)
	}
	if d := ButtonNone.Delta(SetpointStep); d != 0 {
		t.Errorf("none delta: got %d, want 0", d)
	}
}

func TestConversionRawRoundTrip(t *testing.T) {
	c := DefaultConversion()
	for temp := Temperature(27); temp <= 600; temp++ {
		raw := c.Raw(temp)
		if got := c.Temperature(raw); got != temp {
			t.Fatalf("temp %d: raw %d converts back to %d", temp, raw, got)
		}
	}
	if raw := c.Raw(10); raw != 0 {
		t.Errorf("below offset: got raw %d, want 0", raw)
	}
}
