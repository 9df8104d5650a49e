package logic

// Conversion maps a raw ADC code to a temperature with the linear transfer
// raw*Scale/MaxCode + Offset, evaluated in integer arithmetic in that order.
type Conversion struct {
	Scale   int
	MaxCode int
	Offset  int
}

// DefaultConversion is the reference board calibration: a 12-bit converter
// spanning 27F to 620F.
func DefaultConversion() Conversion {
	return Conversion{
		Scale:   594,
		MaxCode: 4096,
		Offset:  27,
	}
}

// Temperature converts a raw conversion result.
func (c Conversion) Temperature(raw uint16) Temperature {
	if c.MaxCode == 0 {
		return Temperature(c.Offset)
	}
	return Temperature(int(raw)*c.Scale/c.MaxCode + c.Offset)
}

// Raw returns the smallest raw code that converts to t. Readings below the
// offset map to 0. Used to script fake converters.
func (c Conversion) Raw(t Temperature) uint16 {
	if c.Scale <= 0 || int(t) <= c.Offset {
		return 0
	}
	r := ((int(t)-c.Offset)*c.MaxCode + c.Scale - 1) / c.Scale
	if r > 0xFFFF {
		r = 0xFFFF
	}
	return uint16(r)
}
