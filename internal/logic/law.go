package logic

import (
	"fmt"

	"github.com/sweeney/thermostat/internal/mathx"
)

// Control-law constants in PWM ticks and degrees of error.
const (
	// FullScale is the PWM reload value, one full period in timer ticks.
	FullScale = 15999
	// HeatingHoldDuty is the fixed heating duty written while cooling.
	HeatingHoldDuty = 15000

	coolThreshold    = 2.5
	exhaustThreshold = 7.5
	gain             = 0.133
)

// ExhaustPredicate selects the test that guards the exhaust branch.
type ExhaustPredicate string

const (
	// ExhaustLiteral is -7.5 >= error && error >= 7.5, which no error satisfies.
	ExhaustLiteral ExhaustPredicate = "literal"
	// ExhaustTwoSided is error <= -7.5 || error >= 7.5. Because the cooling
	// branch is tested first only error >= 7.5 reaches it.
	ExhaustTwoSided ExhaustPredicate = "two-sided"
)

// ParseExhaustPredicate parses a predicate name. Empty selects ExhaustLiteral.
func ParseExhaustPredicate(s string) (ExhaustPredicate, error) {
	switch ExhaustPredicate(s) {
	case "", ExhaustLiteral:
		return ExhaustLiteral, nil
	case ExhaustTwoSided:
		return ExhaustTwoSided, nil
	}
	return "", fmt.Errorf("unknown exhaust predicate %q (want %q or %q)", s, ExhaustLiteral, ExhaustTwoSided)
}

func (p ExhaustPredicate) match(e float64) bool {
	if p == ExhaustTwoSided {
		return e <= -exhaustThreshold || e >= exhaustThreshold
	}
	return -exhaustThreshold >= e && e >= exhaustThreshold
}

// Law is the piecewise proportional control law.
type Law struct {
	FullScale   int
	HeatingHold int
	Exhaust     ExhaustPredicate
	// Clamp limits every duty to [0, FullScale]. Without it duties follow the
	// linear formula and may go negative or past the period.
	Clamp bool
}

// DefaultLaw returns the law with the literal exhaust predicate and clamping on.
func DefaultLaw() Law {
	return Law{
		FullScale:   FullScale,
		HeatingHold: HeatingHoldDuty,
		Exhaust:     ExhaustLiteral,
		Clamp:       true,
	}
}

// Compute evaluates the law for a reading and setpoint.
func (l Law) Compute(current, setpoint Temperature) Outputs {
	return l.ForError(float64(setpoint - current))
}

// ForError evaluates the law for error = setpoint - current.
func (l Law) ForError(e float64) Outputs {
	out := Outputs{Error: e}

	switch {
	case e <= coolThreshold:
		p := 1 - gain*(e-coolThreshold)
		out.Branch = BranchCool
		out.Cooling = l.duty(p)
		out.Heating = l.limit(l.HeatingHold)
		out.CoolingOn = true
		out.HeatingOn = false

	case l.Exhaust.match(e):
		p := 1 - gain*(e-exhaustThreshold)
		out.Branch = BranchExhaust
		out.Exhaust = l.duty(p)

	default:
		p := gain * (e - coolThreshold)
		out.Branch = BranchHeat
		out.Heating = l.duty(p)
		out.CoolingOn = false
		out.HeatingOn = true
	}

	return out
}

// duty scales a proportional factor to ticks, truncating toward zero.
func (l Law) duty(p float64) int {
	return l.limit(int(p * float64(l.FullScale)))
}

func (l Law) limit(ticks int) int {
	if !l.Clamp {
		return ticks
	}
	return mathx.Clamp(ticks, 0, l.FullScale)
}
