// Package mathx holds small generic numeric helpers.
package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to the closed range between lo and hi, in either order.
// The control law and the PWM back end use it to keep duties inside a period.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	lo, hi = min(lo, hi), max(lo, hi)
	return max(lo, min(v, hi))
}
