package types

import "math"

// RoundHalfUp rounds to the nearest integer with .5 going towards +Inf,
// so -2.5 becomes -2 rather than -3.
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
