package common

import "math"

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta and never overshoots.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Approx reports whether a and b differ by no more than eps.
func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
