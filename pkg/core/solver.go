package core

import "math"

// SolveQuadratic returns the real roots of a*t^2 + b*t + c = 0.
// ok is false when the discriminant is negative. For a > 0, t0 <= t1.
// a == 0 is not special-cased and yields non-finite roots.
func SolveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(discriminant)
	t0 = (-b - sqrtD) / (2 * a)
	t1 = (-b + sqrtD) / (2 * a)
	return t0, t1, true
}
