package core

import "math"

// Ray represents a ray with an origin, a direction and a valid parametric
// interval [T, TMax]. T is always 0 for rays built here.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	T         float64
	TMax      float64
}

// NewRay creates a new ray with an unbounded interval
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: math.Inf(1)}
}

// NewRayWithTMax creates a new ray that is only valid up to tMax
func NewRayWithTMax(origin, direction Vec3, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
