package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Interaction is the result of a ray/shape intersection query.
// When Hit is false every other field is zero and carries no meaning.
type Interaction struct {
	Hit    bool      // Whether the ray hit the shape
	Point  core.Vec3 // World-space point of intersection
	T      float64   // Parameter t along the querying ray
	Normal core.Vec3 // World-space unit normal
	U, V   float64   // Surface parameterization at the hit
}

// Miss returns the empty interaction
func Miss() Interaction {
	return Interaction{}
}

// Shape is the intersection contract shared by every surface
type Shape interface {
	// Bound returns the box used for cheap rejection. It is in object
	// space for shapes that carry a transform chain.
	Bound() core.AABB
	// WorldBound returns the bound expressed in world space
	WorldBound() core.AABB
	// Intersect finds the closest valid hit of a world-space ray
	Intersect(ray core.Ray) Interaction
}

// normalizePhi maps atan2 output into [0, 2π)
func normalizePhi(phi float64) float64 {
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi
}

// pickRoot returns the closest root in [0, tMax]. ok is false when neither
// root qualifies. NaN roots never qualify.
func pickRoot(t0, t1, tMax float64) (t float64, ok bool) {
	if t0 > tMax || t1 < 0 {
		return 0, false
	}
	t = t0
	if t0 < 0 {
		t = t1
	}
	if !(t >= 0 && t <= tMax) {
		return 0, false
	}
	return t, true
}
