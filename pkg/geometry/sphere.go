package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Sphere is a sphere of the given radius centered at the object-space
// origin, optionally clipped to [ZMin, ZMax] and to azimuths up to PhiMax
type Sphere struct {
	Radius float64
	ZMin   float64
	ZMax   float64
	PhiMax float64

	objectToWorld core.TransformChain
	worldToObject core.TransformChain
}

// NewSphere creates a partial sphere placed in the world by objectToWorld.
// The z range is ordered like NewCylinder's.
func NewSphere(objectToWorld core.TransformChain, radius, zMin, zMax, phiMax float64) *Sphere {
	return &Sphere{
		Radius:        radius,
		ZMin:          math.Min(zMin, zMax),
		ZMax:          math.Max(zMin, zMax),
		PhiMax:        phiMax,
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
	}
}

// NewFullSphere creates a sphere with no clipping
func NewFullSphere(objectToWorld core.TransformChain, radius float64) *Sphere {
	return NewSphere(objectToWorld, radius, -radius, radius, 2*math.Pi)
}

// Bound returns the object-space bounding box
func (s *Sphere) Bound() core.AABB {
	return core.NewAABB(
		core.NewVec3(-s.Radius, -s.Radius, s.ZMin),
		core.NewVec3(s.Radius, s.Radius, s.ZMax),
	)
}

// WorldBound returns the bounding box in world space
func (s *Sphere) WorldBound() core.AABB {
	return s.objectToWorld.ApplyAABB(s.Bound())
}

// Intersect tests a world-space ray against the sphere
func (s *Sphere) Intersect(ray core.Ray) Interaction {
	r := s.worldToObject.ApplyRay(ray)
	if !s.Bound().Hit(r) {
		return Miss()
	}

	// Quadratic equation coefficients: at² + bt + c = 0
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(r.Origin)
	c := r.Origin.Dot(r.Origin) - s.Radius*s.Radius

	t0, t1, ok := core.SolveQuadratic(a, b, c)
	if !ok {
		return Miss()
	}
	tHit, ok := pickRoot(t0, t1, r.TMax)
	if !ok {
		return Miss()
	}

	pHit := r.At(tHit)
	phi := normalizePhi(math.Atan2(pHit.Y, pHit.X))
	if pHit.Z < s.ZMin || pHit.Z > s.ZMax || phi > s.PhiMax {
		return Miss()
	}

	normal := s.objectToWorld.ApplyNormal(pHit.Divide(s.Radius)).Normalize()
	return Interaction{
		Hit:    true,
		Point:  s.objectToWorld.ApplyPoint(pHit),
		T:      tHit,
		Normal: normal,
		U:      phi / s.PhiMax,
		V:      (pHit.Z - s.ZMin) / (s.ZMax - s.ZMin),
	}
}
