package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Cylinder is an open cylinder around the object-space Z axis between ZMin
// and ZMax, optionally clipped to azimuths up to PhiMax
type Cylinder struct {
	Radius float64
	ZMin   float64
	ZMax   float64
	PhiMax float64

	objectToWorld core.TransformChain
	worldToObject core.TransformChain
}

// NewCylinder creates a cylinder placed in the world by objectToWorld
func NewCylinder(objectToWorld core.TransformChain, radius, zMin, zMax, phiMax float64) *Cylinder {
	return &Cylinder{
		Radius:        radius,
		ZMin:          math.Min(zMin, zMax),
		ZMax:          math.Max(zMin, zMax),
		PhiMax:        phiMax,
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
	}
}

// Bound returns the object-space bounding box
func (c *Cylinder) Bound() core.AABB {
	return core.NewAABB(
		core.NewVec3(-c.Radius, -c.Radius, c.ZMin),
		core.NewVec3(c.Radius, c.Radius, c.ZMax),
	)
}

// WorldBound returns the bounding box in world space
func (c *Cylinder) WorldBound() core.AABB {
	return c.objectToWorld.ApplyAABB(c.Bound())
}

// Intersect tests a world-space ray against the cylinder
func (c *Cylinder) Intersect(ray core.Ray) Interaction {
	r := c.worldToObject.ApplyRay(ray)
	if !c.Bound().Hit(r) {
		return Miss()
	}

	// Infinite cylinder x² + y² = r², so only X and Y take part
	d, o := r.Direction, r.Origin
	a := d.X*d.X + d.Y*d.Y
	b := 2 * (d.X*o.X + d.Y*o.Y)
	cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius

	t0, t1, ok := core.SolveQuadratic(a, b, cc)
	if !ok {
		return Miss()
	}
	tHit, ok := pickRoot(t0, t1, r.TMax)
	if !ok {
		return Miss()
	}

	pHit := r.At(tHit)
	phi := normalizePhi(math.Atan2(pHit.Y, pHit.X))
	if pHit.Z < c.ZMin || pHit.Z > c.ZMax || phi > c.PhiMax {
		return Miss()
	}

	radial := core.NewVec3(pHit.X, pHit.Y, 0)
	normal := c.objectToWorld.ApplyNormal(radial).Normalize()
	return Interaction{
		Hit:    true,
		Point:  c.objectToWorld.ApplyPoint(pHit),
		T:      tHit,
		Normal: normal,
		U:      phi / c.PhiMax,
		V:      (pHit.Z - c.ZMin) / (c.ZMax - c.ZMin),
	}
}
