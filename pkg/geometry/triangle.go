package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// TriangleEpsilon rejects near-parallel rays and self-intersections
const TriangleEpsilon = 1e-8

// Triangle represents a single triangle defined by three world-space vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:   v0,
		V1:   v1,
		V2:   v2,
		bbox: core.NewAABB(v0, v1).UnionPoint(v2),
	}
}

// Bound returns the bounding box of the vertices
func (t *Triangle) Bound() core.AABB {
	return t.bbox
}

// WorldBound is the same as Bound since triangles live in world space
func (t *Triangle) WorldBound() core.AABB {
	return t.bbox
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) Interaction {
	if !t.bbox.Hit(ray) {
		return Miss()
	}

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if math.Abs(det) < TriangleEpsilon {
		return Miss()
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)

	if u < 0 || v < 0 || u+v > 1 {
		return Miss()
	}

	tHit := f * edge2.Dot(q)
	if tHit < TriangleEpsilon || tHit > ray.TMax {
		return Miss()
	}

	// Face the normal against the incoming ray
	normal := edge1.Cross(edge2).Normalize()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return Interaction{
		Hit:    true,
		Point:  ray.At(tHit),
		T:      tHit,
		Normal: normal,
		U:      u,
		V:      v,
	}
}
