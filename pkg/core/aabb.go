package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABBFromPoint creates a degenerate box around a single point
func NewAABBFromPoint(p Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// NewAABB creates a box spanning two corners given in any order
func NewAABB(p1, p2 Vec3) AABB {
	return AABB{Min: MinVec(p1, p2), Max: MaxVec(p1, p2)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := NewAABBFromPoint(points[0])
	for _, point := range points[1:] {
		box = box.UnionPoint(point)
	}
	return box
}

// Corner returns one of the eight corners. Bit 0 of index selects X,
// bit 1 selects Y and bit 2 selects Z; indices wrap modulo 8.
func (aabb AABB) Corner(index int) Vec3 {
	index %= 8

	x := aabb.Min.X
	if index%2 != 0 {
		x = aabb.Max.X
	}
	y := aabb.Min.Y
	if index%4 >= 2 {
		y = aabb.Max.Y
	}
	z := aabb.Min.Z
	if index >= 4 {
		z = aabb.Max.Z
	}
	return Vec3{x, y, z}
}

// UnionPoint returns the box grown to contain p
func (aabb AABB) UnionPoint(p Vec3) AABB {
	return AABB{Min: MinVec(aabb.Min, p), Max: MaxVec(aabb.Max, p)}
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: MinVec(aabb.Min, other.Min), Max: MaxVec(aabb.Max, other.Max)}
}

// Intersection returns the region shared by both boxes. Disjoint boxes
// produce a box whose corners are swapped back into order.
func (aabb AABB) Intersection(other AABB) AABB {
	return NewAABB(MaxVec(aabb.Min, other.Min), MinVec(aabb.Max, other.Max))
}

// Overlaps applies the per-axis test
// aabb.Max >= other.Min && aabb.Min >= other.Max.
// This is not a separating-axis test: it only holds when aabb sits at or
// beyond the far side of other on every axis.
func (aabb AABB) Overlaps(other AABB) bool {
	x := aabb.Max.X >= other.Min.X && aabb.Min.X >= other.Max.X
	y := aabb.Max.Y >= other.Min.Y && aabb.Min.Y >= other.Max.Y
	z := aabb.Max.Z >= other.Min.Z && aabb.Min.Z >= other.Max.Z
	return x && y && z
}

// Inside reports whether p lies in the box, boundary included
func (aabb AABB) Inside(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Diagonal returns the vector from Min to Max
func (aabb AABB) Diagonal() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	d := aabb.Diagonal()
	return 2.0 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Volume returns the volume of the AABB
func (aabb AABB) Volume() float64 {
	d := aabb.Diagonal()
	return d.X * d.Y * d.Z
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	return aabb.Diagonal().MaxDimension()
}

// Hit tests if a ray intersects with this AABB using the slab method.
// A zero direction component divides to ±Inf, so axis-parallel rays need
// no special case. A 0/0 NaN never wins a comparison and is skipped.
func (aabb AABB) Hit(ray Ray) bool {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		t1 := (aabb.Min.Axis(axis) - origin) / direction
		t2 := (aabb.Max.Axis(axis) - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tNear {
			tNear = t1
		}
		if t2 < tFar {
			tFar = t2
		}
	}

	if tFar < 0 {
		return false // box is behind the origin
	}
	if tNear > tFar {
		return false
	}
	if tNear > ray.TMax {
		return false // box is beyond the valid interval
	}
	return true
}
