package core

import (
	"fmt"
	"math"
)

// Transform pairs a matrix with its inverse. Both are fixed at construction.
type Transform struct {
	m    Matrix4
	mInv Matrix4
}

// NewTransform creates a transform from m, computing the inverse eagerly
func NewTransform(m Matrix4) (Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Transform{}, err
	}
	return Transform{m: m, mInv: inv}, nil
}

// NewTransformPair creates a transform from a matrix and its known inverse
func NewTransformPair(m, mInv Matrix4) Transform {
	return Transform{m: m, mInv: mInv}
}

// IdentityTransform returns the transform that leaves everything in place
func IdentityTransform() Transform {
	return Transform{m: Identity4(), mInv: Identity4()}
}

// Translate returns a translation by delta
func Translate(delta Vec3) Transform {
	m := Matrix4{
		{1, 0, 0, delta.X},
		{0, 1, 0, delta.Y},
		{0, 0, 1, delta.Z},
		{0, 0, 0, 1},
	}
	mInv := Matrix4{
		{1, 0, 0, -delta.X},
		{0, 1, 0, -delta.Y},
		{0, 0, 1, -delta.Z},
		{0, 0, 0, 1},
	}
	return Transform{m: m, mInv: mInv}
}

// Scale returns a non-uniform scale. A zero factor cannot be inverted.
func Scale(sx, sy, sz float64) (Transform, error) {
	t, err := NewTransform(Matrix4{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	})
	if err != nil {
		return Transform{}, fmt.Errorf("scale (%g, %g, %g): %w", sx, sy, sz, err)
	}
	return t, nil
}

// RotateX returns a rotation of theta radians about the X axis
func RotateX(theta float64) Transform {
	sin, cos := math.Sincos(theta)
	m := Matrix4{
		{1, 0, 0, 0},
		{0, cos, -sin, 0},
		{0, sin, cos, 0},
		{0, 0, 0, 1},
	}
	return Transform{m: m, mInv: m.Transpose()}
}

// RotateY returns a rotation of theta radians about the Y axis
func RotateY(theta float64) Transform {
	sin, cos := math.Sincos(theta)
	m := Matrix4{
		{cos, 0, sin, 0},
		{0, 1, 0, 0},
		{-sin, 0, cos, 0},
		{0, 0, 0, 1},
	}
	return Transform{m: m, mInv: m.Transpose()}
}

// RotateZ returns a rotation of theta radians about the Z axis
func RotateZ(theta float64) Transform {
	sin, cos := math.Sincos(theta)
	m := Matrix4{
		{cos, -sin, 0, 0},
		{sin, cos, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	return Transform{m: m, mInv: m.Transpose()}
}

// Rotate returns a rotation of theta radians about an arbitrary axis using
// Rodrigues' rotation formula. The axis is normalized first.
func Rotate(theta float64, axis Vec3) Transform {
	a := axis.Normalize()
	sin, cos := math.Sincos(theta)
	oneMinusCos := 1 - cos

	m := Matrix4{
		{
			a.X*a.X + (1-a.X*a.X)*cos,
			a.X*a.Y*oneMinusCos - a.Z*sin,
			a.X*a.Z*oneMinusCos + a.Y*sin,
			0,
		},
		{
			a.X*a.Y*oneMinusCos + a.Z*sin,
			a.Y*a.Y + (1-a.Y*a.Y)*cos,
			a.Y*a.Z*oneMinusCos - a.X*sin,
			0,
		},
		{
			a.X*a.Z*oneMinusCos - a.Y*sin,
			a.Y*a.Z*oneMinusCos + a.X*sin,
			a.Z*a.Z + (1-a.Z*a.Z)*cos,
			0,
		},
		{0, 0, 0, 1},
	}
	return Transform{m: m, mInv: m.Transpose()}
}

// LookAt returns the world-to-camera transform for a camera at eye looking
// toward target. The camera looks down its +Z axis with +X to its left.
func LookAt(eye, target, up Vec3) (Transform, error) {
	forward := target.Subtract(eye).Normalize()
	left := up.Cross(forward).Normalize()
	newUp := forward.Cross(left)

	cameraToWorld := Matrix4{
		{left.X, newUp.X, forward.X, eye.X},
		{left.Y, newUp.Y, forward.Y, eye.Y},
		{left.Z, newUp.Z, forward.Z, eye.Z},
		{0, 0, 0, 1},
	}
	worldToCamera, err := cameraToWorld.Inverse()
	if err != nil {
		return Transform{}, fmt.Errorf("look-at from %v to %v: %w", eye, target, err)
	}
	return Transform{m: worldToCamera, mInv: cameraToWorld}, nil
}

// Compose returns the transform that applies t2 first and then t1
func Compose(t1, t2 Transform) Transform {
	return Transform{
		m:    Mul(t1.m, t2.m),
		mInv: Mul(t2.mInv, t1.mInv),
	}
}

// Inverse returns the inverse transform by swapping the pair
func (t Transform) Inverse() Transform {
	return Transform{m: t.mInv, mInv: t.m}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() Matrix4 {
	return t.m
}

// InverseMatrix returns the inverse matrix
func (t Transform) InverseMatrix() Matrix4 {
	return t.mInv
}

// Equals reports whether both matrices of the pair match within MatrixTolerance
func (t Transform) Equals(other Transform) bool {
	return t.m.Equals(other.m) && t.mInv.Equals(other.mInv)
}

// ApplyPoint transforms a point, dividing by the homogeneous w
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	m := &t.m
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	return Vec3{x / w, y / w, z / w}
}

// ApplyVector transforms a direction with the linear part of the matrix
func (t Transform) ApplyVector(v Vec3) Vec3 {
	return apply3(&t.m, v)
}

// ApplyNormal transforms a normal with the linear part of the inverse
// matrix, untransposed. This matches the inverse-transpose only when the
// linear part is orthogonal.
func (t Transform) ApplyNormal(n Vec3) Vec3 {
	return apply3(&t.mInv, n)
}

// ApplyRay transforms the origin as a point and the direction as a vector.
// The parametric interval is kept.
func (t Transform) ApplyRay(r Ray) Ray {
	return Ray{
		Origin:    t.ApplyPoint(r.Origin),
		Direction: t.ApplyVector(r.Direction),
		T:         r.T,
		TMax:      r.TMax,
	}
}

// SwapsHandedness reports whether the transform mirrors the coordinate system
func (t Transform) SwapsHandedness() bool {
	return t.m.Determinant3() < 0
}

func apply3(m *Matrix4, v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// TransformChain is an ordered sequence of transforms applied first to last
type TransformChain []Transform

// Chain builds a TransformChain from its elements
func Chain(transforms ...Transform) TransformChain {
	return TransformChain(transforms)
}

// Inverse returns the chain that undoes c: the elements are inverted and
// their order reversed
func (c TransformChain) Inverse() TransformChain {
	inv := make(TransformChain, len(c))
	for i, t := range c {
		inv[len(c)-1-i] = t.Inverse()
	}
	return inv
}

// Collapse composes the chain into a single transform
func (c TransformChain) Collapse() Transform {
	result := IdentityTransform()
	for _, t := range c {
		result = Compose(t, result)
	}
	return result
}

// ApplyPoint applies every transform in order to a point
func (c TransformChain) ApplyPoint(p Vec3) Vec3 {
	for _, t := range c {
		p = t.ApplyPoint(p)
	}
	return p
}

// ApplyVector applies every transform in order to a direction
func (c TransformChain) ApplyVector(v Vec3) Vec3 {
	for _, t := range c {
		v = t.ApplyVector(v)
	}
	return v
}

// ApplyNormal applies every transform in order to a normal
func (c TransformChain) ApplyNormal(n Vec3) Vec3 {
	for _, t := range c {
		n = t.ApplyNormal(n)
	}
	return n
}

// ApplyRay applies every transform in order to a ray
func (c TransformChain) ApplyRay(r Ray) Ray {
	for _, t := range c {
		r = t.ApplyRay(r)
	}
	return r
}

// ApplyAABB returns the box bounding the eight transformed corners of b
func (c TransformChain) ApplyAABB(b AABB) AABB {
	result := NewAABBFromPoint(c.ApplyPoint(b.Corner(0)))
	for i := 1; i < 8; i++ {
		result = result.UnionPoint(c.ApplyPoint(b.Corner(i)))
	}
	return result
}
