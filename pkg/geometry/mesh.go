package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-raykernel/pkg/core"
)

// ErrInvalidMesh is returned when a mesh index buffer does not describe triangles
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle mesh defined in object space.
// Every ray is tested against every triangle; there is no acceleration structure.
type Mesh struct {
	objectToWorld core.TransformChain
	worldToObject core.TransformChain
	vertices      []core.Vec3
	indices       []int
	bbox          core.AABB
}

// NewMesh creates a mesh from object-space vertices and a flat index buffer
// where each group of three indices forms a triangle
func NewMesh(objectToWorld core.TransformChain, vertices []core.Vec3, indices []int) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices is not a multiple of 3: %w", len(indices), ErrInvalidMesh)
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("index %d at position %d out of range [0, %d): %w",
				idx, i, len(vertices), ErrInvalidMesh)
		}
	}

	return &Mesh{
		objectToWorld: objectToWorld,
		worldToObject: objectToWorld.Inverse(),
		vertices:      vertices,
		indices:       indices,
		bbox:          core.NewAABBFromPoints(vertices...),
	}, nil
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.indices) / 3
}

// Triangle returns triangle i in world space
func (m *Mesh) Triangle(i int) *Triangle {
	return NewTriangle(
		m.objectToWorld.ApplyPoint(m.vertices[m.indices[3*i]]),
		m.objectToWorld.ApplyPoint(m.vertices[m.indices[3*i+1]]),
		m.objectToWorld.ApplyPoint(m.vertices[m.indices[3*i+2]]),
	)
}

// Bound returns the object-space bounding box of the vertices
func (m *Mesh) Bound() core.AABB {
	return m.bbox
}

// WorldBound returns the bounding box in world space
func (m *Mesh) WorldBound() core.AABB {
	return m.objectToWorld.ApplyAABB(m.bbox)
}

// Intersect returns the closest triangle hit along the ray
func (m *Mesh) Intersect(ray core.Ray) Interaction {
	if !m.bbox.Hit(m.worldToObject.ApplyRay(ray)) {
		return Miss()
	}

	world := make([]core.Vec3, len(m.vertices))
	for i, v := range m.vertices {
		world[i] = m.objectToWorld.ApplyPoint(v)
	}

	closest := Miss()
	for i := 0; i+2 < len(m.indices); i += 3 {
		tri := NewTriangle(world[m.indices[i]], world[m.indices[i+1]], world[m.indices[i+2]])
		hit := tri.Intersect(ray)
		if hit.Hit && (!closest.Hit || hit.T < closest.T) {
			closest = hit
		}
	}
	return closest
}
