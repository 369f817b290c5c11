package scene

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

// NewMeshScene creates a scene showcasing triangle mesh geometry
func NewMeshScene(width, height int, cameraOverrides ...CameraConfig) (*Scene, error) {
	defaultCameraConfig := CameraConfig{
		Kind:   CameraPerspective,
		Center: core.NewVec3(0, 2, 5),
		LookAt: core.NewVec3(0, 0.7, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   45.0,
	}

	camera, err := resolveCamera(defaultCameraConfig, width, height, cameraOverrides)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:        "mesh",
		Camera:      camera,
		Width:       width,
		Height:      height,
		TopColor:    core.NewRGB(0.5, 0.7, 1.0),
		BottomColor: core.White(),
	}

	ground, err := NewGroundMesh(core.NewVec3(0, 0, 0), 100)
	if err != nil {
		return nil, err
	}
	box, err := createBoxMesh(core.NewVec3(-1.8, 0.5, 0), core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0))
	if err != nil {
		return nil, err
	}
	pyramid, err := createPyramidMesh(core.NewVec3(0, 0.75, -0.5), 1.2, 1.5, core.NewVec3(0, math.Pi/6, 0))
	if err != nil {
		return nil, err
	}
	icosahedron, err := createIcosahedronMesh(core.NewVec3(1.8, 0.8, 0), 0.8, core.NewVec3(0, math.Pi/3, 0))
	if err != nil {
		return nil, err
	}

	s.Shapes = append(s.Shapes, ground, box, pyramid, icosahedron)
	return s, nil
}

// placement rotates about X, Y and Z (in that order) and then moves to center
func placement(center, rotation core.Vec3) core.TransformChain {
	return core.Chain(
		core.RotateX(rotation.X),
		core.RotateY(rotation.Y),
		core.RotateZ(rotation.Z),
		core.Translate(center),
	)
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size, rotation core.Vec3) (*geometry.Mesh, error) {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		core.NewVec3(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.NewVec3(+h.X, -h.Y, -h.Z), // 1: right-bottom-back
		core.NewVec3(+h.X, +h.Y, -h.Z), // 2: right-top-back
		core.NewVec3(-h.X, +h.Y, -h.Z), // 3: left-top-back
		core.NewVec3(-h.X, -h.Y, +h.Z), // 4: left-bottom-front
		core.NewVec3(+h.X, -h.Y, +h.Z), // 5: right-bottom-front
		core.NewVec3(+h.X, +h.Y, +h.Z), // 6: right-top-front
		core.NewVec3(-h.X, +h.Y, +h.Z), // 7: left-top-front
	}

	// Define the 12 triangles (2 per face, 6 faces)
	faces := []int{
		0, 1, 2, 0, 2, 3, // Back face (Z-)
		4, 6, 5, 4, 7, 6, // Front face (Z+)
		0, 3, 7, 0, 7, 4, // Left face (X-)
		1, 5, 6, 1, 6, 2, // Right face (X+)
		0, 4, 5, 0, 5, 1, // Bottom face (Y-)
		3, 2, 6, 3, 6, 7, // Top face (Y+)
	}

	return geometry.NewMesh(placement(center, rotation), vertices, faces)
}

// createPyramidMesh creates a triangle mesh representing a square pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotation core.Vec3) (*geometry.Mesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		core.NewVec3(-halfBase, -halfHeight, -halfBase), // 0: left-back
		core.NewVec3(+halfBase, -halfHeight, -halfBase), // 1: right-back
		core.NewVec3(+halfBase, -halfHeight, +halfBase), // 2: right-front
		core.NewVec3(-halfBase, -halfHeight, +halfBase), // 3: left-front
		core.NewVec3(0, +halfHeight, 0),                 // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // Base
		0, 1, 4, // back face
		1, 2, 4, // right face
		2, 3, 4, // front face
		3, 0, 4, // left face
	}

	return geometry.NewMesh(placement(center, rotation), vertices, faces)
}

// createIcosahedronMesh creates a triangle mesh representing an icosahedron
// whose vertices lie on a sphere of the given radius
func createIcosahedronMesh(center core.Vec3, radius float64, rotation core.Vec3) (*geometry.Mesh, error) {
	phi := (1 + math.Sqrt(5)) / 2
	scale := radius / math.Sqrt(1+phi*phi)

	vertices := []core.Vec3{
		core.NewVec3(-1, phi, 0).Multiply(scale),  // 0
		core.NewVec3(1, phi, 0).Multiply(scale),   // 1
		core.NewVec3(-1, -phi, 0).Multiply(scale), // 2
		core.NewVec3(1, -phi, 0).Multiply(scale),  // 3
		core.NewVec3(0, -1, phi).Multiply(scale),  // 4
		core.NewVec3(0, 1, phi).Multiply(scale),   // 5
		core.NewVec3(0, -1, -phi).Multiply(scale), // 6
		core.NewVec3(0, 1, -phi).Multiply(scale),  // 7
		core.NewVec3(phi, 0, -1).Multiply(scale),  // 8
		core.NewVec3(phi, 0, 1).Multiply(scale),   // 9
		core.NewVec3(-phi, 0, -1).Multiply(scale), // 10
		core.NewVec3(-phi, 0, 1).Multiply(scale),  // 11
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewMesh(placement(center, rotation), vertices, faces)
}
