package scene

import (
	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

// sphereAt creates a full sphere translated to center
func sphereAt(center core.Vec3, radius float64) *geometry.Sphere {
	return geometry.NewFullSphere(core.Chain(core.Translate(center)), radius)
}

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(width, height int, cameraOverrides ...CameraConfig) (*Scene, error) {
	defaultCameraConfig := CameraConfig{
		Kind:   CameraPerspective,
		Center: core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt: core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:     core.NewVec3(0, 1, 0),    // Standard up direction
		VFov:   40.0,
	}

	camera, err := resolveCamera(defaultCameraConfig, width, height, cameraOverrides)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:        "default",
		Camera:      camera,
		Width:       width,
		Height:      height,
		TopColor:    core.NewRGB(0.5, 0.7, 1.0), // Light blue sky
		BottomColor: core.White(),
	}

	ground, err := NewGroundMesh(core.NewVec3(0, 0, 0), 100)
	if err != nil {
		return nil, err
	}

	s.Shapes = append(s.Shapes,
		ground,
		sphereAt(core.NewVec3(0, 0.5, -1), 0.5),
		sphereAt(core.NewVec3(-1, 0.5, -1), 0.5),
		sphereAt(core.NewVec3(1, 0.5, -1), 0.5),
		sphereAt(core.NewVec3(0.5, 0.25, -0.5), 0.25),
	)
	return s, nil
}
