package scene

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

// NewQuadricsScene creates a scene of clipped spheres and cylinders placed
// with rotation and scaling chains
func NewQuadricsScene(width, height int, cameraOverrides ...CameraConfig) (*Scene, error) {
	defaultCameraConfig := CameraConfig{
		Kind:   CameraPerspective,
		Center: core.NewVec3(0, 1.5, 4), // Camera position
		LookAt: core.NewVec3(0, 0.8, 0), // Look at the shapes
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50.0,
	}

	camera, err := resolveCamera(defaultCameraConfig, width, height, cameraOverrides)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Name:        "quadrics",
		Camera:      camera,
		Width:       width,
		Height:      height,
		TopColor:    core.NewRGB(0.6, 0.6, 0.7),
		BottomColor: core.NewRGB(0.2, 0.2, 0.25),
	}

	ground, err := NewGroundMesh(core.NewVec3(0, 0, 0), 100)
	if err != nil {
		return nil, err
	}

	// Quadrics are built around +Z; stand them up along +Y
	upright := core.RotateX(-math.Pi / 2)

	// Upright open tube
	tube := geometry.NewCylinder(
		core.Chain(upright, core.Translate(core.NewVec3(1.8, 0, 0))),
		0.5, 0, 2, 2*math.Pi,
	)

	// Lying tube, open on one side so the inside shows
	lying := geometry.NewCylinder(
		core.Chain(core.RotateY(math.Pi/2), core.Translate(core.NewVec3(-2, 0.3, 0))),
		0.3, -0.5, 0.5, 1.5*math.Pi,
	)

	// Hemisphere resting on its flat side
	dome := geometry.NewSphere(
		core.Chain(upright, core.Translate(core.NewVec3(0, 0, -0.5))),
		0.8, 0, 0.8, 2*math.Pi,
	)

	// Sphere with a wedge cut out
	wedge := geometry.NewSphere(
		core.Chain(upright, core.RotateY(math.Pi/4), core.Translate(core.NewVec3(-0.6, 0.5, 1))),
		0.5, -0.5, 0.5, 1.5*math.Pi,
	)

	// Ellipsoid from a non-uniform scale
	squash, err := core.Scale(1, 0.4, 1)
	if err != nil {
		return nil, err
	}
	ellipsoid := geometry.NewFullSphere(
		core.Chain(squash, core.Translate(core.NewVec3(0.7, 0.2, 1.2))),
		0.5,
	)

	s.Shapes = append(s.Shapes, ground, tube, lying, dome, wedge, ellipsoid)
	return s, nil
}
