package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/renderer"
)

var (
	// ErrUnknownScene is returned for a scene name that is neither built in nor a file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidScene is returned when a scene description cannot be built
	ErrInvalidScene = errors.New("invalid scene")
)

// Camera kinds
const (
	CameraPerspective  = "perspective"
	CameraOrthographic = "orthographic"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Camera      renderer.Camera
	Shapes      []geometry.Shape // Objects in the scene
	Width       int              // Image width
	Height      int              // Image height
	TopColor    core.RGB         // Background at the zenith
	BottomColor core.RGB         // Background at the nadir
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() renderer.Camera { return s.Camera }

// GetShapes returns every shape in the scene
func (s *Scene) GetShapes() []geometry.Shape { return s.Shapes }

// GetBackgroundColors returns the gradient used for rays that hit nothing
func (s *Scene) GetBackgroundColors() (core.RGB, core.RGB) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.Mesh:
			// Meshes contain multiple triangles
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}

// WorldBound returns the box bounding every shape in world space
func (s *Scene) WorldBound() core.AABB {
	if len(s.Shapes) == 0 {
		return core.AABB{}
	}
	bound := s.Shapes[0].WorldBound()
	for _, shape := range s.Shapes[1:] {
		bound = bound.Union(shape.WorldBound())
	}
	return bound
}

// CameraConfig describes a camera placed with a look-at frame
type CameraConfig struct {
	Kind        string    // CameraPerspective or CameraOrthographic
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees (perspective)
	OrthoHeight float64   // Half-height of the film (orthographic)
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Kind != "" {
		result.Kind = override.Kind
	}
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.OrthoHeight != 0 {
		result.OrthoHeight = override.OrthoHeight
	}
	return result
}

// NewCamera builds the camera described by config for a film of the given aspect ratio
func NewCamera(config CameraConfig, aspect float64) (renderer.Camera, error) {
	toWorld, err := renderer.LookAtCamera(config.Center, config.LookAt, config.Up)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	return newCameraFromChain(config, toWorld, aspect)
}

func newCameraFromChain(config CameraConfig, toWorld core.TransformChain, aspect float64) (renderer.Camera, error) {
	switch config.Kind {
	case CameraPerspective, "":
		if config.VFov <= 0 || config.VFov >= 180 {
			return nil, fmt.Errorf("camera field of view %g outside (0, 180): %w", config.VFov, ErrInvalidScene)
		}
		return renderer.NewPerspectiveCameraWithAspect(toWorld, config.VFov*math.Pi/180, aspect), nil
	case CameraOrthographic:
		if config.OrthoHeight <= 0 {
			return nil, fmt.Errorf("orthographic film height %g must be positive: %w", config.OrthoHeight, ErrInvalidScene)
		}
		return renderer.NewOrthographicCamera(toWorld, config.OrthoHeight*aspect, config.OrthoHeight), nil
	default:
		return nil, fmt.Errorf("camera kind %q: %w", config.Kind, ErrInvalidScene)
	}
}

// resolveCamera merges overrides into defaults and builds the camera
func resolveCamera(defaults CameraConfig, width, height int, overrides []CameraConfig) (renderer.Camera, error) {
	config := defaults
	if len(overrides) > 0 {
		config = MergeCameraConfig(defaults, overrides[0])
	}
	return NewCamera(config, aspectRatio(width, height))
}

func aspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 1
	}
	return float64(width) / float64(height)
}

// NewGroundMesh creates a square of two triangles centered at center with
// its normal along +Y
func NewGroundMesh(center core.Vec3, size float64) (*geometry.Mesh, error) {
	h := size / 2
	vertices := []core.Vec3{
		core.NewVec3(-h, 0, -h),
		core.NewVec3(h, 0, -h),
		core.NewVec3(h, 0, h),
		core.NewVec3(-h, 0, h),
	}
	return geometry.NewMesh(core.Chain(core.Translate(center)), vertices, []int{0, 2, 1, 0, 3, 2})
}
