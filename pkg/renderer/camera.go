package renderer

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Camera generates primary rays from film samples in [-1, 1]².
// The sample (1, 1) is the top of the film on the camera's +X side.
type Camera interface {
	GenerateRay(x, y float64) core.Ray
}

// PerspectiveCamera is a pinhole camera at the camera-space origin looking down +Z
type PerspectiveCamera struct {
	CameraToWorld core.TransformChain
	FovX          float64 // Horizontal field of view in radians
	FovY          float64 // Vertical field of view in radians
}

// NewPerspectiveCamera creates a pinhole camera with explicit fields of view
func NewPerspectiveCamera(cameraToWorld core.TransformChain, fovX, fovY float64) *PerspectiveCamera {
	return &PerspectiveCamera{CameraToWorld: cameraToWorld, FovX: fovX, FovY: fovY}
}

// NewPerspectiveCameraWithAspect derives the horizontal field of view from
// the vertical one and the film aspect ratio (width / height)
func NewPerspectiveCameraWithAspect(cameraToWorld core.TransformChain, fovY, aspect float64) *PerspectiveCamera {
	fovX := 2 * math.Atan(aspect*math.Tan(fovY/2))
	return NewPerspectiveCamera(cameraToWorld, fovX, fovY)
}

// GenerateRay returns a world-space ray with a normalized direction
func (c *PerspectiveCamera) GenerateRay(x, y float64) core.Ray {
	d := core.NewVec3(math.Tan(c.FovX/2)*x, math.Tan(c.FovY/2)*y, 1)
	r := c.CameraToWorld.ApplyRay(core.NewRay(core.Vec3{}, d))
	r.Direction = r.Direction.Normalize()
	return r
}

// OrthographicCamera emits parallel rays along camera-space +Z from a
// film rectangle of half-extents WX by WY
type OrthographicCamera struct {
	CameraToWorld core.TransformChain
	WX            float64
	WY            float64
}

// NewOrthographicCamera creates a parallel-projection camera
func NewOrthographicCamera(cameraToWorld core.TransformChain, wx, wy float64) *OrthographicCamera {
	return &OrthographicCamera{CameraToWorld: cameraToWorld, WX: wx, WY: wy}
}

// GenerateRay returns a world-space ray. The direction is not renormalized,
// so a scaling camera transform scales it too.
func (c *OrthographicCamera) GenerateRay(x, y float64) core.Ray {
	o := core.NewVec3(c.WX*x, c.WY*y, 0)
	return c.CameraToWorld.ApplyRay(core.NewRay(o, core.NewVec3(0, 0, 1)))
}

// FilmSample maps the center of pixel (i, j) of a width x height image to
// film coordinates. Row 0 is the top of the image. Column 0 maps to +X,
// which is the camera's left for cameras built with core.LookAt.
func FilmSample(i, j, width, height int) (x, y float64) {
	x = 1 - 2*(float64(i)+0.5)/float64(width)
	y = 1 - 2*(float64(j)+0.5)/float64(height)
	return x, y
}

// LookAtCamera returns the camera-to-world chain for a camera at eye looking at target
func LookAtCamera(eye, target, up core.Vec3) (core.TransformChain, error) {
	worldToCamera, err := core.LookAt(eye, target, up)
	if err != nil {
		return nil, err
	}
	return core.Chain(worldToCamera.Inverse()), nil
}
