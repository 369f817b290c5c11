package scene

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/loaders"
	"github.com/df07/go-raykernel/pkg/renderer"
)

// Shape types accepted in scene files
const (
	ShapeSphere   = "sphere"
	ShapeCylinder = "cylinder"
	ShapeTriangle = "triangle"
	ShapeMesh     = "mesh"
)

// vec3 is a YAML triple such as [1, 2, 3]
type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type fileSpec struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Width       int             `yaml:"width"`
	Height      int             `yaml:"height"`
	Background  *backgroundSpec `yaml:"background"`
	Camera      cameraSpec      `yaml:"camera"`
	Shapes      []shapeSpec     `yaml:"shapes"`
}

type backgroundSpec struct {
	Top    vec3 `yaml:"top"`
	Bottom vec3 `yaml:"bottom"`
}

type cameraSpec struct {
	Type      string          `yaml:"type"`
	Fov       float64         `yaml:"fov"`    // Vertical, degrees
	Height    float64         `yaml:"height"` // Orthographic film half-height
	Transform []transformSpec `yaml:"transform"`
}

type lookAtSpec struct {
	Eye    vec3 `yaml:"eye"`
	Target vec3 `yaml:"target"`
	Up     vec3 `yaml:"up"`
}

type rotateSpec struct {
	Angle float64 `yaml:"angle"` // Degrees
	Axis  vec3    `yaml:"axis"`
}

// transformSpec is one step of a chain. Exactly one field is set.
type transformSpec struct {
	Translate *vec3       `yaml:"translate"`
	Scale     *vec3       `yaml:"scale"`
	Rotate    *rotateSpec `yaml:"rotate"`
	RotateX   *float64    `yaml:"rotate_x"`
	RotateY   *float64    `yaml:"rotate_y"`
	RotateZ   *float64    `yaml:"rotate_z"`
	LookAt    *lookAtSpec `yaml:"look_at"`
}

type shapeSpec struct {
	Type      string          `yaml:"type"`
	Radius    float64         `yaml:"radius"`
	ZMin      *float64        `yaml:"z_min"`
	ZMax      *float64        `yaml:"z_max"`
	PhiMax    *float64        `yaml:"phi_max"` // Degrees
	Vertices  []vec3          `yaml:"vertices"`
	Indices   []int           `yaml:"indices"`
	PLY       string          `yaml:"ply"`
	Transform []transformSpec `yaml:"transform"`
}

// LoadFile reads a YAML scene description. A zero width or height takes
// the size from the file. Relative PLY paths resolve against the file's directory.
func LoadFile(path string, width, height int, logger *zap.Logger) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := Parse(data, filepath.Dir(path), width, height, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = sceneID(path)
	}
	return s, nil
}

// Parse builds a scene from YAML. Every invalid shape is reported, not just the first.
func Parse(data []byte, baseDir string, width, height int, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var spec fileSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	if width <= 0 {
		width = spec.Width
	}
	if height <= 0 {
		height = spec.Height
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size %dx%d: %w", width, height, ErrInvalidScene)
	}

	s := &Scene{
		Name:        spec.Name,
		Width:       width,
		Height:      height,
		TopColor:    core.NewRGB(0.5, 0.7, 1.0),
		BottomColor: core.White(),
	}
	if spec.Background != nil {
		s.TopColor = core.RGBFromVec3(spec.Background.Top.toVec3())
		s.BottomColor = core.RGBFromVec3(spec.Background.Bottom.toVec3())
	}

	var errs error

	camera, err := buildCamera(spec.Camera, aspectRatio(width, height))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("camera: %w", err))
	}
	s.Camera = camera

	for i, shape := range spec.Shapes {
		built, err := buildShape(shape, baseDir, logger)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shapes[%d] (%s): %w", i, shape.Type, err))
			continue
		}
		s.Shapes = append(s.Shapes, built)
	}

	if errs != nil {
		return nil, errs
	}

	logger.Debug("parsed scene",
		zap.String("name", s.Name),
		zap.Int("shapes", len(s.Shapes)),
		zap.Int("primitives", s.GetPrimitiveCount()))
	return s, nil
}

func buildCamera(spec cameraSpec, aspect float64) (renderer.Camera, error) {
	toWorld, err := buildChain(spec.Transform)
	if err != nil {
		return nil, err
	}

	config := CameraConfig{Kind: spec.Type, VFov: spec.Fov, OrthoHeight: spec.Height}
	if config.Kind == "" {
		config.Kind = CameraPerspective
	}
	if config.VFov == 0 {
		config.VFov = 45
	}
	if config.OrthoHeight == 0 {
		config.OrthoHeight = 1
	}
	return newCameraFromChain(config, toWorld, aspect)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// buildChain converts transform steps into a chain applied first to last
func buildChain(steps []transformSpec) (core.TransformChain, error) {
	chain := make(core.TransformChain, 0, len(steps))
	for i, step := range steps {
		t, err := buildTransform(step)
		if err != nil {
			return nil, fmt.Errorf("transform[%d]: %w", i, err)
		}
		chain = append(chain, t)
	}
	return chain, nil
}

func buildTransform(step transformSpec) (core.Transform, error) {
	set := 0
	for _, present := range []bool{
		step.Translate != nil, step.Scale != nil, step.Rotate != nil,
		step.RotateX != nil, step.RotateY != nil, step.RotateZ != nil, step.LookAt != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return core.Transform{}, fmt.Errorf("step sets %d operations, want exactly 1: %w", set, ErrInvalidScene)
	}

	switch {
	case step.Translate != nil:
		return core.Translate(step.Translate.toVec3()), nil
	case step.Scale != nil:
		s := step.Scale
		return core.Scale(s[0], s[1], s[2])
	case step.Rotate != nil:
		axis := step.Rotate.Axis.toVec3()
		if axis.LengthSquared() == 0 {
			return core.Transform{}, fmt.Errorf("rotation axis is zero: %w", ErrInvalidScene)
		}
		return core.Rotate(degreesToRadians(step.Rotate.Angle), axis), nil
	case step.RotateX != nil:
		return core.RotateX(degreesToRadians(*step.RotateX)), nil
	case step.RotateY != nil:
		return core.RotateY(degreesToRadians(*step.RotateY)), nil
	case step.RotateZ != nil:
		return core.RotateZ(degreesToRadians(*step.RotateZ)), nil
	default:
		// look_at places the object at eye with its +Z axis toward target
		eye, target := step.LookAt.Eye.toVec3(), step.LookAt.Target.toVec3()
		if eye.Equals(target) {
			return core.Transform{}, fmt.Errorf("look_at eye equals target: %w", ErrInvalidScene)
		}
		worldToLocal, err := core.LookAt(eye, target, step.LookAt.Up.toVec3())
		if err != nil {
			return core.Transform{}, err
		}
		return worldToLocal.Inverse(), nil
	}
}

func buildShape(spec shapeSpec, baseDir string, logger *zap.Logger) (geometry.Shape, error) {
	toWorld, err := buildChain(spec.Transform)
	if err != nil {
		return nil, err
	}

	switch spec.Type {
	case ShapeSphere:
		zMin, zMax, phiMax, err := quadricRange(spec, -spec.Radius, spec.Radius)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(toWorld, spec.Radius, zMin, zMax, phiMax), nil

	case ShapeCylinder:
		zMin, zMax, phiMax, err := quadricRange(spec, 0, 1)
		if err != nil {
			return nil, err
		}
		return geometry.NewCylinder(toWorld, spec.Radius, zMin, zMax, phiMax), nil

	case ShapeTriangle:
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d: %w", len(spec.Vertices), ErrInvalidScene)
		}
		// Triangles live in world space, so the chain is baked into the vertices
		return geometry.NewTriangle(
			toWorld.ApplyPoint(spec.Vertices[0].toVec3()),
			toWorld.ApplyPoint(spec.Vertices[1].toVec3()),
			toWorld.ApplyPoint(spec.Vertices[2].toVec3()),
		), nil

	case ShapeMesh:
		return buildMesh(spec, toWorld, baseDir, logger)

	default:
		return nil, fmt.Errorf("unknown shape type %q: %w", spec.Type, ErrInvalidScene)
	}
}

// quadricRange applies defaults to the clipping parameters and validates them
func quadricRange(spec shapeSpec, defaultZMin, defaultZMax float64) (zMin, zMax, phiMax float64, err error) {
	if spec.Radius <= 0 {
		return 0, 0, 0, fmt.Errorf("radius %g must be positive: %w", spec.Radius, ErrInvalidScene)
	}

	zMin, zMax, phiMax = defaultZMin, defaultZMax, 2*math.Pi
	if spec.ZMin != nil {
		zMin = *spec.ZMin
	}
	if spec.ZMax != nil {
		zMax = *spec.ZMax
	}
	if spec.PhiMax != nil {
		phiMax = degreesToRadians(*spec.PhiMax)
	}

	if zMin >= zMax {
		return 0, 0, 0, fmt.Errorf("z range [%g, %g] is empty: %w", zMin, zMax, ErrInvalidScene)
	}
	if phiMax <= 0 || phiMax > 2*math.Pi {
		return 0, 0, 0, fmt.Errorf("phi_max must be in (0, 360] degrees: %w", ErrInvalidScene)
	}
	return zMin, zMax, phiMax, nil
}

func buildMesh(spec shapeSpec, toWorld core.TransformChain, baseDir string, logger *zap.Logger) (geometry.Shape, error) {
	if spec.PLY != "" && len(spec.Vertices) > 0 {
		return nil, fmt.Errorf("mesh sets both ply and vertices: %w", ErrInvalidScene)
	}

	vertices := make([]core.Vec3, len(spec.Vertices))
	for i, v := range spec.Vertices {
		vertices[i] = v.toVec3()
	}
	indices := spec.Indices

	if spec.PLY != "" {
		path := spec.PLY
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := loaders.LoadPLY(path, logger)
		if err != nil {
			return nil, err
		}
		vertices, indices = data.Vertices, data.Faces
	}

	mesh, err := geometry.NewMesh(toWorld, vertices, indices)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return mesh, nil
}
