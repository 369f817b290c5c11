package renderer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

var (
	// ErrInvalidDimensions is returned when the image has no pixels
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	// ErrUnknownShading is returned for a shading mode name that is not recognized
	ErrUnknownShading = errors.New("unknown shading mode")
)

// Shading selects how a hit is turned into a pixel color
type Shading string

const (
	ShadingNormal Shading = "normal" // Surface normal mapped to RGB
	ShadingUV     Shading = "uv"     // Surface parameterization in R and G
	ShadingDepth  Shading = "depth"  // Ray distance as gray, near is bright
)

// ParseShading validates a shading mode name
func ParseShading(name string) (Shading, error) {
	switch s := Shading(name); s {
	case ShadingNormal, ShadingUV, ShadingDepth:
		return s, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownShading)
	}
}

// Config contains ray casting configuration
type Config struct {
	Shading    Shading
	DepthRange float64 // Distance mapped to black in depth shading
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Shading:    ShadingNormal,
		DepthRange: 20,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() Camera
	GetShapes() []geometry.Shape
	GetBackgroundColors() (top, bottom core.RGB)
}

// Raycaster casts one primary ray per pixel and visualizes the first hit
type Raycaster struct {
	scene  Scene
	width  int
	height int
	config Config
	logger *zap.Logger
}

// NewRaycaster creates a new raycaster that logs nothing
func NewRaycaster(scene Scene, width, height int) *Raycaster {
	return &Raycaster{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
}

// SetConfig updates the ray casting configuration. A non-positive depth
// range keeps the default.
func (rc *Raycaster) SetConfig(config Config) {
	if config.DepthRange <= 0 {
		config.DepthRange = DefaultConfig().DepthRange
	}
	rc.config = config
}

// SetLogger replaces the logger used for render progress
func (rc *Raycaster) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	rc.logger = logger
}

// HitWorld returns the closest hit among shapes
func HitWorld(shapes []geometry.Shape, ray core.Ray) geometry.Interaction {
	hit, _ := HitWorldIndex(shapes, ray)
	return hit
}

// HitWorldIndex returns the closest hit among shapes and the index of the
// shape that produced it, or -1 on a miss. Each hit shortens the ray so
// later shapes only report nearer intersections.
func HitWorldIndex(shapes []geometry.Shape, ray core.Ray) (geometry.Interaction, int) {
	closest, index := geometry.Miss(), -1
	for i, shape := range shapes {
		if hit := shape.Intersect(ray); hit.Hit {
			closest, index = hit, i
			ray.TMax = hit.T
		}
	}
	return closest, index
}

// RayColor returns the color seen along ray and whether it hit anything
func (rc *Raycaster) RayColor(ray core.Ray) (core.RGB, bool) {
	hit := HitWorld(rc.scene.GetShapes(), ray)
	if !hit.Hit {
		return rc.backgroundGradient(ray), false
	}
	return rc.shade(hit), true
}

func (rc *Raycaster) shade(hit geometry.Interaction) core.RGB {
	switch rc.config.Shading {
	case ShadingUV:
		return core.NewRGB(hit.U, hit.V, 0)
	case ShadingDepth:
		g := 1 - hit.T/rc.config.DepthRange
		return core.NewRGB(g, g, g)
	default:
		// Map each normal component from [-1, 1] to [0, 1]
		return core.RGBFromVec3(hit.Normal.Add(core.One()).Multiply(0.5))
	}
}

// backgroundGradient returns a gradient color based on ray direction
func (rc *Raycaster) backgroundGradient(r core.Ray) core.RGB {
	topColor, bottomColor := rc.scene.GetBackgroundColors()

	unitDirection := r.Direction.Normalize()
	if math.IsNaN(unitDirection.Y) {
		return bottomColor
	}

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)
	return bottomColor.Lerp(topColor, t)
}

// Render casts one ray through the center of every pixel. Cancelling ctx
// stops the render between rows.
func (rc *Raycaster) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rc.width <= 0 || rc.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%dx%d: %w", rc.width, rc.height, ErrInvalidDimensions)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rc.width, rc.height))
	camera := rc.scene.GetCamera()
	stats := RenderStats{}

	rc.logger.Debug("render started",
		zap.Int("width", rc.width),
		zap.Int("height", rc.height),
		zap.Int("shapes", len(rc.scene.GetShapes())),
		zap.String("shading", string(rc.config.Shading)))

	for j := 0; j < rc.height; j++ {
		if err := ctx.Err(); err != nil {
			rc.logger.Warn("render cancelled", zap.Int("row", j), zap.Error(err))
			stats.Elapsed = time.Since(start)
			return img, stats, fmt.Errorf("render cancelled at row %d: %w", j, err)
		}
		for i := 0; i < rc.width; i++ {
			x, y := FilmSample(i, j, rc.width, rc.height)
			color, hit := rc.RayColor(camera.GenerateRay(x, y))
			img.SetRGBA(i, j, color.ToRGBA())

			stats.Pixels++
			stats.Rays++
			if hit {
				stats.Hits++
			}
		}
	}

	stats.Luminance = CalculateAverageLuminance(img)
	stats.Elapsed = time.Since(start)
	rc.logger.Info("render finished",
		zap.Int("pixels", stats.Pixels),
		zap.Int("hits", stats.Hits),
		zap.Float64("hit_ratio", stats.HitRatio()),
		zap.Float64("luminance", stats.Luminance),
		zap.Duration("elapsed", stats.Elapsed))
	return img, stats, nil
}
