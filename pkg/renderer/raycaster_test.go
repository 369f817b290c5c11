package renderer

import (
	"context"
	"errors"
	"image/color"
	"math"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera          Camera
	shapes          []geometry.Shape
	backgroundColor core.RGB
}

func (m MockScene) GetCamera() Camera           { return m.camera }
func (m MockScene) GetShapes() []geometry.Shape { return m.shapes }
func (m MockScene) GetBackgroundColors() (core.RGB, core.RGB) {
	return m.backgroundColor, m.backgroundColor
}

func sphereAt(z float64) *geometry.Sphere {
	return geometry.NewFullSphere(core.Chain(core.Translate(core.NewVec3(0, 0, z))), 1)
}

// sphereScene has a unit sphere 5 units in front of a 90 degree pinhole camera
func sphereScene() MockScene {
	return MockScene{
		camera:          NewPerspectiveCamera(nil, math.Pi/2, math.Pi/2),
		shapes:          []geometry.Shape{sphereAt(5)},
		backgroundColor: core.Blue(),
	}
}

func TestHitWorld_ClosestShapeWins(t *testing.T) {
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	tests := []struct {
		name          string
		shapes        []geometry.Shape
		shouldHit     bool
		expectedT     float64
		expectedIndex int
	}{
		{name: "No shapes", shapes: nil, shouldHit: false, expectedIndex: -1},
		{name: "Near shape first", shapes: []geometry.Shape{sphereAt(5), sphereAt(10)}, shouldHit: true, expectedT: 4, expectedIndex: 0},
		{name: "Near shape last", shapes: []geometry.Shape{sphereAt(10), sphereAt(5)}, shouldHit: true, expectedT: 4, expectedIndex: 1},
		{name: "Near shape between", shapes: []geometry.Shape{sphereAt(10), sphereAt(5), sphereAt(8)}, shouldHit: true, expectedT: 4, expectedIndex: 1},
		{name: "Shape behind the ray", shapes: []geometry.Shape{sphereAt(-5)}, shouldHit: false, expectedIndex: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := HitWorld(tt.shapes, ray)
			if hit.Hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit.Hit)
			}
			if tt.shouldHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if _, index := HitWorldIndex(tt.shapes, ray); index != tt.expectedIndex {
				t.Errorf("Expected shape index %d, got %d", tt.expectedIndex, index)
			}
		})
	}
}

func TestRaycaster_Render(t *testing.T) {
	rc := NewRaycaster(sphereScene(), 5, 5)
	rc.SetLogger(zaptest.NewLogger(t))

	img, stats, err := rc.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if stats.Pixels != 25 || stats.Rays != 25 {
		t.Errorf("Expected 25 pixels and rays, got %d and %d", stats.Pixels, stats.Rays)
	}
	if stats.Hits == 0 || stats.Hits == 25 {
		t.Errorf("Expected some but not all rays to hit, got %d", stats.Hits)
	}
	if want := CalculateAverageLuminance(img); stats.Luminance != want || want <= 0 {
		t.Errorf("Expected luminance %f, got %f", want, stats.Luminance)
	}

	// Center pixel sees the sphere head on; the normal (0, 0, -1) maps to (0.5, 0.5, 0)
	if got := img.RGBAAt(2, 2); got != (color.RGBA{128, 128, 0, 255}) {
		t.Errorf("Unexpected center pixel %v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("Expected background in corner, got %v", got)
	}
}

func TestRaycaster_DepthShading(t *testing.T) {
	rc := NewRaycaster(sphereScene(), 5, 5)
	// Zero falls back to the default range of 20
	rc.SetConfig(Config{Shading: ShadingDepth})

	img, _, err := rc.Render(context.Background())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Hit at t=4 of a range of 20 leaves 0.8 brightness
	if got := img.RGBAAt(2, 2); got != (color.RGBA{204, 204, 204, 255}) {
		t.Errorf("Unexpected center pixel %v", got)
	}
}

func TestRaycaster_RenderErrors(t *testing.T) {
	t.Run("Empty image", func(t *testing.T) {
		rc := NewRaycaster(sphereScene(), 0, 10)
		if _, _, err := rc.Render(context.Background()); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("Expected ErrInvalidDimensions, got %v", err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rc := NewRaycaster(sphereScene(), 4, 4)
		_, stats, err := rc.Render(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
		if stats.Pixels != 0 {
			t.Errorf("Expected no pixels rendered, got %d", stats.Pixels)
		}
	})
}

func TestParseShading(t *testing.T) {
	tests := []struct {
		input    string
		expected Shading
		wantErr  bool
	}{
		{input: "normal", expected: ShadingNormal},
		{input: "uv", expected: ShadingUV},
		{input: "depth", expected: ShadingDepth},
		{input: "phong", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseShading(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownShading) {
					t.Errorf("Expected ErrUnknownShading, got %v", err)
				}
				return
			}
			if err != nil || got != tt.expected {
				t.Errorf("ParseShading(%q) = %q, %v", tt.input, got, err)
			}
		})
	}
}
