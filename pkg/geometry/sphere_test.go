package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
)

func mustScale(t *testing.T, sx, sy, sz float64) core.Transform {
	t.Helper()
	s, err := core.Scale(sx, sy, sz)
	if err != nil {
		t.Fatalf("Scale(%g, %g, %g): %v", sx, sy, sz, err)
	}
	return s
}

func TestSphere_Intersect(t *testing.T) {
	unit := NewFullSphere(nil, 1.0)

	tests := []struct {
		name           string
		sphere         *Sphere
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedPoint  core.Vec3
		expectedNormal core.Vec3
	}{
		{
			name:           "Ray hits front of sphere",
			sphere:         unit,
			ray:            core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      4.0,
			expectedPoint:  core.NewVec3(0, 0, -1),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:      "Ray passes beside sphere",
			sphere:    unit,
			ray:       core.NewRay(core.NewVec3(2, 0, -5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:           "Ray starts inside sphere",
			sphere:         unit,
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      1.0,
			expectedPoint:  core.NewVec3(0, 0, 1),
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:      "Sphere behind ray origin",
			sphere:    unit,
			ray:       core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Hit beyond TMax",
			sphere:    unit,
			ray:       core.NewRayWithTMax(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 3),
			shouldHit: false,
		},
		{
			name:           "Translated sphere",
			sphere:         NewFullSphere(core.Chain(core.Translate(core.NewVec3(0, 0, 10))), 1.0),
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      9.0,
			expectedPoint:  core.NewVec3(0, 0, 9),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "Scaled sphere",
			sphere:         NewFullSphere(core.Chain(mustScale(t, 2, 2, 2)), 1.0),
			ray:            core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      8.0,
			expectedPoint:  core.NewVec3(0, 0, -2),
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := tt.sphere.Intersect(tt.ray)
			if hit.Hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit.Hit)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !hit.Point.Equals(tt.expectedPoint) {
				t.Errorf("Expected point %v, got %v", tt.expectedPoint, hit.Point)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if math.Abs(hit.Normal.Length()-1) > 1e-9 {
				t.Errorf("Normal not unit length: %v", hit.Normal)
			}
		})
	}
}

func TestSphere_PartialClipping(t *testing.T) {
	tests := []struct {
		name      string
		sphere    *Sphere
		ray       core.Ray
		shouldHit bool
		expectedU float64
		expectedV float64
	}{
		{
			name:      "Near root below ZMin is not retried",
			sphere:    NewSphere(nil, 1, -0.5, 0.5, 2*math.Pi),
			ray:       core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Equator hit inside z range",
			sphere:    NewSphere(nil, 1, -0.5, 0.5, 2*math.Pi),
			ray:       core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: true,
			expectedU: 0.5,
			expectedV: 0.5,
		},
		{
			name:      "Azimuth beyond PhiMax",
			sphere:    NewSphere(nil, 1, -1, 1, math.Pi/2),
			ray:       core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Azimuth zero inside PhiMax",
			sphere:    NewSphere(nil, 1, -1, 1, math.Pi/2),
			ray:       core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)),
			shouldHit: true,
			expectedU: 0,
			expectedV: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := tt.sphere.Intersect(tt.ray)
			if hit.Hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit.Hit)
			}
			if !tt.shouldHit {
				return
			}
			if math.Abs(hit.U-tt.expectedU) > 1e-9 || math.Abs(hit.V-tt.expectedV) > 1e-9 {
				t.Errorf("Expected (u, v) = (%f, %f), got (%f, %f)", tt.expectedU, tt.expectedV, hit.U, hit.V)
			}
		})
	}
}

// Normals go through the inverse matrix without a transpose, so a rotated
// sphere reports the normal rotated the opposite way.
func TestSphere_RotatedNormalUsesUntransposedInverse(t *testing.T) {
	sphere := NewFullSphere(core.Chain(core.RotateZ(math.Pi/2)), 1.0)
	ray := core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0))

	hit := sphere.Intersect(ray)
	if !hit.Hit {
		t.Fatal("Expected hit, got miss")
	}
	if !hit.Point.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected point (1, 0, 0), got %v", hit.Point)
	}
	if !hit.Normal.Equals(core.NewVec3(-1, 0, 0)) {
		t.Errorf("Expected normal (-1, 0, 0), got %v", hit.Normal)
	}
}

func TestSphere_OrdersZRange(t *testing.T) {
	swapped := NewSphere(nil, 1, 0.5, -0.5, 2*math.Pi)
	if swapped.ZMin != -0.5 || swapped.ZMax != 0.5 {
		t.Errorf("Expected z range [-0.5, 0.5], got [%f, %f]", swapped.ZMin, swapped.ZMax)
	}

	// The swapped band clips like the ordered one
	ordered := NewSphere(nil, 1, -0.5, 0.5, 2*math.Pi)
	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1)),
		core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
		core.NewRay(core.NewVec3(-5, 0, 0.9), core.NewVec3(1, 0, 0)),
	}
	for _, ray := range rays {
		a, b := swapped.Intersect(ray), ordered.Intersect(ray)
		if a.Hit != b.Hit || a.T != b.T {
			t.Errorf("Ray %v: swapped hit=%v t=%f, ordered hit=%v t=%f", ray, a.Hit, a.T, b.Hit, b.T)
		}
	}
}

func TestSphere_Bounds(t *testing.T) {
	sphere := NewSphere(core.Chain(core.Translate(core.NewVec3(1, 2, 3))), 1, -0.5, 1, 2*math.Pi)

	bound := sphere.Bound()
	if !bound.Min.Equals(core.NewVec3(-1, -1, -0.5)) || !bound.Max.Equals(core.NewVec3(1, 1, 1)) {
		t.Errorf("Unexpected object bound %v", bound)
	}

	world := sphere.WorldBound()
	if !world.Min.Equals(core.NewVec3(0, 1, 2.5)) || !world.Max.Equals(core.NewVec3(2, 3, 4)) {
		t.Errorf("Unexpected world bound %v", world)
	}
}
