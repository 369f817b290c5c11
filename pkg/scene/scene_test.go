package scene

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/renderer"
)

func TestBuiltinScenes_Render(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name, 32, 24, nil)
			if err != nil {
				t.Fatalf("Load(%q): %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.Width != 32 || s.Height != 24 {
				t.Errorf("Expected 32x24, got %dx%d", s.Width, s.Height)
			}
			if s.Camera == nil || len(s.Shapes) == 0 {
				t.Fatal("Scene has no camera or no shapes")
			}

			_, stats, err := renderer.NewRaycaster(s, s.Width, s.Height).Render(context.Background())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if stats.Hits == 0 {
				t.Error("Expected the camera to see some geometry")
			}
		})
	}
}

func TestBundledSceneFiles_Render(t *testing.T) {
	scenes, err := ListScenes(filepath.Join("..", "..", "scenes"), nil)
	if err != nil {
		t.Fatalf("ListScenes: %v", err)
	}

	files := 0
	for _, info := range scenes {
		if info.Type != TypeFile {
			continue
		}
		files++
		t.Run(info.ID, func(t *testing.T) {
			s, err := Load(info.ID, 24, 24, nil)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			_, stats, err := renderer.NewRaycaster(s, s.Width, s.Height).Render(context.Background())
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if stats.Hits == 0 {
				t.Error("Expected the camera to see some geometry")
			}
		})
	}
	if files == 0 {
		t.Error("Expected bundled scene files")
	}
}

func TestScene_GetPrimitiveCount(t *testing.T) {
	s, err := NewMeshScene(16, 16)
	if err != nil {
		t.Fatalf("NewMeshScene: %v", err)
	}

	// ground 2 + box 12 + pyramid 6 + icosahedron 20
	if got := s.GetPrimitiveCount(); got != 40 {
		t.Errorf("Expected 40 primitives, got %d", got)
	}
}

func TestScene_WorldBound(t *testing.T) {
	s, err := NewDefaultScene(16, 16)
	if err != nil {
		t.Fatalf("NewDefaultScene: %v", err)
	}

	bound := s.WorldBound()
	if !bound.Min.Equals(core.NewVec3(-50, 0, -50)) || !bound.Max.Equals(core.NewVec3(50, 1, 50)) {
		t.Errorf("Unexpected world bound %v", bound)
	}

	if (&Scene{}).WorldBound() != (core.AABB{}) {
		t.Error("Empty scene should have an empty bound")
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Kind:   CameraPerspective,
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	}

	merged := MergeCameraConfig(base, CameraConfig{Center: core.NewVec3(1, 2, 3), VFov: 60})
	if merged.Center != core.NewVec3(1, 2, 3) || merged.VFov != 60 {
		t.Errorf("Overrides not applied: %+v", merged)
	}
	if merged.Kind != CameraPerspective || merged.LookAt != base.LookAt || merged.Up != base.Up {
		t.Errorf("Unset fields should keep the base values: %+v", merged)
	}
}

func TestNewCamera(t *testing.T) {
	frame := CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name    string
		config  CameraConfig
		wantErr bool
	}{
		{name: "Perspective", config: MergeCameraConfig(frame, CameraConfig{Kind: CameraPerspective, VFov: 45})},
		{name: "Orthographic", config: MergeCameraConfig(frame, CameraConfig{Kind: CameraOrthographic, OrthoHeight: 2})},
		{name: "Missing field of view", config: MergeCameraConfig(frame, CameraConfig{Kind: CameraPerspective}), wantErr: true},
		{name: "Missing film height", config: MergeCameraConfig(frame, CameraConfig{Kind: CameraOrthographic}), wantErr: true},
		{name: "Unknown kind", config: MergeCameraConfig(frame, CameraConfig{Kind: "fisheye", VFov: 45}), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(tt.config, 1)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidScene) {
					t.Errorf("Expected ErrInvalidScene, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCamera: %v", err)
			}

			ray := camera.GenerateRay(0, 0)
			if !ray.Origin.Equals(core.NewVec3(0, 0, 5)) {
				t.Errorf("Expected ray from the camera center, got %v", ray.Origin)
			}
			if !ray.Direction.Normalize().Equals(core.NewVec3(0, 0, -1)) {
				t.Errorf("Expected ray toward the target, got %v", ray.Direction)
			}
		})
	}
}

func TestNewGroundMesh(t *testing.T) {
	ground, err := NewGroundMesh(core.NewVec3(0, -1, 0), 10)
	if err != nil {
		t.Fatalf("NewGroundMesh: %v", err)
	}

	hit := ground.Intersect(core.NewRay(core.NewVec3(1, 5, 0.5), core.NewVec3(0, -1, 0)))
	if !hit.Hit {
		t.Fatal("Expected ray from above to hit the ground")
	}
	if math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected t=6, got %f", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 1, 0)) {
		t.Errorf("Expected upward normal, got %v", hit.Normal)
	}

	if miss := ground.Intersect(core.NewRay(core.NewVec3(6, 5, 0), core.NewVec3(0, -1, 0))); miss.Hit {
		t.Error("Expected ray beyond the edge to miss")
	}
}

func TestIcosahedronVerticesOnSphere(t *testing.T) {
	mesh, err := createIcosahedronMesh(core.NewVec3(1, 2, 3), 0.8, core.Vec3{})
	if err != nil {
		t.Fatalf("createIcosahedronMesh: %v", err)
	}
	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.Triangle(i)
		for _, v := range []core.Vec3{tri.V0, tri.V1, tri.V2} {
			if d := v.Subtract(core.NewVec3(1, 2, 3)).Length(); math.Abs(d-0.8) > 1e-9 {
				t.Fatalf("Vertex %v at distance %f from center, want 0.8", v, d)
			}
		}
	}
}
