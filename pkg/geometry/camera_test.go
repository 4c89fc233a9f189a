package geometry

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	mathpkg "github.com/df07/go-tile-pathtracer/pkg/math"
)

func TestCamera_Basis(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig(), 1280, 720)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	right, up, forward := camera.Basis()

	for name, v := range map[string]mathpkg.Vec3{"right": right, "up": up, "forward": forward} {
		if math32.Abs(v.Len()-1) > 1e-5 {
			t.Errorf("Expected unit %s axis, got length %f", name, v.Len())
		}
	}
	if math32.Abs(right.Dot(up)) > 1e-5 || math32.Abs(right.Dot(forward)) > 1e-5 || math32.Abs(up.Dot(forward)) > 1e-5 {
		t.Errorf("Expected orthogonal basis, got right=%v up=%v forward=%v", right, up, forward)
	}
	if !right.ApproxEqualThreshold(mathpkg.NewVec3(1, 0, 0), 1e-5) {
		t.Errorf("Expected right axis (1,0,0), got %v", right)
	}
	if up[1] <= 0 {
		t.Errorf("Expected up axis to point up, got %v", up)
	}
}

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	config := CameraConfig{
		Position: mathpkg.NewVec3(0, 0, 5),
		LookAt:   mathpkg.NewVec3(0, 0, 0),
		Up:       mathpkg.NewVec3(0, 1, 0),
	}
	// Odd resolution puts a pixel center exactly on the optical axis
	camera, err := NewCamera(config, 101, 101)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	ray := camera.GetRay(50, 50)
	if !ray.Direction.ApproxEqualThreshold(mathpkg.NewVec3(0, 0, -1), 1e-5) {
		t.Errorf("Expected center ray along -z, got %v", ray.Direction)
	}
	if !ray.Origin.ApproxEqualThreshold(config.Position, 0) {
		t.Errorf("Expected rays to start at the camera position, got %v", ray.Origin)
	}
}

func TestCamera_RowZeroIsBottom(t *testing.T) {
	camera, err := NewCamera(DefaultCameraConfig(), 64, 32)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bottom := camera.GetRay(32, 0)
	top := camera.GetRay(32, 31)
	if bottom.Direction[1] >= top.Direction[1] {
		t.Errorf("Expected row 0 to look lower than the last row: bottom=%v top=%v", bottom.Direction, top.Direction)
	}

	left := camera.GetRay(0, 16)
	right := camera.GetRay(63, 16)
	if left.Direction[0] >= right.Direction[0] {
		t.Errorf("Expected column 0 to look left of the last column: left=%v right=%v", left.Direction, right.Direction)
	}
}

func TestCamera_AspectRatio(t *testing.T) {
	config := CameraConfig{
		Position: mathpkg.NewVec3(0, 0, 1),
		LookAt:   mathpkg.NewVec3(0, 0, 0),
		Up:       mathpkg.NewVec3(0, 1, 0),
	}
	camera, err := NewCamera(config, 200, 100)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if camera.filmHalfWidth != 0.5 || camera.filmHalfHeight != 0.25 {
		t.Errorf("Expected film half extents (0.5, 0.25), got (%f, %f)", camera.filmHalfWidth, camera.filmHalfHeight)
	}
}

func TestCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		config CameraConfig
	}{
		{"eye equals target", CameraConfig{Position: mathpkg.NewVec3(1, 1, 1), LookAt: mathpkg.NewVec3(1, 1, 1), Up: mathpkg.NewVec3(0, 1, 0)}},
		{"up parallel to view", CameraConfig{Position: mathpkg.NewVec3(0, 5, 0), LookAt: mathpkg.NewVec3(0, 0, 0), Up: mathpkg.NewVec3(0, 1, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(tt.config, 10, 10)
			if !errors.Is(err, ErrDegenerateCamera) {
				t.Errorf("Expected ErrDegenerateCamera, got %v", err)
			}
		})
	}
}
