package geometry

import (
	"testing"

	"github.com/chewxy/math32"

	mathpkg "github.com/df07/go-tile-pathtracer/pkg/math"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), 0, 1)

	// Ray shooting down from above
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 1, 0), mathpkg.NewVec3(0, -1, 0))

	hitT, isHit := plane.Hit(ray, math32.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math32.Abs(hitT-1) > 1e-6 {
		t.Errorf("Expected t=1, got t=%f", hitT)
	}
}

func TestPlane_Hit_Offset(t *testing.T) {
	// n·p + d = 0 with d=-2 is the plane y=2
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), -2, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 5, 0), mathpkg.NewVec3(0, -1, 0))

	hitT, isHit := plane.Hit(ray, math32.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math32.Abs(hitT-3) > 1e-6 {
		t.Errorf("Expected t=3, got t=%f", hitT)
	}
}

func TestPlane_Hit_ParallelRay(t *testing.T) {
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), 0, 1)

	tests := []struct {
		name      string
		direction mathpkg.Vec3
	}{
		{"exactly parallel", mathpkg.NewVec3(1, 0, 0)},
		{"within tolerance", mathpkg.NormalizeOrZero(mathpkg.NewVec3(1, 0.00005, 0))},
		{"diagonal tangent", mathpkg.NormalizeOrZero(mathpkg.NewVec3(1, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := mathpkg.NewRay(mathpkg.NewVec3(0, 1, 0), tt.direction)
			if hitT, isHit := plane.Hit(ray, math32.Inf(1)); isHit {
				t.Errorf("Expected miss for parallel ray, but got hit at t=%f", hitT)
			}
		})
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), 0, 1)

	// Ray shooting up from above (intersection behind ray origin)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 1, 0), mathpkg.NewVec3(0, 1, 0))

	if hitT, isHit := plane.Hit(ray, math32.Inf(1)); isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hitT)
	}
}

func TestPlane_Hit_SelfIntersectionGuard(t *testing.T) {
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), 0, 1)

	// Origin sits on the surface, as after a bounce
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 0.0005, 0), mathpkg.NewVec3(0, -1, 0))

	if hitT, isHit := plane.Hit(ray, math32.Inf(1)); isHit {
		t.Errorf("Expected hit closer than MinDistance to be rejected, got t=%f", hitT)
	}
}

func TestPlane_Hit_Closest(t *testing.T) {
	plane := NewPlane(mathpkg.NewVec3(0, 1, 0), 0, 1)
	ray := mathpkg.NewRay(mathpkg.NewVec3(0, 2, 0), mathpkg.NewVec3(0, -1, 0))

	if _, isHit := plane.Hit(ray, 1.5); isHit {
		t.Error("Expected miss when a closer hit is already known")
	}
}
