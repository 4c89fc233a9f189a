package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// Plane is the set of points p with Normal·p + Offset = 0
type Plane struct {
	Normal   math.Vec3           // Unit normal, not renormalized here
	Offset   float32             // Signed offset along the normal
	Material material.MaterialID // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(normal math.Vec3, offset float32, mat material.MaterialID) Plane {
	return Plane{Normal: normal, Offset: offset, Material: mat}
}

// Hit returns the ray parameter of the intersection if it lies beyond
// MinDistance and before closest.
func (p Plane) Hit(ray math.Ray, closest float32) (float32, bool) {
	// Calculate denominator: dot product of plane normal and ray direction
	denominator := p.Normal.Dot(ray.Direction)

	// Ray is parallel to the plane
	if math32.Abs(denominator) <= Tolerance {
		return 0, false
	}

	t := (-p.Offset - p.Normal.Dot(ray.Origin)) / denominator
	if t <= MinDistance || t >= closest {
		return 0, false
	}
	return t, true
}
