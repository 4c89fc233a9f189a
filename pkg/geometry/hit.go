package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

const (
	// Tolerance rejects near-parallel plane hits and degenerate quadratics
	Tolerance float32 = 0.0001
	// MinDistance keeps bounced rays from hitting the surface they left
	MinDistance float32 = 0.001
)

// Hit records the nearest intersection found along a ray
type Hit struct {
	Distance float32             // Ray parameter of the hit, +Inf when nothing was hit
	Material material.MaterialID // Material of the hit primitive
	Normal   math.Vec3           // Outward surface normal
}

// NoHit returns the hit record for a ray that reached the background
func NoHit() Hit {
	return Hit{Distance: math32.Inf(1), Material: material.Background}
}

// IsHit reports whether the record refers to a primitive
func (h Hit) IsHit() bool {
	return !math32.IsInf(h.Distance, 1)
}
