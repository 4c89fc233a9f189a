package integrator

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// PathTracingIntegrator implements bounce-limited unidirectional path tracing
type PathTracingIntegrator struct {
	maxBounces int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxBounces int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxBounces: maxBounces}
}

// RayColor follows the ray for at most maxBounces intersections, collecting
// emission weighted by the attenuation accumulated so far. The path stops at
// the first background hit or when the budget runs out.
func (pt *PathTracingIntegrator) RayColor(ray math.Ray, s *scene.Scene, sampler core.Sampler) math.Vec3 {
	color := math.Zero()
	attenuation := math.One()

	for bounce := 0; bounce < pt.maxBounces; bounce++ {
		hit := s.Intersect(ray)
		scatter := material.Shade(s.Material(hit.Material), hit.Material, ray.Direction, hit.Normal, sampler)

		color = color.Add(math.Hadamard(attenuation, scatter.Emitted))
		if scatter.Terminate {
			break
		}

		attenuation = math.Hadamard(attenuation, scatter.Attenuation)
		ray = math.NewRay(ray.At(hit.Distance), scatter.Direction)
	}

	return color
}
