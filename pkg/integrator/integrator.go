package integrator

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/math"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray
	RayColor(ray math.Ray, scene *scene.Scene, sampler core.Sampler) math.Vec3
}

// SampleColor averages samples independent evaluations of the same ray
func SampleColor(integrator Integrator, ray math.Ray, scene *scene.Scene, sampler core.Sampler, samples int) math.Vec3 {
	if samples <= 1 {
		return integrator.RayColor(ray, scene, sampler)
	}

	colorAccum := math.Zero()
	for i := 0; i < samples; i++ {
		colorAccum = colorAccum.Add(integrator.RayColor(ray, scene, sampler))
	}
	return colorAccum.Mul(1 / float32(samples))
}
