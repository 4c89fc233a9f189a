package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// Intersect finds the nearest primitive along the ray by testing every plane
// and then every sphere. Ties keep the earlier primitive. A ray that hits
// nothing returns geometry.NoHit.
func (s *Scene) Intersect(ray math.Ray) geometry.Hit {
	hit := geometry.NoHit()

	for _, plane := range s.Planes {
		if t, ok := plane.Hit(ray, hit.Distance); ok {
			hit = geometry.Hit{Distance: t, Material: plane.Material, Normal: plane.Normal}
		}
	}

	for _, sphere := range s.Spheres {
		if t, ok := sphere.Hit(ray, hit.Distance); ok {
			hit = geometry.Hit{Distance: t, Material: sphere.Material, Normal: sphere.NormalAt(ray, t)}
		}
	}

	return hit
}
