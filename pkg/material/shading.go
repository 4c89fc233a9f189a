package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// ScatterResult contains the response of a material to an incoming ray
type ScatterResult struct {
	Emitted     math.Vec3 // Radiance emitted at the hit
	Attenuation math.Vec3 // Factor applied to light gathered by later bounces
	Direction   math.Vec3 // Outgoing ray direction (unit length or zero)
	Terminate   bool      // True when the path must stop after this hit
}

// Shade computes emission, attenuation and the next direction for a hit on
// material m (stored at index id). Background hits terminate without
// drawing random numbers.
func Shade(m Material, id MaterialID, incoming, normal math.Vec3, sampler core.Sampler) ScatterResult {
	if id == Background {
		return ScatterResult{Emitted: m.Emit, Terminate: true}
	}

	cosAttenuation := math32.Max(0, math.Negate(incoming).Dot(normal))

	x := sampler.Bilateral()
	y := sampler.Bilateral()
	z := sampler.Bilateral()
	randomBounce := math.NormalizeOrZero(normal.Add(math.NewVec3(x, y, z)))
	pureBounce := math.Reflect(incoming, normal)

	return ScatterResult{
		Emitted:     m.Emit,
		Attenuation: m.Reflect.Mul(cosAttenuation),
		Direction:   math.NormalizeOrZero(math.Lerp(randomBounce, pureBounce, m.Specularity)),
	}
}
