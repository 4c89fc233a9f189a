package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   math.Vec3
	Radius   float32
	Material material.MaterialID
}

// NewSphere creates a new sphere
func NewSphere(center math.Vec3, radius float32, mat material.MaterialID) Sphere {
	return Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit returns the ray parameter of the nearest intersection beyond
// MinDistance and before closest. The near root is preferred; the far root
// is used when the ray starts inside the sphere.
func (s Sphere) Hit(ray math.Ray, closest float32) (float32, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	denominator := 2 * a
	if discriminant < 0 || math32.Abs(denominator) <= Tolerance {
		return 0, false
	}

	sqrtD := math32.Sqrt(discriminant)
	tNear := (-b - sqrtD) / denominator
	tFar := (-b + sqrtD) / denominator

	t := tFar
	if tNear > MinDistance && tNear < tFar {
		t = tNear
	}

	if t <= MinDistance || t >= closest {
		return 0, false
	}
	return t, true
}

// NormalAt returns the outward normal for the hit at parameter t
func (s Sphere) NormalAt(ray math.Ray, t float32) math.Vec3 {
	return math.NormalizeOrZero(ray.Direction.Mul(t).Add(ray.Origin.Sub(s.Center)))
}
