package math

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a float32 3-component vector used for positions, directions and colors.
// Add, Sub, Mul, Dot, Cross and Len come from mgl32.
type Vec3 = mgl32.Vec3

// normalizeEpsilon is the shortest length NormalizeOrZero will divide by
const normalizeEpsilon = 0.0001

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Zero returns the zero vector
func Zero() Vec3 {
	return Vec3{}
}

// One returns a vector with every component set to 1
func One() Vec3 {
	return Vec3{1, 1, 1}
}

// Negate returns the vector pointing the opposite way
func Negate(v Vec3) Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Hadamard returns the component-wise product of two vectors
func Hadamard(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// LengthSquared returns the squared magnitude of the vector
func LengthSquared(v Vec3) float32 {
	return v.Dot(v)
}

// Lerp linearly interpolates from a (t=0) to b (t=1)
func Lerp(a, b Vec3, t float32) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// is too short to normalize safely.
func NormalizeOrZero(v Vec3) Vec3 {
	lenSq := LengthSquared(v)
	if lenSq > normalizeEpsilon*normalizeEpsilon {
		return v.Mul(1 / math32.Sqrt(lenSq))
	}
	return Vec3{}
}

// Reflect mirrors direction d about the unit normal n
func Reflect(d, n Vec3) Vec3 {
	return d.Sub(n.Mul(2 * d.Dot(n)))
}

// Clamp returns a vector with components clamped to [min, max]
func Clamp(v Vec3, min, max float32) Vec3 {
	return Vec3{
		math32.Min(math32.Max(v[0], min), max),
		math32.Min(math32.Max(v[1], min), max),
		math32.Min(math32.Max(v[2], min), max),
	}
}

// IsNonNegative reports whether every component is >= 0
func IsNonNegative(v Vec3) bool {
	return v[0] >= 0 && v[1] >= 0 && v[2] >= 0
}

// InUnitRange reports whether every component lies in [0, 1]
func InUnitRange(v Vec3) bool {
	return IsNonNegative(v) && v[0] <= 1 && v[1] <= 1 && v[2] <= 1
}
