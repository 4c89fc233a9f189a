package renderer

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// SRGBFromLinear applies the sRGB transfer function to a linear channel value.
// Input is clamped to [0,1] first.
func SRGBFromLinear(l float32) float32 {
	if l < 0 {
		l = 0
	}
	if l >= 1 {
		// 1.055 - 0.055 rounds below 1 in float32
		return 1
	}
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1.0/2.4) - 0.055
}

// ToneMap converts a linear radiance estimate to sRGB-encoded channels in [0,1]
func ToneMap(linear math.Vec3) math.Vec3 {
	return math.NewVec3(
		SRGBFromLinear(linear.X()),
		SRGBFromLinear(linear.Y()),
		SRGBFromLinear(linear.Z()),
	)
}

// PackBGRA8 packs sRGB channels into a 32-bit word laid out as B, G, R, A
// from the least significant byte. Alpha is always 255.
func PackBGRA8(c math.Vec3) uint32 {
	c = math.Clamp(c, 0, 1)
	r := uint32(255 * c.X())
	g := uint32(255 * c.Y())
	b := uint32(255 * c.Z())
	return b | g<<8 | r<<16 | 0xFF<<24
}

// UnpackBGRA8 splits a packed pixel into its channels
func UnpackBGRA8(p uint32) (r, g, b, a uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p), uint8(p >> 24)
}

// EncodePixel tone maps a linear color and packs it for the pixel buffer
func EncodePixel(linear math.Vec3) uint32 {
	return PackBGRA8(ToneMap(linear))
}
