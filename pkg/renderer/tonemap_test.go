package renderer

import (
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/math"
)

func TestSRGBFromLinear_Endpoints(t *testing.T) {
	tests := []struct {
		name   string
		linear float32
		want   float32
	}{
		{"zero", 0, 0},
		{"one", 1, 1},
		{"below range clamps", -3, 0},
		{"above range clamps", 7, 1},
		{"linear segment", 0.001, 0.01292},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SRGBFromLinear(tt.linear)
			if diff := got - tt.want; diff > 1e-6 || diff < -1e-6 {
				t.Errorf("SRGBFromLinear(%v) = %v, want %v", tt.linear, got, tt.want)
			}
		})
	}
}

func TestSRGBFromLinear_Monotonic(t *testing.T) {
	prev := SRGBFromLinear(0)
	for i := 1; i <= 1000; i++ {
		l := float32(i) / 1000
		v := SRGBFromLinear(l)
		if v < prev {
			t.Fatalf("sRGB not monotonic at %v: %v < %v", l, v, prev)
		}
		if v < 0 || v > 1 {
			t.Fatalf("sRGB(%v) = %v outside [0,1]", l, v)
		}
		prev = v
	}
}

func TestPackBGRA8(t *testing.T) {
	tests := []struct {
		name  string
		color math.Vec3
		want  uint32
	}{
		{"black", math.NewVec3(0, 0, 0), 0xFF000000},
		{"white", math.NewVec3(1, 1, 1), 0xFFFFFFFF},
		{"red", math.NewVec3(1, 0, 0), 0xFFFF0000},
		{"green", math.NewVec3(0, 1, 0), 0xFF00FF00},
		{"blue", math.NewVec3(0, 0, 1), 0xFF0000FF},
		{"clamped", math.NewVec3(-1, 2, 0.5), 0xFF00FF7F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PackBGRA8(tt.color); got != tt.want {
				t.Errorf("PackBGRA8(%v) = %#08x, want %#08x", tt.color, got, tt.want)
			}
		})
	}
}

func TestUnpackBGRA8(t *testing.T) {
	r, g, b, a := UnpackBGRA8(0x80112233)
	if r != 0x11 || g != 0x22 || b != 0x33 || a != 0x80 {
		t.Errorf("UnpackBGRA8 = (%#x, %#x, %#x, %#x)", r, g, b, a)
	}
}

func TestEncodePixel_Black(t *testing.T) {
	if got := EncodePixel(math.Zero()); got != 0xFF000000 {
		t.Errorf("black encodes to %#08x", got)
	}
}
