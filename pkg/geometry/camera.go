package geometry

import (
	"errors"

	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// ErrDegenerateCamera is returned when the camera basis cannot be built
var ErrDegenerateCamera = errors.New("degenerate camera basis")

// CameraConfig contains the pose of a pinhole camera
type CameraConfig struct {
	Position math.Vec3 `json:"position"` // Eye position
	LookAt   math.Vec3 `json:"lookAt"`   // Point the camera faces
	Up       math.Vec3 `json:"up"`       // Approximate up direction
}

// DefaultCameraConfig returns the pose used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position: math.NewVec3(0, 1.83, 10),
		LookAt:   math.NewVec3(0, 0, 0),
		Up:       math.NewVec3(0, 1, 0),
	}
}

// Camera generates primary rays for a width x height film. It is read-only
// after construction and safe to share between workers.
type Camera struct {
	position math.Vec3
	right    math.Vec3
	up       math.Vec3
	forward  math.Vec3 // Points from the scene back toward the eye

	filmCenter     math.Vec3
	filmHalfWidth  float32
	filmHalfHeight float32

	width, height int
}

// NewCamera builds an orthonormal basis from the look-from/look-at pair and
// sizes a unit-distance film to the image aspect ratio.
func NewCamera(config CameraConfig, width, height int) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("camera film must have positive size")
	}

	forward := math.NormalizeOrZero(config.Position.Sub(config.LookAt))
	right := math.NormalizeOrZero(config.Up.Cross(forward))
	up := math.NormalizeOrZero(forward.Cross(right))
	if math.LengthSquared(forward) == 0 || math.LengthSquared(right) == 0 {
		return nil, ErrDegenerateCamera
	}

	const filmDistance = 1.0
	filmWidth := float32(1.0)
	filmHeight := float32(1.0)
	if width > height {
		filmHeight = filmWidth * float32(height) / float32(width)
	} else if height > width {
		filmWidth = filmHeight * float32(width) / float32(height)
	}

	return &Camera{
		position:       config.Position,
		right:          right,
		up:             up,
		forward:        forward,
		filmCenter:     config.Position.Sub(forward.Mul(filmDistance)),
		filmHalfWidth:  0.5 * filmWidth,
		filmHalfHeight: 0.5 * filmHeight,
		width:          width,
		height:         height,
	}, nil
}

// GetRay returns the primary ray through the center of pixel (x, y).
// Row 0 is the bottom of the film.
func (c *Camera) GetRay(x, y int) math.Ray {
	filmX := -1 + 2*(float32(x)+0.5)/float32(c.width)
	filmY := -1 + 2*(float32(y)+0.5)/float32(c.height)

	filmPoint := c.filmCenter.
		Add(c.right.Mul(filmX * c.filmHalfWidth)).
		Add(c.up.Mul(filmY * c.filmHalfHeight))

	return math.NewRay(c.position, math.NormalizeOrZero(filmPoint.Sub(c.position)))
}

// Basis returns the camera's right, up and forward axes
func (c *Camera) Basis() (right, up, forward math.Vec3) {
	return c.right, c.up, c.forward
}
