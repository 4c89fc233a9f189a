package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// ErrInvalidScene is wrapped by every validation failure
var ErrInvalidScene = errors.New("invalid scene")

// Scene contains all the elements needed for rendering. It is never mutated
// once rendering starts and is shared by all workers without locking.
type Scene struct {
	Name      string
	Materials []material.Material // Index 0 is the background
	Planes    []geometry.Plane
	Spheres   []geometry.Sphere
	Camera    geometry.CameraConfig // Default pose for this scene
}

// Material returns the material at id
func (s *Scene) Material(id material.MaterialID) material.Material {
	return s.Materials[id]
}

// Validate checks the preconditions the renderer relies on
func (s *Scene) Validate() error {
	if len(s.Materials) == 0 {
		return fmt.Errorf("%w: no background material", ErrInvalidScene)
	}

	for i, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: material %d: %v", ErrInvalidScene, i, err)
		}
	}

	for i, p := range s.Planes {
		if math.LengthSquared(p.Normal) < 1e-8 {
			return fmt.Errorf("%w: plane %d has a zero-length normal", ErrInvalidScene, i)
		}
		if err := s.checkMaterial(p.Material); err != nil {
			return fmt.Errorf("%w: plane %d: %v", ErrInvalidScene, i, err)
		}
	}

	for i, sp := range s.Spheres {
		if sp.Radius <= 0 {
			return fmt.Errorf("%w: sphere %d has non-positive radius %f", ErrInvalidScene, i, sp.Radius)
		}
		if err := s.checkMaterial(sp.Material); err != nil {
			return fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
		}
	}

	return nil
}

func (s *Scene) checkMaterial(id material.MaterialID) error {
	if id < 0 || int(id) >= len(s.Materials) {
		return fmt.Errorf("material index %d out of range [0,%d)", id, len(s.Materials))
	}
	return nil
}
