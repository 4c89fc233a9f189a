package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

func TestBuiltInScenesValidate(t *testing.T) {
	for name, ctor := range builtIns {
		t.Run(name, func(t *testing.T) {
			s := ctor()
			if err := s.Validate(); err != nil {
				t.Errorf("Expected built-in scene %q to validate, got %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
		})
	}
}

func TestScene_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Scene)
	}{
		{"no materials", func(s *Scene) { s.Materials = nil }},
		{"negative emission", func(s *Scene) { s.Materials[4].Emit = math.NewVec3(-1, 0, 0) }},
		{"reflect above one", func(s *Scene) { s.Materials[1].Reflect = math.NewVec3(0.3, 1.1, 0.3) }},
		{"zero plane normal", func(s *Scene) { s.Planes[0].Normal = math.Zero() }},
		{"plane material out of range", func(s *Scene) { s.Planes[0].Material = 9 }},
		{"negative material index", func(s *Scene) { s.Spheres[0].Material = -1 }},
		{"zero radius", func(s *Scene) { s.Spheres[1].Radius = 0 }},
		{"negative radius", func(s *Scene) { s.Spheres[2].Radius = -0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDefaultScene()
			tt.modify(s)

			err := s.Validate()
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestScene_BackgroundOnly(t *testing.T) {
	s := &Scene{Materials: []material.Material{material.NewEmissive(SkyEmission)}, Camera: geometry.DefaultCameraConfig()}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected background-only scene to validate, got %v", err)
	}
}
