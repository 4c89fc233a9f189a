package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// Vector is a JSON vector that must have exactly three components
type Vector math.Vec3

func (v *Vector) UnmarshalJSON(data []byte) error {
	var components []float32
	if err := json.Unmarshal(data, &components); err != nil {
		return err
	}
	if len(components) != 3 {
		return fmt.Errorf("vector needs 3 components, got %d", len(components))
	}
	copy(v[:], components)
	return nil
}

// CameraCfg is the JSON form of a camera pose
type CameraCfg struct {
	Position Vector `json:"position"`
	LookAt   Vector `json:"lookAt"`
	Up       Vector `json:"up"`
}

// MaterialCfg is the JSON form of a material. The first entry is the background.
type MaterialCfg struct {
	Emit        Vector  `json:"emit"`
	Reflect     Vector  `json:"reflect"`
	Specularity float32 `json:"specularity,omitempty"`
}

type PlaneCfg struct {
	Normal   Vector  `json:"normal"`
	Offset   float32 `json:"offset"`
	Material int     `json:"material"`
}

type SphereCfg struct {
	Center   Vector  `json:"center"`
	Radius   float32 `json:"radius"`
	Material int     `json:"material"`
}

// Config is the on-disk scene description
type Config struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Group       string                 `json:"group,omitempty"`
	Camera      *CameraCfg    `json:"camera,omitempty"` // defaults to DefaultCameraConfig
	Materials   []MaterialCfg `json:"materials"`
	Planes      []PlaneCfg    `json:"planes,omitempty"`
	Spheres     []SphereCfg   `json:"spheres,omitempty"`
}

// ParseConfig decodes a scene description, rejecting unknown fields
func ParseConfig(r io.Reader) (Config, error) {
	var cfg Config
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode scene: %w", err)
	}
	return cfg, nil
}

// ToScene converts the description into a validated Scene
func (cfg Config) ToScene() (*Scene, error) {
	s := &Scene{
		Name:   cfg.Name,
		Camera: geometry.DefaultCameraConfig(),
	}
	if cfg.Camera != nil {
		s.Camera = geometry.CameraConfig{
			Position: math.Vec3(cfg.Camera.Position),
			LookAt:   math.Vec3(cfg.Camera.LookAt),
			Up:       math.Vec3(cfg.Camera.Up),
		}
	}

	for _, m := range cfg.Materials {
		s.Materials = append(s.Materials, material.Material{
			Emit:        math.Vec3(m.Emit),
			Reflect:     math.Vec3(m.Reflect),
			Specularity: m.Specularity,
		})
	}
	for _, p := range cfg.Planes {
		s.Planes = append(s.Planes, geometry.NewPlane(math.Vec3(p.Normal), p.Offset, material.MaterialID(p.Material)))
	}
	for _, sp := range cfg.Spheres {
		s.Spheres = append(s.Spheres, geometry.NewSphere(math.Vec3(sp.Center), sp.Radius, material.MaterialID(sp.Material)))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parse decodes and validates a scene
func Parse(r io.Reader) (*Scene, error) {
	cfg, err := ParseConfig(r)
	if err != nil {
		return nil, err
	}
	return cfg.ToScene()
}

// LoadFile reads a JSON scene from disk. The file name is used as the scene
// name when the file does not set one.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// FromScene builds the JSON description of a scene
func FromScene(s *Scene) Config {
	cfg := Config{Name: s.Name, Camera: &CameraCfg{
		Position: Vector(s.Camera.Position),
		LookAt:   Vector(s.Camera.LookAt),
		Up:       Vector(s.Camera.Up),
	}}
	for _, m := range s.Materials {
		cfg.Materials = append(cfg.Materials, MaterialCfg{Emit: Vector(m.Emit), Reflect: Vector(m.Reflect), Specularity: m.Specularity})
	}
	for _, p := range s.Planes {
		cfg.Planes = append(cfg.Planes, PlaneCfg{Normal: Vector(p.Normal), Offset: p.Offset, Material: int(p.Material)})
	}
	for _, sp := range s.Spheres {
		cfg.Spheres = append(cfg.Spheres, SphereCfg{Center: Vector(sp.Center), Radius: sp.Radius, Material: int(sp.Material)})
	}
	return cfg
}
