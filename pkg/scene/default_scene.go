package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// SkyEmission is the radiance of the background in the built-in scenes
var SkyEmission = math.NewVec3(0.4, 0.4, 0.9)

// NewDefaultScene creates the default scene: a green ground plane, a dark
// sphere at the origin, a near-mirror sphere and a red emitter under a blue sky.
func NewDefaultScene() *Scene {
	materials := []material.Material{
		material.NewEmissive(SkyEmission),                        // 0: sky
		material.NewDiffuse(math.NewVec3(0.3, 0.9, 0.3)),         // 1: ground
		material.NewDiffuse(math.NewVec3(0.2, 0.2, 0.2)),         // 2: dark sphere
		material.NewSpecular(math.NewVec3(0.8, 0.95, 0.8), 0.94), // 3: mirror sphere
		material.NewEmissive(math.NewVec3(5.0, 1.0, 1.0)),        // 4: emitter
	}

	return &Scene{
		Name:      "default",
		Materials: materials,
		Planes: []geometry.Plane{
			geometry.NewPlane(math.NewVec3(0, 1, 0), 0, 1),
		},
		Spheres: []geometry.Sphere{
			geometry.NewSphere(math.NewVec3(0, 0, 0), 1.0, 2),
			geometry.NewSphere(math.NewVec3(3, 0, 2), 1.0, 3),
			geometry.NewSphere(math.NewVec3(2.5, 2, -5), 1.0, 4),
		},
		Camera: geometry.DefaultCameraConfig(),
	}
}

// NewScenarioScene creates the minimal ground-plus-sphere scene
func NewScenarioScene() *Scene {
	return &Scene{
		Name: "scenario",
		Materials: []material.Material{
			material.NewEmissive(SkyEmission),
			material.NewDiffuse(math.NewVec3(0.3, 0.9, 0.3)),
			material.NewDiffuse(math.NewVec3(0.2, 0.2, 0.2)),
		},
		Planes: []geometry.Plane{
			geometry.NewPlane(math.NewVec3(0, 1, 0), 0, 1),
		},
		Spheres: []geometry.Sphere{
			geometry.NewSphere(math.NewVec3(0, 0, 0), 1.0, 2),
		},
		Camera: geometry.DefaultCameraConfig(),
	}
}

// NewSkyScene creates a scene with nothing but the background
func NewSkyScene() *Scene {
	return &Scene{
		Name:      "sky",
		Materials: []material.Material{material.NewEmissive(SkyEmission)},
		Camera:    geometry.DefaultCameraConfig(),
	}
}
