package material

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/math"
)

// MaterialID indexes a material in a scene's material list
type MaterialID int

// Background is the material used when a ray hits nothing. Paths end after
// collecting its emission.
const Background MaterialID = 0

// Material describes how a surface emits and reflects light
type Material struct {
	Emit        math.Vec3 // Emitted radiance, components >= 0
	Reflect     math.Vec3 // Per-channel attenuation, components in [0, 1]
	Specularity float32   // 0 = diffuse bounce, 1 = mirror bounce
}

// NewEmissive creates a material that only emits light
func NewEmissive(emit math.Vec3) Material {
	return Material{Emit: emit}
}

// NewDiffuse creates a non-emissive material with a purely random bounce
func NewDiffuse(reflect math.Vec3) Material {
	return Material{Reflect: reflect}
}

// NewSpecular creates a non-emissive material blending toward a mirror bounce
func NewSpecular(reflect math.Vec3, specularity float32) Material {
	return Material{Reflect: reflect, Specularity: specularity}
}

// Validate checks the material's value ranges
func (m Material) Validate() error {
	if !math.IsNonNegative(m.Emit) {
		return fmt.Errorf("emit %v has negative components", m.Emit)
	}
	if !math.InUnitRange(m.Reflect) {
		return fmt.Errorf("reflect %v outside [0,1]", m.Reflect)
	}
	if m.Specularity < 0 || m.Specularity > 1 {
		return fmt.Errorf("specularity %f outside [0,1]", m.Specularity)
	}
	return nil
}
