package renderer

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene           *scene.Scene
	camera          *geometry.Camera
	integrator      integrator.Integrator
	samplesPerPixel int
}

// NewTileRenderer creates a new tile renderer with the given scene, camera and integrator
func NewTileRenderer(s *scene.Scene, camera *geometry.Camera, integratorInst integrator.Integrator, samplesPerPixel int) *TileRenderer {
	return &TileRenderer{
		scene:           s,
		camera:          camera,
		integrator:      integratorInst,
		samplesPerPixel: max(1, samplesPerPixel),
	}
}

// RenderTile renders every pixel of the tile into rows, which must be the
// buffer slice backing exactly the tile's rows.
func (tr *TileRenderer) RenderTile(tile *Tile, rows []uint32, sampler core.Sampler) (TileStats, error) {
	if len(rows) != tile.Pixels() {
		return TileStats{}, fmt.Errorf("tile %d: row slice holds %d pixels, want %d", tile.ID, len(rows), tile.Pixels())
	}

	for y := tile.StartRow; y < tile.EndRow; y++ {
		offset := (y - tile.StartRow) * tile.Width
		for x := 0; x < tile.Width; x++ {
			ray := tr.camera.GetRay(x, y)
			color := integrator.SampleColor(tr.integrator, ray, tr.scene, sampler, tr.samplesPerPixel)
			rows[offset+x] = EncodePixel(color)
		}
	}

	pixels := tile.Pixels()
	return TileStats{Pixels: pixels, Samples: pixels * tr.samplesPerPixel}, nil
}
