package renderer

import "github.com/df07/go-tile-pathtracer/pkg/core"

// DefaultTileCount is the number of horizontal strips a frame is split into
const DefaultTileCount = 200

// Tile is a horizontal strip of whole rows [StartRow, EndRow)
type Tile struct {
	ID       int    // Unique tile identifier, also its index in the strip list
	StartRow int    // First row (inclusive)
	EndRow   int    // Last row (exclusive)
	Width    int    // Pixels per row
	Seed     uint32 // Tile-specific seed for deterministic results
}

// Rows returns the number of rows in the tile
func (t *Tile) Rows() int {
	return t.EndRow - t.StartRow
}

// Pixels returns the number of pixels in the tile
func (t *Tile) Pixels() int {
	return t.Rows() * t.Width
}

// NewTileStrips partitions height rows into count contiguous strips. The count
// is clamped to [1, height]; when height does not divide evenly the first
// height%count strips get one extra row. Every row belongs to exactly one strip.
func NewTileStrips(width, height, count int, seed uint32) []*Tile {
	if height <= 0 || width <= 0 {
		return nil
	}
	count = max(1, min(count, height))

	base := height / count
	extra := height % count

	tiles := make([]*Tile, 0, count)
	row := 0
	for id := 0; id < count; id++ {
		rows := base
		if id < extra {
			rows++
		}
		tiles = append(tiles, &Tile{
			ID:       id,
			StartRow: row,
			EndRow:   row + rows,
			Width:    width,
			Seed:     core.MixSeed(seed, id),
		})
		row += rows
	}

	return tiles
}
