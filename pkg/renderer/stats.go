package renderer

import (
	"fmt"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels   int           // Total number of pixels rendered
	TotalSamples  int           // Total number of camera samples traced
	TilesRendered int           // Number of tiles completed
	Workers       int           // Number of workers that ran
	WorkerTiles   []int         // Tiles completed by each worker, indexed by worker ID
	Elapsed       time.Duration // Wall time from first tile fetch to join
}

// SamplesPerSecond returns the overall sample throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// WorkerStats accumulates per-worker counters. Each worker owns one, so no locking.
type WorkerStats struct {
	TilesRendered int
	Pixels        int
	Samples       int
}

func (ws *WorkerStats) add(tile TileStats) {
	ws.TilesRendered++
	ws.Pixels += tile.Pixels
	ws.Samples += tile.Samples
}

// TileStats are the counters produced by rendering one tile
type TileStats struct {
	Pixels  int
	Samples int
}

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}
