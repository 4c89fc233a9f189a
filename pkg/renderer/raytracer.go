package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// ErrInvalidConfig is wrapped by every RenderConfig validation failure
var ErrInvalidConfig = errors.New("invalid render config")

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width           int                   // Image width in pixels
	Height          int                   // Image height in pixels
	MaxBounces      int                   // Maximum path segments traced per sample
	SamplesPerPixel int                   // Camera samples averaged per pixel
	Camera          geometry.CameraConfig // Pinhole placement
	NumTiles        int                   // Horizontal strips (0 = DefaultTileCount)
	NumWorkers      int                   // Parallel workers (0 = logical core count)
	Seed            uint32                // Base seed mixed into every tile
}

// DefaultRenderConfig returns the settings of the reference render
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:           1280,
		Height:          720,
		MaxBounces:      8,
		SamplesPerPixel: 1,
		Camera:          geometry.DefaultCameraConfig(),
		NumTiles:        DefaultTileCount,
		Seed:            core.DefaultSeed,
	}
}

// Validate checks the configuration before any work is scheduled
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxBounces < 0:
		return fmt.Errorf("%w: max bounces %d", ErrInvalidConfig, c.MaxBounces)
	case c.NumTiles < 0:
		return fmt.Errorf("%w: tile count %d", ErrInvalidConfig, c.NumTiles)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene into a packed pixel buffer with a tile scheduler
type Raytracer struct {
	scene        *scene.Scene
	config       RenderConfig
	camera       *geometry.Camera
	tileRenderer *TileRenderer
	logger       core.Logger
}

// NewRaytracer validates the scene and config and prepares a raytracer.
// A nil logger discards output.
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: nil scene", scene.ErrInvalidScene)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	camera, err := geometry.NewCamera(config.Camera, config.Width, config.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = NopLogger{}
	}

	pt := integrator.NewPathTracingIntegrator(config.MaxBounces)
	return &Raytracer{
		scene:        s,
		config:       config,
		camera:       camera,
		tileRenderer: NewTileRenderer(s, camera, pt, config.SamplesPerPixel),
		logger:       logger,
	}, nil
}

// SetIntegrator replaces the integrator used for every pixel
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.tileRenderer = NewTileRenderer(rt.scene, rt.camera, integratorInst, rt.config.SamplesPerPixel)
}

// Config returns the validated configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Render schedules every tile across the worker pool and blocks until all
// workers have joined. On failure the partial buffer is still returned.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	cfg := rt.config

	numTiles := cfg.NumTiles
	if numTiles == 0 {
		numTiles = DefaultTileCount
	}
	tiles := NewTileStrips(cfg.Width, cfg.Height, numTiles, cfg.Seed)

	numWorkers := cfg.NumWorkers
	if numWorkers == 0 {
		numWorkers = DefaultWorkerCount()
	}
	numWorkers = min(numWorkers, len(tiles))

	buffer := NewPixelBuffer(cfg.Width, cfg.Height)
	pool := NewWorkerPool(NewWorkQueue(tiles), buffer, rt.tileRenderer.RenderTile, numWorkers, rt.logger)

	rt.logger.Printf("Rendering %dx%d: %d tiles, %d workers, %d bounces, %d samples/pixel\n",
		cfg.Width, cfg.Height, len(tiles), numWorkers, cfg.MaxBounces, cfg.SamplesPerPixel)

	start := time.Now()
	workerStats, err := pool.Run(ctx)
	stats := RenderStats{
		Workers:     numWorkers,
		WorkerTiles: make([]int, len(workerStats)),
		Elapsed:     time.Since(start),
	}
	for i, ws := range workerStats {
		stats.TotalPixels += ws.Pixels
		stats.TotalSamples += ws.Samples
		stats.TilesRendered += ws.TilesRendered
		stats.WorkerTiles[i] = ws.TilesRendered
	}

	if err != nil {
		rt.logger.Printf("Render stopped after %d of %d tiles: %v\n", stats.TilesRendered, len(tiles), err)
		return buffer, stats, err
	}

	rt.logger.Printf("Render completed in %v (%d samples, %.0f samples/s)\n",
		stats.Elapsed, stats.TotalSamples, stats.SamplesPerSecond())
	return buffer, stats, nil
}
