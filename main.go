package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneName  string
	ScenesDir  string
	Width      int
	Height     int
	MaxBounces int
	Samples    int
	NumTiles   int
	NumWorkers int
	Seed       uint
	OutputPath string
	OutputDir  string
	PreviewW   int
	Upload     bool
	Help       bool
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseFlags(args []string) (Config, *flag.FlagSet, error) {
	defaults := renderer.DefaultRenderConfig()
	cfg := Config{OutputDir: getEnv("PATHTRACER_OUTPUT_DIR", "output")}

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.StringVar(&cfg.SceneName, "scene", "default", "Scene: built-in name, JSON scene name in -scenes, or path to a .json file")
	fs.StringVar(&cfg.ScenesDir, "scenes", "scenes", "Directory searched for JSON scenes")
	fs.IntVar(&cfg.Width, "width", defaults.Width, "Image width in pixels")
	fs.IntVar(&cfg.Height, "height", defaults.Height, "Image height in pixels")
	fs.IntVar(&cfg.MaxBounces, "bounces", defaults.MaxBounces, "Maximum path segments per sample")
	fs.IntVar(&cfg.Samples, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	fs.IntVar(&cfg.NumTiles, "tiles", defaults.NumTiles, "Number of horizontal tiles")
	fs.IntVar(&cfg.NumWorkers, "workers", 0, "Number of parallel workers (0 = logical core count)")
	fs.UintVar(&cfg.Seed, "seed", uint(defaults.Seed), "Base random seed")
	fs.StringVar(&cfg.OutputPath, "output", "", "Output file (default <output dir>/<scene>/render_<timestamp>.bmp)")
	fs.IntVar(&cfg.PreviewW, "preview", 0, "Also write a downscaled preview no wider than this (0 = none)")
	fs.BoolVar(&cfg.Upload, "upload", false, "Upload the render to S3 using S3_* environment variables")
	fs.BoolVar(&cfg.Help, "help", false, "Show help information")
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return cfg, fs, err
	}
	if cfg.Seed > uint(^uint32(0)) {
		return cfg, fs, fmt.Errorf("seed %d does not fit in 32 bits", cfg.Seed)
	}
	return cfg, fs, nil
}

func showHelp(fs *flag.FlagSet) {
	fmt.Println("Tile Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	fmt.Println("  default  - Ground plane, three spheres and an emitter under a blue sky")
	fmt.Println("  scenario - Ground plane and a single dark sphere")
	fmt.Println("  sky      - Background only")
	fmt.Println()
	fmt.Println("Output is a 32-bit BMP saved to output/<scene>/render_<timestamp>.bmp")
}

// createScene resolves a scene by name or file path
func createScene(name, dir string) (*scene.Scene, error) {
	return scene.Load(name, dir)
}

// sceneSlug returns a name usable as a directory for the scene
func sceneSlug(name string) string {
	if strings.HasSuffix(name, ".json") {
		return strings.TrimSuffix(filepath.Base(name), ".json")
	}
	return name
}

func buildRenderConfig(cfg Config, s *scene.Scene) renderer.RenderConfig {
	config := renderer.DefaultRenderConfig()
	config.Width = cfg.Width
	config.Height = cfg.Height
	config.MaxBounces = cfg.MaxBounces
	config.SamplesPerPixel = cfg.Samples
	config.NumTiles = cfg.NumTiles
	config.NumWorkers = cfg.NumWorkers
	config.Seed = uint32(cfg.Seed)
	config.Camera = s.Camera
	return config
}

func outputPaths(cfg Config, now time.Time) (render, preview string) {
	timestamp := now.Format("20060102_150405")
	render = cfg.OutputPath
	if render == "" {
		render = filepath.Join(cfg.OutputDir, sceneSlug(cfg.SceneName), fmt.Sprintf("render_%s.bmp", timestamp))
	}
	ext := filepath.Ext(render)
	preview = strings.TrimSuffix(render, ext) + "_preview" + ext
	return render, preview
}

func s3ConfigFromEnv() output.S3Config {
	return output.S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
	}
}

func writePreview(path string, buf *renderer.PixelBuffer, maxWidth int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create preview %s: %w", path, err)
	}
	defer file.Close()
	if err := output.WritePreview(file, buf, maxWidth); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return file.Close()
}

func run(ctx context.Context, cfg Config) error {
	selectedScene, err := createScene(cfg.SceneName, cfg.ScenesDir)
	if err != nil {
		return err
	}
	fmt.Printf("Using scene %s...\n", cfg.SceneName)

	logger := renderer.NewDefaultLogger()
	rt, err := renderer.NewRaytracer(selectedScene, buildRenderConfig(cfg, selectedScene), logger)
	if err != nil {
		return err
	}

	buf, stats, err := rt.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	fmt.Printf("Rendered %d pixels on %d workers in %v\n", stats.TotalPixels, stats.Workers, stats.Elapsed)

	renderPath, previewPath := outputPaths(cfg, time.Now())
	if err := output.SaveBMP(renderPath, buf); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", renderPath)

	if cfg.PreviewW > 0 {
		if err := writePreview(previewPath, buf, cfg.PreviewW); err != nil {
			return err
		}
		fmt.Printf("Preview saved as %s\n", previewPath)
	}

	if cfg.Upload {
		uploader, err := output.NewUploader(s3ConfigFromEnv(), logger)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(filepath.Join(sceneSlug(cfg.SceneName), filepath.Base(renderPath)))
		if err := uploader.UploadBMP(ctx, key, buf); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, fs, err := parseFlags(os.Args[1:])
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if cfg.Help || errors.Is(err, flag.ErrHelp) {
		showHelp(fs)
		return
	}

	fmt.Println("Starting Tile Path Tracer...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
