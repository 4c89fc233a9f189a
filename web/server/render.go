package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string `json:"scene"`      // Scene name (e.g., "default")
	Width      int    `json:"width"`      // Image width
	Height     int    `json:"height"`     // Image height
	MaxBounces int    `json:"maxBounces"` // Maximum path segments per sample
	Samples    int    `json:"samples"`    // Samples per pixel
	Tiles      int    `json:"tiles"`      // Horizontal tile count
	Seed       uint32 `json:"seed"`       // Base random seed
	Format     string `json:"format"`     // "bmp" or "json"
	Upload     bool   `json:"upload"`     // Also store the bitmap in S3
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	TilesRendered    int     `json:"tilesRendered"`
	Workers          int     `json:"workers"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

// RenderResponse is the body of a format=json render
type RenderResponse struct {
	RenderID  string           `json:"renderId"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	ImageData string           `json:"imageData"` // Base64 encoded BMP
	Stats     Stats            `json:"stats"`
	ElapsedMs int64            `json:"elapsedMs"`
	Console   []ConsoleMessage `json:"console"`
	UploadKey string           `json:"uploadKey,omitempty"`
}

// handleRender renders the requested scene and returns the bitmap
func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}
	if req.Upload && s.uploader == nil {
		return errorJSON(c, http.StatusBadRequest, "Uploads are not configured")
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unknown scene: "+req.Scene)
	}

	renderID := fmt.Sprintf("render-%d", s.renderSeq.Add(1))
	consoleChan := make(chan ConsoleMessage, 256)
	logger := NewWebLogger(renderID, consoleChan)

	config := renderer.DefaultRenderConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.MaxBounces = req.MaxBounces
	config.SamplesPerPixel = req.Samples
	config.NumTiles = req.Tiles
	config.Seed = req.Seed
	config.Camera = sceneObj.Camera

	rt, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	// Use request context to stop between tiles when the client disconnects
	ctx := c.Request().Context()
	startTime := time.Now()
	buf, stats, err := rt.Render(ctx)
	if err != nil {
		var failed *renderer.RenderFailedError
		if errors.As(err, &failed) {
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		}
		return errorJSON(c, http.StatusServiceUnavailable, fmt.Sprintf("Render cancelled: %v", err))
	}
	elapsed := time.Since(startTime)

	var bitmap bytes.Buffer
	if err := output.WriteBMP(&bitmap, buf); err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	uploadKey := ""
	if req.Upload {
		uploadKey = fmt.Sprintf("web/%s/%s.bmp", req.Scene, renderID)
		if err := s.uploader.UploadBMP(ctx, uploadKey, buf); err != nil {
			return errorJSON(c, http.StatusBadGateway, err.Error())
		}
	}

	c.Response().Header().Set("X-Render-Id", renderID)
	c.Response().Header().Set("X-Render-Seed", strconv.FormatUint(uint64(rt.Config().Seed), 10))
	c.Response().Header().Set("X-Render-Time-Ms", strconv.FormatInt(elapsed.Milliseconds(), 10))

	if req.Format == "json" {
		return c.JSON(http.StatusOK, RenderResponse{
			RenderID:  renderID,
			Width:     buf.Width,
			Height:    buf.Height,
			ImageData: base64.StdEncoding.EncodeToString(bitmap.Bytes()),
			Stats:     toStats(stats),
			ElapsedMs: elapsed.Milliseconds(),
			Console:   drainConsole(consoleChan),
			UploadKey: uploadKey,
		})
	}
	return c.Blob(http.StatusOK, "image/bmp", bitmap.Bytes())
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		TilesRendered:    stats.TilesRendered,
		Workers:          stats.Workers,
		SamplesPerSecond: stats.SamplesPerSecond(),
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "default", Format: "bmp"}
	if sceneName := values.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	defaults := renderer.DefaultRenderConfig()
	var err error
	if req.Width, err = parseIntParam(values, "width", 320, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 180, 1, MaxImageSize); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(values, "bounces", defaults.MaxBounces, 0, MaxBounces); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", defaults.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, err
	}
	if req.Tiles, err = parseIntParam(values, "tiles", defaults.NumTiles, 1, MaxTiles); err != nil {
		return nil, err
	}
	if req.Seed, err = parseSeedParam(values, "seed", defaults.Seed); err != nil {
		return nil, err
	}

	switch format := values.Get("format"); format {
	case "", "bmp":
	case "json":
		req.Format = format
	default:
		return nil, fmt.Errorf("format must be bmp or json, got: %s", format)
	}

	if upload := values.Get("upload"); upload != "" {
		if req.Upload, err = strconv.ParseBool(upload); err != nil {
			return nil, fmt.Errorf("invalid upload: %s", upload)
		}
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func parseSeedParam(values url.Values, key string, defaultValue uint32) (uint32, error) {
	value := values.Get(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed == 0 {
		return core.DefaultSeed, nil
	}
	return uint32(parsed), nil
}
