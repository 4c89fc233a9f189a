package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-tile-pathtracer/pkg/output"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// Request limits for the render and inspect endpoints
const (
	MaxImageSize = 1920
	MaxSamples   = 64
	MaxBounces   = 32
	MaxTiles     = 2000
)

// Server handles web requests for the tile path tracer
type Server struct {
	port      int
	scenesDir string
	uploader  *output.Uploader // nil disables ?upload=true
	echo      *echo.Echo
	renderSeq atomic.Int64
}

// NewServer creates a new web server. JSON scenes are looked up in scenesDir.
func NewServer(port int, scenesDir string, uploader *output.Uploader) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		uploader:  uploader,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(corsMiddleware)

	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/inspect", s.handleInspect)

	s.echo = e
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}

		return next(c)
	}
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists built-in and JSON scenes
func (s *Server) handleScenes(c echo.Context) error {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, response)
}

// handleSceneConfig returns a scene's description with the default render
// settings and request limits
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	defaults := renderer.DefaultRenderConfig()
	response := map[string]interface{}{
		"scene":       sceneName,
		"description": scene.FromScene(sceneObj),
		"defaults": map[string]interface{}{
			"maxBounces":      defaults.MaxBounces,
			"samplesPerPixel": defaults.SamplesPerPixel,
			"tiles":           defaults.NumTiles,
			"seed":            defaults.Seed,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": MaxImageSize},
			"height":  map[string]int{"min": 1, "max": MaxImageSize},
			"samples": map[string]int{"min": 1, "max": MaxSamples},
			"bounces": map[string]int{"min": 0, "max": MaxBounces},
			"tiles":   map[string]int{"min": 1, "max": MaxTiles},
		},
	}
	return c.JSON(http.StatusOK, response)
}

// createScene resolves a built-in or JSON scene by name. Paths are refused so
// requests cannot read files outside the scenes directory.
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	if strings.ContainsAny(sceneName, `/\`) || strings.HasSuffix(sceneName, ".json") {
		return nil, fmt.Errorf("scene must be a name, got %q", sceneName)
	}
	return scene.Load(sceneName, s.scenesDir)
}
