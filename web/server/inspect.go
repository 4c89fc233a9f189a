package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	"github.com/df07/go-tile-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Index        int                    `json:"index"`
	MaterialID   int                    `json:"materialId"`
	Point        [3]float32             `json:"point"`
	Normal       [3]float32             `json:"normal"`
	Distance     float32                `json:"distance"`
	Properties   map[string]interface{} `json:"properties"`
}

// InspectResult describes the first primitive hit by a primary ray
type InspectResult struct {
	Hit          geometry.Hit
	GeometryType string // "plane", "sphere" or "" on a miss
	Index        int    // Index into the scene's plane or sphere list
}

// inspectPixel casts the primary ray through the center of pixel (x, y) and
// reports the primitive it hits first. Row 0 is the bottom row.
func inspectPixel(sceneObj *scene.Scene, camera *geometry.Camera, x, y int) InspectResult {
	ray := camera.GetRay(x, y)
	hit := sceneObj.Intersect(ray)
	if !hit.IsHit() {
		return InspectResult{Hit: hit, Index: -1}
	}

	// Intersect does not say which primitive won, so find the one at the same distance
	for i, p := range sceneObj.Planes {
		if t, ok := p.Hit(ray, hit.Distance+geometry.Tolerance); ok && t == hit.Distance {
			return InspectResult{Hit: hit, GeometryType: "plane", Index: i}
		}
	}
	for i, sp := range sceneObj.Spheres {
		if t, ok := sp.Hit(ray, hit.Distance+geometry.Tolerance); ok && t == hit.Distance {
			return InspectResult{Hit: hit, GeometryType: "sphere", Index: i}
		}
	}
	return InspectResult{Hit: hit, Index: -1}
}

func materialProperties(m material.Material) map[string]interface{} {
	return map[string]interface{}{
		"emit":        [3]float32(m.Emit),
		"reflect":     [3]float32(m.Reflect),
		"specularity": m.Specularity,
	}
}

func geometryProperties(sceneObj *scene.Scene, result InspectResult) map[string]interface{} {
	switch result.GeometryType {
	case "plane":
		p := sceneObj.Planes[result.Index]
		return map[string]interface{}{
			"normal": [3]float32(p.Normal),
			"offset": p.Offset,
		}
	case "sphere":
		sp := sceneObj.Spheres[result.Index]
		return map[string]interface{}{
			"center": [3]float32(sp.Center),
			"radius": sp.Radius,
		}
	}
	return map[string]interface{}{}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	width, err := parseIntParam(values, "width", 320, 1, MaxImageSize)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	height, err := parseIntParam(values, "height", 180, 1, MaxImageSize)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		return errorJSON(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Unknown scene: "+sceneName)
	}
	camera, err := geometry.NewCamera(sceneObj.Camera, width, height)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Invalid camera: %v", err))
	}

	result := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if !result.Hit.IsHit() {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, Index: -1, Properties: map[string]interface{}{}})
	}

	ray := camera.GetRay(pixelX, pixelY)
	response := InspectResponse{
		Hit:          true,
		GeometryType: result.GeometryType,
		Index:        result.Index,
		MaterialID:   int(result.Hit.Material),
		Point:        [3]float32(ray.At(result.Hit.Distance)),
		Normal:       [3]float32(result.Hit.Normal),
		Distance:     result.Hit.Distance,
		Properties: map[string]interface{}{
			"material": materialProperties(sceneObj.Material(result.Hit.Material)),
			"geometry": geometryProperties(sceneObj, result),
		},
	}
	return c.JSON(http.StatusOK, response)
}
