package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

var builtIns = map[string]func() *Scene{
	"default":  NewDefaultScene,
	"scenario": NewScenarioScene,
	"sky":      NewSkyScene,
}

var builtInInfo = []SceneInfo{
	{
		ID:          "default",
		Name:        "Default Scene",
		DisplayName: "Default Scene",
		Description: "Ground plane, three spheres and an emitter under a blue sky",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "scenario",
		Name:        "Scenario",
		DisplayName: "Scenario",
		Description: "Ground plane and a single dark sphere",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "sky",
		Name:        "Sky",
		DisplayName: "Sky",
		Description: "Background only",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// Load resolves a scene by built-in name, by JSON scene name inside dir, or
// by a path to a .json file.
func Load(name, dir string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("empty scene name")
	}
	if ctor, ok := builtIns[name]; ok {
		return ctor(), nil
	}
	if strings.HasSuffix(name, ".json") {
		return LoadFile(name)
	}
	if dir != "" {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("unknown scene %q", name)
}

// ListJSONScenes scans dir for JSON scene files
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := parseJSONMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

func parseJSONMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	info := SceneInfo{
		ID:          nameWithoutExt,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	f, err := os.Open(filePath)
	if err != nil {
		return info, err
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return info, err
	}
	if cfg.Name != "" {
		info.Name = cfg.Name
		info.DisplayName = cfg.Name
	}
	if cfg.Group != "" {
		info.Group = cfg.Group
	}
	info.Description = cfg.Description
	return info, nil
}

// ListAllScenes returns both built-in and JSON scenes, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInInfo...), jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "ground-only" -> "Ground Only"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
