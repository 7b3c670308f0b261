package scene

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

// ErrUnknownScene is returned when a scene id matches no built-in scene
var ErrUnknownScene = errors.New("unknown scene")

// ConfigScenePrefix marks a scene id that names a JSON scene file
const ConfigScenePrefix = "json:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Load
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to JSON file (json type only)
}

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Three spheres in a room of flattened spheres"}, NewDefaultScene},
	{SceneInfo{ID: "reflection", Name: "Reflection and Refraction", Description: "Striped room with a mirror floor and glass spheres"}, NewReflectionScene},
	{SceneInfo{ID: "glass-bubble", Name: "Glass Bubble", Description: "Hollow glass sphere in front of a checkered wall"}, NewGlassBubbleScene},
	{SceneInfo{ID: "shadow-puppets", Name: "Shadow Puppets", Description: "Hand of grouped spheres casting a shadow"}, NewShadowPuppetsScene},
	{SceneInfo{ID: "hexagon", Name: "Hexagons", Description: "Grid of nested-group hexagons, suited to Divide"}, NewHexagonScene},
	{SceneInfo{ID: "shapes", Name: "Shapes", Description: "Cubes, cylinders, cones and a triangle"}, NewShapesScene},
	{SceneInfo{ID: "triangle-mesh", Name: "Triangle Meshes", Description: "Box, pyramid and smooth icosahedron meshes"}, NewTriangleMeshScene},
}

// ListBuiltinScenes returns the built-in scenes in display order
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtinScenes))
	for i, b := range builtinScenes {
		infos[i] = b.info
		infos[i].Type = "builtin"
	}
	return infos
}

// ListConfigScenes scans dir for JSON scene files. A missing directory is
// not an error.
func ListConfigScenes(dir string, logger core.Logger) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := configSceneInfo(filePath)
		if err != nil {
			// Log warning but continue processing other files
			logger.Printf("Warning: failed to read scene %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// configSceneInfo reads the name and description of a JSON scene file,
// falling back to a name derived from the file name
func configSceneInfo(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       ConfigScenePrefix + filePath,
		Name:     titleCase(base),
		Type:     "json",
		FilePath: filePath,
	}

	cfg, err := loaders.LoadSceneConfig(filePath)
	if err != nil {
		return info, err
	}
	if cfg.Name != "" {
		info.Name = cfg.Name
	}
	info.Description = cfg.Description
	return info, nil
}

// Load builds the scene with the given id: a built-in scene name, or
// ConfigScenePrefix followed by the path of a JSON scene file
func Load(id string, logger core.Logger) (*Scene, error) {
	if path, ok := strings.CutPrefix(id, ConfigScenePrefix); ok {
		return LoadConfigFile(path, logger)
	}

	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// titleCase converts a filename-style string to title case
// e.g., "glass-bubble" -> "Glass Bubble"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
