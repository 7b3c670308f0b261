package scene

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// LoadConfigFile reads a JSON scene file and builds the scene it describes.
// Mesh paths inside the file are resolved relative to the file.
func LoadConfigFile(path string, logger core.Logger) (*Scene, error) {
	cfg, err := loaders.LoadSceneConfig(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg, filepath.Dir(path), logger)
}

// FromConfig builds a scene from a parsed scene configuration. baseDir is
// used to resolve relative mesh paths.
func FromConfig(cfg *loaders.SceneConfig, baseDir string, logger core.Logger) (*Scene, error) {
	camera := renderer.NewCamera(cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.FOV*math.Pi/180)
	view, err := core.NewTransform(core.ViewTransform(cfg.Camera.From.Point(), cfg.Camera.To.Point(), cfg.Camera.Up.Vector()))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	camera.SetTransform(view)

	name := cfg.Name
	if name == "" {
		name = "json"
	}
	s := NewScene(name, camera, cfg.Light.Build())
	s.World.Fresnel = cfg.Fresnel
	s.MaxDepth = cfg.MaxDepth

	for i, shapeCfg := range cfg.Shapes {
		shape, err := shapeCfg.Build(baseDir, logger)
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, shapeCfg.Type, err)
		}
		s.World.AddShape(shape)
	}

	s.Preprocess(cfg.Divide)
	return s, nil
}
