package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene file defaults
const (
	DefaultConfigWidth  = 400
	DefaultConfigHeight = 200
	DefaultConfigFOV    = 60.0 // degrees
)

// Vec3 is an [x, y, z] triple; its meaning (point, vector, color) depends on the field
type Vec3 [3]float64

func (v Vec3) Point() core.Point   { return core.NewPoint(v[0], v[1], v[2]) }
func (v Vec3) Vector() core.Vector { return core.NewVector(v[0], v[1], v[2]) }
func (v Vec3) Color() core.Color   { return core.NewColor(v[0], v[1], v[2]) }

// SceneConfig is the JSON description of a complete scene
type SceneConfig struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Camera      CameraConfig  `json:"camera"`
	Light       *LightConfig  `json:"light"`
	Shapes      []ShapeConfig `json:"shapes"`
	Divide      int           `json:"divide,omitempty"`   // BVH threshold, 0 disables
	Fresnel     bool          `json:"fresnel,omitempty"`  // blend reflection and refraction with Schlick
	MaxDepth    int           `json:"maxDepth,omitempty"` // recursion budget, 0 uses the renderer default
}

type CameraConfig struct {
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
	FOV    float64 `json:"fov,omitempty"` // degrees
	From   Vec3    `json:"from"`
	To     Vec3    `json:"to"`
	Up     Vec3    `json:"up,omitempty"` // defaults to +y
}

type LightConfig struct {
	Position  Vec3  `json:"position"`
	Intensity *Vec3 `json:"intensity,omitempty"` // defaults to white
}

// Build creates the point light
func (lc *LightConfig) Build() *lights.PointLight {
	intensity := core.White
	if lc.Intensity != nil {
		intensity = lc.Intensity.Color()
	}
	return lights.NewPointLight(lc.Position.Point(), intensity)
}

// TransformStep is one transformation. Exactly one field must be set.
// Rotations are in degrees.
type TransformStep struct {
	Translate *Vec3       `json:"translate,omitempty"`
	Scale     *Vec3       `json:"scale,omitempty"`
	RotateX   *float64    `json:"rotateX,omitempty"`
	RotateY   *float64    `json:"rotateY,omitempty"`
	RotateZ   *float64    `json:"rotateZ,omitempty"`
	Shear     *[6]float64 `json:"shear,omitempty"` // xy, xz, yx, yz, zx, zy
}

// Matrix returns the step as a matrix
func (ts TransformStep) Matrix() (core.Matrix, error) {
	const k = math.Pi / 180

	var steps []core.Matrix
	if ts.Translate != nil {
		steps = append(steps, core.Translation(ts.Translate[0], ts.Translate[1], ts.Translate[2]))
	}
	if ts.Scale != nil {
		steps = append(steps, core.Scaling(ts.Scale[0], ts.Scale[1], ts.Scale[2]))
	}
	if ts.RotateX != nil {
		steps = append(steps, core.RotationX(*ts.RotateX*k))
	}
	if ts.RotateY != nil {
		steps = append(steps, core.RotationY(*ts.RotateY*k))
	}
	if ts.RotateZ != nil {
		steps = append(steps, core.RotationZ(*ts.RotateZ*k))
	}
	if ts.Shear != nil {
		s := ts.Shear
		steps = append(steps, core.Shearing(s[0], s[1], s[2], s[3], s[4], s[5]))
	}

	if len(steps) != 1 {
		return core.Matrix{}, fmt.Errorf("transform step must set exactly one operation, got %d", len(steps))
	}
	return steps[0], nil
}

// TransformConfig lists transformation steps in the order they are applied
type TransformConfig []TransformStep

// Build composes the steps and rejects singular results
func (tc TransformConfig) Build() (core.Transform, error) {
	matrices := make([]core.Matrix, len(tc))
	for i, step := range tc {
		m, err := step.Matrix()
		if err != nil {
			return core.Transform{}, fmt.Errorf("transform step %d: %w", i, err)
		}
		matrices[i] = m
	}
	return core.NewTransform(core.Chain(matrices...))
}

type PatternConfig struct {
	Type      string          `json:"type"` // stripe, gradient, ring, checker
	A         Vec3            `json:"a"`
	B         Vec3            `json:"b"`
	Transform TransformConfig `json:"transform,omitempty"`
}

// Build creates the pattern
func (pc PatternConfig) Build() (material.Pattern, error) {
	a, b := pc.A.Color(), pc.B.Color()

	var pattern material.Pattern
	switch pc.Type {
	case "stripe":
		pattern = material.NewStripePattern(a, b)
	case "gradient":
		pattern = material.NewGradientPattern(a, b)
	case "ring":
		pattern = material.NewRingPattern(a, b)
	case "checker":
		pattern = material.NewCheckerPattern(a, b)
	default:
		return nil, fmt.Errorf("unknown pattern type %q", pc.Type)
	}

	t, err := pc.Transform.Build()
	if err != nil {
		return nil, fmt.Errorf("pattern transform: %w", err)
	}
	pattern.SetTransform(t)
	return pattern, nil
}

// MaterialConfig overrides fields of the default material. Unset fields
// keep their default values.
type MaterialConfig struct {
	Color           *Vec3          `json:"color,omitempty"`
	Ambient         *float64       `json:"ambient,omitempty"`
	Diffuse         *float64       `json:"diffuse,omitempty"`
	Specular        *float64       `json:"specular,omitempty"`
	Shininess       *float64       `json:"shininess,omitempty"`
	Reflective      *float64       `json:"reflective,omitempty"`
	Transparency    *float64       `json:"transparency,omitempty"`
	RefractiveIndex *float64       `json:"refractiveIndex,omitempty"`
	Pattern         *PatternConfig `json:"pattern,omitempty"`
}

// Build validates and constructs the material on top of the default material
func (mc *MaterialConfig) Build() (material.Material, error) {
	return mc.buildFrom(material.DefaultMaterial())
}

// buildFrom overrides the fields of base that are set in the config
func (mc *MaterialConfig) buildFrom(base material.Material) (material.Material, error) {
	m := base
	if mc == nil {
		return m, nil
	}

	if mc.Color != nil {
		m.Color = mc.Color.Color()
	}
	for _, field := range []struct {
		value *float64
		dst   *float64
	}{
		{mc.Ambient, &m.Ambient},
		{mc.Diffuse, &m.Diffuse},
		{mc.Specular, &m.Specular},
		{mc.Shininess, &m.Shininess},
		{mc.Reflective, &m.Reflective},
		{mc.Transparency, &m.Transparency},
		{mc.RefractiveIndex, &m.RefractiveIndex},
	} {
		if field.value != nil {
			*field.dst = *field.value
		}
	}

	if m.Reflective < 0 || m.Reflective > 1 {
		return m, fmt.Errorf("reflective must be in [0, 1], got %g", m.Reflective)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return m, fmt.Errorf("transparency must be in [0, 1], got %g", m.Transparency)
	}
	if m.RefractiveIndex < 1 {
		return m, fmt.Errorf("refractiveIndex must be >= 1, got %g", m.RefractiveIndex)
	}

	if mc.Pattern != nil {
		pattern, err := mc.Pattern.Build()
		if err != nil {
			return m, err
		}
		m.Pattern = pattern
	}
	return m, nil
}

// ShapeConfig describes one shape. Type is one of sphere, glass-sphere,
// plane, cube, cylinder, cone, triangle, smooth-triangle, group, obj or ply.
type ShapeConfig struct {
	Type      string          `json:"type"`
	Transform TransformConfig `json:"transform,omitempty"`
	Material  *MaterialConfig `json:"material,omitempty"`

	// cylinder and cone; unset limits are infinite
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`
	Closed  bool     `json:"closed,omitempty"`

	// triangle and smooth-triangle
	Points  []Vec3 `json:"points,omitempty"`
	Normals []Vec3 `json:"normals,omitempty"`

	Children []ShapeConfig `json:"children,omitempty"` // group
	File     string        `json:"file,omitempty"`     // obj and ply
	Divide   int           `json:"divide,omitempty"`   // BVH threshold for groups and meshes
}

// Build validates and constructs the shape. Relative mesh paths are resolved
// against baseDir.
func (sc ShapeConfig) Build(baseDir string, logger core.Logger) (geometry.Shape, error) {
	t, err := sc.Transform.Build()
	if err != nil {
		return nil, err
	}

	var shape geometry.Shape
	switch sc.Type {
	case "group":
		shape, err = sc.buildGroup(baseDir, logger)
	case "obj", "ply":
		shape, err = sc.buildMesh(baseDir, logger)
	default:
		shape, err = sc.buildPrimitive()
	}
	if err != nil {
		return nil, err
	}

	shape.SetTransform(t)
	return shape, nil
}

func (sc ShapeConfig) buildPrimitive() (geometry.Primitive, error) {
	minimum, maximum := math.Inf(-1), math.Inf(1)
	if sc.Minimum != nil {
		minimum = *sc.Minimum
	}
	if sc.Maximum != nil {
		maximum = *sc.Maximum
	}

	var (
		p   geometry.Primitive
		err error
	)
	switch sc.Type {
	case "sphere":
		p = geometry.NewSphere()
	case "glass-sphere":
		p = geometry.NewGlassSphere()
	case "plane":
		p = geometry.NewPlane()
	case "cube":
		p = geometry.NewCube()
	case "cylinder":
		p = geometry.NewTruncatedCylinder(minimum, maximum, sc.Closed)
	case "cone":
		p = geometry.NewTruncatedCone(minimum, maximum, sc.Closed)
	case "triangle":
		if len(sc.Points) != 3 {
			return nil, fmt.Errorf("triangle needs 3 points, got %d", len(sc.Points))
		}
		p, err = geometry.NewTriangle(sc.Points[0].Point(), sc.Points[1].Point(), sc.Points[2].Point())
	case "smooth-triangle":
		if len(sc.Points) != 3 || len(sc.Normals) != 3 {
			return nil, fmt.Errorf("smooth-triangle needs 3 points and 3 normals, got %d and %d", len(sc.Points), len(sc.Normals))
		}
		p, err = geometry.NewSmoothTriangle(
			sc.Points[0].Point(), sc.Points[1].Point(), sc.Points[2].Point(),
			sc.Normals[0].Vector(), sc.Normals[1].Vector(), sc.Normals[2].Vector())
	default:
		return nil, fmt.Errorf("unknown shape type %q", sc.Type)
	}
	if err != nil {
		return nil, err
	}

	// Config fields override the primitive's own default material
	m, err := sc.Material.buildFrom(p.Material())
	if err != nil {
		return nil, fmt.Errorf("material: %w", err)
	}
	p.SetMaterial(m)
	return p, nil
}

func (sc ShapeConfig) buildGroup(baseDir string, logger core.Logger) (*geometry.Group, error) {
	if sc.Material != nil {
		return nil, errors.New("a group has no surface; set materials on its children")
	}

	g := geometry.NewGroup()
	for i, childCfg := range sc.Children {
		child, err := childCfg.Build(baseDir, logger)
		if err != nil {
			return nil, fmt.Errorf("child %d (%s): %w", i, childCfg.Type, err)
		}
		g.AddChild(child)
	}

	if sc.Divide > 0 {
		g.Divide(sc.Divide)
	}
	return g, nil
}

func (sc ShapeConfig) buildMesh(baseDir string, logger core.Logger) (*geometry.Group, error) {
	if sc.File == "" {
		return nil, fmt.Errorf("%s shape needs a file", sc.Type)
	}
	path := sc.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	var m *material.Material
	if sc.Material != nil {
		built, err := sc.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("material: %w", err)
		}
		m = &built
	}

	if sc.Type == "ply" {
		mesh, err := LoadPLYMesh(path, &geometry.TriangleMeshOptions{Material: m, Divide: sc.Divide}, logger)
		if err != nil {
			return nil, err
		}
		return mesh.Group, nil
	}

	model, err := LoadOBJ(path, logger)
	if err != nil {
		return nil, err
	}
	g := model.ToGroup()
	if m != nil {
		applyMaterial(g, *m)
	}
	if sc.Divide > 0 {
		g.Divide(sc.Divide)
	}
	return g, nil
}

// applyMaterial sets m on every primitive below g
func applyMaterial(g *geometry.Group, m material.Material) {
	for _, child := range g.Children() {
		switch c := child.(type) {
		case *geometry.Group:
			applyMaterial(c, m)
		case geometry.Primitive:
			c.SetMaterial(m)
		}
	}
}

// ParseSceneConfig decodes and validates a JSON scene, filling in defaults
func ParseSceneConfig(r io.Reader) (*SceneConfig, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var cfg SceneConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene config: %w", err)
	}

	// Defaults / validation
	if cfg.Camera.Width <= 0 {
		cfg.Camera.Width = DefaultConfigWidth
	}
	if cfg.Camera.Height <= 0 {
		cfg.Camera.Height = DefaultConfigHeight
	}
	if cfg.Camera.FOV <= 0 {
		cfg.Camera.FOV = DefaultConfigFOV
	}
	if cfg.Camera.FOV >= 180 {
		return nil, fmt.Errorf("camera fov must be below 180 degrees, got %g", cfg.Camera.FOV)
	}
	if cfg.Camera.Up == (Vec3{}) {
		cfg.Camera.Up = Vec3{0, 1, 0}
	}
	forward := cfg.Camera.To.Point().Subtract(cfg.Camera.From.Point())
	if forward.Magnitude() < core.Epsilon {
		return nil, errors.New("camera from and to must differ")
	}
	if forward.Normalize().Cross(cfg.Camera.Up.Vector().Normalize()).Magnitude() < core.Epsilon {
		return nil, errors.New("camera up must not be parallel to the view direction")
	}
	if cfg.Light == nil {
		return nil, errors.New("config has no light")
	}
	if cfg.Divide < 0 {
		return nil, fmt.Errorf("divide must be >= 0, got %d", cfg.Divide)
	}
	return &cfg, nil
}

// LoadSceneConfig reads and validates a JSON scene file
func LoadSceneConfig(path string) (*SceneConfig, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, fmt.Errorf("scene file %s: expected a .json file", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	cfg, err := ParseSceneConfig(file)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return cfg, nil
}
