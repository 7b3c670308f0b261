package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material describes the Phong surface attributes of a shape
type Material struct {
	Color     core.Color
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64

	// Pattern overrides Color when set
	Pattern Pattern

	Reflective      float64 // 0 = matte, 1 = perfect mirror
	Transparency    float64 // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64 // 1 = vacuum
}

// DefaultMaterial returns a white, fully opaque, non-reflective material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: 1,
	}
}

// ColorAt returns the material's base color at a world-space point on object,
// sampling the pattern when one is set.
func (m Material) ColorAt(object Object, worldPoint core.Point) core.Color {
	if m.Pattern == nil {
		return m.Color
	}
	return PatternAtShape(m.Pattern, object, worldPoint)
}

// IsReflective reports whether the material contributes a reflected ray
func (m Material) IsReflective() bool {
	return !core.ApproxEqual(m.Reflective, 0)
}

// IsTransparent reports whether the material contributes a refracted ray
func (m Material) IsTransparent() bool {
	return !core.ApproxEqual(m.Transparency, 0)
}
