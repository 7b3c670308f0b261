package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an infinitely small light with no falloff
type PointLight struct {
	Position  core.Point
	Intensity core.Color
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position core.Point, intensity core.Color) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// Type returns the light type
func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Sample returns the unit direction and distance from point to the light
func (pl *PointLight) Sample(point core.Point) LightSample {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Magnitude()
	return LightSample{
		Direction: toLight.Normalize(),
		Distance:  distance,
		Intensity: pl.Intensity,
	}
}
