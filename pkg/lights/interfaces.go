package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light interface for sources that illuminate a shading point directly
type Light interface {
	Type() LightType

	// Sample returns the direction, distance and intensity of the light as
	// seen from point. Direction points FROM the shading point TO the light.
	Sample(point core.Point) LightSample
}

// LightSample contains information about a light as seen from one point
type LightSample struct {
	Direction core.Vector // Unit vector toward the light
	Distance  float64     // Distance to the light
	Intensity core.Color  // Light intensity arriving at the point
}
