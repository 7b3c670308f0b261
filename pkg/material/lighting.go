package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Lighting shades a point with the Phong reflection model.
// When inShadow is set only the ambient term contributes.
func Lighting(m Material, object Object, light lights.Light, point core.Point, eye, normal core.Vector, inShadow bool) core.Color {
	sample := light.Sample(point)
	effectiveColor := m.ColorAt(object, point).MultiplyColor(sample.Intensity)

	ambient := effectiveColor.Multiply(m.Ambient)
	if inShadow {
		return ambient
	}

	// Light on the other side of the surface
	lightDotNormal := sample.Direction.Dot(normal)
	if lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	reflectDir := sample.Direction.Negate().Reflect(normal)
	reflectDotEye := reflectDir.Dot(eye)
	if reflectDotEye <= 0 {
		return ambient.Add(diffuse)
	}

	factor := math.Pow(reflectDotEye, m.Shininess)
	specular := sample.Intensity.Multiply(m.Specular * factor)
	return ambient.Add(diffuse).Add(specular)
}
