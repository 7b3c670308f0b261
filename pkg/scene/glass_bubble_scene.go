package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// airRefractiveIndex is the refractive index of the air bubble
const airRefractiveIndex = 1.0000034

// NewGlassBubbleScene creates a hollow glass sphere in front of a checkered
// wall. The air bubble inside the glass exercises nested refractive indices.
func NewGlassBubbleScene() *Scene {
	camera := lookAt(300, 300, 0.45,
		core.NewPoint(0, 0, -5), core.Origin, core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(2, 10, -5), core.NewColor(0.9, 0.9, 0.9))
	s := NewScene("glass-bubble", camera, light)

	wall := geometry.NewPlane()
	wall.SetTransform(transform(core.RotationX(math.Pi/2), core.Translation(0, 0, 10)))
	wallMaterial := material.DefaultMaterial()
	wallMaterial.Pattern = material.NewCheckerPattern(core.NewColor(0.15, 0.15, 0.15), core.NewColor(0.85, 0.85, 0.85))
	wallMaterial.Ambient = 0.8
	wallMaterial.Diffuse = 0.2
	wallMaterial.Specular = 0
	wall.SetMaterial(wallMaterial)

	glass := geometry.NewSphere()
	glass.SetMaterial(clearGlass(1.5))

	bubble := geometry.NewSphere()
	bubble.SetTransform(transform(core.Scaling(0.5, 0.5, 0.5)))
	bubble.SetMaterial(clearGlass(airRefractiveIndex))

	s.World.AddShape(wall, glass, bubble)
	return s
}

// clearGlass is a colorless, highly reflective and transparent material
func clearGlass(refractiveIndex float64) material.Material {
	m := material.DefaultMaterial()
	m.Color = core.White
	m.Ambient = 0
	m.Diffuse = 0
	m.Specular = 0.9
	m.Shininess = 300
	m.Reflective = 0.9
	m.Transparency = 0.9
	m.RefractiveIndex = refractiveIndex
	return m
}
