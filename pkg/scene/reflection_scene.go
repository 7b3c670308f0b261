package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewReflectionScene creates a striped room with a checkered mirror floor,
// a red sphere and two glass spheres
func NewReflectionScene() *Scene {
	camera := lookAt(400, 200, 1.152,
		core.NewPoint(-2.6, 1.5, -3.9), core.NewPoint(-0.6, 1, -0.8), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(-4.9, 4.9, -1), core.White)
	s := NewScene("reflection", camera, light)

	stripes := material.NewStripePattern(core.NewColor(0.45, 0.45, 0.45), core.NewColor(0.55, 0.55, 0.55))
	stripes.SetTransform(transform(core.Scaling(0.25, 0.25, 0.25), core.RotationY(1.5708)))

	wallMaterial := material.DefaultMaterial()
	wallMaterial.Pattern = stripes
	wallMaterial.Ambient = 0
	wallMaterial.Diffuse = 0.4
	wallMaterial.Specular = 0
	wallMaterial.Reflective = 0.3

	checkers := material.NewCheckerPattern(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65))
	floor := geometry.NewPlane()
	floor.SetTransform(transform(core.RotationY(math.Pi)))
	floorMaterial := material.DefaultMaterial()
	floorMaterial.Pattern = checkers
	floorMaterial.Specular = 0
	floorMaterial.Reflective = 0.4
	floor.SetMaterial(floorMaterial)

	ceiling := geometry.NewPlane()
	ceiling.SetTransform(transform(core.Translation(0, 5, 0)))
	ceilingMaterial := material.DefaultMaterial()
	ceilingMaterial.Color = core.NewColor(0.8, 0.8, 0.8)
	ceilingMaterial.Ambient = 0.3
	ceilingMaterial.Specular = 0
	ceiling.SetMaterial(ceilingMaterial)

	s.World.AddShape(floor, ceiling)

	for _, wallTransform := range []core.Transform{
		transform(core.RotationY(math.Pi/2), core.RotationZ(math.Pi/2), core.Translation(-5, 0, 0)), // west
		transform(core.RotationY(math.Pi/2), core.RotationZ(math.Pi/2), core.Translation(5, 0, 0)),  // east
		transform(core.RotationX(math.Pi/2), core.Translation(0, 0, 5)),                             // north
		transform(core.RotationX(math.Pi/2), core.Translation(0, 0, -5)),                            // south
	} {
		wall := geometry.NewPlane()
		wall.SetTransform(wallTransform)
		wall.SetMaterial(wallMaterial)
		s.World.AddShape(wall)
	}

	// background spheres
	for _, bg := range []struct {
		position core.Point
		radius   float64
		color    core.Color
	}{
		{core.NewPoint(4.6, 0.4, 1), 0.4, core.NewColor(0.8, 0.5, 0.3)},
		{core.NewPoint(4.7, 0.3, 0.4), 0.3, core.NewColor(0.9, 0.4, 0.5)},
		{core.NewPoint(-1, 0.5, 4.5), 0.5, core.NewColor(0.4, 0.9, 0.6)},
		{core.NewPoint(-1.7, 0.3, 4.7), 0.3, core.NewColor(0.4, 0.6, 0.9)},
	} {
		sphere := geometry.NewSphere()
		sphere.SetTransform(transform(
			core.Scaling(bg.radius, bg.radius, bg.radius),
			core.Translation(bg.position.X, bg.position.Y, bg.position.Z),
		))
		m := material.DefaultMaterial()
		m.Color = bg.color
		m.Shininess = 50
		sphere.SetMaterial(m)
		s.World.AddShape(sphere)
	}

	red := geometry.NewSphere()
	red.SetTransform(transform(core.Translation(-0.6, 1, 0.6)))
	redMaterial := material.DefaultMaterial()
	redMaterial.Color = core.NewColor(1, 0.3, 0.2)
	redMaterial.Specular = 0.4
	redMaterial.Shininess = 50
	red.SetMaterial(redMaterial)

	blue := geometry.NewSphere()
	blue.SetTransform(transform(core.Scaling(0.7, 0.7, 0.7), core.Translation(0.6, 0.7, -0.6)))
	blue.SetMaterial(tintedGlass(core.NewColor(0, 0, 0.2)))

	green := geometry.NewSphere()
	green.SetTransform(transform(core.Scaling(0.5, 0.5, 0.5), core.Translation(-0.7, 0.5, -0.8)))
	green.SetMaterial(tintedGlass(core.NewColor(0, 0.2, 0)))

	s.World.AddShape(red, blue, green)
	return s
}

// tintedGlass is a reflective, mostly transparent material of the given tint
func tintedGlass(tint core.Color) material.Material {
	m := material.DefaultMaterial()
	m.Color = tint
	m.Ambient = 0
	m.Diffuse = 0.4
	m.Specular = 0.9
	m.Shininess = 300
	m.Reflective = 0.9
	m.Transparency = 0.9
	m.RefractiveIndex = 1.5
	return m
}
