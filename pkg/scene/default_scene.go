package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres in a room made of flattened spheres
func NewDefaultScene() *Scene {
	camera := lookAt(300, 150, math.Pi/3,
		core.NewPoint(0, 1.5, -5), core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White)
	s := NewScene("default", camera, light)

	wallMaterial := material.DefaultMaterial()
	wallMaterial.Color = core.NewColor(1, 0.9, 0.9)
	wallMaterial.Specular = 0

	floor := geometry.NewSphere()
	floor.SetTransform(transform(core.Scaling(10, 0.01, 10)))
	floor.SetMaterial(wallMaterial)

	leftWall := geometry.NewSphere()
	leftWall.SetTransform(transform(
		core.Scaling(10, 0.01, 10),
		core.RotationX(math.Pi/2),
		core.RotationY(-math.Pi/4),
		core.Translation(0, 0, 5),
	))
	leftWall.SetMaterial(wallMaterial)

	rightWall := geometry.NewSphere()
	rightWall.SetTransform(transform(
		core.Scaling(10, 0.01, 10),
		core.RotationX(math.Pi/2),
		core.RotationY(math.Pi/4),
		core.Translation(0, 0, 5),
	))
	rightWall.SetMaterial(wallMaterial)

	middle := geometry.NewSphere()
	middle.SetTransform(transform(core.Translation(-0.5, 1, 0.5)))
	middle.SetMaterial(coloredMaterial(core.NewColor(1, 0.2, 1)))

	right := geometry.NewSphere()
	right.SetTransform(transform(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)))
	right.SetMaterial(coloredMaterial(core.NewColor(0.5, 1, 0.1)))

	left := geometry.NewSphere()
	left.SetTransform(transform(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)))
	left.SetMaterial(coloredMaterial(core.NewColor(1, 0.8, 0.1)))

	s.World.AddShape(floor, leftWall, rightWall, middle, right, left)
	return s
}

// coloredMaterial is a mostly diffuse material of the given color
func coloredMaterial(color core.Color) material.Material {
	m := material.DefaultMaterial()
	m.Color = color
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}
