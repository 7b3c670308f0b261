package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShapesScene creates a showcase of cubes, cylinders, cones and a triangle
// on a checkered floor, mixing capped and open solids
func NewShapesScene() *Scene {
	camera := lookAt(400, 225, math.Pi/3.2,
		core.NewPoint(0, 2.5, -7), core.NewPoint(0, 0.8, 0), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(-6, 8, -8), core.White)
	s := NewScene("shapes", camera, light)

	floor := geometry.NewPlane()
	floorMaterial := material.DefaultMaterial()
	checker := material.NewCheckerPattern(core.NewColor(0.5, 0.5, 0.5), core.NewColor(0.3, 0.3, 0.3))
	checker.SetTransform(transform(core.Scaling(0.5, 0.5, 0.5)))
	floorMaterial.Pattern = checker
	floorMaterial.Specular = 0
	floor.SetMaterial(floorMaterial)

	red := matte(core.NewColor(0.8, 0.2, 0.2))
	blue := matte(core.NewColor(0.2, 0.2, 0.8))
	gold := matte(core.NewColor(0.8, 0.6, 0.2))
	gold.Specular = 0.9
	gold.Shininess = 100
	gold.Reflective = 0.6

	// Right: tall capped cylinder
	tall := geometry.NewTruncatedCylinder(0, 2, true)
	tall.SetTransform(transform(core.Scaling(0.5, 1, 0.5), core.Translation(2.2, 0, 0.5)))
	tall.SetMaterial(red)

	// Center: open gold tube tilted toward the camera so it can be looked through
	tube := geometry.NewTruncatedCylinder(-1, 1, false)
	tube.SetTransform(transform(
		core.Scaling(0.35, 1.2, 0.35),
		core.RotationX(math.Pi/2.3),
		core.Translation(0, 1.1, 0.5),
	))
	tube.SetMaterial(gold)

	// Left: horizontal capped cylinder lying on the floor
	beam := geometry.NewTruncatedCylinder(-0.8, 0.8, true)
	beam.SetTransform(transform(
		core.Scaling(0.3, 1, 0.3),
		core.RotationZ(math.Pi/2),
		core.Translation(-2.3, 0.3, 0.2),
	))
	beam.SetMaterial(blue)

	// Capped cone standing on its base
	cone := geometry.NewTruncatedCone(-1, 0, true)
	cone.SetTransform(transform(core.Scaling(0.6, 1.4, 0.6), core.Translation(-1, 1.4, -1.3)))
	cone.SetMaterial(matte(core.NewColor(0.2, 0.8, 0.3)))

	// Glass double cone, both nappes truncated
	hourglass := geometry.NewTruncatedCone(-1, 1, true)
	hourglass.SetTransform(transform(core.Scaling(0.4, 0.6, 0.4), core.Translation(1, 0.6, -1.5)))
	hourglass.SetMaterial(clearGlass(1.5))

	// Rotated cube
	cube := geometry.NewCube()
	cube.SetTransform(transform(
		core.Scaling(0.4, 0.4, 0.4),
		core.RotationY(math.Pi/5),
		core.Translation(-0.9, 0.4, 2),
	))
	cube.SetMaterial(matte(core.NewColor(0.9, 0.5, 0.1)))

	// Triangle leaning against the back
	triangle := mustTriangle(core.NewPoint(-3, 0, 4), core.NewPoint(3, 0, 4), core.NewPoint(0, 3.5, 4.5))
	triangle.SetMaterial(matte(core.NewColor(0.7, 0.7, 0.9)))

	s.World.AddShape(floor, tall, tube, beam, cone, hourglass, cube, triangle)
	return s
}

// matte is a diffuse material of the given color with a small highlight
func matte(color core.Color) material.Material {
	m := material.DefaultMaterial()
	m.Color = color
	m.Diffuse = 0.8
	m.Specular = 0.2
	return m
}
