package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// hexagonGridSize is the number of hexagons along each side of the grid
const hexagonGridSize = 4

// NewHexagonScene creates a grid of hexagons, each built from nested groups
// of spheres and cylinders, above a checkered floor. The grid is a single
// group with many children so it benefits from Divide.
func NewHexagonScene() *Scene {
	camera := lookAt(400, 300, math.Pi/3,
		core.NewPoint(0, 6, -9), core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(-8, 12, -10), core.White)
	s := NewScene("hexagon", camera, light)

	floor := geometry.NewPlane()
	floor.SetTransform(transform(core.Translation(0, -0.5, 0)))
	floorMaterial := material.DefaultMaterial()
	floorMaterial.Pattern = material.NewCheckerPattern(core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.2, 0.2, 0.25))
	floorMaterial.Specular = 0
	floorMaterial.Reflective = 0.15
	floor.SetMaterial(floorMaterial)

	grid := geometry.NewGroup()
	spacing := 2.4
	offset := spacing * float64(hexagonGridSize-1) / 2
	for i := 0; i < hexagonGridSize; i++ {
		for j := 0; j < hexagonGridSize; j++ {
			hue := float64(i*hexagonGridSize+j) / float64(hexagonGridSize*hexagonGridSize)
			m := material.DefaultMaterial()
			m.Color = core.NewColor(0.2+0.8*hue, 0.3, 1-0.8*hue)
			m.Diffuse = 0.7
			m.Specular = 0.5
			m.Reflective = 0.1

			hex := newHexagon(m)
			hex.SetTransform(transform(
				core.RotationX(-math.Pi/6),
				core.RotationY(float64(i+j)*math.Pi/12),
				core.Translation(float64(i)*spacing-offset, 0.5, float64(j)*spacing-offset),
			))
			grid.AddChild(hex)
		}
	}

	s.World.AddShape(floor, grid)
	return s
}

// newHexagon builds a hexagon of unit radius from six sides, each a group of
// a corner sphere and an edge cylinder
func newHexagon(m material.Material) *geometry.Group {
	hex := geometry.NewGroup()
	for n := 0; n < 6; n++ {
		side := newHexagonSide(m)
		side.SetTransform(transform(core.RotationY(float64(n) * math.Pi / 3)))
		hex.AddChild(side)
	}
	return hex
}

func newHexagonSide(m material.Material) *geometry.Group {
	corner := geometry.NewSphere()
	corner.SetTransform(transform(core.Scaling(0.25, 0.25, 0.25), core.Translation(0, 0, -1)))
	corner.SetMaterial(m)

	edge := geometry.NewTruncatedCylinder(0, 1, false)
	edge.SetTransform(transform(
		core.Scaling(0.25, 1, 0.25),
		core.RotationZ(-math.Pi/2),
		core.RotationY(-math.Pi/6),
		core.Translation(0, 0, -1),
	))
	edge.SetMaterial(m)

	return geometry.NewGroup(corner, edge)
}
