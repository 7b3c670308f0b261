package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShadowPuppetsScene creates a hand built from stretched spheres that casts
// a shadow onto a flattened sphere backdrop
func NewShadowPuppetsScene() *Scene {
	camera := lookAt(400, 200, 0.524,
		core.NewPoint(40, 0, -70), core.NewPoint(0, 0, -5), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(0, 0, -100), core.White)
	s := NewScene("shadow-puppets", camera, light)

	backdrop := geometry.NewSphere()
	backdrop.SetTransform(transform(core.Scaling(200, 200, 0.01), core.Translation(0, 0, 20)))
	backdropMaterial := material.DefaultMaterial()
	backdropMaterial.Ambient = 0
	backdropMaterial.Diffuse = 0.5
	backdropMaterial.Specular = 0
	backdrop.SetMaterial(backdropMaterial)

	hand := geometry.NewGroup()
	for _, part := range []struct {
		color     core.Color
		transform core.Transform
	}{
		{ // wrist
			core.NewColor(0.1, 1, 1),
			transform(core.Scaling(3, 3, 3), core.Translation(-4, 0, -21), core.RotationZ(math.Pi/4)),
		},
		{ // palm
			core.NewColor(0.1, 0.1, 1),
			transform(core.Scaling(4, 3, 3), core.Translation(0, 0, -15)),
		},
		{ // thumb
			core.NewColor(0.1, 0.1, 1),
			transform(core.Scaling(1, 3, 1), core.Translation(-2, 2, -16)),
		},
		{ // index
			core.NewColor(1, 1, 0.1),
			transform(core.Scaling(3, 0.75, 0.75), core.Translation(3, 2, -22)),
		},
		{ // middle
			core.NewColor(0.1, 1, 0.5),
			transform(core.Scaling(3, 0.75, 0.75), core.Translation(4, 1, -19)),
		},
		{ // ring
			core.NewColor(0.1, 1, 0.1),
			transform(core.Scaling(3, 0.75, 0.75), core.Translation(4, 0, -18)),
		},
		{ // pinky
			core.NewColor(0.1, 0.5, 1),
			transform(
				core.Scaling(2.5, 0.6, 0.6),
				core.Translation(1, 0, 0),
				core.RotationZ(-math.Pi/10),
				core.Translation(3, -1.5, -20),
			),
		},
	} {
		m := material.DefaultMaterial()
		m.Color = part.color
		m.Ambient = 0.2
		m.Diffuse = 0.8
		m.Specular = 0.3
		m.Shininess = 200

		sphere := geometry.NewSphere()
		sphere.SetTransform(part.transform)
		sphere.SetMaterial(m)
		hand.AddChild(sphere)
	}

	s.World.AddShape(backdrop, hand)
	return s
}
