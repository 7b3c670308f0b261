package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a box, a pyramid and a smooth-shaded
// icosahedron built from triangle meshes
func NewTriangleMeshScene() *Scene {
	camera := lookAt(400, 225, math.Pi/4,
		core.NewPoint(0, 2, -6), core.NewPoint(0, 1, 0), core.NewVector(0, 1, 0))
	light := lights.NewPointLight(core.NewPoint(2, 6, -3), core.White)
	s := NewScene("triangle-mesh", camera, light)

	ground := geometry.NewPlane()
	groundMaterial := material.DefaultMaterial()
	groundMaterial.Color = core.NewColor(0.7, 0.7, 0.7)
	groundMaterial.Specular = 0
	ground.SetMaterial(groundMaterial)
	s.World.AddShape(ground)

	red := matte(core.NewColor(0.8, 0.2, 0.2))
	red.Reflective = 0.2
	blue := matte(core.NewColor(0.2, 0.3, 0.8))
	gold := matte(core.NewColor(0.8, 0.6, 0.2))
	gold.Specular = 0.8
	gold.Shininess = 150

	box := mustMesh(createBoxMesh(1, &red))
	box.SetTransform(transform(core.RotationY(math.Pi/6), core.Translation(-2, 0.5, 0)))

	pyramid := mustMesh(createPyramidMesh(1.5, 2, &blue))
	pyramid.SetTransform(transform(core.RotationY(math.Pi/4), core.Translation(0, 1, 0)))

	icosahedron := mustMesh(createIcosahedronMesh(0.8, &gold))
	icosahedron.SetTransform(transform(core.RotationY(math.Pi/3), core.Translation(2, 0.8, 0)))

	s.World.AddShape(box, pyramid, icosahedron)
	return s
}

func mustMesh(mesh *geometry.TriangleMesh, err error) *geometry.Group {
	if err != nil {
		panic(err)
	}
	return mesh.Group
}

// createBoxMesh builds a cube of the given edge length centered at the origin
func createBoxMesh(size float64, m *material.Material) (*geometry.TriangleMesh, error) {
	h := size / 2
	vertices := []core.Point{
		core.NewPoint(-h, -h, -h), // 0: left-bottom-back
		core.NewPoint(+h, -h, -h), // 1: right-bottom-back
		core.NewPoint(+h, +h, -h), // 2: right-top-back
		core.NewPoint(-h, +h, -h), // 3: left-top-back
		core.NewPoint(-h, -h, +h), // 4: left-bottom-front
		core.NewPoint(+h, -h, +h), // 5: right-bottom-front
		core.NewPoint(+h, +h, +h), // 6: right-top-front
		core.NewPoint(-h, +h, +h), // 7: left-top-front
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
	}

	return geometry.NewTriangleMesh(vertices, faces, &geometry.TriangleMeshOptions{Material: m})
}

// createPyramidMesh builds a square pyramid centered at the origin
func createPyramidMesh(baseSize, height float64, m *material.Material) (*geometry.TriangleMesh, error) {
	b := baseSize / 2
	h := height / 2

	vertices := []core.Point{
		core.NewPoint(-b, -h, -b), // 0: left-back
		core.NewPoint(+b, -h, -b), // 1: right-back
		core.NewPoint(+b, -h, +b), // 2: right-front
		core.NewPoint(-b, -h, +b), // 3: left-front
		core.NewPoint(0, +h, 0),   // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	return geometry.NewTriangleMesh(vertices, faces, &geometry.TriangleMeshOptions{Material: m})
}

// createIcosahedronMesh builds an icosahedron inscribed in a sphere of the
// given radius. Vertex normals point away from the center, so the faces are
// smooth triangles that shade like the sphere.
func createIcosahedronMesh(radius float64, m *material.Material) (*geometry.TriangleMesh, error) {
	phi := (1 + math.Sqrt(5)) / 2

	directions := []core.Vector{
		core.NewVector(-1, phi, 0),
		core.NewVector(1, phi, 0),
		core.NewVector(-1, -phi, 0),
		core.NewVector(1, -phi, 0),
		core.NewVector(0, -1, phi),
		core.NewVector(0, 1, phi),
		core.NewVector(0, -1, -phi),
		core.NewVector(0, 1, -phi),
		core.NewVector(phi, 0, -1),
		core.NewVector(phi, 0, 1),
		core.NewVector(-phi, 0, -1),
		core.NewVector(-phi, 0, 1),
	}

	vertices := make([]core.Point, len(directions))
	normals := make([]core.Vector, len(directions))
	for i, d := range directions {
		normals[i] = d.Normalize()
		vertices[i] = core.Origin.Add(normals[i].Multiply(radius))
	}

	faces := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, &geometry.TriangleMeshOptions{
		Normals:  normals,
		Material: m,
	})
}
