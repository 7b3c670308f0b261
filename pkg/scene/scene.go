package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *World
	Camera *renderer.Camera

	// MaxDepth overrides the renderer's recursion budget when positive
	MaxDepth int
}

// NewScene creates an empty scene lit by light and viewed through camera
func NewScene(name string, camera *renderer.Camera, light lights.Light) *Scene {
	return &Scene{
		Name:   name,
		World:  NewWorld(light),
		Camera: camera,
	}
}

// SetCamera replaces the camera's resolution and field of view, keeping its
// view transform. Zero values leave the current setting unchanged.
func (s *Scene) SetCamera(width, height int, fieldOfView float64) {
	if width <= 0 {
		width = s.Camera.HSize
	}
	if height <= 0 {
		height = s.Camera.VSize
	}
	if fieldOfView <= 0 {
		fieldOfView = s.Camera.FieldOfView
	}
	camera := renderer.NewCamera(width, height, fieldOfView)
	camera.SetTransform(s.Camera.Transform())
	s.Camera = camera
}

// Preprocess prepares the scene for rendering. A positive divide threshold
// builds a bounding volume hierarchy inside every group with at least that
// many children.
func (s *Scene) Preprocess(divide int) {
	if divide > 0 {
		s.World.Divide(divide)
	}
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, shape := range s.World.Shapes {
		count += countPrimitivesInShape(shape)
	}
	return count
}

// countPrimitivesInShape counts primitives below shape, descending into groups
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Group:
		count := 0
		for _, child := range obj.Children() {
			count += countPrimitivesInShape(child)
		}
		return count
	default:
		return 1
	}
}

// lookAt builds a camera with a view transform from eye position from toward to
func lookAt(hsize, vsize int, fieldOfView float64, from, to core.Point, up core.Vector) *renderer.Camera {
	camera := renderer.NewCamera(hsize, vsize, fieldOfView)
	camera.SetTransform(core.MustTransform(core.ViewTransform(from, to, up)))
	return camera
}

// transform composes steps in the order they are applied and panics if the
// result is singular. Scene code only passes literal, invertible steps.
func transform(steps ...core.Matrix) core.Transform {
	return core.MustTransform(core.Chain(steps...))
}

// mustTriangle is NewTriangle for literal, non-degenerate vertices
func mustTriangle(p1, p2, p3 core.Point) *geometry.Triangle {
	triangle, err := geometry.NewTriangle(p1, p2, p3)
	if err != nil {
		panic(err)
	}
	return triangle
}
