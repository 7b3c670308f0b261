package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// World is a collection of top-level shapes lit by a single light. It is
// read-only while rendering, so one World can serve many goroutines.
type World struct {
	Shapes []geometry.Shape
	Light  lights.Light

	// Fresnel blends reflection and refraction on surfaces that are both
	// reflective and transparent using Schlick's approximation instead of
	// adding them
	Fresnel bool
}

// NewWorld creates a world with the given light and shapes
func NewWorld(light lights.Light, shapes ...geometry.Shape) *World {
	return &World{
		Shapes: shapes,
		Light:  light,
	}
}

// DefaultWorld returns the canonical two-sphere world and its spheres: a
// unit sphere and a concentric sphere of radius 0.5, lit from (-10, 10, -10)
func DefaultWorld() (w *World, outer, inner *geometry.Sphere) {
	outer = geometry.NewSphere()
	m := material.DefaultMaterial()
	m.Color = core.NewColor(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner = geometry.NewSphere()
	inner.SetTransform(core.MustTransform(core.Scaling(0.5, 0.5, 0.5)))

	light := lights.NewPointLight(core.NewPoint(-10, 10, -10), core.White)
	return NewWorld(light, outer, inner), outer, inner
}

// AddShape adds top-level shapes to the world
func (w *World) AddShape(shapes ...geometry.Shape) {
	w.Shapes = append(w.Shapes, shapes...)
}

// Divide builds a bounding volume hierarchy inside every top-level group
func (w *World) Divide(threshold int) {
	for _, shape := range w.Shapes {
		shape.Divide(threshold)
	}
}

// Intersect returns every intersection of ray with the world, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, shape := range w.Shapes {
		xs = append(xs, shape.Intersect(ray)...)
	}
	xs.Sort()
	return xs
}

// IsShadowed reports whether an object lies strictly between point and the
// light. Without a light every point is in shadow.
func (w *World) IsShadowed(point core.Point) bool {
	if w.Light == nil {
		return true
	}
	sample := w.Light.Sample(point)
	ray := core.NewRay(point, sample.Direction)

	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < sample.Distance
}

// ShadeHit returns the color at a precomputed hit, including reflected and
// refracted contributions. remaining is the number of further bounces allowed.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()

	surface := core.Black
	if w.Light != nil {
		shadowed := w.IsShadowed(comps.OverPoint)
		surface = material.Lighting(m, comps.Object, w.Light, comps.OverPoint, comps.Eye, comps.Normal, shadowed)
	}

	reflected := w.ReflectedColor(comps, remaining)
	refracted := w.RefractedColor(comps, remaining)

	if w.Fresnel && m.IsReflective() && m.IsTransparent() {
		reflectance := geometry.Schlick(comps)
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance))
	}
	return surface.Add(reflected).Add(refracted)
}

// ColorAt traces ray into the world. A miss is black.
func (w *World) ColorAt(ray core.Ray, remaining int) core.Color {
	xs := w.Intersect(ray)
	hit, ok := xs.Hit()
	if !ok {
		return core.Black
	}
	comps := geometry.PrepareComputations(hit, ray, xs)
	return w.ShadeHit(comps, remaining)
}

// ReflectedColor returns the color seen in the reflection direction, scaled
// by the material's reflectivity
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsReflective() {
		return core.Black
	}

	ray := core.NewRay(comps.OverPoint, comps.Reflect)
	return w.ColorAt(ray, remaining-1).Multiply(m.Reflective)
}

// RefractedColor returns the color seen through a transparent surface,
// scaled by its transparency. Total internal reflection contributes black.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) core.Color {
	m := comps.Object.Material()
	if remaining <= 0 || !m.IsTransparent() {
		return core.Black
	}

	// Snell's law
	nRatio := comps.N1 / comps.N2
	cosI := comps.Eye.Dot(comps.Normal)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.Normal.Multiply(nRatio*cosI - cosT).Subtract(comps.Eye.Multiply(nRatio))

	ray := core.NewRay(comps.UnderPoint, direction)
	return w.ColorAt(ray, remaining-1).Multiply(m.Transparency)
}
