package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere is the unit sphere centered at the object-space origin
type Sphere struct {
	surface
}

// NewSphere creates a unit sphere with the default material
func NewSphere() *Sphere {
	return &Sphere{}
}

// NewGlassSphere creates a unit sphere made of fully transparent glass
func NewGlassSphere() *Sphere {
	s := NewSphere()
	m := material.DefaultMaterial()
	m.Transparency = 1
	m.RefractiveIndex = 1.5
	s.SetMaterial(m)
	return s
}

// Intersect tests the ray against the sphere, returning both roots
func (s *Sphere) Intersect(ray core.Ray) Intersections {
	local := s.toObject(ray)

	// Vector from sphere center to ray origin
	sphereToRay := local.Origin.Subtract(core.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := local.Direction.Dot(local.Direction)
	b := 2 * local.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	return NewIntersections(NewIntersection(t1, s), NewIntersection(t2, s))
}

// NormalAt returns the world-space normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Point, _ Intersection) core.Vector {
	return s.normalAt(point, s.localNormalAt)
}

func (s *Sphere) localNormalAt(point core.Point) core.Vector {
	return point.Subtract(core.Origin)
}

// Bounds returns the unit cube around the sphere
func (s *Sphere) Bounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
