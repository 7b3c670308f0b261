package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane (y = 0) in object space
type Plane struct {
	surface
}

// NewPlane creates a plane with the default material
func NewPlane() *Plane {
	return &Plane{}
}

// Intersect tests the ray against the plane. Rays parallel to the plane miss.
func (p *Plane) Intersect(ray core.Ray) Intersections {
	local := p.toObject(ray)

	if math.Abs(local.Direction.Y) < core.ParallelEpsilon {
		return nil
	}

	t := -local.Origin.Y / local.Direction.Y
	return Intersections{NewIntersection(t, p)}
}

// NormalAt returns the world-space normal, constant over the plane
func (p *Plane) NormalAt(point core.Point, _ Intersection) core.Vector {
	return p.normalAt(point, p.localNormalAt)
}

func (p *Plane) localNormalAt(core.Point) core.Vector {
	return core.NewVector(0, 1, 0)
}

// Bounds returns a box infinite in x and z and flat in y
func (p *Plane) Bounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.NewPoint(-inf, 0, -inf), core.NewPoint(inf, 0, inf))
}
