package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cone is a double-napped cone around the y axis with its apex at the origin
// (radius |y| at height y), truncated to Minimum < y < Maximum and optionally
// capped
type Cone struct {
	surface
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCone creates an infinite, open double cone
func NewCone() *Cone {
	return &Cone{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCone creates a cone between minimum and maximum
func NewTruncatedCone(minimum, maximum float64, closed bool) *Cone {
	return &Cone{Minimum: minimum, Maximum: maximum, Closed: closed}
}

// Intersect tests the ray against both nappes and, when closed, the caps
func (c *Cone) Intersect(ray core.Ray) Intersections {
	local := c.toObject(ray)
	o, d := local.Origin, local.Direction

	xs := intersectCaps(c, local, c.Minimum, c.Maximum, c.Closed, math.Abs)

	a := d.X*d.X - d.Y*d.Y + d.Z*d.Z
	b := 2*o.X*d.X - 2*o.Y*d.Y + 2*o.Z*d.Z
	cc := o.X*o.X - o.Y*o.Y + o.Z*o.Z

	dd := d.Dot(d)
	aZero := nearZero(a, dd)

	switch {
	case aZero && nearZero(b, math.Sqrt(dd)):
		// Parallel to a nappe through the apex: only the caps can be hit
		return NewIntersections(xs...)

	case aZero:
		// Parallel to one nappe: a single hit on the other
		t := -cc / (2 * b)
		y := o.Y + t*d.Y
		if c.Minimum < y && y < c.Maximum {
			xs = append(xs, NewIntersection(t, c))
		}
		return NewIntersections(xs...)
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return NewIntersections(xs...)
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	xs = appendWithinHeight(xs, c, local, c.Minimum, c.Maximum, t0, t1)

	return NewIntersections(xs...)
}

// NormalAt returns the world-space normal of the nappe or cap at point
func (c *Cone) NormalAt(point core.Point, _ Intersection) core.Vector {
	return c.normalAt(point, c.localNormalAt)
}

func (c *Cone) localNormalAt(point core.Point) core.Vector {
	dist := point.X*point.X + point.Z*point.Z

	if dist < c.Maximum*c.Maximum && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < c.Minimum*c.Minimum && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if point.Y > 0 {
		y = -y
	}
	return core.NewVector(point.X, y, point.Z)
}

// Bounds returns the box enclosing the widest end of the truncated cone
func (c *Cone) Bounds() core.AABB {
	limit := max(math.Abs(c.Minimum), math.Abs(c.Maximum))
	return core.NewAABB(core.NewPoint(-limit, c.Minimum, -limit), core.NewPoint(limit, c.Maximum, limit))
}
