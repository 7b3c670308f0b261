package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cylinder is a unit-radius cylinder around the y axis, truncated to
// Minimum < y < Maximum (exclusive) and optionally capped
type Cylinder struct {
	surface
	Minimum float64
	Maximum float64
	Closed  bool
}

// NewCylinder creates an infinite, open cylinder
func NewCylinder() *Cylinder {
	return &Cylinder{Minimum: math.Inf(-1), Maximum: math.Inf(1)}
}

// NewTruncatedCylinder creates a cylinder between minimum and maximum
func NewTruncatedCylinder(minimum, maximum float64, closed bool) *Cylinder {
	return &Cylinder{Minimum: minimum, Maximum: maximum, Closed: closed}
}

// Intersect tests the ray against the walls and, when closed, the caps
func (c *Cylinder) Intersect(ray core.Ray) Intersections {
	local := c.toObject(ray)
	o, d := local.Origin, local.Direction

	xs := intersectCaps(c, local, c.Minimum, c.Maximum, c.Closed, func(float64) float64 { return 1 })

	a := d.X*d.X + d.Z*d.Z

	// Ray parallel to the y axis only hits the caps
	if nearZero(a, d.Dot(d)) {
		return NewIntersections(xs...)
	}

	b := 2*o.X*d.X + 2*o.Z*d.Z
	cc := o.X*o.X + o.Z*o.Z - 1

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

// NormalAt returns the world-space normal of the wall or cap at point
func (c *Cylinder) NormalAt(point core.Point, _ Intersection) core.Vector {
	return c.normalAt(point, c.localNormalAt)
}

func (c *Cylinder) localNormalAt(point core.Point) core.Vector {
	dist := point.X*point.X + point.Z*point.Z

	// Epsilon accepts points that are not exactly on a cap
	if dist < 1 && point.Y >= c.Maximum-core.Epsilon {
		return core.NewVector(0, 1, 0)
	}
	if dist < 1 && point.Y <= c.Minimum+core.Epsilon {
		return core.NewVector(0, -1, 0)
	}
	return core.NewVector(point.X, 0, point.Z)
}

// Bounds returns the unit-radius box between Minimum and Maximum
func (c *Cylinder) Bounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, c.Minimum, -1), core.NewPoint(1, c.Maximum, 1))
}

// nearZero reports whether v is negligible relative to scale, where scale
// is the matching power of the object-space direction length
func nearZero(v, scale float64) bool {
	return math.Abs(v) < core.Epsilon*scale
}

// appendWithinHeight adds the wall hits t0 and t1 that fall strictly between
// minimum and maximum
func appendWithinHeight(xs []Intersection, object Primitive, ray core.Ray, minimum, maximum, t0, t1 float64) []Intersection {
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	for _, t := range []float64{t0, t1} {
		y := ray.Origin.Y + t*ray.Direction.Y
		if minimum < y && y < maximum {
			xs = append(xs, NewIntersection(t, object))
		}
	}
	return xs
}

// intersectCaps tests the end caps of a closed cylinder or cone. radius gives
// the cap radius at a cap's y value. Infinite bounds have no cap.
func intersectCaps(object Primitive, ray core.Ray, minimum, maximum float64, closed bool, radius func(y float64) float64) []Intersection {
	if !closed || core.ApproxEqual(ray.Direction.Y, 0) {
		return nil
	}

	var xs []Intersection
	for _, capY := range []float64{minimum, maximum} {
		if math.IsInf(capY, 0) {
			continue
		}

		t := (capY - ray.Origin.Y) / ray.Direction.Y
		x := ray.Origin.X + t*ray.Direction.X
		z := ray.Origin.Z + t*ray.Direction.Z
		r := radius(capY)
		if x*x+z*z <= r*r {
			xs = append(xs, NewIntersection(t, object))
		}
	}
	return xs
}
