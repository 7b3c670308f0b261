package core

import (
	"fmt"
	"math"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Point // Minimum corner
	Max Point // Maximum corner
}

// NewEmptyAABB returns a box with min = +inf and max = -inf on every axis.
// It is the identity element for Union and AddPoint.
func NewEmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewPoint(inf, inf, inf),
		Max: NewPoint(-inf, -inf, -inf),
	}
}

// NewInfiniteAABB returns a box covering all of space
func NewInfiniteAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewPoint(-inf, -inf, -inf),
		Max: NewPoint(inf, inf, inf),
	}
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Point) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Point) AABB {
	box := NewEmptyAABB()
	for _, p := range points {
		box = box.AddPoint(p)
	}
	return box
}

// AddPoint returns the box grown to include p. NaN components are ignored.
func (aabb AABB) AddPoint(p Point) AABB {
	if p.X < aabb.Min.X {
		aabb.Min.X = p.X
	}
	if p.Y < aabb.Min.Y {
		aabb.Min.Y = p.Y
	}
	if p.Z < aabb.Min.Z {
		aabb.Min.Z = p.Z
	}
	if p.X > aabb.Max.X {
		aabb.Max.X = p.X
	}
	if p.Y > aabb.Max.Y {
		aabb.Max.Y = p.Y
	}
	if p.Z > aabb.Max.Z {
		aabb.Max.Z = p.Z
	}
	return aabb
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return aabb.AddPoint(other.Min).AddPoint(other.Max)
}

// ContainsPoint reports whether p lies inside the box, boundary included
func (aabb AABB) ContainsPoint(p Point) bool {
	return aabb.Min.X <= p.X && p.X <= aabb.Max.X &&
		aabb.Min.Y <= p.Y && p.Y <= aabb.Max.Y &&
		aabb.Min.Z <= p.Z && p.Z <= aabb.Max.Z
}

// ContainsBox reports whether other lies entirely inside the box
func (aabb AABB) ContainsBox(other AABB) bool {
	return aabb.ContainsPoint(other.Min) && aabb.ContainsPoint(other.Max)
}

// SlabInterval returns the range of t over which a ray with the given origin
// and direction component lies between lo and hi on one axis. A direction
// component below ParallelEpsilon yields (-inf, +inf) when the origin is inside
// the slab and an empty (+inf, -inf) interval when it is outside.
func SlabInterval(origin, direction, lo, hi float64) (tMin, tMax float64) {
	if math.Abs(direction) < ParallelEpsilon {
		if origin < lo || origin > hi {
			return math.Inf(1), math.Inf(-1)
		}
		return math.Inf(-1), math.Inf(1)
	}

	tMin = (lo - origin) / direction
	tMax = (hi - origin) / direction
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// Intersects tests whether a ray crosses the box using the slab method
func (aabb AABB) Intersects(ray Ray) bool {
	if aabb.IsEmpty() {
		return false
	}

	xMin, xMax := SlabInterval(ray.Origin.X, ray.Direction.X, aabb.Min.X, aabb.Max.X)
	yMin, yMax := SlabInterval(ray.Origin.Y, ray.Direction.Y, aabb.Min.Y, aabb.Max.Y)
	zMin, zMax := SlabInterval(ray.Origin.Z, ray.Direction.Z, aabb.Min.Z, aabb.Max.Z)

	tMin := max(xMin, yMin, zMin)
	tMax := min(xMax, yMax, zMax)
	return tMin <= tMax
}

// Transform returns a box enclosing all eight corners of this box after
// applying m. Boxes with infinite extent that rotate into mixed infinities
// become the infinite box. An empty box stays empty.
func (aabb AABB) Transform(m Matrix) AABB {
	if aabb.IsEmpty() {
		return aabb
	}

	corners := [8]Point{
		aabb.Min,
		NewPoint(aabb.Min.X, aabb.Min.Y, aabb.Max.Z),
		NewPoint(aabb.Min.X, aabb.Max.Y, aabb.Min.Z),
		NewPoint(aabb.Min.X, aabb.Max.Y, aabb.Max.Z),
		NewPoint(aabb.Max.X, aabb.Min.Y, aabb.Min.Z),
		NewPoint(aabb.Max.X, aabb.Min.Y, aabb.Max.Z),
		NewPoint(aabb.Max.X, aabb.Max.Y, aabb.Min.Z),
		aabb.Max,
	}

	result := NewEmptyAABB()
	for _, corner := range corners {
		p := mulPointExtended(m, corner)
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
			return NewInfiniteAABB()
		}
		result = result.AddPoint(p)
	}
	return result
}

// mulPointExtended is MulPoint with 0 * inf taken as 0, so that planes keep
// their finite axis under axis-aligned transforms.
func mulPointExtended(m Matrix, p Point) Point {
	term := func(a, b float64) float64 {
		if a == 0 {
			return 0
		}
		return a * b
	}
	row := func(r int) float64 {
		return term(m[r][0], p.X) + term(m[r][1], p.Y) + term(m[r][2], p.Z) + m[r][3]
	}
	return Point{X: row(0), Y: row(1), Z: row(2)}
}

// Size returns the extent of the box along each axis
func (aabb AABB) Size() Vector {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties go to x, then y, then z.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	greatest := max(size.X, size.Y, size.Z)
	switch {
	case ApproxEqual(size.X, greatest):
		return 0
	case ApproxEqual(size.Y, greatest):
		return 1
	default:
		return 2
	}
}

// Split bisects the box at the midpoint of its longest axis
func (aabb AABB) Split() (left, right AABB) {
	x0, y0, z0 := aabb.Min.X, aabb.Min.Y, aabb.Min.Z
	x1, y1, z1 := aabb.Max.X, aabb.Max.Y, aabb.Max.Z

	switch aabb.LongestAxis() {
	case 0:
		x0 = x0 + (x1-x0)/2
		x1 = x0
	case 1:
		y0 = y0 + (y1-y0)/2
		y1 = y0
	default:
		z0 = z0 + (z1-z0)/2
		z1 = z0
	}

	left = NewAABB(aabb.Min, NewPoint(x1, y1, z1))
	right = NewAABB(NewPoint(x0, y0, z0), aabb.Max)
	return left, right
}

// IsEmpty reports whether the box contains no points
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// IsFinite reports whether every bound of the box is a finite number
func (aabb AABB) IsFinite() bool {
	for _, v := range []float64{aabb.Min.X, aabb.Min.Y, aabb.Min.Z, aabb.Max.X, aabb.Max.Y, aabb.Max.Z} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func (aabb AABB) String() string {
	return fmt.Sprintf("aabb(%v, %v)", aabb.Min, aabb.Max)
}
