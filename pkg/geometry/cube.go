package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Cube is the axis-aligned cube spanning [-1, 1] on every axis
type Cube struct {
	surface
}

// NewCube creates a cube with the default material
func NewCube() *Cube {
	return &Cube{}
}

// Intersect uses the slab method against the six faces
func (c *Cube) Intersect(ray core.Ray) Intersections {
	local := c.toObject(ray)

	xMin, xMax := core.SlabInterval(local.Origin.X, local.Direction.X, -1, 1)
	yMin, yMax := core.SlabInterval(local.Origin.Y, local.Direction.Y, -1, 1)
	zMin, zMax := core.SlabInterval(local.Origin.Z, local.Direction.Z, -1, 1)

	tMin := max(xMin, yMin, zMin)
	tMax := min(xMax, yMax, zMax)
	if tMin > tMax {
		return nil
	}

	return Intersections{NewIntersection(tMin, c), NewIntersection(tMax, c)}
}

// NormalAt returns the world-space normal of the face containing point
func (c *Cube) NormalAt(point core.Point, _ Intersection) core.Vector {
	return c.normalAt(point, c.localNormalAt)
}

// localNormalAt picks the axis with the largest absolute coordinate,
// preferring x, then y, then z on ties
func (c *Cube) localNormalAt(point core.Point) core.Vector {
	absX, absY, absZ := math.Abs(point.X), math.Abs(point.Y), math.Abs(point.Z)
	maxC := max(absX, absY, absZ)

	switch maxC {
	case absX:
		return core.NewVector(point.X, 0, 0)
	case absY:
		return core.NewVector(0, point.Y, 0)
	default:
		return core.NewVector(0, 0, point.Z)
	}
}

// Bounds returns the cube itself
func (c *Cube) Bounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}
