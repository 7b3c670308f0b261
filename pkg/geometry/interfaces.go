package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is a node in the scene graph: a primitive surface or a Group.
// The set of shapes is closed; only types in this package implement it.
type Shape interface {
	// Intersect returns every intersection of a world-space (or parent-space)
	// ray with the shape, sorted by t
	Intersect(ray core.Ray) Intersections

	// Bounds returns the shape's bounding box in its own object space
	Bounds() core.AABB

	Transform() core.Transform
	SetTransform(t core.Transform)

	// Parent returns the group that owns this shape, or nil at the top level
	Parent() *Group

	// WorldToObject converts a world-space point into object space through
	// every ancestor group
	WorldToObject(point core.Point) core.Point

	// NormalToWorld converts an object-space normal into world space through
	// every ancestor group
	NormalToWorld(normal core.Vector) core.Vector

	// Divide builds a bounding volume hierarchy below groups with at least
	// threshold children. A no-op on primitives.
	Divide(threshold int)

	setParent(g *Group)
}

// Primitive is a shape with a surface: it has a material and a normal.
// Group has no surface and does not implement Primitive.
type Primitive interface {
	Shape

	Material() material.Material
	SetMaterial(m material.Material)

	// NormalAt returns the world-space surface normal at a world-space point.
	// hit carries the barycentric coordinates needed by smooth triangles.
	NormalAt(point core.Point, hit Intersection) core.Vector
}
