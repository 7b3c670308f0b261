package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// base holds the transform and parent link shared by every shape.
// A nil transform is the identity.
type base struct {
	transform *core.Transform
	parent    *Group
}

// Transform returns the shape's object-to-parent transform
func (b *base) Transform() core.Transform {
	if b.transform == nil {
		return core.IdentityTransform()
	}
	return *b.transform
}

// SetTransform replaces the shape's transform and invalidates the cached
// bounds of every ancestor group
func (b *base) SetTransform(t core.Transform) {
	b.transform = &t
	if b.parent != nil {
		b.parent.invalidateBounds()
	}
}

// Parent returns the owning group, if any
func (b *base) Parent() *Group {
	return b.parent
}

func (b *base) setParent(g *Group) {
	b.parent = g
}

// WorldToObject converts a world point into this shape's object space
func (b *base) WorldToObject(point core.Point) core.Point {
	if b.parent != nil {
		point = b.parent.WorldToObject(point)
	}
	return b.Transform().Inverse().MulPoint(point)
}

// NormalToWorld converts an object-space normal to world space
func (b *base) NormalToWorld(normal core.Vector) core.Vector {
	normal = b.Transform().InverseTranspose().MulVector(normal).Normalize()
	if b.parent != nil {
		normal = b.parent.NormalToWorld(normal)
	}
	return normal
}

// Divide is a no-op for primitives
func (b *base) Divide(threshold int) {}

// toObject converts a parent-space ray into object space
func (b *base) toObject(ray core.Ray) core.Ray {
	return ray.Transform(b.Transform().Inverse())
}

// surface adds a material to base. A nil material is the default material.
type surface struct {
	base
	material *material.Material
}

// Material returns the shape's material
func (s *surface) Material() material.Material {
	if s.material == nil {
		return material.DefaultMaterial()
	}
	return *s.material
}

// SetMaterial replaces the shape's material
func (s *surface) SetMaterial(m material.Material) {
	s.material = &m
}

// normalAt runs a local normal function in object space and converts the
// result back to world space
func (s *surface) normalAt(point core.Point, local func(core.Point) core.Vector) core.Vector {
	return s.NormalToWorld(local(s.WorldToObject(point)))
}

// ParentSpaceBounds returns the shape's bounds transformed into the space of
// its parent
func ParentSpaceBounds(s Shape) core.AABB {
	return s.Bounds().Transform(s.Transform().Matrix())
}
