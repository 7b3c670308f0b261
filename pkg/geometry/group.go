package geometry

import (
	"slices"
	"sync/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Group is a composite shape that owns an ordered list of children and
// applies its transform to all of them. Its bounding box is computed lazily
// and invalidated whenever a child is added or a descendant's transform
// changes.
type Group struct {
	base
	children []Shape
	bounds   atomic.Pointer[core.AABB]
}

// NewGroup creates a group owning children
func NewGroup(children ...Shape) *Group {
	g := &Group{}
	g.AddChild(children...)
	return g
}

// AddChild appends children to the group and makes it their parent.
// A child owned by another group is moved.
func (g *Group) AddChild(children ...Shape) {
	for _, child := range children {
		if old := child.Parent(); old != nil && old != g {
			old.removeChild(child)
		}
		child.setParent(g)
		g.children = append(g.children, child)
	}
	g.invalidateBounds()
}

// Children returns the group's children in insertion order
func (g *Group) Children() []Shape {
	return g.children
}

// Len returns the number of direct children
func (g *Group) Len() int {
	return len(g.children)
}

func (g *Group) removeChild(child Shape) {
	if i := slices.Index(g.children, child); i >= 0 {
		g.children = slices.Delete(g.children, i, i+1)
		g.invalidateBounds()
	}
}

// invalidateBounds drops the cached box here and in every ancestor
func (g *Group) invalidateBounds() {
	for group := g; group != nil; group = group.parent {
		group.bounds.Store(nil)
	}
}

// Bounds returns the union of every child's parent-space bounds
func (g *Group) Bounds() core.AABB {
	if cached := g.bounds.Load(); cached != nil {
		return *cached
	}

	box := core.NewEmptyAABB()
	for _, child := range g.children {
		box = box.Union(ParentSpaceBounds(child))
	}
	g.bounds.Store(&box)
	return box
}

// Intersect rejects rays that miss the group's box without testing any
// child, otherwise merges the children's intersections
func (g *Group) Intersect(ray core.Ray) Intersections {
	if len(g.children) == 0 {
		return nil
	}

	local := g.toObject(ray)
	if !g.Bounds().Intersects(local) {
		return nil
	}

	var xs Intersections
	for _, child := range g.children {
		xs = append(xs, child.Intersect(local)...)
	}
	xs.Sort()
	return xs
}

// Divide splits the group into a bounding volume hierarchy. When the group
// has at least threshold children, the children that fit entirely in one
// half of the group's box move into a new subgroup for that half. Every
// remaining child is then divided in turn.
func (g *Group) Divide(threshold int) {
	if threshold <= len(g.children) {
		left, right := g.partitionChildren()
		if len(left) > 0 {
			g.makeSubgroup(left...)
		}
		if len(right) > 0 {
			g.makeSubgroup(right...)
		}
	}

	for _, child := range g.children {
		child.Divide(threshold)
	}
}

// partitionChildren removes and returns the children that fit in the left
// and right halves of the group's box. Nothing moves when the box is not
// finite or when one half would take every child.
func (g *Group) partitionChildren() (left, right []Shape) {
	box := g.Bounds()
	if !box.IsFinite() {
		return nil, nil
	}

	leftBox, rightBox := box.Split()
	var remaining []Shape
	for _, child := range g.children {
		childBox := ParentSpaceBounds(child)
		switch {
		case leftBox.ContainsBox(childBox):
			left = append(left, child)
		case rightBox.ContainsBox(childBox):
			right = append(right, child)
		default:
			remaining = append(remaining, child)
		}
	}

	if len(left) == len(g.children) || len(right) == len(g.children) {
		return nil, nil
	}

	g.children = remaining
	g.invalidateBounds()
	return left, right
}

// makeSubgroup wraps children in a new group and adds it to g
func (g *Group) makeSubgroup(children ...Shape) {
	g.AddChild(NewGroup(children...))
}
