package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern is a procedural color function evaluated in its own pattern space
type Pattern interface {
	// PatternAt returns the color at a point already in pattern space
	PatternAt(point core.Point) core.Color

	Transform() core.Transform
	SetTransform(t core.Transform)
}

// Object is the part of a shape a pattern needs: converting a world-space
// point into the shape's object space, through every parent group.
type Object interface {
	WorldToObject(point core.Point) core.Point
}
