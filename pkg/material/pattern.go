package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PatternAtShape evaluates pattern at a world-space point on object. The point
// is taken into object space through the shape's parent chain and then into
// pattern space through the pattern's own transform. A nil object is treated
// as an untransformed shape.
func PatternAtShape(pattern Pattern, object Object, worldPoint core.Point) core.Color {
	objectPoint := worldPoint
	if object != nil {
		objectPoint = object.WorldToObject(worldPoint)
	}
	patternPoint := pattern.Transform().Inverse().MulPoint(objectPoint)
	return pattern.PatternAt(patternPoint)
}

// patternTransform holds a pattern's transform. The zero value is identity.
type patternTransform struct {
	transform *core.Transform
}

// Transform returns the pattern transform
func (p *patternTransform) Transform() core.Transform {
	if p.transform == nil {
		return core.IdentityTransform()
	}
	return *p.transform
}

// SetTransform replaces the pattern transform
func (p *patternTransform) SetTransform(t core.Transform) {
	p.transform = &t
}

// floorEven reports whether floor(v) is even
func floorEven(v float64) bool {
	return int64(math.Floor(v))%2 == 0
}

// StripePattern alternates between A and B along x
type StripePattern struct {
	patternTransform
	A, B core.Color
}

// NewStripePattern creates a stripe pattern
func NewStripePattern(a, b core.Color) *StripePattern {
	return &StripePattern{A: a, B: b}
}

// PatternAt returns A when floor(x) is even and B otherwise
func (s *StripePattern) PatternAt(point core.Point) core.Color {
	if floorEven(point.X) {
		return s.A
	}
	return s.B
}

// GradientPattern blends linearly from A to B over each unit of x
type GradientPattern struct {
	patternTransform
	A, B core.Color
}

// NewGradientPattern creates a gradient pattern
func NewGradientPattern(a, b core.Color) *GradientPattern {
	return &GradientPattern{A: a, B: b}
}

// PatternAt interpolates by the fractional part of x
func (g *GradientPattern) PatternAt(point core.Point) core.Color {
	fraction := point.X - math.Floor(point.X)
	return g.A.Add(g.B.Subtract(g.A).Multiply(fraction))
}

// RingPattern alternates between A and B in concentric rings around the y axis
type RingPattern struct {
	patternTransform
	A, B core.Color
}

// NewRingPattern creates a ring pattern
func NewRingPattern(a, b core.Color) *RingPattern {
	return &RingPattern{A: a, B: b}
}

// PatternAt tests the distance from the y axis in the xz plane
func (r *RingPattern) PatternAt(point core.Point) core.Color {
	if floorEven(math.Hypot(point.X, point.Z)) {
		return r.A
	}
	return r.B
}

// CheckerPattern alternates between A and B in unit cubes
type CheckerPattern struct {
	patternTransform
	A, B core.Color
}

// NewCheckerPattern creates a 3D checker pattern
func NewCheckerPattern(a, b core.Color) *CheckerPattern {
	return &CheckerPattern{A: a, B: b}
}

// PatternAt tests the sum of the floors of all three coordinates
func (c *CheckerPattern) PatternAt(point core.Point) core.Color {
	sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
	if floorEven(sum) {
		return c.A
	}
	return c.B
}

// TestPattern returns the pattern-space point as a color. Useful for
// checking how points are carried into pattern space.
type TestPattern struct {
	patternTransform
}

// NewTestPattern creates a test pattern
func NewTestPattern() *TestPattern {
	return &TestPattern{}
}

// PatternAt returns color(x, y, z)
func (tp *TestPattern) PatternAt(point core.Point) core.Color {
	return core.NewColor(point.X, point.Y, point.Z)
}
