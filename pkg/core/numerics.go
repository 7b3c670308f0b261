package core

import "math"

// Tolerances used across the tracer.
const (
	// Epsilon is the general equality tolerance for tuples, colors and matrices.
	Epsilon = 1e-4

	// ParallelEpsilon is the threshold below which a ray direction component
	// (or a determinant) is treated as zero.
	ParallelEpsilon = 1e-4

	// SurfaceOffset nudges shadow and reflection ray origins off a surface.
	SurfaceOffset = 1e-4

	// RefractionOffset nudges refraction ray origins below a surface.
	RefractionOffset = 1e-4
)

// ApproxEqual reports whether a and b differ by less than Epsilon.
// Infinities of the same sign compare equal.
func ApproxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) < Epsilon
}

// ScaledOffset returns base scaled by the distance of p from the origin,
// never less than base itself.
func ScaledOffset(base float64, p Point) float64 {
	return base * math.Max(1, p.DistanceFromOrigin())
}
