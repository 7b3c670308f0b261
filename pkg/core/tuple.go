package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in space (homogeneous w = 1).
type Point r3.Vec

// Vector is a direction/displacement in space (homogeneous w = 0).
// Point has no Negate; point-point yields a Vector.
type Vector r3.Vec

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// NewVector creates a new Vector
func NewVector(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Origin is the point (0, 0, 0).
var Origin = Point{}

// W returns the homogeneous coordinate of a point.
func (p Point) W() float64 { return 1 }

// Add translates the point by a vector
func (p Point) Add(v Vector) Point {
	return Point(r3.Add(r3.Vec(p), r3.Vec(v)))
}

// Subtract returns the vector from other to p
func (p Point) Subtract(other Point) Vector {
	return Vector(r3.Sub(r3.Vec(p), r3.Vec(other)))
}

// SubtractVector translates the point by the negated vector
func (p Point) SubtractVector(v Vector) Point {
	return Point(r3.Sub(r3.Vec(p), r3.Vec(v)))
}

// DistanceFromOrigin returns |p - origin|
func (p Point) DistanceFromOrigin() float64 {
	return r3.Norm(r3.Vec(p))
}

// Equals compares two points within Epsilon
func (p Point) Equals(other Point) bool {
	return ApproxEqual(p.X, other.X) && ApproxEqual(p.Y, other.Y) && ApproxEqual(p.Z, other.Z)
}

func (p Point) String() string {
	return fmt.Sprintf("point(%g, %g, %g)", p.X, p.Y, p.Z)
}

// W returns the homogeneous coordinate of a vector.
func (v Vector) W() float64 { return 0 }

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) Vector {
	return Vector(r3.Add(r3.Vec(v), r3.Vec(other)))
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) Vector {
	return Vector(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// Multiply returns the vector scaled by a scalar
func (v Vector) Multiply(scalar float64) Vector {
	return Vector(r3.Scale(scalar, r3.Vec(v)))
}

// Negate returns the opposite vector
func (v Vector) Negate() Vector {
	return Vector(r3.Scale(-1, r3.Vec(v)))
}

// Magnitude returns the length of the vector
func (v Vector) Magnitude() float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (v Vector) Normalize() Vector {
	if r3.Norm2(r3.Vec(v)) == 0 {
		return v
	}
	return Vector(r3.Unit(r3.Vec(v)))
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(other))
}

// Cross returns the cross product of two vectors
func (v Vector) Cross(other Vector) Vector {
	return Vector(r3.Cross(r3.Vec(v), r3.Vec(other)))
}

// Reflect mirrors v around the normal n
func (v Vector) Reflect(n Vector) Vector {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Equals compares two vectors within Epsilon
func (v Vector) Equals(other Vector) bool {
	return ApproxEqual(v.X, other.X) && ApproxEqual(v.Y, other.Y) && ApproxEqual(v.Z, other.Z)
}

func (v Vector) String() string {
	return fmt.Sprintf("vector(%g, %g, %g)", v.X, v.Y, v.Z)
}
