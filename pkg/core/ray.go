package core

import "fmt"

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Point
	Direction Vector
}

// NewRay creates a new ray
func NewRay(origin Point, direction Vector) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Transform applies m to the ray. The direction is left unnormalized so that
// t values stay comparable across coordinate spaces.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{Origin: m.MulPoint(r.Origin), Direction: m.MulVector(r.Direction)}
}

func (r Ray) String() string {
	return fmt.Sprintf("ray(%v -> %v)", r.Origin, r.Direction)
}
