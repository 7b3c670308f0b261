package core

import "math"

// Transform caches a matrix together with its inverse and inverse transpose.
// Every intersection and normal query needs the inverse, so it is computed
// once when the transform is assigned.
type Transform struct {
	matrix           Matrix
	inverse          Matrix
	inverseTranspose Matrix
}

// NewTransform validates m and precomputes its inverse
func NewTransform(m Matrix) (Transform, error) {
	inv, err := m.Inverse()
	if err != nil {
		return Transform{}, err
	}
	return Transform{matrix: m, inverse: inv, inverseTranspose: inv.Transpose()}, nil
}

// MustTransform is like NewTransform but panics if m is singular.
// Intended for literal transforms in scene code and tests.
func MustTransform(m Matrix) Transform {
	t, err := NewTransform(m)
	if err != nil {
		panic("core: MustTransform: " + err.Error())
	}
	return t
}

// IdentityTransform returns the transform that leaves everything in place
func IdentityTransform() Transform {
	id := Identity()
	return Transform{matrix: id, inverse: id, inverseTranspose: id}
}

// Matrix returns the forward matrix
func (t Transform) Matrix() Matrix { return t.matrix }

// Inverse returns the cached inverse matrix
func (t Transform) Inverse() Matrix { return t.inverse }

// InverseTranspose returns the cached transpose of the inverse
func (t Transform) InverseTranspose() Matrix { return t.inverseTranspose }

// Translation moves points by (x, y, z); vectors are unaffected
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX rotates around the x axis by r radians (left-handed)
func RotationX(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[1][1] = cos
	m[1][2] = -sin
	m[2][1] = sin
	m[2][2] = cos
	return m
}

// RotationY rotates around the y axis by r radians
func RotationY(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[0][0] = cos
	m[0][2] = sin
	m[2][0] = -sin
	m[2][2] = cos
	return m
}

// RotationZ rotates around the z axis by r radians
func RotationZ(r float64) Matrix {
	cos, sin := math.Cos(r), math.Sin(r)
	m := Identity()
	m[0][0] = cos
	m[0][1] = -sin
	m[1][0] = sin
	m[1][1] = cos
	return m
}

// Shearing moves each component in proportion to the other two.
// xy is "x moved in proportion to y", and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// ViewTransform orients the world relative to an eye at from looking at to
func ViewTransform(from, to Point, up Vector) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z))
}

// Chain composes transforms in the order they are applied:
// Chain(a, b, c) is c * b * a.
func Chain(steps ...Matrix) Matrix {
	result := Identity()
	for _, step := range steps {
		result = step.Mul(result)
	}
	return result
}
