package core

import (
	"math"
	"testing"
)

func TestPointVector_Arithmetic(t *testing.T) {
	t.Run("point minus point is a vector", func(t *testing.T) {
		got := NewPoint(3, 2, 1).Subtract(NewPoint(5, 6, 7))
		expected := NewVector(-2, -4, -6)
		if !got.Equals(expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
		if got.W() != 0 {
			t.Errorf("Expected w=0, got %v", got.W())
		}
	})

	t.Run("point plus vector is a point", func(t *testing.T) {
		got := NewPoint(3, -2, 5).Add(NewVector(-2, 3, 1))
		expected := NewPoint(1, 1, 6)
		if !got.Equals(expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
		if got.W() != 1 {
			t.Errorf("Expected w=1, got %v", got.W())
		}
	})

	t.Run("point minus vector is a point", func(t *testing.T) {
		got := NewPoint(3, 2, 1).SubtractVector(NewVector(5, 6, 7))
		expected := NewPoint(-2, -4, -6)
		if !got.Equals(expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("negating a vector", func(t *testing.T) {
		got := NewVector(1, -2, 3).Negate()
		expected := NewVector(-1, 2, -3)
		if !got.Equals(expected) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vector
		expected float64
	}{
		{"unit x", NewVector(1, 0, 0), 1},
		{"unit z", NewVector(0, 0, 1), 1},
		{"positive", NewVector(1, 2, 3), math.Sqrt(14)},
		{"negative", NewVector(-1, -2, -3), math.Sqrt(14)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.Magnitude(); !ApproxEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestVector_Normalize(t *testing.T) {
	got := NewVector(1, 2, 3).Normalize()
	expected := NewVector(0.26726, 0.53452, 0.80178)
	if !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if !ApproxEqual(got.Magnitude(), 1) {
		t.Errorf("Expected unit length, got %v", got.Magnitude())
	}

	zero := NewVector(0, 0, 0).Normalize()
	if zero != (Vector{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVector_DotCross(t *testing.T) {
	a := NewVector(1, 2, 3)
	b := NewVector(2, 3, 4)

	if got := a.Dot(b); got != 20 {
		t.Errorf("Expected dot 20, got %v", got)
	}
	if got := a.Cross(b); !got.Equals(NewVector(-1, 2, -1)) {
		t.Errorf("Expected a x b = (-1, 2, -1), got %v", got)
	}
	if got := b.Cross(a); !got.Equals(NewVector(1, -2, 1)) {
		t.Errorf("Expected b x a = (1, -2, 1), got %v", got)
	}
}

func TestVector_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		v        Vector
		normal   Vector
		expected Vector
	}{
		{"approaching at 45 degrees", NewVector(1, -1, 0), NewVector(0, 1, 0), NewVector(1, 1, 0)},
		{"off a slanted surface", NewVector(0, -1, 0), NewVector(math.Sqrt2/2, math.Sqrt2/2, 0), NewVector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Reflect(tt.normal); !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(1, 1+Epsilon/2) {
		t.Error("Expected values within epsilon to be equal")
	}
	if ApproxEqual(1, 1+Epsilon*2) {
		t.Error("Expected values beyond epsilon to differ")
	}
	if !ApproxEqual(math.Inf(1), math.Inf(1)) {
		t.Error("Expected +inf to equal +inf")
	}
}

func TestScaledOffset(t *testing.T) {
	if got := ScaledOffset(SurfaceOffset, NewPoint(0, 0.5, 0)); got != SurfaceOffset {
		t.Errorf("Expected base offset near the origin, got %v", got)
	}
	if got := ScaledOffset(SurfaceOffset, NewPoint(0, 0, 100)); !ApproxEqual(got, SurfaceOffset*100) {
		t.Errorf("Expected offset scaled by distance, got %v", got)
	}
}
