package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// testShape records the object-space ray it was intersected with and uses
// the object-space point as its normal
type testShape struct {
	surface
	savedRay *core.Ray
}

func newTestShape() *testShape {
	return &testShape{}
}

func (ts *testShape) Intersect(ray core.Ray) Intersections {
	local := ts.toObject(ray)
	ts.savedRay = &local
	return nil
}

func (ts *testShape) NormalAt(point core.Point, _ Intersection) core.Vector {
	return ts.normalAt(point, func(p core.Point) core.Vector {
		return p.Subtract(core.Origin)
	})
}

func (ts *testShape) Bounds() core.AABB {
	return core.NewAABB(core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1))
}

func TestShape_DefaultTransformAndMaterial(t *testing.T) {
	s := newTestShape()

	if !s.Transform().Matrix().Equals(core.Identity()) {
		t.Errorf("Expected identity transform, got\n%v", s.Transform().Matrix())
	}
	if s.Material() != material.DefaultMaterial() {
		t.Errorf("Expected default material, got %+v", s.Material())
	}
	if s.Parent() != nil {
		t.Error("Expected no parent")
	}

	s.SetTransform(core.MustTransform(core.Translation(2, 3, 4)))
	if !s.Transform().Matrix().Equals(core.Translation(2, 3, 4)) {
		t.Errorf("Expected translation, got\n%v", s.Transform().Matrix())
	}

	m := material.DefaultMaterial()
	m.Ambient = 1
	s.SetMaterial(m)
	if s.Material().Ambient != 1 {
		t.Errorf("Expected assigned material, got %+v", s.Material())
	}
}

func TestShape_IntersectTransformsRay(t *testing.T) {
	tests := []struct {
		name      string
		transform core.Matrix
		origin    core.Point
		direction core.Vector
	}{
		{"scaled shape", core.Scaling(2, 2, 2), core.NewPoint(0, 0, -2.5), core.NewVector(0, 0, 0.5)},
		{"translated shape", core.Translation(5, 0, 0), core.NewPoint(-5, 0, -5), core.NewVector(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := core.NewRay(core.NewPoint(0, 0, -5), core.NewVector(0, 0, 1))
			s := newTestShape()
			s.SetTransform(core.MustTransform(tt.transform))
			s.Intersect(r)

			if s.savedRay == nil {
				t.Fatal("Expected shape to record the local ray")
			}
			if !s.savedRay.Origin.Equals(tt.origin) || !s.savedRay.Direction.Equals(tt.direction) {
				t.Errorf("Expected ray(%v, %v), got %v", tt.origin, tt.direction, *s.savedRay)
			}
		})
	}
}

func TestShape_NormalAtTransformed(t *testing.T) {
	t.Run("translated shape", func(t *testing.T) {
		s := newTestShape()
		s.SetTransform(core.MustTransform(core.Translation(0, 1, 0)))
		got := s.NormalAt(core.NewPoint(0, 1.70711, -0.70711), Intersection{})
		if !got.Equals(core.NewVector(0, 0.70711, -0.70711)) {
			t.Errorf("Unexpected normal %v", got)
		}
	})

	t.Run("scaled and rotated shape", func(t *testing.T) {
		s := newTestShape()
		s.SetTransform(core.MustTransform(core.Scaling(1, 0.5, 1).Mul(core.RotationZ(math.Pi / 5))))
		got := s.NormalAt(core.NewPoint(0, math.Sqrt2/2, -math.Sqrt2/2), Intersection{})
		if !got.Equals(core.NewVector(0, 0.97014, -0.24254)) {
			t.Errorf("Unexpected normal %v", got)
		}
	})
}

func TestShape_NestedGroupConversions(t *testing.T) {
	g1 := NewGroup()
	g1.SetTransform(core.MustTransform(core.RotationY(math.Pi / 2)))
	g2 := NewGroup()
	g2.SetTransform(core.MustTransform(core.Scaling(1, 2, 3)))
	g1.AddChild(g2)
	s := NewSphere()
	s.SetTransform(core.MustTransform(core.Translation(5, 0, 0)))
	g2.AddChild(s)

	t.Run("world to object", func(t *testing.T) {
		g2.SetTransform(core.MustTransform(core.Scaling(2, 2, 2)))
		got := s.WorldToObject(core.NewPoint(-2, 0, -10))
		if !got.Equals(core.NewPoint(0, 0, -1)) {
			t.Errorf("Expected point(0, 0, -1), got %v", got)
		}
	})

	t.Run("normal to world", func(t *testing.T) {
		g2.SetTransform(core.MustTransform(core.Scaling(1, 2, 3)))
		k := math.Sqrt(3) / 3
		got := s.NormalToWorld(core.NewVector(k, k, k))
		if !got.Equals(core.NewVector(0.2857, 0.4286, -0.8571)) {
			t.Errorf("Expected vector(0.2857, 0.4286, -0.8571), got %v", got)
		}
	})

	t.Run("normal on a child object", func(t *testing.T) {
		g2.SetTransform(core.MustTransform(core.Scaling(1, 2, 3)))
		got := s.NormalAt(core.NewPoint(1.7321, 1.1547, -5.5774), Intersection{})
		if !got.Equals(core.NewVector(0.2857, 0.4286, -0.8571)) {
			t.Errorf("Expected vector(0.2857, 0.4286, -0.8571), got %v", got)
		}
	})
}

func TestShape_Bounds(t *testing.T) {
	inf := math.Inf(1)
	tri, err := NewTriangle(core.NewPoint(-3, 7, 2), core.NewPoint(6, 2, -4), core.NewPoint(2, -1, -1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		shape    Shape
		min, max core.Point
	}{
		{"sphere", NewSphere(), core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1)},
		{"plane", NewPlane(), core.NewPoint(-inf, 0, -inf), core.NewPoint(inf, 0, inf)},
		{"cube", NewCube(), core.NewPoint(-1, -1, -1), core.NewPoint(1, 1, 1)},
		{"unbounded cylinder", NewCylinder(), core.NewPoint(-1, -inf, -1), core.NewPoint(1, inf, 1)},
		{"bounded cylinder", NewTruncatedCylinder(-5, 3, false), core.NewPoint(-1, -5, -1), core.NewPoint(1, 3, 1)},
		{"unbounded cone", NewCone(), core.NewPoint(-inf, -inf, -inf), core.NewPoint(inf, inf, inf)},
		{"bounded cone", NewTruncatedCone(-5, 3, false), core.NewPoint(-5, -5, -5), core.NewPoint(5, 3, 5)},
		{"triangle", tri, core.NewPoint(-3, -1, -4), core.NewPoint(6, 7, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := tt.shape.Bounds()
			if !box.Min.Equals(tt.min) || !box.Max.Equals(tt.max) {
				t.Errorf("Expected aabb(%v, %v), got %v", tt.min, tt.max, box)
			}
		})
	}
}

func TestParentSpaceBounds(t *testing.T) {
	s := NewSphere()
	s.SetTransform(core.MustTransform(core.Translation(1, -3, 5).Mul(core.Scaling(0.5, 2, 4))))

	box := ParentSpaceBounds(s)
	if !box.Min.Equals(core.NewPoint(0.5, -5, 1)) || !box.Max.Equals(core.NewPoint(1.5, -1, 9)) {
		t.Errorf("Unexpected parent-space bounds %v", box)
	}
}
