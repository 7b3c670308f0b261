package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrDegenerateTriangle is returned for triangles whose vertices are
// coincident or collinear
var ErrDegenerateTriangle = errors.New("degenerate triangle")

// triangleGeometry holds the vertices and cached edges shared by flat and
// smooth triangles
type triangleGeometry struct {
	P1, P2, P3 core.Point
	E1, E2     core.Vector // P2-P1 and P3-P1

	edgeScale float64 // |E1| * |E2|, used to scale the parallel test
}

func newTriangleGeometry(p1, p2, p3 core.Point) (triangleGeometry, error) {
	e1 := p2.Subtract(p1)
	e2 := p3.Subtract(p1)
	edgeScale := e1.Magnitude() * e2.Magnitude()

	// Zero-length edges and collinear vertices both make the cross product
	// vanish relative to the edge lengths
	if e2.Cross(e1).Magnitude() <= 1e-12*edgeScale {
		return triangleGeometry{}, ErrDegenerateTriangle
	}

	return triangleGeometry{P1: p1, P2: p2, P3: p3, E1: e1, E2: e2, edgeScale: edgeScale}, nil
}

// intersect runs Möller-Trumbore against an object-space ray
func (tg *triangleGeometry) intersect(ray core.Ray) (t, u, v float64, ok bool) {
	dirCrossE2 := ray.Direction.Cross(tg.E2)
	det := tg.E1.Dot(dirCrossE2)

	// Ray lies in the plane of the triangle
	if math.Abs(det) < core.ParallelEpsilon*tg.edgeScale*ray.Direction.Magnitude() {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	p1ToOrigin := ray.Origin.Subtract(tg.P1)
	u = f * p1ToOrigin.Dot(dirCrossE2)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	originCrossE1 := p1ToOrigin.Cross(tg.E1)
	v = f * ray.Direction.Dot(originCrossE1)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = f * tg.E2.Dot(originCrossE1)
	return t, u, v, true
}

// bounds returns the box around the three vertices
func (tg *triangleGeometry) bounds() core.AABB {
	return core.NewAABBFromPoints(tg.P1, tg.P2, tg.P3)
}

// Triangle is a flat triangle with a single face normal
type Triangle struct {
	surface
	triangleGeometry
	Normal core.Vector // normalize(E2 x E1)
}

// NewTriangle creates a triangle from three vertices
func NewTriangle(p1, p2, p3 core.Point) (*Triangle, error) {
	tg, err := newTriangleGeometry(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return &Triangle{triangleGeometry: tg, Normal: tg.E2.Cross(tg.E1).Normalize()}, nil
}

// Intersect returns at most one intersection carrying (u, v)
func (tr *Triangle) Intersect(ray core.Ray) Intersections {
	t, u, v, ok := tr.intersect(tr.toObject(ray))
	if !ok {
		return nil
	}
	return Intersections{{T: t, Object: tr, U: u, V: v}}
}

// NormalAt returns the face normal in world space
func (tr *Triangle) NormalAt(point core.Point, _ Intersection) core.Vector {
	return tr.NormalToWorld(tr.Normal)
}

// Bounds returns the box around the vertices
func (tr *Triangle) Bounds() core.AABB {
	return tr.bounds()
}

// SmoothTriangle is a triangle whose normal is interpolated from
// per-vertex normals
type SmoothTriangle struct {
	surface
	triangleGeometry
	N1, N2, N3 core.Vector
}

// NewSmoothTriangle creates a triangle with vertex normals n1, n2, n3
func NewSmoothTriangle(p1, p2, p3 core.Point, n1, n2, n3 core.Vector) (*SmoothTriangle, error) {
	tg, err := newTriangleGeometry(p1, p2, p3)
	if err != nil {
		return nil, err
	}
	return &SmoothTriangle{triangleGeometry: tg, N1: n1, N2: n2, N3: n3}, nil
}

// Intersect returns at most one intersection carrying (u, v)
func (st *SmoothTriangle) Intersect(ray core.Ray) Intersections {
	t, u, v, ok := st.intersect(st.toObject(ray))
	if !ok {
		return nil
	}
	return Intersections{{T: t, Object: st, U: u, V: v}}
}

// NormalAt interpolates the vertex normals with the hit's barycentric
// coordinates
func (st *SmoothTriangle) NormalAt(point core.Point, hit Intersection) core.Vector {
	return st.NormalToWorld(st.localNormalAt(hit.U, hit.V))
}

func (st *SmoothTriangle) localNormalAt(u, v float64) core.Vector {
	return st.N2.Multiply(u).
		Add(st.N3.Multiply(v)).
		Add(st.N1.Multiply(1 - u - v))
}

// Bounds returns the box around the vertices
func (st *SmoothTriangle) Bounds() core.AABB {
	return st.bounds()
}
