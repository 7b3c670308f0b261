package geometry

import (
	"cmp"
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection is one crossing of a ray with a primitive surface
type Intersection struct {
	T      float64
	Object Primitive

	// Barycentric coordinates, set by triangles
	U, V float64
}

// NewIntersection creates an intersection without barycentric coordinates
func NewIntersection(t float64, object Primitive) Intersection {
	return Intersection{T: t, Object: object}
}

// Intersections is the record of every intersection along one ray
type Intersections []Intersection

// NewIntersections returns the intersections sorted by t
func NewIntersections(xs ...Intersection) Intersections {
	result := Intersections(xs)
	result.Sort()
	return result
}

// Sort orders the intersections by ascending t, keeping equal t stable
func (xs Intersections) Sort() {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the intersection with the smallest nonnegative t
func (xs Intersections) Hit() (Intersection, bool) {
	var hit Intersection
	found := false
	for _, x := range xs {
		if x.T >= 0 && (!found || x.T < hit.T) {
			hit = x
			found = true
		}
	}
	return hit, found
}

// Computations holds the shading values derived from one intersection
type Computations struct {
	T      float64
	Object Primitive

	Point      core.Point // hit point
	OverPoint  core.Point // nudged above the surface, origin for shadow and reflection rays
	UnderPoint core.Point // nudged below the surface, origin for refraction rays

	Eye     core.Vector
	Normal  core.Vector
	Reflect core.Vector
	Inside  bool

	N1 float64 // refractive index of the medium being left
	N2 float64 // refractive index of the medium being entered
}

// PrepareComputations derives shading values for hit along ray. xs is the
// full sorted intersection record the hit came from; it is used to work out
// which transparent objects contain the hit point. An empty xs is treated as
// a record containing only hit.
func PrepareComputations(hit Intersection, ray core.Ray, xs Intersections) Computations {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.Position(hit.T),
		Eye:    ray.Direction.Negate(),
	}
	comps.Normal = hit.Object.NormalAt(comps.Point, hit)

	if comps.Normal.Dot(comps.Eye) < 0 {
		comps.Inside = true
		comps.Normal = comps.Normal.Negate()
	}

	comps.Reflect = ray.Direction.Reflect(comps.Normal)

	comps.OverPoint = comps.Point.Add(comps.Normal.Multiply(core.ScaledOffset(core.SurfaceOffset, comps.Point)))
	comps.UnderPoint = comps.Point.SubtractVector(comps.Normal.Multiply(core.ScaledOffset(core.RefractionOffset, comps.Point)))

	if len(xs) == 0 {
		xs = Intersections{hit}
	}
	comps.N1, comps.N2 = refractiveIndices(hit, xs)

	return comps
}

// refractiveIndices walks the record up to hit, tracking which objects the
// ray is currently inside
func refractiveIndices(hit Intersection, xs Intersections) (n1, n2 float64) {
	n1, n2 = 1, 1
	var containers []Primitive

	current := func() float64 {
		if len(containers) == 0 {
			return 1
		}
		return containers[len(containers)-1].Material().RefractiveIndex
	}

	for _, x := range xs {
		if x == hit {
			n1 = current()
		}

		if i := slices.Index(containers, x.Object); i >= 0 {
			containers = slices.Delete(containers, i, i+1)
		} else {
			containers = append(containers, x.Object)
		}

		if x == hit {
			n2 = current()
			break
		}
	}
	return n1, n2
}

// Schlick approximates the Fresnel reflectance at the hit: the fraction of
// light reflected rather than refracted
func Schlick(comps Computations) float64 {
	cos := comps.Eye.Dot(comps.Normal)

	if comps.N1 > comps.N2 {
		ratio := comps.N1 / comps.N2
		sin2T := ratio * ratio * (1 - cos*cos)
		if sin2T >= 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
