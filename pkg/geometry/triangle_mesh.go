package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// TriangleMesh is a group of triangles built from shared vertex data
type TriangleMesh struct {
	Group     *Group
	Triangles int // triangles added to the group
	Skipped   int // degenerate faces left out
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals  []core.Vector      // Optional per-vertex normals; faces become smooth triangles
	Material *material.Material // Optional material for every triangle
	Divide   int                // Build a BVH with this threshold when > 0
}

// NewTriangleMesh creates a group of triangles from vertices and face indices.
// Each group of 3 indices in faces forms one triangle. Degenerate faces are
// skipped and counted rather than rejected, since exported meshes often
// contain a few of them.
func NewTriangleMesh(vertices []core.Point, faces []int, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(options.Normals), len(vertices))
	}

	mesh := &TriangleMesh{Group: NewGroup()}
	children := make([]Shape, 0, len(faces)/3)

	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range [0, %d)", i/3, idx, len(vertices))
			}
		}

		var (
			triangle Primitive
			err      error
		)
		if options.Normals != nil {
			triangle, err = NewSmoothTriangle(vertices[i0], vertices[i1], vertices[i2],
				options.Normals[i0], options.Normals[i1], options.Normals[i2])
		} else {
			triangle, err = NewTriangle(vertices[i0], vertices[i1], vertices[i2])
		}
		if errors.Is(err, ErrDegenerateTriangle) {
			mesh.Skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("face %d: %w", i/3, err)
		}

		if options.Material != nil {
			triangle.SetMaterial(*options.Material)
		}
		children = append(children, triangle)
	}

	mesh.Group.AddChild(children...)
	mesh.Triangles = len(children)

	if options.Divide > 0 {
		mesh.Group.Divide(options.Divide)
	}
	return mesh, nil
}
