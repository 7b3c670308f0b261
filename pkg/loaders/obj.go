package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// OBJModel is the geometry read from a Wavefront OBJ file. Faces before the
// first "g" statement go to Default; later faces go to the named group.
type OBJModel struct {
	Vertices []core.Point
	Normals  []core.Vector

	Default *geometry.Group
	groups  map[string]*geometry.Group
	order   []string

	Ignored int // unsupported statements
	Skipped int // degenerate triangles left out
}

// Group returns the named group
func (m *OBJModel) Group(name string) (*geometry.Group, bool) {
	g, ok := m.groups[name]
	return g, ok
}

// GroupNames returns the named groups in the order they first appear
func (m *OBJModel) GroupNames() []string {
	return m.order
}

// ToGroup gathers the default group and every named group under one new
// group. The model's groups are reparented, so call it once.
func (m *OBJModel) ToGroup() *geometry.Group {
	g := geometry.NewGroup()
	if m.Default.Len() > 0 {
		g.AddChild(m.Default)
	}
	for _, name := range m.order {
		g.AddChild(m.groups[name])
	}
	return g
}

// LoadOBJ reads a Wavefront OBJ file
func LoadOBJ(filename string, logger core.Logger) (*OBJModel, error) {
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	model, err := ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("OBJ file %s: %w", filename, err)
	}

	if model.Ignored > 0 {
		logger.Printf("Warning: ignored %d unsupported lines in %s\n", model.Ignored, filename)
	}
	if model.Skipped > 0 {
		logger.Printf("Warning: skipped %d degenerate triangles in %s\n", model.Skipped, filename)
	}
	logger.Printf("Loaded OBJ data: %d vertices, %d groups in %v\n",
		len(model.Vertices), len(model.order)+1, time.Since(startTime))
	return model, nil
}

// ParseOBJ reads vertices (v), vertex normals (vn), faces (f) and groups (g).
// Faces with more than three vertices are fan-triangulated. Faces that carry
// normal indices become smooth triangles. Other statements are counted and
// ignored.
func ParseOBJ(r io.Reader) (*OBJModel, error) {
	model := &OBJModel{
		Default: geometry.NewGroup(),
		groups:  map[string]*geometry.Group{},
	}
	current := model.Default

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			var p [3]float64
			p, err = parseOBJFloats(fields[1:])
			if err == nil {
				model.Vertices = append(model.Vertices, core.NewPoint(p[0], p[1], p[2]))
			}
		case "vn":
			var n [3]float64
			n, err = parseOBJFloats(fields[1:])
			if err == nil {
				model.Normals = append(model.Normals, core.NewVector(n[0], n[1], n[2]))
			}
		case "f":
			err = model.addFace(current, fields[1:])
		case "g":
			name := strings.Join(fields[1:], " ")
			if name == "" {
				current = model.Default
				break
			}
			g, ok := model.groups[name]
			if !ok {
				g = geometry.NewGroup()
				model.groups[name] = g
				model.order = append(model.order, name)
			}
			current = g
		default:
			model.Ignored++
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ data: %w", err)
	}
	return model, nil
}

// parseOBJFloats reads the first three numbers of a v or vn statement. A
// fourth (w) component is allowed and ignored.
func parseOBJFloats(fields []string) ([3]float64, error) {
	var out [3]float64
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, fmt.Errorf("invalid number %q", fields[i])
		}
		out[i] = v
	}
	return out, nil
}

// faceVertex is one v, v/vt, v/vt/vn or v//vn reference, resolved to 0-based
// indices. normal is -1 when absent.
type faceVertex struct {
	vertex, normal int
}

func (m *OBJModel) parseFaceVertex(token string) (faceVertex, error) {
	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return faceVertex{}, fmt.Errorf("invalid face vertex %q", token)
	}

	vertex, err := resolveOBJIndex(parts[0], len(m.Vertices))
	if err != nil {
		return faceVertex{}, fmt.Errorf("face vertex %q: %w", token, err)
	}

	fv := faceVertex{vertex: vertex, normal: -1}
	if len(parts) == 3 && parts[2] != "" {
		fv.normal, err = resolveOBJIndex(parts[2], len(m.Normals))
		if err != nil {
			return faceVertex{}, fmt.Errorf("face normal %q: %w", token, err)
		}
	}
	return fv, nil
}

// resolveOBJIndex converts a 1-based index into a 0-based one. Negative
// indices count back from the most recent element.
func resolveOBJIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if idx < 0 {
		idx = count + idx + 1
	}
	if idx < 1 || idx > count {
		return 0, fmt.Errorf("index %s out of range [1, %d]", s, count)
	}
	return idx - 1, nil
}

func (m *OBJModel) addFace(g *geometry.Group, tokens []string) error {
	if len(tokens) < 3 {
		return fmt.Errorf("face needs at least 3 vertices, got %d", len(tokens))
	}

	refs := make([]faceVertex, len(tokens))
	smooth := true
	for i, token := range tokens {
		fv, err := m.parseFaceVertex(token)
		if err != nil {
			return err
		}
		refs[i] = fv
		smooth = smooth && fv.normal >= 0
	}

	// Fan triangulation around the first vertex
	for i := 1; i < len(refs)-1; i++ {
		a, b, c := refs[0], refs[i], refs[i+1]

		var (
			triangle geometry.Shape
			err      error
		)
		if smooth {
			triangle, err = geometry.NewSmoothTriangle(
				m.Vertices[a.vertex], m.Vertices[b.vertex], m.Vertices[c.vertex],
				m.Normals[a.normal], m.Normals[b.normal], m.Normals[c.normal])
		} else {
			triangle, err = geometry.NewTriangle(m.Vertices[a.vertex], m.Vertices[b.vertex], m.Vertices[c.vertex])
		}
		if errors.Is(err, geometry.ErrDegenerateTriangle) {
			m.Skipped++
			continue
		}
		if err != nil {
			return err
		}
		g.AddChild(triangle)
	}
	return nil
}
