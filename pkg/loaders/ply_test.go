package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// testLogger discards log output
type testLogger struct{}

func (testLogger) Printf(format string, args ...interface{}) {}

func bufioReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

// createTestPLY writes a binary PLY square made of two triangles
func createTestPLY(t *testing.T, filename string, order binary.ByteOrder, includeNormals bool, includeColors bool) {
	var buf bytes.Buffer

	format := "binary_little_endian"
	if order == binary.BigEndian {
		format = "binary_big_endian"
	}

	// Write PLY header
	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")

	if includeNormals {
		buf.WriteString("property float nx\n")
		buf.WriteString("property float ny\n")
		buf.WriteString("property float nz\n")
	}

	if includeColors {
		buf.WriteString("property uchar red\n")
		buf.WriteString("property uchar green\n")
		buf.WriteString("property uchar blue\n")
	}

	buf.WriteString("element face 2\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	// Write vertex data (4 vertices forming a square)
	vertices := []struct {
		x, y, z    float32
		nx, ny, nz float32
		r, g, b    uint8
	}{
		{0.0, 0.0, 0.0, 0.0, 0.0, 1.0, 255, 0, 0},
		{1.0, 0.0, 0.0, 0.0, 0.0, 1.0, 0, 255, 0},
		{1.0, 1.0, 0.0, 0.0, 0.0, 1.0, 0, 0, 255},
		{0.0, 1.0, 0.0, 0.0, 0.0, 1.0, 255, 255, 0},
	}

	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)

		if includeNormals {
			binary.Write(&buf, order, v.nx)
			binary.Write(&buf, order, v.ny)
			binary.Write(&buf, order, v.nz)
		}

		if includeColors {
			binary.Write(&buf, order, v.r)
			binary.Write(&buf, order, v.g)
			binary.Write(&buf, order, v.b)
		}
	}

	// Write face data (2 triangles)
	faces := []struct {
		count      uint8
		v1, v2, v3 int32
	}{
		{3, 0, 1, 2},
		{3, 0, 2, 3},
	}

	for _, f := range faces {
		binary.Write(&buf, order, f.count)
		binary.Write(&buf, order, f.v1)
		binary.Write(&buf, order, f.v2)
		binary.Write(&buf, order, f.v3)
	}

	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to create test PLY file: %v", err)
	}
}

func TestLoadPLY_Binary(t *testing.T) {
	tests := []struct {
		name           string
		order          binary.ByteOrder
		includeNormals bool
		includeColors  bool
	}{
		{"little endian", binary.LittleEndian, false, false},
		{"big endian", binary.BigEndian, false, false},
		{"with normals", binary.LittleEndian, true, false},
		{"skips colors", binary.LittleEndian, false, true},
		{"normals and colors", binary.BigEndian, true, true},
	}

	expectedVertices := []core.Point{
		core.NewPoint(0, 0, 0),
		core.NewPoint(1, 0, 0),
		core.NewPoint(1, 1, 0),
		core.NewPoint(0, 1, 0),
	}
	expectedFaces := []int{0, 1, 2, 0, 2, 3}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), "square.ply")
			createTestPLY(t, testFile, tt.order, tt.includeNormals, tt.includeColors)

			data, err := LoadPLY(testFile, testLogger{})
			if err != nil {
				t.Fatalf("Failed to load PLY: %v", err)
			}

			if len(data.Vertices) != len(expectedVertices) {
				t.Fatalf("Expected %d vertices, got %d", len(expectedVertices), len(data.Vertices))
			}
			for i, expected := range expectedVertices {
				if !data.Vertices[i].Equals(expected) {
					t.Errorf("Vertex %d: expected %v, got %v", i, expected, data.Vertices[i])
				}
			}

			if len(data.Faces) != len(expectedFaces) {
				t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
			}
			for i, expected := range expectedFaces {
				if data.Faces[i] != expected {
					t.Errorf("Face index %d: expected %d, got %d", i, expected, data.Faces[i])
				}
			}

			if tt.includeNormals {
				if len(data.Normals) != 4 {
					t.Fatalf("Expected 4 normals, got %d", len(data.Normals))
				}
				for i, n := range data.Normals {
					if !n.Equals(core.NewVector(0, 0, 1)) {
						t.Errorf("Normal %d: expected %v, got %v", i, core.NewVector(0, 0, 1), n)
					}
				}
			} else if len(data.Normals) != 0 {
				t.Errorf("Expected no normals, got %d", len(data.Normals))
			}
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	input := `ply
format ascii 1.0
comment a quad and a triangle
element vertex 5
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
element edge 1
property int vertex1
property int vertex2
end_header
0 0 0
1 0 0
1 1 0
0 1 0
0.5 2 0
4 0 1 2 3
3 3 2 4
0 1
`

	data, err := ParsePLY(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse PLY: %v", err)
	}

	if len(data.Vertices) != 5 {
		t.Fatalf("Expected 5 vertices, got %d", len(data.Vertices))
	}
	if !data.Vertices[4].Equals(core.NewPoint(0.5, 2, 0)) {
		t.Errorf("Expected %v, got %v", core.NewPoint(0.5, 2, 0), data.Vertices[4])
	}

	// The quad is fan-triangulated
	expectedFaces := []int{0, 1, 2, 0, 2, 3, 3, 2, 4}
	if len(data.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(data.Faces))
	}
	for i, expected := range expectedFaces {
		if data.Faces[i] != expected {
			t.Errorf("Face index %d: expected %d, got %d", i, expected, data.Faces[i])
		}
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing magic", "format ascii 1.0\nend_header\n"},
		{"missing format", "ply\nelement vertex 0\nproperty float x\nend_header\n"},
		{"unknown format", "ply\nformat utf8 1.0\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n"},
		{"no vertex element", "ply\nformat ascii 1.0\nelement face 0\nproperty list uchar int vertex_indices\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"no end_header", "ply\nformat ascii 1.0\nelement vertex 1\n"},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n"},
		{"index out of range", "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 7\n"},
		{"bad number", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 zero 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadPLY_NonExistentFile(t *testing.T) {
	_, err := LoadPLY("nonexistent.ply", testLogger{})
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadPLYMesh(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "square.ply")
	createTestPLY(t, testFile, binary.LittleEndian, true, false)

	mesh, err := LoadPLYMesh(testFile, nil, testLogger{})
	if err != nil {
		t.Fatalf("Failed to load PLY mesh: %v", err)
	}
	if mesh.Triangles != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.Triangles)
	}

	// File normals make the faces smooth triangles
	for i, child := range mesh.Group.Children() {
		if _, ok := child.(*geometry.SmoothTriangle); !ok {
			t.Errorf("Child %d: expected *geometry.SmoothTriangle, got %T", i, child)
		}
	}

	// A ray down the z axis hits the square
	ray := core.NewRay(core.NewPoint(0.25, 0.5, -5), core.NewVector(0, 0, 1))
	xs := mesh.Group.Intersect(ray)
	if len(xs) != 1 {
		t.Fatalf("Expected 1 intersection, got %d", len(xs))
	}
	if !core.ApproxEqual(xs[0].T, 5) {
		t.Errorf("Expected t=5, got %v", xs[0].T)
	}
}

func TestParsePLYHeader(t *testing.T) {
	headerContent := `ply
format binary_little_endian 1.0
comment Test PLY file
element vertex 100
property float x
property float y
property float z
property float nx
property float ny
property float nz
property uchar red
property uchar green
property uchar blue
element face 50
property list uchar int vertex_indices
end_header
`

	header, err := parsePLYHeader(bufioReader(headerContent))
	if err != nil {
		t.Fatalf("Failed to parse header: %v", err)
	}

	if header.Format != PLYFormatLittleEndian {
		t.Errorf("Expected format '%s', got '%s'", PLYFormatLittleEndian, header.Format)
	}
	if header.Version != "1.0" {
		t.Errorf("Expected version '1.0', got '%s'", header.Version)
	}
	if len(header.Elements) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(header.Elements))
	}

	vertex, ok := header.element("vertex")
	if !ok || vertex.Count != 100 || len(vertex.Props) != 9 {
		t.Errorf("Expected vertex element with 100 entries and 9 properties, got %+v", vertex)
	}

	face, ok := header.element("face")
	if !ok || face.Count != 50 || len(face.Props) != 1 {
		t.Fatalf("Expected face element with 50 entries and 1 property, got %+v", face)
	}
	if !face.Props[0].IsList || face.Props[0].ListType != "uchar" || face.Props[0].Type != "int" {
		t.Errorf("Expected list uchar int, got %+v", face.Props[0])
	}
}

func TestTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"float", 4},
		{"float32", 4},
		{"int", 4},
		{"uint32", 4},
		{"double", 8},
		{"float64", 8},
		{"short", 2},
		{"ushort", 2},
		{"char", 1},
		{"uchar", 1},
		{"unknown", 0},
	}

	for _, test := range tests {
		result := typeSize(test.dataType)
		if result != test.expected {
			t.Errorf("typeSize(%s): expected %d, got %d", test.dataType, test.expected, result)
		}
	}
}
