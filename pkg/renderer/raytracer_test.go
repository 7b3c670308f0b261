package renderer

import (
	"context"
	"errors"
	"image"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// testLogger implements core.Logger for testing by recording all output
type testLogger struct {
	mu    sync.Mutex
	lines []string
}

var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.lines = append(tl.lines, format)
}

// directionTracer returns the absolute ray direction as a color and records
// the depth budget it was called with
type directionTracer struct {
	mu     sync.Mutex
	depths map[int]int
}

func (dt *directionTracer) ColorAt(ray core.Ray, remaining int) core.Color {
	dt.mu.Lock()
	if dt.depths == nil {
		dt.depths = make(map[int]int)
	}
	dt.depths[remaining]++
	dt.mu.Unlock()

	d := ray.Direction
	return core.NewColor(math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z))
}

func TestTileRendererWritesEveryPixelInBounds(t *testing.T) {
	camera := NewCamera(8, 6, math.Pi/2)
	tracer := &directionTracer{}
	tr := NewTileRenderer(camera, tracer, 3)
	canvas := NewCanvas(8, 6)
	canvas.Fill(core.NewColor(-1, -1, -1))

	stats, err := tr.RenderTileBounds(image.Rect(2, 1, 5, 4), canvas)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Pixels != 9 || stats.PrimaryRays != 9 {
		t.Errorf("Expected 9 pixels and rays, got %+v", stats)
	}
	if tracer.depths[3] != 9 {
		t.Errorf("Expected 9 calls with depth 3, got %v", tracer.depths)
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			got, _ := canvas.PixelAt(x, y)
			inside := image.Pt(x, y).In(image.Rect(2, 1, 5, 4))
			untouched := got == core.NewColor(-1, -1, -1)
			if inside == untouched {
				t.Errorf("Pixel (%d,%d): inside=%v but untouched=%v", x, y, inside, untouched)
			}
		}
	}
}

func TestTileRendererOutOfRangeBounds(t *testing.T) {
	camera := NewCamera(4, 4, math.Pi/2)
	tr := NewTileRenderer(camera, &directionTracer{}, 1)
	_, err := tr.RenderTileBounds(image.Rect(0, 0, 5, 4), NewCanvas(4, 4))
	if !errors.Is(err, ErrPixelOutOfRange) {
		t.Errorf("Expected ErrPixelOutOfRange, got %v", err)
	}
}

func TestRaytracerRenderMatchesSerialTrace(t *testing.T) {
	camera := NewCamera(37, 23, math.Pi/3)
	camera.SetTransform(core.MustTransform(core.ViewTransform(
		core.NewPoint(1, 2, -5), core.Origin, core.NewVector(0, 1, 0))))

	tracer := &directionTracer{}
	config := Config{TileSize: 8, NumWorkers: 4, MaxDepth: 5}
	logger := &testLogger{}

	canvas, stats, err := NewRaytracer(camera, tracer, config, logger).Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if stats.TotalPixels != 37*23 {
		t.Errorf("Expected %d pixels, got %d", 37*23, stats.TotalPixels)
	}
	if stats.TotalTiles != 15 {
		t.Errorf("Expected 15 tiles, got %d", stats.TotalTiles)
	}
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}
	if stats.RenderID == "" {
		t.Errorf("Expected a render id")
	}
	if tracer.depths[5] != 37*23 {
		t.Errorf("Expected every primary ray traced with depth 5, got %v", tracer.depths)
	}

	for y := 0; y < camera.VSize; y++ {
		for x := 0; x < camera.HSize; x++ {
			expected := (&directionTracer{}).ColorAt(camera.RayForPixel(x, y), 5)
			got, _ := canvas.PixelAt(x, y)
			if !got.Equals(expected) {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}

	var sawDone bool
	for _, line := range logger.lines {
		if strings.Contains(line, "completed") {
			sawDone = true
		}
	}
	if !sawDone {
		t.Errorf("Expected a completion log line, got %v", logger.lines)
	}
}

func TestRaytracerRenderIDsAreUnique(t *testing.T) {
	camera := NewCamera(2, 2, math.Pi/2)
	rt := NewRaytracer(camera, &directionTracer{}, DefaultConfig(), &testLogger{})

	_, first, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, second, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first.RenderID == second.RenderID {
		t.Errorf("Expected distinct render ids, both were %s", first.RenderID)
	}
}

func TestRaytracerRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	camera := NewCamera(64, 64, math.Pi/2)
	config := Config{TileSize: 8, NumWorkers: 2, MaxDepth: 5}
	canvas, _, err := NewRaytracer(camera, &directionTracer{}, config, &testLogger{}).Render(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if canvas != nil {
		t.Errorf("Expected no canvas from a cancelled render")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	if config.TileSize != 64 {
		t.Errorf("Expected tile size 64, got %d", config.TileSize)
	}
	if config.MaxDepth != 5 {
		t.Errorf("Expected max depth 5, got %d", config.MaxDepth)
	}
	if config.NumWorkers <= 0 {
		t.Errorf("Expected a positive worker count, got %d", config.NumWorkers)
	}
}
