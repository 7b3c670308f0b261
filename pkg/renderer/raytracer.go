package renderer

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for parallel rendering
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
	MaxDepth   int // Recursion budget for reflected and refracted rays
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   64,
		NumWorkers: runtime.NumCPU(),
		MaxDepth:   5,
	}
}

// Raytracer renders a camera's view of a scene into a canvas, splitting the
// image into tiles that are traced in parallel
type Raytracer struct {
	camera *Camera
	tracer Tracer
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger logs to stdout.
func NewRaytracer(camera *Camera, tracer Tracer, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		camera: camera,
		tracer: tracer,
		config: config,
		logger: logger,
	}
}

// Render traces one ray per pixel and returns the finished canvas. The scene
// must not be modified while rendering. Cancelling ctx stops the render
// between tiles and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*Canvas, RenderStats, error) {
	width, height := rt.camera.HSize, rt.camera.VSize
	canvas := NewCanvas(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	stats := RenderStats{
		RenderID:   uuid.NewString(),
		Width:      width,
		Height:     height,
		TotalTiles: len(tiles),
	}
	if len(tiles) == 0 {
		return canvas, stats, nil
	}

	tileRenderer := NewTileRenderer(rt.camera, rt.tracer, rt.config.MaxDepth)
	pool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))
	stats.Workers = pool.GetNumWorkers()

	rt.logger.Printf("[%s] Rendering %dx%d with %d workers (%d tiles, depth %d)...\n",
		stats.RenderID, width, height, stats.Workers, len(tiles), rt.config.MaxDepth)

	start := time.Now()
	pool.Start(ctx)
	defer pool.Stop()

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Canvas: canvas})
	}

	lastReported := 0
	for done := 1; done <= len(tiles); done++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, stats, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			rt.logger.Printf("[%s] Render stopped after %d of %d tiles: %v\n",
				stats.RenderID, done-1, len(tiles), result.Error)
			return nil, stats, fmt.Errorf("render %s: tile %d: %w", stats.RenderID, result.TaskID, result.Error)
		}
		stats.add(result.Stats)

		if percent := done * 100 / len(tiles); percent/10 > lastReported/10 {
			rt.logger.Printf("[%s] %3d%% (%d/%d tiles)\n", stats.RenderID, percent, done, len(tiles))
			lastReported = percent
		}
	}

	stats.Duration = time.Since(start)
	stats.AvgLuminance = CalculateAverageLuminance(canvas.Image())
	rt.logger.Printf("[%s] Render completed in %v\n", stats.RenderID, stats.Duration)

	return canvas, stats, nil
}
