package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Tracer computes the color seen along a ray with a bounded recursion budget
type Tracer interface {
	ColorAt(ray core.Ray, remaining int) core.Color
}

// TileRenderer renders individual tiles by tracing one primary ray per pixel
type TileRenderer struct {
	camera   *Camera
	tracer   Tracer
	maxDepth int
}

// NewTileRenderer creates a tile renderer for the given camera and tracer
func NewTileRenderer(camera *Camera, tracer Tracer, maxDepth int) *TileRenderer {
	return &TileRenderer{
		camera:   camera,
		tracer:   tracer,
		maxDepth: maxDepth,
	}
}

// RenderTileBounds renders the pixels within bounds into canvas. Tiles never
// overlap, so concurrent calls with distinct bounds write disjoint pixels.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, canvas *Canvas) (TileStats, error) {
	var stats TileStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := tr.camera.RayForPixel(x, y)
			color := tr.tracer.ColorAt(ray, tr.maxDepth)
			if err := canvas.WritePixel(x, y, color); err != nil {
				return stats, err
			}
			stats.Pixels++
			stats.PrimaryRays++
		}
	}
	return stats, nil
}
