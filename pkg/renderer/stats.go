package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	RenderID     string        // Unique id of the render, shared with its log lines
	Width        int           // Canvas width
	Height       int           // Canvas height
	TotalPixels  int           // Total number of pixels rendered
	TotalTiles   int           // Number of tiles the canvas was split into
	PrimaryRays  int           // Number of camera rays traced
	Workers      int           // Number of parallel workers
	Duration     time.Duration // Wall-clock render time
	AvgLuminance float64       // Average luminance of the finished image
}

// TileStats contains statistics for a single rendered tile
type TileStats struct {
	Pixels      int
	PrimaryRays int
}

// add folds tile statistics into the render totals
func (rs *RenderStats) add(ts TileStats) {
	rs.TotalPixels += ts.Pixels
	rs.PrimaryRays += ts.PrimaryRays
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img, with
// channels normalized to [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(bounds.Dx()*bounds.Dy())
}
