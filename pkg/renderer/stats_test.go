package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestCalculateAverageLuminance(t *testing.T) {
	// red 0.2126 + green 0.7152 + blue 0.0722 + black 0 = 1.0 over 4 pixels
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name     string
		img      image.Image
		expected float64
	}{
		{"primaries and black", img, 0.25},
		{"white", whiteImage(1, 1), 1.0},
		{"empty", image.NewRGBA(image.Rect(0, 0, 0, 0)), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateAverageLuminance(tt.img)
			if math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("Expected average luminance %f, got %f", tt.expected, got)
			}
		})
	}
}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	return img
}

func TestRenderStatsAdd(t *testing.T) {
	var stats RenderStats
	stats.add(TileStats{Pixels: 64, PrimaryRays: 64})
	stats.add(TileStats{Pixels: 16, PrimaryRays: 16})

	if stats.TotalPixels != 80 {
		t.Errorf("Expected 80 pixels, got %d", stats.TotalPixels)
	}
	if stats.PrimaryRays != 80 {
		t.Errorf("Expected 80 primary rays, got %d", stats.PrimaryRays)
	}
}
