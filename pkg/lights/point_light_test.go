package lights

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPointLight_Sample(t *testing.T) {
	light := NewPointLight(core.NewPoint(0, 10, 0), core.NewColor(1, 0.5, 0.25))

	if light.Type() != LightTypePoint {
		t.Errorf("Expected point light type, got %v", light.Type())
	}

	tests := []struct {
		name      string
		point     core.Point
		direction core.Vector
		distance  float64
	}{
		{"directly below", core.NewPoint(0, 0, 0), core.NewVector(0, 1, 0), 10},
		{"offset", core.NewPoint(3, 6, 0), core.NewVector(-0.6, 0.8, 0), 5},
		{"above the light", core.NewPoint(0, 12, 0), core.NewVector(0, -1, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sample := light.Sample(tt.point)
			if !sample.Direction.Equals(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, sample.Direction)
			}
			if !core.ApproxEqual(sample.Distance, tt.distance) {
				t.Errorf("Expected distance %v, got %v", tt.distance, sample.Distance)
			}
			if !sample.Intensity.Equals(light.Intensity) {
				t.Errorf("Expected intensity %v, got %v", light.Intensity, sample.Intensity)
			}
		})
	}
}
