package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

func TestPixelStats_GetColor(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().Equals(core.Vec3{}) {
		t.Errorf("Expected black for an empty pixel, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0.5))
	ps.AddSample(core.NewVec3(0, 1, 0.5))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); !got.ApproxEquals(core.NewVec3(0.5, 0.5, 0.5), 1e-12) {
		t.Errorf("Expected mean (0.5, 0.5, 0.5), got %v", got)
	}
}

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	tests := []struct {
		name     string
		stats    RenderStats
		expected float64
	}{
		{"two seconds", RenderStats{TotalSamples: 1000, Elapsed: 2 * time.Second}, 500},
		{"zero elapsed", RenderStats{TotalSamples: 1000}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.SamplesPerSecond(); got != tt.expected {
				t.Errorf("Expected %v samples/s, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderStats_Counts(t *testing.T) {
	_, stats, _ := render(t, lookDownZ(5, 1), geometry.NewWorld(),
		SamplingConfig{SamplesPerPixel: 3, Technique: TechniqueSuperSampling, Seed: 2})

	if stats.Width != 5 || stats.Height != 5 {
		t.Errorf("Expected 5x5, got %dx%d", stats.Width, stats.Height)
	}
	if stats.TotalPixels != 25 || stats.TotalSamples != 75 || stats.SamplesPerPixel != 3 {
		t.Errorf("Unexpected counts %+v", stats)
	}
	if stats.Elapsed < 0 {
		t.Errorf("Negative elapsed time %v", stats.Elapsed)
	}
}

func TestRenderStats_AverageLuminance(t *testing.T) {
	tests := []struct {
		name     string
		sky      core.Vec3
		expected float64
	}{
		{"white sky", core.NewVec3(1, 1, 1), 1},
		{"black sky", core.NewVec3(0, 0, 0), 0},
		{"grey sky", core.NewVec3(0.25, 0.25, 0.25), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera := mustCamera(t, lookDownZ(4, 1))
			rt, err := NewRaytracer(camera, geometry.NewWorld(),
				SamplingConfig{SamplesPerPixel: 2, Technique: TechniqueSuperSampling, Seed: 1}, silentLogger{})
			if err != nil {
				t.Fatal(err)
			}
			rt.SetIntegrator(&integrator.PathTracingIntegrator{TopColor: tt.sky, BottomColor: tt.sky})

			_, stats := rt.Render()
			if math.Abs(stats.AvgLuminance-tt.expected) > 1e-9 {
				t.Errorf("Expected average luminance %v, got %v", tt.expected, stats.AvgLuminance)
			}
		})
	}
}
