package renderer

import (
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken for each pixel
	Elapsed         time.Duration // Wall time spent rendering
	AvgLuminance    float64       // Mean luminance of the output pixel colors before quantization
}

// SamplesPerSecond returns the sampling throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Elapsed <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Elapsed.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}
