package renderer

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
	Technique       Technique // Anti-aliasing technique
	Seed            int64     // Random seed; 0 seeds from the clock
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 10,
		MaxDepth:        integrator.DefaultMaxDepth,
		Technique:       TechniqueSuperSampling,
	}
}

// Raytracer drives a single-threaded render of a whole frame
type Raytracer struct {
	camera       *Camera
	world        *geometry.World
	antiAliasing *AntiAliasing
	integrator   integrator.Integrator
	config       SamplingConfig
	sampler      core.Sampler
	logger       core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(camera *Camera, world *geometry.World, config SamplingConfig, logger core.Logger) (*Raytracer, error) {
	antiAliasing, err := NewAntiAliasing(config.SamplesPerPixel, config.Technique)
	if err != nil {
		return nil, fmt.Errorf("failed to create sampler: %w", err)
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = integrator.DefaultMaxDepth
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		camera:       camera,
		world:        world,
		antiAliasing: antiAliasing,
		integrator:   integrator.NewPathTracingIntegrator(),
		config:       config,
		sampler:      core.NewSeededSampler(seed),
		logger:       logger,
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integ integrator.Integrator) {
	rt.integrator = integ
}

// Render traces every pixel and returns the frame as row-major, top-down RGB bytes.
// Pixel (x, y) starts at offset 3*(y*width + x).
func (rt *Raytracer) Render() ([]byte, RenderStats) {
	width := rt.camera.ImageWidth()
	height := rt.camera.ImageHeight()
	pixels := make([]byte, width*height*3)

	rt.logger.Printf("Rendering %dx%d, %d samples per pixel (%s), max depth %d\n",
		width, height, rt.antiAliasing.SamplesPerPixel(), rt.antiAliasing.Technique(), rt.config.MaxDepth)

	ps := PixelSampler{
		Camera:     rt.camera,
		World:      rt.world,
		Integrator: rt.integrator,
		MaxDepth:   rt.config.MaxDepth,
		Sampler:    rt.sampler,
	}

	totalLuminance := 0.0
	startTime := time.Now()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			color := rt.antiAliasing.PixelColor(x, y, ps)
			totalLuminance += color.Luminance()

			offset := 3 * (y*width + x)
			pixels[offset] = ToByte(color.X)
			pixels[offset+1] = ToByte(color.Y)
			pixels[offset+2] = ToByte(color.Z)
		}
	}

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.antiAliasing.SamplesPerPixel(),
		SamplesPerPixel: rt.antiAliasing.SamplesPerPixel(),
		Elapsed:         time.Since(startTime),
		AvgLuminance:    totalLuminance / float64(width*height),
	}

	rt.logger.Printf("Render completed in %v (%.0f samples/s, average luminance %.3f)\n",
		stats.Elapsed, stats.SamplesPerSecond(), stats.AvgLuminance)

	return pixels, stats
}

// ToByte quantizes a gamma corrected channel in [0, 1] to 8 bits
func ToByte(c float64) uint8 {
	v := math.Floor(256 * c)
	if !(v > 0) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
