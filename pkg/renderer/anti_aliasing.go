package renderer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// ErrUnsupportedTechnique is returned for anti-aliasing techniques that have no sampler
var ErrUnsupportedTechnique = errors.New("unsupported anti-aliasing technique")

// Technique selects how a pixel is sampled
type Technique int

const (
	TechniqueNone          Technique = iota // One ray through the pixel's integer coordinates
	TechniqueSuperSampling                  // Uniformly jittered rays averaged per pixel
	TechniqueMonteCarlo
	TechniqueSpatial
	TechniqueTemporal
)

var techniqueNames = map[Technique]string{
	TechniqueNone:          "none",
	TechniqueSuperSampling: "supersampling",
	TechniqueMonteCarlo:    "montecarlo",
	TechniqueSpatial:       "spatial",
	TechniqueTemporal:      "temporal",
}

func (t Technique) String() string {
	if name, ok := techniqueNames[t]; ok {
		return name
	}
	return fmt.Sprintf("technique(%d)", int(t))
}

// ParseTechnique converts a technique tag such as "supersampling" into a Technique
func ParseTechnique(name string) (Technique, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	for technique, techniqueName := range techniqueNames {
		if techniqueName == normalized {
			return technique, nil
		}
	}
	return TechniqueNone, fmt.Errorf("unknown anti-aliasing technique %q", name)
}

// AntiAliasing integrates the samples of one pixel into a display color
type AntiAliasing struct {
	samplesPerPixel int
	technique       Technique
}

// NewAntiAliasing creates a pixel sampler. Only TechniqueNone and
// TechniqueSuperSampling are implemented.
func NewAntiAliasing(samplesPerPixel int, technique Technique) (*AntiAliasing, error) {
	if samplesPerPixel <= 0 {
		return nil, fmt.Errorf("samples per pixel must be positive, got %d", samplesPerPixel)
	}
	switch technique {
	case TechniqueNone:
		samplesPerPixel = 1
	case TechniqueSuperSampling:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTechnique, technique)
	}
	return &AntiAliasing{samplesPerPixel: samplesPerPixel, technique: technique}, nil
}

// SamplesPerPixel returns the number of rays traced per pixel
func (aa *AntiAliasing) SamplesPerPixel() int {
	return aa.samplesPerPixel
}

// Technique returns the sampling technique
func (aa *AntiAliasing) Technique() Technique {
	return aa.technique
}

// PixelSampler bundles what a pixel needs to be evaluated
type PixelSampler struct {
	Camera     *Camera
	World      *geometry.World
	Integrator integrator.Integrator
	MaxDepth   int
	Sampler    core.Sampler
}

// PixelColor returns the color of pixel (x, y), where y = 0 is the top row.
// Supersampled colors are gamma corrected; a single sample is returned as traced.
func (aa *AntiAliasing) PixelColor(x, y int, ps PixelSampler) core.Vec3 {
	if aa.technique == TechniqueNone {
		return aa.trace(float64(x), float64(y), ps)
	}

	var stats PixelStats

	for sample := 0; sample < aa.samplesPerPixel; sample++ {
		jitter := ps.Sampler.Get2D()
		stats.AddSample(aa.trace(float64(x)+jitter.X, float64(y)+jitter.Y, ps))
	}

	return stats.GetColor().Sqrt()
}

// trace evaluates one ray at continuous image coordinates (px, py)
func (aa *AntiAliasing) trace(px, py float64, ps PixelSampler) core.Vec3 {
	width := ps.Camera.ImageWidth()
	height := ps.Camera.ImageHeight()

	// Image rows run top to bottom; t runs bottom to top
	s := px / float64(max(width-1, 1))
	t := (float64(height) - py) / float64(max(height-1, 1))

	ray := ps.Camera.GetRay(s, t)
	return ps.Integrator.RayColor(ray, ps.World, ps.MaxDepth, ps.Sampler)
}
