package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// DefaultMaxDepth is the bounce limit applied to every top-level trace
const DefaultMaxDepth = 50

// ShadowAcneEpsilon is the minimum hit distance for scattered rays
const ShadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a sky gradient
type PathTracingIntegrator struct {
	TopColor    core.Vec3 // Sky color straight up
	BottomColor core.Vec3 // Sky color straight down
}

// NewPathTracingIntegrator creates a path tracer with the default blue sky
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		TopColor:    core.NewVec3(0.5, 0.7, 1.0),
		BottomColor: core.NewVec3(1.0, 1.0, 1.0),
	}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *geometry.World, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.BottomColor.Multiply(1.0 - t).Add(pt.TopColor.Multiply(t))
}
