package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, allowing at most
	// depth scattering events.
	RayColor(ray core.Ray, world *geometry.World, depth int, sampler core.Sampler) core.Vec3
}
