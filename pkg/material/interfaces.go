package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material scatters rays that hit a surface. The set of implementations is
// closed: only Lambertian and Metal satisfy it.
type Material interface {
	// Scatter returns the continuing ray and its attenuation, or false when
	// the surface absorbs the ray.
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)

	sealed()
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection, always against the incident ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the front face
	Material  Material  // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
