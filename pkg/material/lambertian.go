package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	scatterDirection := hit.Normal.Add(core.RandomInUnitSphere(sampler))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

func (l *Lambertian) sealed() {}
