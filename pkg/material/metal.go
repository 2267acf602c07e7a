package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo    core.Vec3 // Metal color
	Roughness float64   // 0.0 = perfect mirror, 1.0 = very rough
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, roughness float64) *Metal {
	// Clamp roughness to valid range
	if roughness > 1.0 {
		roughness = 1.0
	}
	if roughness < 0.0 {
		roughness = 0.0
	}
	return &Metal{Albedo: albedo, Roughness: roughness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := Reflect(rayIn.Direction, hit.Normal)

	// Perturbation is sampled even at zero roughness
	direction := reflected.Add(core.RandomInUnitSphere(sampler).Multiply(m.Roughness))

	// Only scatter if the ray leaves the surface
	if direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: m.Albedo,
	}, true
}

func (m *Metal) sealed() {}

// Reflect calculates the reflection of a vector v off a surface with normal n
func Reflect(v, n core.Vec3) core.Vec3 {
	// r = v - 2*dot(v,n)*n
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}
