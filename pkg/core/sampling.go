package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler backed by its own seeded generator
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// RandomVec3 draws each component independently and uniformly from [min, max)
func RandomVec3(sampler Sampler, min, max float64) Vec3 {
	u := sampler.Get3D()
	span := max - min
	return NewVec3(min+span*u.X, min+span*u.Y, min+span*u.Z)
}

// RandomInUnitSphere generates a random point strictly inside the unit sphere.
// Points are drawn from the [-1,1]³ cube and rejected until one lands inside.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3(sampler, -1, 1)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
