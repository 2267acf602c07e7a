package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value core.Vec3
}

func (f fixedSampler) Get1D() float64   { return f.value.X }
func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value.X, f.value.Y) }
func (f fixedSampler) Get3D() core.Vec3 { return f.value }

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(1, 2, 4), core.NewVec3(0, 0, -1))

	for i := 0; i < 100; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}

		if !scatter.Attenuation.Equals(albedo) {
			t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}

		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Errorf("Scattered ray should start at hit point %v, got %v", hit.Point, scatter.Scattered.Origin)
		}

		// normal + point in unit ball never points below the surface
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Errorf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}

		// Direction is normal + offset with |offset| < 1
		offset := scatter.Scattered.Direction.Subtract(normal)
		if offset.LengthSquared() >= 1 {
			t.Errorf("Scatter offset %v lies outside the unit sphere", offset)
		}
	}
}

func TestLambertian_DegenerateDirection(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

	// Get3D (0.5, 0.5, 0.25) maps to the unit sphere point (0, 0, -0.5),
	// which cancels this normal exactly.
	sampler := fixedSampler{value: core.NewVec3(0.5, 0.5, 0.25)}
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 0.5),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}

	if !scatter.Scattered.Direction.Equals(hit.Normal) {
		t.Errorf("Degenerate scatter should fall back to the normal %v, got %v",
			hit.Normal, scatter.Scattered.Direction)
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"ray against normal", core.NewVec3(0, 0, -1), true, outward},
		{"ray along normal", core.NewVec3(0, 0, 1), false, outward.Negate()},
		{"oblique back face", core.NewVec3(1, 0, 0.1), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit.SetFaceNormal(ray, outward)

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if !hit.Normal.Equals(tt.expectedNormal) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if ray.Direction.Dot(hit.Normal) > 0 {
				t.Errorf("Stored normal %v should oppose the ray", hit.Normal)
			}
		})
	}
}
