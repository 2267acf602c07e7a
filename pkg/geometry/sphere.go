package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	// A zero discriminant is a tangent ray: one hit at the double root
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}
