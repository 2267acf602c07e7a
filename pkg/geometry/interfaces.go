package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
//
// Hit reports the nearest intersection with tMin < t < tMax. The returned
// record's normal always opposes the ray direction; FrontFace records whether
// the ray struck the outside of the shape.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}
