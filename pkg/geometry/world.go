package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World is an ordered collection of shapes. It is built during scene
// construction and only read while rendering.
type World struct {
	Shapes []Shape
}

// NewWorld creates a world holding the given shapes in order
func NewWorld(shapes ...Shape) *World {
	return &World{Shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the world
func (w *World) Add(shape Shape) {
	w.Shapes = append(w.Shapes, shape)
}

// Len returns the number of shapes in the world
func (w *World) Len() int {
	return len(w.Shapes)
}

// Hit returns the nearest intersection among all shapes with tMin < t < tMax.
// The upper bound tightens to each hit, so a later shape at an equal t never
// replaces an earlier one.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range w.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
