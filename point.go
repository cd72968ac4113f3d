package cdt

import "github.com/gogpu/cdt/internal/geom"

// Point represents a 2D point or vector.
type Point = geom.Point

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return geom.Pt(x, y)
}
