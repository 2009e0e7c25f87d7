package rrect

import "math"

// Point represents a 2D point or vector in clip-space units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// OnEllipse returns the point at angle radians on the axis-aligned ellipse
// centered at p with semi-axes r.X and r.Y. The semi-axes may be negative,
// which mirrors the ellipse along that axis.
func (p Point) OnEllipse(r Point, angle float64) Point {
	return Point{
		X: p.X + r.X*math.Cos(angle),
		Y: p.Y + r.Y*math.Sin(angle),
	}
}
