package rrect

import "math"

// Bounds is an axis-aligned rectangle in clip-space units.
//
// Top and Bottom may be ordered either way: the generator works with the
// signed extent Top-Bottom, so a flipped rectangle yields a flipped mesh.
type Bounds struct {
	Left, Right, Top, Bottom float64
}

// NDC returns the full normalized device rectangle (-1..1 on both axes,
// Y up), the usual target for a full-surface quad.
func NDC() Bounds {
	return Bounds{Left: -1, Right: 1, Top: 1, Bottom: -1}
}

// Width returns the signed horizontal extent Right-Left.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the signed vertical extent Top-Bottom.
func (b Bounds) Height() float64 {
	return b.Top - b.Bottom
}

// Contains reports whether p lies inside b, edges included, regardless of
// the ordering of the edges. tol widens the rectangle on every side.
func (b Bounds) Contains(p Point, tol float64) bool {
	minX, maxX := math.Min(b.Left, b.Right), math.Max(b.Left, b.Right)
	minY, maxY := math.Min(b.Bottom, b.Top), math.Max(b.Bottom, b.Top)
	return p.X >= minX-tol && p.X <= maxX+tol && p.Y >= minY-tol && p.Y <= maxY+tol
}

// TexCoord maps a clip-space position to texture coordinates. U runs from
// Left (0) to Right (1); V runs from Bottom (0) to Top (1), the opposite
// direction of pixel rows.
func (b Bounds) TexCoord(p Point) (u, v float64) {
	return (p.X - b.Left) / b.Width(), (p.Y - b.Bottom) / b.Height()
}

func (b Bounds) finite() bool {
	for _, f := range [...]float64{b.Left, b.Right, b.Top, b.Bottom} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// PixelSize is the size in pixels of the surface that Bounds maps onto.
type PixelSize struct {
	Width, Height int
}

// Size is a convenience function to create a PixelSize.
func Size(width, height int) PixelSize {
	return PixelSize{Width: width, Height: height}
}

// Empty reports whether either dimension is not positive.
func (s PixelSize) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// radiusLimit returns the largest corner radius, in pixels, that keeps
// opposite corners from overlapping.
func (s PixelSize) radiusLimit() float64 {
	return float64(min(s.Width, s.Height)) / 2
}
