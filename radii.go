package rrect

import "math"

// CornerRadii holds the radius of each corner in pixels.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// UniformRadii returns radii with all four corners set to r.
func UniformRadii(r float64) CornerRadii {
	return CornerRadii{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Max returns the largest of the four radii.
func (r CornerRadii) Max() float64 {
	return math.Max(math.Max(r.TopLeft, r.TopRight), math.Max(r.BottomRight, r.BottomLeft))
}

// IsZero reports whether every corner is square.
func (r CornerRadii) IsZero() bool {
	return r == CornerRadii{}
}

// ClampTo returns r with every radius limited to limit.
func (r CornerRadii) ClampTo(limit float64) CornerRadii {
	return CornerRadii{
		TopLeft:     math.Min(r.TopLeft, limit),
		TopRight:    math.Min(r.TopRight, limit),
		BottomRight: math.Min(r.BottomRight, limit),
		BottomLeft:  math.Min(r.BottomLeft, limit),
	}
}

// Corner identifies one corner of the rectangle. The order matches the
// order in which corner fans appear in a Mesh.
type Corner int

// Corners in mesh order.
const (
	TopLeft Corner = iota
	TopRight
	BottomRight
	BottomLeft

	cornerCount = 4
)

var cornerNames = [cornerCount]string{"top-left", "top-right", "bottom-right", "bottom-left"}

// String returns the corner name.
func (c Corner) String() string {
	if c < 0 || c >= cornerCount {
		return "unknown"
	}
	return cornerNames[c]
}

// At returns the radius of corner c.
func (r CornerRadii) At(c Corner) float64 {
	switch c {
	case TopLeft:
		return r.TopLeft
	case TopRight:
		return r.TopRight
	case BottomRight:
		return r.BottomRight
	case BottomLeft:
		return r.BottomLeft
	}
	return 0
}
