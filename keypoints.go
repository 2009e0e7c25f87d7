package rrect

// keyPoints are the twelve points that define the mesh.
//
// The outer points lie on the rectangle edges, inset from each true corner
// by that corner's radius along the edge. They are named edge first, then
// the corner they lean towards: leftTop is on the left edge near the
// top-left corner. The inner points are where the straight edges would
// meet if every edge were inset by its adjacent radius; each is the pivot
// of one corner fan and shared by the center quad and two edge quads.
type keyPoints struct {
	leftTop, leftBottom     Point
	topLeft, topRight       Point
	rightTop, rightBottom   Point
	bottomLeft, bottomRight Point

	innerTopLeft, innerTopRight       Point
	innerBottomRight, innerBottomLeft Point
}

// clipRadii converts pixel radii into per-axis clip-space radii, indexed by
// Corner. Pixel and clip-space aspect ratios may differ, so each axis is
// scaled independently. The Y radius takes the sign of Top-Bottom because
// pixel rows run opposite to the clip-space Y axis.
func clipRadii(r CornerRadii, b Bounds, s PixelSize) [cornerCount]Point {
	sx := b.Width() / float64(s.Width)
	sy := b.Height() / float64(s.Height)
	var out [cornerCount]Point
	for c := Corner(0); c < cornerCount; c++ {
		px := r.At(c)
		out[c] = Pt(px*sx, px*sy)
	}
	return out
}

// compute fills k from the bounds and clip-space radii.
func (k *keyPoints) compute(b Bounds, rad [cornerCount]Point) {
	x0, x1 := b.Left, b.Right
	y0, y1 := b.Bottom, b.Top

	tl, tr := rad[TopLeft], rad[TopRight]
	br, bl := rad[BottomRight], rad[BottomLeft]

	k.leftTop = Pt(x0, y1-tl.Y)
	k.leftBottom = Pt(x0, y0+bl.Y)
	k.topLeft = Pt(x0+tl.X, y1)
	k.topRight = Pt(x1-tr.X, y1)
	k.rightTop = Pt(x1, y1-tr.Y)
	k.rightBottom = Pt(x1, y0+br.Y)
	k.bottomLeft = Pt(x0+bl.X, y0)
	k.bottomRight = Pt(x1-br.X, y0)

	k.innerTopLeft = Pt(k.topLeft.X, k.leftTop.Y)
	k.innerTopRight = Pt(k.topRight.X, k.rightTop.Y)
	k.innerBottomRight = Pt(k.bottomRight.X, k.rightBottom.Y)
	k.innerBottomLeft = Pt(k.bottomLeft.X, k.leftBottom.Y)
}

// pivot returns the fan pivot of corner c.
func (k *keyPoints) pivot(c Corner) Point {
	switch c {
	case TopLeft:
		return k.innerTopLeft
	case TopRight:
		return k.innerTopRight
	case BottomRight:
		return k.innerBottomRight
	default:
		return k.innerBottomLeft
	}
}
