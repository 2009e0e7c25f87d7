package rrect

import "math"

// cornerSweeps holds the start and end angle of each corner fan, indexed by
// Corner. Top-left and top-right sweep with decreasing angle, bottom-right
// and bottom-left with increasing angle, so the two pairs have opposite
// triangle winding. Pipelines drawing a Mesh must not cull faces.
var cornerSweeps = [cornerCount][2]float64{
	TopLeft:     {math.Pi, math.Pi / 2},
	TopRight:    {math.Pi / 2, 0},
	BottomRight: {3 * math.Pi / 2, 2 * math.Pi},
	BottomLeft:  {math.Pi, 3 * math.Pi / 2},
}

// meshWriter appends quads and fans to a Mesh. Texture coordinates of
// every vertex come from the same mapping over bounds, which keeps the
// texture continuous across panel seams.
type meshWriter struct {
	mesh   *Mesh
	bounds Bounds
	z      float32
}

// base returns the index of the next vertex to be written.
func (w *meshWriter) base() int {
	return len(w.mesh.Vertices) / FloatsPerVertex
}

func (w *meshWriter) vertex(p Point) {
	u, v := w.bounds.TexCoord(p)
	w.mesh.Vertices = append(w.mesh.Vertices,
		float32(p.X), float32(p.Y), w.z,
		float32(u), float32(v))
}

// quad emits four vertices and the triangles (0,1,2) and (1,2,3).
func (w *meshWriter) quad(p0, p1, p2, p3 Point) {
	i := uint16(w.base())
	w.vertex(p0)
	w.vertex(p1)
	w.vertex(p2)
	w.vertex(p3)
	w.mesh.Indices = append(w.mesh.Indices,
		i, i+1, i+2,
		i+1, i+2, i+3)
}

// fan emits n triangles pivoted at center, sweeping from angle a0 to a1 on
// the ellipse with semi-axes radius. Every triangle owns its three
// vertices: the pivot, then the arc points at the start and end angle.
// Both angles use the same expression, so neighbouring triangles share
// bit-identical arc points.
func (w *meshWriter) fan(center, radius Point, a0, a1 float64, n int) {
	for i := 0; i < n; i++ {
		start := a0 + (a1-a0)*float64(i)/float64(n)
		end := a0 + (a1-a0)*float64(i+1)/float64(n)
		idx := uint16(w.base())
		w.vertex(center)
		w.vertex(center.OnEllipse(radius, start))
		w.vertex(center.OnEllipse(radius, end))
		w.mesh.Indices = append(w.mesh.Indices, idx, idx+1, idx+2)
	}
}
