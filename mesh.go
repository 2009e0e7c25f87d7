package rrect

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Buffer layout constants.
const (
	// FloatsPerVertex is the number of float32 values per vertex: x, y, z, u, v.
	FloatsPerVertex = 5

	// VertexStride is the byte stride per vertex.
	// Layout per vertex:
	//
	//	position  (vec3<f32>) = 12 bytes (location 0)
	//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
	//
	// Total = 20 bytes per vertex.
	VertexStride = FloatsPerVertex * 4

	// IndexFormat is the element type of Mesh.Indices.
	IndexFormat = gputypes.IndexFormatUint16
)

const (
	quadCount           = 5
	verticesPerQuad     = 4
	indicesPerQuad      = 6
	verticesPerTriangle = 3
)

// MeshSize returns the vertex and index counts of a mesh whose corner fans
// have n triangles each. The counts depend on n only.
func MeshSize(n int) (vertices, indices int) {
	vertices = quadCount*verticesPerQuad + cornerCount*n*verticesPerTriangle
	indices = quadCount*indicesPerQuad + cornerCount*n*verticesPerTriangle
	return vertices, indices
}

// Vertex is a single mesh vertex: position plus texture coordinate.
type Vertex struct {
	X, Y, Z float32
	U, V    float32
}

// Mesh is an indexed triangle list.
//
// Vertices holds FloatsPerVertex values per vertex (x, y, z, u, v); Indices
// holds three zero-based vertex offsets per triangle. The layout is ready
// for upload as a vertex buffer described by VertexLayout and an index
// buffer of IndexFormat.
//
// The mesh is made of five quads (center, left, right, top, bottom), four
// vertices each, followed by four corner fans (top-left, top-right,
// bottom-right, bottom-left) whose triangles own three vertices each.
type Mesh struct {
	Vertices []float32
	Indices  []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) Vertex {
	f := m.Vertices[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
	return Vertex{X: f[0], Y: f[1], Z: f[2], U: f[3], V: f[4]}
}

// Triangle returns the three vertices of triangle i in index order.
func (m *Mesh) Triangle(i int) [3]Vertex {
	idx := m.Indices[i*3 : i*3+3]
	return [3]Vertex{m.Vertex(int(idx[0])), m.Vertex(int(idx[1])), m.Vertex(int(idx[2]))}
}

// Winding returns twice the signed area of triangle i. It is positive for
// counter-clockwise triangles in a Y-up space, negative for clockwise ones,
// and zero for degenerate triangles.
func (m *Mesh) Winding(i int) float64 {
	t := m.Triangle(i)
	a := Pt(float64(t[0].X), float64(t[0].Y))
	b := Pt(float64(t[1].X), float64(t[1].Y))
	c := Pt(float64(t[2].X), float64(t[2].Y))
	return b.Sub(a).Cross(c.Sub(a))
}

// Bounds returns the axis-aligned box enclosing every vertex position,
// with Top >= Bottom. An empty mesh returns the zero Bounds.
func (m *Mesh) Bounds() Bounds {
	n := m.VertexCount()
	if n == 0 {
		return Bounds{}
	}
	b := Bounds{
		Left: math.Inf(1), Right: math.Inf(-1),
		Top: math.Inf(-1), Bottom: math.Inf(1),
	}
	for i := 0; i < n; i++ {
		x := float64(m.Vertices[i*FloatsPerVertex])
		y := float64(m.Vertices[i*FloatsPerVertex+1])
		b.Left = math.Min(b.Left, x)
		b.Right = math.Max(b.Right, x)
		b.Bottom = math.Min(b.Bottom, y)
		b.Top = math.Max(b.Top, y)
	}
	return b
}

// VertexBytes encodes the vertex buffer as little-endian float32 values.
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*4)
	for i, f := range m.Vertices {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// IndexBytes encodes the index buffer as little-endian uint16 values. The
// index count is always even, so the result is a multiple of 4 bytes as
// buffer writes require.
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*2)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// reset truncates the buffers and ensures room for the given counts,
// reusing existing storage when it is large enough.
func (m *Mesh) reset(vertices, indices int) {
	if cap(m.Vertices) < vertices*FloatsPerVertex {
		m.Vertices = make([]float32, 0, vertices*FloatsPerVertex)
	}
	if cap(m.Indices) < indices {
		m.Indices = make([]uint16, 0, indices)
	}
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// VertexLayout returns the vertex buffer layout of a Mesh:
//
//	location 0: position (vec3<f32>)
//	location 1: tex_coord (vec2<f32>)
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1}, // tex_coord
			},
		},
	}
}
