// Package rrect generates GPU-ready meshes for rectangles with
// independently rounded corners.
//
// # Overview
//
// A Generator turns four corner radii in pixels, a target rectangle in
// clip space and the pixel size of the surface into an indexed triangle
// list: an interleaved x, y, z, u, v float32 vertex buffer and a uint16
// index buffer. The output is meant to be uploaded as-is and drawn with a
// texture, for example a video frame with rounded corners.
//
// # Quick Start
//
//	import "github.com/gogpu/rrect"
//
//	g := rrect.NewGenerator()
//	mesh, err := g.Generate(rrect.UniformRadii(10), rrect.NDC(), rrect.Size(200, 200), 0)
//	if err != nil {
//	    return err
//	}
//	// mesh.VertexBytes(), mesh.IndexBytes(), rrect.VertexLayout()
//
// # Topology
//
// Every mesh has the same topology: five quads (the inner rectangle and one
// strip per side) and four corner fans of N triangles each, so a mesh has
// 20+12N vertices and 30+12N indices whatever the radii. Zero radii still
// emit their fans as zero-area triangles.
//
// # Coordinate System
//
// Positions are in clip-space units. Radii are converted per axis
// (radius/pixels*extent), because pixel and clip-space aspect ratios may
// differ. Texture coordinates are an affine function of position over the
// target rectangle: U grows from Left to Right, V from Bottom to Top.
//
// # Winding
//
// The top corner fans wind opposite to the bottom ones and the quads mix
// both orientations. Draw meshes with face culling disabled.
//
// # Packages
//
//   - rrect: generator, mesh buffers, vertex layout
//   - gpu: hal render pipeline drawing a mesh with a texture
//   - raster: CPU preview renderer
//   - cache: meshes shared between goroutines
//   - cmd/rrect: command-line mesh dump and preview
package rrect
