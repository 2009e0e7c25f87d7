// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster renders rrect meshes on the CPU.
//
// It is a preview of what the GPU pipeline draws: the texture is stretched
// over the mesh through its texture coordinates and clipped to the mesh
// coverage, so the rounded corners show the destination underneath.
//
// Usage:
//
//	mesh, _ := rrect.Generate(rrect.UniformRadii(24), rrect.NDC(), rrect.Size(w, h), 0)
//	dst := image.NewRGBA(image.Rect(0, 0, w, h))
//	if err := raster.Render(dst, mesh, frame); err != nil {
//	    return err
//	}
package raster

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/rrect"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Errors returned by Render and Coverage.
var (
	// ErrNilMesh is returned for a nil or empty mesh.
	ErrNilMesh = errors.New("raster: mesh is nil or empty")

	// ErrNilTexture is returned when no texture image is given.
	ErrNilTexture = errors.New("raster: texture is nil")

	// ErrEmptyTarget is returned for a destination without pixels.
	ErrEmptyTarget = errors.New("raster: empty destination")
)

// Render draws mesh into dst, textured with tex.
//
// Texture coordinates map onto dst: u=0 is the left edge, v=1 the top edge.
// tex is scaled to the size of dst with bilinear filtering and composited
// over dst through the mesh coverage.
func Render(dst *image.RGBA, mesh *rrect.Mesh, tex image.Image) error {
	if tex == nil {
		return ErrNilTexture
	}
	r := dst.Bounds()
	mask, err := Coverage(mesh, r.Dx(), r.Dy())
	if err != nil {
		return err
	}

	scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), tex, tex.Bounds(), draw.Src, nil)
	draw.DrawMask(dst, r, scaled, image.Point{}, mask, image.Point{}, draw.Over)

	rrect.Logger().Debug("raster: mesh rendered",
		"width", r.Dx(),
		"height", r.Dy(),
		"triangles", mesh.TriangleCount())
	return nil
}

// Coverage returns the anti-aliased coverage of mesh on a width x height
// pixel grid, positioned by texture coordinates.
//
// Triangles of a mesh do not share one winding order, while the
// rasterizer accumulates signed area. Every triangle is therefore added
// with the same orientation, and degenerate triangles are skipped.
func Coverage(mesh *rrect.Mesh, width, height int) (*image.Alpha, error) {
	if mesh == nil || mesh.TriangleCount() == 0 {
		return nil, ErrNilMesh
	}
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyTarget
	}

	w, h := float32(width), float32(height)
	z := vector.NewRasterizer(width, height)
	for i := 0; i < mesh.TriangleCount(); i++ {
		t := mesh.Triangle(i)
		var px, py [3]float32
		for k, v := range t {
			px[k] = v.U * w
			py[k] = (1 - v.V) * h
		}
		area := (px[1]-px[0])*(py[2]-py[0]) - (py[1]-py[0])*(px[2]-px[0])
		switch {
		case area == 0:
			continue
		case area < 0:
			px[1], px[2] = px[2], px[1]
			py[1], py[2] = py[2], py[1]
		}
		z.MoveTo(px[0], py[0])
		z.LineTo(px[1], py[1])
		z.LineTo(px[2], py[2])
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, nil
}

// Checkerboard returns a w x h image of cell-sized squares alternating
// between a and b, starting with a in the top-left corner.
func Checkerboard(w, h, cell int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if cell < 1 {
		cell = 1
	}
	ca := color.RGBAModel.Convert(a).(color.RGBA)
	cb := color.RGBAModel.Convert(b).(color.RGBA)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := ca
			if (x/cell+y/cell)%2 == 1 {
				c = cb
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
