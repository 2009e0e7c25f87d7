package rrect

import (
	"context"
	"log/slog"
	"math"
)

// Generator builds rounded-rectangle meshes.
//
// A Generator keeps scratch key points between calls and is therefore not
// safe for concurrent use: calls on one instance must be serialized, which
// is the natural arrangement when it is owned by a render thread. Separate
// generators are independent.
type Generator struct {
	opts options

	keys  keyPoints
	radii [cornerCount]Point
}

// NewGenerator creates a Generator configured by opts.
func NewGenerator(opts ...Option) *Generator {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Generator{opts: o}
}

// TrianglesPerCorner returns the number of triangles in each corner fan.
func (g *Generator) TrianglesPerCorner() int {
	return g.opts.trianglesPerCorner
}

// RadiusPolicy returns the policy applied to oversized radii.
func (g *Generator) RadiusPolicy() RadiusPolicy {
	return g.opts.radiusPolicy
}

// Size returns the vertex and index counts of every mesh this generator
// produces.
func (g *Generator) Size() (vertices, indices int) {
	return MeshSize(g.opts.trianglesPerCorner)
}

// Generate builds the mesh of a rectangle covering bounds with corners
// rounded by radii. size is the pixel size of the surface that bounds maps
// onto and converts the pixel radii into clip-space units. z is written as
// the depth of every vertex.
//
// Invalid input yields a *DomainError and no mesh.
func (g *Generator) Generate(radii CornerRadii, bounds Bounds, size PixelSize, z float32) (*Mesh, error) {
	m := &Mesh{}
	if err := g.GenerateInto(m, radii, bounds, size, z); err != nil {
		return nil, err
	}
	return m, nil
}

// GenerateInto is like Generate but writes into dst, reusing its buffers
// when they have enough capacity. On error dst is left unchanged.
func (g *Generator) GenerateInto(dst *Mesh, radii CornerRadii, bounds Bounds, size PixelSize, z float32) error {
	if err := validateDimensions(bounds, size); err != nil {
		return err
	}
	radii, err := g.checkRadii(radii, size)
	if err != nil {
		return err
	}

	n := g.opts.trianglesPerCorner
	nv, ni := MeshSize(n)
	dst.reset(nv, ni)

	g.radii = clipRadii(radii, bounds, size)
	g.keys.compute(bounds, g.radii)
	k := &g.keys

	w := meshWriter{mesh: dst, bounds: bounds, z: z}

	// Center, left, right, top and bottom panels.
	w.quad(k.innerTopLeft, k.innerTopRight, k.innerBottomLeft, k.innerBottomRight)
	w.quad(k.leftTop, k.innerTopLeft, k.leftBottom, k.innerBottomLeft)
	w.quad(k.innerTopRight, k.rightTop, k.innerBottomRight, k.rightBottom)
	w.quad(k.topLeft, k.innerTopLeft, k.topRight, k.innerTopRight)
	w.quad(k.innerBottomLeft, k.bottomLeft, k.innerBottomRight, k.bottomRight)

	for c := Corner(0); c < cornerCount; c++ {
		sweep := cornerSweeps[c]
		w.fan(k.pivot(c), g.radii[c], sweep[0], sweep[1], n)
	}

	if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("rrect: mesh generated",
			"vertices", dst.VertexCount(),
			"indices", dst.IndexCount(),
			"trianglesPerCorner", n,
			"width", size.Width,
			"height", size.Height)
	}
	return nil
}

// validateDimensions checks the pixel size and bounds.
func validateDimensions(b Bounds, s PixelSize) error {
	if s.Width <= 0 {
		return dimensionError("size.width", float64(s.Width), "must be positive")
	}
	if s.Height <= 0 {
		return dimensionError("size.height", float64(s.Height), "must be positive")
	}
	if !b.finite() {
		return dimensionError("bounds", math.NaN(), "must be finite")
	}
	if b.Width() == 0 {
		return dimensionError("bounds.right", b.Right, "must differ from bounds.left")
	}
	if b.Height() == 0 {
		return dimensionError("bounds.top", b.Top, "must differ from bounds.bottom")
	}
	return nil
}

// checkRadii validates radii against size and applies the radius policy.
func (g *Generator) checkRadii(r CornerRadii, s PixelSize) (CornerRadii, error) {
	limit := s.radiusLimit()
	clamped := false
	for c := Corner(0); c < cornerCount; c++ {
		v := r.At(c)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			return r, radiusError(c, v, "must be finite")
		case v < 0:
			return r, radiusError(c, v, "must not be negative")
		case v > limit:
			switch g.opts.radiusPolicy {
			case RadiusReject:
				return r, radiusError(c, v, "exceeds half the shorter side of the surface")
			case RadiusClamp:
				clamped = true
			}
		}
	}
	if clamped {
		Logger().Warn("rrect: corner radius clamped",
			"limit", limit,
			"max", r.Max())
		r = r.ClampTo(limit)
	}
	return r, nil
}

// Generate builds a mesh with a default Generator. See Generator.Generate.
func Generate(radii CornerRadii, bounds Bounds, size PixelSize, z float32) (*Mesh, error) {
	return NewGenerator().Generate(radii, bounds, size, z)
}
