// Command rrect generates rounded-rectangle meshes.
//
// It prints a summary of the generated buffers and optionally writes them
// as JSON (-dump) or renders a textured preview PNG (-output):
//
//	rrect -radius 32 -width 640 -height 480 -output preview.png
//	rrect -tl 40 -br 40 -triangles 12 -dump mesh.json
//	rrect -config preset.yaml -v
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	// Texture decoders.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/rrect"
	"github.com/gogpu/rrect/raster"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("rrect: %v", err)
	}
}

// run parses args, generates the mesh and writes the requested outputs.
func run(args []string, stdout, stderr io.Writer) error {
	def := defaultPreset()

	fs := flag.NewFlagSet("rrect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		radius     = fs.Float64("radius", def.Radius, "corner radius in pixels for every corner")
		tl         = fs.Float64("tl", 0, "top-left radius in pixels (overrides -radius)")
		tr         = fs.Float64("tr", 0, "top-right radius in pixels (overrides -radius)")
		br         = fs.Float64("br", 0, "bottom-right radius in pixels (overrides -radius)")
		bl         = fs.Float64("bl", 0, "bottom-left radius in pixels (overrides -radius)")
		width      = fs.Int("width", def.Width, "surface width in pixels")
		height     = fs.Int("height", def.Height, "surface height in pixels")
		triangles  = fs.Int("triangles", def.Triangles, "triangles per corner fan")
		z          = fs.Float64("z", float64(def.Z), "depth written to every vertex")
		policy     = fs.String("policy", def.Policy, "oversized radius policy: reject, clamp or unchecked")
		configPath = fs.String("config", "", "YAML preset file")
		texture    = fs.String("texture", "", "texture image (PNG, JPEG, GIF, BMP, TIFF or WebP); default checkerboard")
		output     = fs.String("output", "", "write a preview PNG to this file")
		dump       = fs.String("dump", "", "write vertex and index buffers as JSON to this file (- for stdout)")
		verbose    = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		rrect.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
		defer rrect.SetLogger(nil)
	}

	p := def
	if *configPath != "" {
		if err := loadPreset(*configPath, &p); err != nil {
			return err
		}
	}

	// Explicit flags win over the preset.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "radius":
			p.Radius = *radius
		case "tl":
			v := *tl
			p.TopLeft = &v
		case "tr":
			v := *tr
			p.TopRight = &v
		case "br":
			v := *br
			p.BottomRight = &v
		case "bl":
			v := *bl
			p.BottomLeft = &v
		case "width":
			p.Width = *width
		case "height":
			p.Height = *height
		case "triangles":
			p.Triangles = *triangles
		case "z":
			p.Z = float32(*z)
		case "policy":
			p.Policy = *policy
		case "texture":
			p.Texture = *texture
		case "output":
			p.Output = *output
		case "dump":
			p.Dump = *dump
		}
	})

	gen, err := p.generator()
	if err != nil {
		return err
	}
	radii := p.radii()
	mesh, err := gen.Generate(radii, p.bounds(), rrect.Size(p.Width, p.Height), p.Z)
	if err != nil {
		return err
	}

	printSummary(stdout, gen, radii, mesh)

	if p.Dump != "" {
		if err := writeDump(p.Dump, stdout, mesh); err != nil {
			return err
		}
	}
	if p.Output != "" {
		if err := writePreview(p.Output, p.Texture, p.Width, p.Height, mesh); err != nil {
			return err
		}
		rrect.Logger().Info("preview written", "path", p.Output)
	}
	return nil
}

func printSummary(w io.Writer, gen *rrect.Generator, r rrect.CornerRadii, mesh *rrect.Mesh) {
	pr := message.NewPrinter(language.English)
	pr.Fprintf(w, "radii: top-left=%.1f top-right=%.1f bottom-right=%.1f bottom-left=%.1f\n",
		r.TopLeft, r.TopRight, r.BottomRight, r.BottomLeft)
	pr.Fprintf(w, "mesh: %d vertices, %d indices, %d triangles (%d per corner, policy %s)\n",
		mesh.VertexCount(), mesh.IndexCount(), mesh.TriangleCount(),
		gen.TrianglesPerCorner(), gen.RadiusPolicy())
	pr.Fprintf(w, "buffers: %d vertex bytes, %d index bytes\n",
		len(mesh.VertexBytes()), len(mesh.IndexBytes()))
}

// meshDump is the JSON form of a mesh.
type meshDump struct {
	Vertices    []float32 `json:"vertices"`
	Indices     []uint16  `json:"indices"`
	VertexCount int       `json:"vertexCount"`
	IndexCount  int       `json:"indexCount"`
}

func writeDump(path string, stdout io.Writer, mesh *rrect.Mesh) error {
	d := meshDump{
		Vertices:    mesh.Vertices,
		Indices:     mesh.Indices,
		VertexCount: mesh.VertexCount(),
		IndexCount:  mesh.IndexCount(),
	}
	if path == "-" {
		return json.NewEncoder(stdout).Encode(d)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	if err := json.NewEncoder(f).Encode(d); err != nil {
		_ = f.Close()
		return fmt.Errorf("dump: %w", err)
	}
	return f.Close()
}

func writePreview(path, texturePath string, w, h int, mesh *rrect.Mesh) error {
	tex, err := loadTexture(texturePath, w, h)
	if err != nil {
		return err
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if err := raster.Render(dst, mesh, tex); err != nil {
		return fmt.Errorf("preview: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return fmt.Errorf("preview: %w", err)
	}
	return f.Close()
}

// loadTexture decodes the image at path, or returns a checkerboard of the
// given size when path is empty.
func loadTexture(path string, w, h int) (image.Image, error) {
	if path == "" {
		cell := max(min(w, h)/8, 1)
		return raster.Checkerboard(w, h, cell,
			color.RGBA{R: 0xe8, G: 0x4a, B: 0x5f, A: 0xff},
			color.RGBA{R: 0x2a, G: 0x36, B: 0x3b, A: 0xff}), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	rrect.Logger().Debug("texture loaded",
		"path", path,
		"format", format,
		"size", img.Bounds().Size().String())
	return img, nil
}
