package main

import (
	"fmt"
	"os"

	"github.com/gogpu/rrect"
	"gopkg.in/yaml.v3"
)

// maxPresetSize bounds the size of a preset file.
const maxPresetSize = 1 << 20

// preset holds everything needed to build and export one mesh. It is filled
// from defaults, then a YAML file, then explicitly set flags.
type preset struct {
	Radius float64 `yaml:"radius"`

	// Per-corner radii override Radius when set.
	TopLeft     *float64 `yaml:"top_left"`
	TopRight    *float64 `yaml:"top_right"`
	BottomRight *float64 `yaml:"bottom_right"`
	BottomLeft  *float64 `yaml:"bottom_left"`

	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Triangles int     `yaml:"triangles"`
	Z         float32 `yaml:"z"`
	Policy    string  `yaml:"policy"`

	Bounds *boundsPreset `yaml:"bounds"`

	Texture string `yaml:"texture"`
	Output  string `yaml:"output"`
	Dump    string `yaml:"dump"`
}

type boundsPreset struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

func defaultPreset() preset {
	return preset{
		Radius:    24,
		Width:     320,
		Height:    240,
		Triangles: rrect.DefaultTrianglesPerCorner,
		Policy:    rrect.RadiusReject.String(),
	}
}

// loadPreset reads a YAML preset from path on top of p. Keys missing from
// the file keep the values already in p.
func loadPreset(path string, p *preset) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if info.Size() > maxPresetSize {
		return fmt.Errorf("preset: %s is too large (%d bytes)", path, info.Size())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("preset: parse %s: %w", path, err)
	}
	return nil
}

func (p *preset) radii() rrect.CornerRadii {
	pick := func(v *float64) float64 {
		if v != nil {
			return *v
		}
		return p.Radius
	}
	return rrect.CornerRadii{
		TopLeft:     pick(p.TopLeft),
		TopRight:    pick(p.TopRight),
		BottomRight: pick(p.BottomRight),
		BottomLeft:  pick(p.BottomLeft),
	}
}

func (p *preset) bounds() rrect.Bounds {
	if p.Bounds == nil {
		return rrect.NDC()
	}
	return rrect.Bounds{
		Left:   p.Bounds.Left,
		Right:  p.Bounds.Right,
		Top:    p.Bounds.Top,
		Bottom: p.Bounds.Bottom,
	}
}

func (p *preset) generator() (*rrect.Generator, error) {
	policy, ok := rrect.ParseRadiusPolicy(p.Policy)
	if !ok {
		return nil, fmt.Errorf("unknown radius policy %q (want reject, clamp or unchecked)", p.Policy)
	}
	if p.Triangles < 1 || p.Triangles > rrect.MaxTrianglesPerCorner {
		return nil, fmt.Errorf("triangles must be in [1, %d], got %d", rrect.MaxTrianglesPerCorner, p.Triangles)
	}
	return rrect.NewGenerator(
		rrect.WithTrianglesPerCorner(p.Triangles),
		rrect.WithRadiusPolicy(policy),
	), nil
}
