//go:build !nogpu

// Package gpu draws rounded rectangle meshes with a wgpu HAL device.
//
// A Renderer owns an rrect.Generator and the GPU objects of one textured
// mesh. It regenerates the mesh when the corner radii or the surface size
// change, uploads it, and records the draw into a render pass owned by the
// caller. Device creation and texture streaming stay with the caller: the
// Renderer borrows a device, a queue and a texture view.
//
// Usage:
//
//	r, err := gpu.NewRenderer(provider) // gpucontext.DeviceProvider, e.g. a gogpu app
//	if err != nil {
//	    return err
//	}
//	defer r.Destroy()
//
//	r.SetCornerRadius(24, 24, 24, 24)
//	r.Resize(width, height)
//	r.SetTexture(frameView)
//
//	// per frame
//	if err := r.Prepare(); err != nil {
//	    return err
//	}
//	r.Draw(renderPass)
//
// A Renderer is used from the render thread only.
package gpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rrect"
	gpuimpl "github.com/gogpu/rrect/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

// Errors returned by Renderer.
var (
	// ErrNilMesh is returned by Prepare before the surface size is known.
	ErrNilMesh = gpuimpl.ErrNilMesh

	// ErrNoTexture is returned by Prepare before a texture view is set.
	ErrNoTexture = gpuimpl.ErrNoTexture

	// ErrNotPrepared is returned by Draw when the latest changes were not
	// uploaded by Prepare.
	ErrNotPrepared = gpuimpl.ErrNotPrepared

	// ErrNilHALDevice is returned when no HAL device is available.
	ErrNilHALDevice = gpuimpl.ErrNilHALDevice

	// ErrNoTarget is returned by RenderFrame without a target view.
	ErrNoTarget = gpuimpl.ErrNoTarget
)

// Matrix is a 4x4 column-major float32 matrix.
type Matrix = gpuimpl.Matrix

// IdentityMatrix returns the 4x4 identity.
func IdentityMatrix() Matrix { return gpuimpl.IdentityMatrix() }

// FlipVMatrix returns the texture transform for an upright image.
func FlipVMatrix() Matrix { return gpuimpl.FlipVMatrix() }

// SetLogger configures logging for rrect and its GPU pipeline.
// Pass nil to disable logging.
func SetLogger(l *slog.Logger) {
	rrect.SetLogger(l)
	gpuimpl.SetLogger(l)
}

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	bounds      rrect.Bounds
	z           float32
	sampleCount uint32
	genOpts     []rrect.Option
}

func defaultOptions() options {
	return options{bounds: rrect.NDC(), sampleCount: 1}
}

// WithBounds sets the clip-space rectangle covered by the mesh.
// Default: the full NDC square.
func WithBounds(b rrect.Bounds) Option {
	return func(o *options) { o.bounds = b }
}

// WithDepth sets the z coordinate of every vertex.
func WithDepth(z float32) Option {
	return func(o *options) { o.z = z }
}

// WithSampleCount sets the MSAA sample count of the render pass the
// Renderer draws into.
func WithSampleCount(n uint32) Option {
	return func(o *options) { o.sampleCount = n }
}

// WithGeneratorOptions passes options to the mesh generator.
func WithGeneratorOptions(opts ...rrect.Option) Option {
	return func(o *options) { o.genOpts = append(o.genOpts, opts...) }
}

// Renderer draws a textured rounded rectangle.
type Renderer struct {
	pipeline *gpuimpl.MeshPipeline
	gen      *rrect.Generator

	bounds rrect.Bounds
	z      float32
	radii  rrect.CornerRadii
	size   rrect.PixelSize

	mesh      rrect.Mesh
	generated bool

	view     hal.TextureView
	uniforms gpuimpl.Uniforms
	res      *gpuimpl.MeshResources
	dirty    bool
}

// NewRenderer creates a Renderer on the device of provider. The provider
// must expose HAL objects, either through HalDevice() and HalQueue() or
// by returning hal.Device and hal.Queue from Device() and Queue(). The
// color target format is the provider's surface format.
func NewRenderer(provider gpucontext.DeviceProvider, opts ...Option) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNilHALDevice
	}
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	info := provider.AdapterInfo()
	rrect.Logger().Debug("gpu: renderer on shared device",
		"adapter", info.Name,
		"type", info.Type,
		"format", provider.SurfaceFormat())
	return NewRendererWithHAL(device, queue, provider.SurfaceFormat(), opts...)
}

// halFromProvider extracts the HAL device and queue from provider.
func halFromProvider(provider gpucontext.DeviceProvider) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	var dev, q any
	if hp, ok := provider.(halProvider); ok {
		dev, q = hp.HalDevice(), hp.HalQueue()
	} else {
		dev, q = provider.Device(), provider.Queue()
	}
	device, ok := dev.(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("gpu: provider device is %T, not hal.Device: %w", dev, ErrNilHALDevice)
	}
	queue, ok := q.(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("gpu: provider queue is %T, not hal.Queue", q)
	}
	return device, queue, nil
}

// NewRendererWithHAL creates a Renderer on an existing HAL device and
// queue, drawing into targets of the given format. An undefined format
// selects BGRA8Unorm.
func NewRendererWithHAL(device hal.Device, queue hal.Queue, format gputypes.TextureFormat, opts ...Option) (*Renderer, error) {
	if device == nil {
		return nil, ErrNilHALDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		pipeline: gpuimpl.NewMeshPipeline(device, queue, gpuimpl.MeshPipelineConfig{
			Format:      format,
			SampleCount: o.sampleCount,
		}),
		gen:      rrect.NewGenerator(o.genOpts...),
		bounds:   o.bounds,
		z:        o.z,
		uniforms: gpuimpl.DefaultUniforms(),
	}, nil
}

// SetCornerRadius sets the corner radii in pixels, clockwise from the
// top-left corner. See SetCornerRadii.
func (r *Renderer) SetCornerRadius(topLeft, topRight, bottomRight, bottomLeft float64) error {
	return r.SetCornerRadii(rrect.CornerRadii{
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomRight: bottomRight,
		BottomLeft:  bottomLeft,
	})
}

// SetCornerRadii sets the corner radii in pixels. Once the surface size is
// known the mesh is regenerated immediately and invalid radii are
// reported; before that the radii are stored and applied by Resize. On
// error the previous radii and mesh are kept.
func (r *Renderer) SetCornerRadii(radii rrect.CornerRadii) error {
	if r.size.Empty() {
		r.radii = radii
		return nil
	}
	if err := r.regenerate(radii, r.size); err != nil {
		return err
	}
	r.radii = radii
	return nil
}

// Resize sets the pixel size of the surface and regenerates the mesh.
// Radii stored before the first Resize are validated here. On error the
// previous size and mesh are kept.
func (r *Renderer) Resize(width, height int) error {
	size := rrect.Size(width, height)
	if err := r.regenerate(r.radii, size); err != nil {
		return err
	}
	r.size = size
	return nil
}

func (r *Renderer) regenerate(radii rrect.CornerRadii, size rrect.PixelSize) error {
	if err := r.gen.GenerateInto(&r.mesh, radii, r.bounds, size, r.z); err != nil {
		return fmt.Errorf("gpu: regenerate mesh: %w", err)
	}
	r.generated = true
	r.dirty = true
	return nil
}

// SetTexture sets the texture view sampled by the mesh. The view is
// borrowed and must outlive its use by the Renderer.
func (r *Renderer) SetTexture(view hal.TextureView) {
	if view != r.view {
		r.view = view
		r.dirty = true
	}
}

// SetTransform sets the model-view-projection matrix applied to mesh
// positions. Default: identity.
func (r *Renderer) SetTransform(mvp Matrix) {
	r.uniforms.MVP = mvp
	r.dirty = true
}

// SetTextureTransform sets the matrix applied to texture coordinates, such
// as the transform reported with a video frame. Default: FlipVMatrix.
func (r *Renderer) SetTextureTransform(st Matrix) {
	r.uniforms.ST = st
	r.dirty = true
}

// Prepare uploads pending changes to the GPU. Call it once per frame
// before Draw, outside of the render pass.
func (r *Renderer) Prepare() error {
	if !r.dirty && r.res != nil {
		return nil
	}
	if !r.generated {
		return fmt.Errorf("gpu: surface size not set: %w", ErrNilMesh)
	}
	if r.view == nil {
		return ErrNoTexture
	}
	if r.res == nil {
		res, err := r.pipeline.BuildResources(&r.mesh, r.view, r.uniforms)
		if err != nil {
			return fmt.Errorf("gpu: build mesh resources: %w", err)
		}
		r.res = res
	} else if err := r.pipeline.UpdateResources(r.res, &r.mesh, r.view, r.uniforms); err != nil {
		r.res = nil
		return fmt.Errorf("gpu: update mesh resources: %w", err)
	}
	r.dirty = false
	return nil
}

// Draw records the mesh draw into rp.
func (r *Renderer) Draw(rp hal.RenderPassEncoder) error {
	if r.res == nil || r.dirty {
		return ErrNotPrepared
	}
	r.pipeline.RecordDraws(rp, r.res)
	return nil
}

// FrameTarget is the color attachment RenderFrame draws into.
type FrameTarget = gpuimpl.FrameTarget

// RenderFrame clears target and draws the prepared mesh in a render pass
// of its own, then submits it. It is the standalone counterpart of Draw for
// callers that do not own a render pass. The returned value is the queue
// submission index.
func (r *Renderer) RenderFrame(target FrameTarget) (uint64, error) {
	if r.res == nil || r.dirty {
		return 0, ErrNotPrepared
	}
	return r.pipeline.RenderFrame(target, r.res)
}

// Mesh returns the current mesh, or nil before the surface size is known.
// The mesh is owned by the Renderer and overwritten by the next
// regeneration.
func (r *Renderer) Mesh() *rrect.Mesh {
	if !r.generated {
		return nil
	}
	return &r.mesh
}

// CornerRadii returns the current corner radii.
func (r *Renderer) CornerRadii() rrect.CornerRadii {
	return r.radii
}

// Size returns the current surface size.
func (r *Renderer) Size() rrect.PixelSize {
	return r.size
}

// Destroy releases the GPU resources of the Renderer. The device, queue
// and texture view are borrowed and left alone.
func (r *Renderer) Destroy() {
	if r.res != nil {
		r.pipeline.DestroyResources(r.res)
		r.res = nil
	}
	r.pipeline.Destroy()
	r.dirty = true
}
