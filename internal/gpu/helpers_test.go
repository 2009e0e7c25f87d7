//go:build !nogpu

package gpu

import (
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// createTextureView creates a small sampled texture view on device.
func createTextureView(t *testing.T, device hal.Device) hal.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "test_texture",
		Size:          hal.Extent3D{Width: 4, Height: 4, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "test_texture_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	t.Cleanup(func() {
		device.DestroyTextureView(view)
		device.DestroyTexture(tex)
	})
	return view
}

// readBuffer returns the contents of a noop buffer.
func readBuffer(t *testing.T, device hal.Device, buf hal.Buffer, size uint64) []byte {
	t.Helper()
	m, err := device.MapBuffer(buf, 0, size)
	if err != nil {
		t.Fatalf("MapBuffer failed: %v", err)
	}
	defer func() { _ = device.UnmapBuffer(buf) }()
	return append([]byte(nil), unsafe.Slice((*byte)(m.Ptr), size)...)
}

// pipelineCapture wraps a device and records render pipeline descriptors.
type pipelineCapture struct {
	hal.Device
	pipelines []hal.RenderPipelineDescriptor
}

func (d *pipelineCapture) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	d.pipelines = append(d.pipelines, *desc)
	return d.Device.CreateRenderPipeline(desc)
}

// recordingPass is a render pass encoder that records draw state.
type recordingPass struct {
	hal.RenderPassEncoder

	calls       []string
	pipeline    hal.RenderPipeline
	bindGroup   hal.BindGroup
	vertexBuf   hal.Buffer
	indexBuf    hal.Buffer
	indexFormat gputypes.IndexFormat
	indexCount  uint32
	instances   uint32
}

func (r *recordingPass) SetPipeline(p hal.RenderPipeline) {
	r.calls = append(r.calls, "SetPipeline")
	r.pipeline = p
}

func (r *recordingPass) SetBindGroup(_ uint32, g hal.BindGroup, _ []uint32) {
	r.calls = append(r.calls, "SetBindGroup")
	r.bindGroup = g
}

func (r *recordingPass) SetVertexBuffer(_ uint32, b hal.Buffer, _ uint64) {
	r.calls = append(r.calls, "SetVertexBuffer")
	r.vertexBuf = b
}

func (r *recordingPass) SetIndexBuffer(b hal.Buffer, f gputypes.IndexFormat, _ uint64) {
	r.calls = append(r.calls, "SetIndexBuffer")
	r.indexBuf = b
	r.indexFormat = f
}

func (r *recordingPass) DrawIndexed(indexCount, instanceCount, _ uint32, _ int32, _ uint32) {
	r.calls = append(r.calls, "DrawIndexed")
	r.indexCount = indexCount
	r.instances = instanceCount
}
