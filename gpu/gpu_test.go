//go:build !nogpu

package gpu

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/rrect"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
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
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func createTextureView(t *testing.T, device hal.Device) hal.TextureView {
	t.Helper()
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "frame",
		Size:          hal.Extent3D{Width: 8, Height: 8, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{Label: "frame_view"})
	if err != nil {
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	return view
}

// halDeviceProvider exposes noop HAL objects the way a gogpu app does.
type halDeviceProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (p *halDeviceProvider) Device() gpucontext.Device { return nil }
func (p *halDeviceProvider) Queue() gpucontext.Queue   { return nil }
func (p *halDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
func (p *halDeviceProvider) Adapter() gpucontext.Adapter { return nil }
func (p *halDeviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}
func (p *halDeviceProvider) HalDevice() any { return p.device }
func (p *halDeviceProvider) HalQueue() any  { return p.queue }

// plainDeviceProvider returns HAL objects from Device and Queue.
type plainDeviceProvider struct {
	device any
	queue  any
}

func (p *plainDeviceProvider) Device() gpucontext.Device { return p.device }
func (p *plainDeviceProvider) Queue() gpucontext.Queue   { return p.queue }
func (p *plainDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}
func (p *plainDeviceProvider) Adapter() gpucontext.Adapter { return nil }
func (p *plainDeviceProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Type: gpucontext.AdapterTypeUnknown}
}

// drawCounter counts indexed draws.
type drawCounter struct {
	hal.RenderPassEncoder
	draws   int
	indices uint32
}

func (d *drawCounter) SetPipeline(hal.RenderPipeline)                          {}
func (d *drawCounter) SetBindGroup(uint32, hal.BindGroup, []uint32)            {}
func (d *drawCounter) SetVertexBuffer(uint32, hal.Buffer, uint64)              {}
func (d *drawCounter) SetIndexBuffer(hal.Buffer, gputypes.IndexFormat, uint64) {}
func (d *drawCounter) DrawIndexed(n, _, _ uint32, _ int32, _ uint32) {
	d.draws++
	d.indices = n
}

func TestNewRenderer(t *testing.T) {
	device, queue := createNoopDevice(t)

	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  bool
	}{
		{"hal provider", &halDeviceProvider{device: device, queue: queue}, false},
		{"plain provider", &plainDeviceProvider{device: device, queue: queue}, false},
		{"opaque device", &plainDeviceProvider{device: "device", queue: queue}, true},
		{"missing queue", &plainDeviceProvider{device: device}, true},
		{"nil provider", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.provider)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewRenderer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if r != nil {
				r.Destroy()
			}
		})
	}

	if _, err := NewRendererWithHAL(nil, queue, gputypes.TextureFormatUndefined); !errors.Is(err, ErrNilHALDevice) {
		t.Errorf("NewRendererWithHAL(nil) error = %v, want ErrNilHALDevice", err)
	}
}

func TestRendererDefersRadiiUntilResize(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := NewRendererWithHAL(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewRendererWithHAL failed: %v", err)
	}
	defer r.Destroy()

	if err := r.SetCornerRadius(10, 10, 10, 10); err != nil {
		t.Fatalf("SetCornerRadius before Resize failed: %v", err)
	}
	if r.Mesh() != nil {
		t.Error("mesh generated before the surface size is known")
	}
	if err := r.Prepare(); !errors.Is(err, ErrNilMesh) {
		t.Errorf("Prepare() before Resize error = %v, want ErrNilMesh", err)
	}

	if err := r.Resize(200, 200); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	m := r.Mesh()
	if m == nil {
		t.Fatal("Mesh() = nil after Resize")
	}
	// Left-edge anchor of the top-left corner: 10px of 200 over an extent of 2.
	if v := m.Vertex(4); v.X != -1 || v.Y < 0.8999 || v.Y > 0.9001 {
		t.Errorf("left-edge top anchor = (%g, %g), want (-1, 0.9)", v.X, v.Y)
	}
}

func TestRendererRejectsInvalidUpdates(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := NewRendererWithHAL(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewRendererWithHAL failed: %v", err)
	}
	defer r.Destroy()

	if err := r.SetCornerRadii(rrect.UniformRadii(8)); err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(100, 50); err != nil {
		t.Fatal(err)
	}
	before := append([]float32(nil), r.Mesh().Vertices...)

	if err := r.SetCornerRadius(-1, 0, 0, 0); !errors.Is(err, rrect.ErrInvalidRadius) {
		t.Errorf("SetCornerRadius(-1) error = %v, want ErrInvalidRadius", err)
	}
	if err := r.Resize(0, 50); !errors.Is(err, rrect.ErrInvalidDimension) {
		t.Errorf("Resize(0, 50) error = %v, want ErrInvalidDimension", err)
	}
	if r.CornerRadii() != rrect.UniformRadii(8) || r.Size() != rrect.Size(100, 50) {
		t.Errorf("state changed by failed updates: radii %+v size %+v", r.CornerRadii(), r.Size())
	}
	for i, f := range r.Mesh().Vertices {
		if f != before[i] {
			t.Fatal("mesh changed by failed updates")
		}
	}
}

func TestRendererPrepareAndDraw(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := NewRenderer(&halDeviceProvider{device: device, queue: queue},
		WithGeneratorOptions(rrect.WithTrianglesPerCorner(4)),
		WithDepth(0.25))
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	defer r.Destroy()

	if err := r.SetCornerRadius(12, 0, 6, 30); err != nil {
		t.Fatal(err)
	}
	if err := r.Resize(320, 240); err != nil {
		t.Fatal(err)
	}

	rp := &drawCounter{}
	if err := r.Draw(rp); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("Draw() before Prepare error = %v, want ErrNotPrepared", err)
	}
	if err := r.Prepare(); !errors.Is(err, ErrNoTexture) {
		t.Errorf("Prepare() without texture error = %v, want ErrNoTexture", err)
	}

	r.SetTexture(createTextureView(t, device))
	if err := r.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if err := r.Draw(rp); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if rp.draws != 1 || rp.indices != 30+4*4*3 {
		t.Errorf("draws = %d indices = %d, want 1 and %d", rp.draws, rp.indices, 30+4*4*3)
	}
	if z := r.Mesh().Vertex(0).Z; z != 0.25 {
		t.Errorf("vertex z = %g, want 0.25", z)
	}

	// Pending changes must be prepared before the next draw.
	r.SetTextureTransform(IdentityMatrix())
	if err := r.Draw(rp); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("Draw() with pending changes error = %v, want ErrNotPrepared", err)
	}
	if err := r.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if err := r.Prepare(); err != nil {
		t.Fatalf("idempotent Prepare failed: %v", err)
	}
	if err := r.Draw(rp); err != nil || rp.draws != 2 {
		t.Errorf("second Draw: err = %v draws = %d", err, rp.draws)
	}
}

func TestRendererRenderFrame(t *testing.T) {
	device, queue := createNoopDevice(t)
	r, err := NewRendererWithHAL(device, queue, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewRendererWithHAL failed: %v", err)
	}
	defer r.Destroy()

	target := FrameTarget{View: createTextureView(t, device)}
	if _, err := r.RenderFrame(target); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("RenderFrame() before Prepare error = %v, want ErrNotPrepared", err)
	}

	if err := r.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	r.SetTexture(createTextureView(t, device))
	if err := r.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if _, err := r.RenderFrame(target); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if _, err := r.RenderFrame(FrameTarget{}); !errors.Is(err, ErrNoTarget) {
		t.Errorf("RenderFrame() without view error = %v, want ErrNoTarget", err)
	}
}

func TestRendererWithBounds(t *testing.T) {
	device, queue := createNoopDevice(t)
	b := rrect.Bounds{Left: -0.5, Right: 0.5, Top: 0.5, Bottom: -0.5}
	r, err := NewRendererWithHAL(device, queue, gputypes.TextureFormatUndefined, WithBounds(b), WithSampleCount(4))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	if err := r.Resize(100, 100); err != nil {
		t.Fatal(err)
	}
	got := r.Mesh().Bounds()
	if got != b {
		t.Errorf("mesh bounds = %+v, want %+v", got, b)
	}
}

func TestSetLoggerPropagates(t *testing.T) {
	orig := rrect.Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	device, queue := createNoopDevice(t)
	r, err := NewRendererWithHAL(device, queue, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()
	if err := r.Resize(64, 64); err != nil {
		t.Fatal(err)
	}
	r.SetTexture(createTextureView(t, device))
	if err := r.Prepare(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"mesh generated", "rounded mesh uploaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if rrect.Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) left rrect logging enabled")
	}
}
