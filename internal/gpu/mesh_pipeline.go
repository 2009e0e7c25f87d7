//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rrect"
	"github.com/gogpu/wgpu/hal"
)

// Mesh pipeline errors.
var (
	// ErrNilMesh is returned when building resources without a mesh.
	ErrNilMesh = errors.New("gpu: mesh is nil or empty")

	// ErrNoTexture is returned when building resources without a texture view.
	ErrNoTexture = errors.New("gpu: no texture view")

	// ErrNotPrepared is returned when drawing before resources were built.
	ErrNotPrepared = errors.New("gpu: mesh resources not prepared")

	// ErrNilHALDevice is returned when a pipeline is created without a device.
	ErrNilHALDevice = errors.New("gpu: hal device is nil")
)

// MeshPipelineConfig configures the render target of a MeshPipeline.
type MeshPipelineConfig struct {
	// Format is the color target format.
	// Default: BGRA8Unorm
	Format gputypes.TextureFormat

	// SampleCount is the MSAA sample count of the render pass.
	// Default: 1
	SampleCount uint32
}

// MeshPipeline manages the GPU objects that draw a textured rrect.Mesh:
// shader, bind group layout, pipeline layout, sampler and render pipeline.
//
// The pipeline draws with face culling disabled. Corner fans of a mesh do
// not share a winding order, so any cull mode would drop part of the shape.
//
// Architecture:
//
//	MeshResources owns per-mesh buffers (vertex, index, uniform) and the bind group
//	MeshPipeline owns shader, layouts, pipeline, sampler
//	bind group = uniform + texture view + sampler
type MeshPipeline struct {
	device hal.Device
	queue  hal.Queue
	config MeshPipelineConfig

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipeline      hal.RenderPipeline
	sampler       hal.Sampler
}

// NewMeshPipeline creates a mesh pipeline for the given device and queue.
// GPU objects are created lazily by the first BuildResources call.
func NewMeshPipeline(device hal.Device, queue hal.Queue, config MeshPipelineConfig) *MeshPipeline {
	if config.Format == gputypes.TextureFormatUndefined {
		config.Format = gputypes.TextureFormatBGRA8Unorm
	}
	if config.SampleCount == 0 {
		config.SampleCount = 1
	}
	return &MeshPipeline{
		device: device,
		queue:  queue,
		config: config,
	}
}

// Config returns the pipeline configuration with defaults applied.
func (p *MeshPipeline) Config() MeshPipelineConfig {
	return p.config
}

// Destroy releases all GPU resources held by the pipeline. Safe to call
// multiple times or on a pipeline with no allocated resources.
func (p *MeshPipeline) Destroy() {
	p.destroyPipeline()
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
}

// ensurePipeline creates the GPU objects on first use.
func (p *MeshPipeline) ensurePipeline() error {
	if p.device == nil {
		return ErrNilHALDevice
	}
	if p.pipeline != nil {
		return nil
	}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return err
	}
	return nil
}

// createPipeline compiles the mesh shader and creates the render pipeline
// with premultiplied alpha blending.
func (p *MeshPipeline) createPipeline() error {
	spirvCode, err := CompileShader(roundedMeshShaderSource)
	if err != nil {
		return fmt.Errorf("rounded_mesh: %w", err)
	}

	shader, err := createShaderModule(p.device, "rounded_mesh_shader", spirvCode)
	if err != nil {
		return fmt.Errorf("create rounded_mesh shader module: %w", err)
	}
	p.shader = shader

	// Bind group layout:
	//   Binding 0: MeshUniforms (uniform buffer, vertex)
	//   Binding 1: texture (texture_2d, fragment)
	//   Binding 2: sampler (fragment)
	uniformLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "rounded_mesh_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create rounded_mesh uniform layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "rounded_mesh_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create rounded_mesh pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	// Clamp to edge: texture coordinates of the outermost vertices are
	// exactly 0 and 1.
	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "rounded_mesh_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("create rounded_mesh sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "rounded_mesh_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    rrect.VertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.config.Format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: p.config.SampleCount,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create rounded_mesh pipeline: %w", err)
	}
	p.pipeline = pipeline

	slogger().Debug("rounded mesh pipeline created",
		"format", p.config.Format,
		"samples", p.config.SampleCount)
	return nil
}

// RecordDraws records the mesh draw into an existing render pass. The
// render pass is owned by the caller. Nothing is recorded for nil or empty
// resources.
func (p *MeshPipeline) RecordDraws(rp hal.RenderPassEncoder, res *MeshResources) {
	if res == nil || res.indexCount == 0 || p.pipeline == nil {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, res.bindGroup, nil)
	rp.SetVertexBuffer(0, res.vertBuf, 0)
	rp.SetIndexBuffer(res.idxBuf, rrect.IndexFormat, 0)
	rp.DrawIndexed(res.indexCount, 1, 0, 0, 0)
}

// destroyPipeline releases all pipeline resources in reverse creation order.
func (p *MeshPipeline) destroyPipeline() {
	if p.device == nil {
		return
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.uniformLayout != nil {
		p.device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
