//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rrect"
	"github.com/gogpu/wgpu/hal"
)

// MeshResources holds the GPU buffers and bind group of one uploaded mesh.
//
// Every mesh built with the same triangles-per-corner setting has the same
// buffer sizes, so a rebuilt mesh is written into the existing buffers and
// only the bind group follows texture view changes.
type MeshResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	vertSize   uint64
	idxSize    uint64
	view       hal.TextureView
	indexCount uint32
}

// IndexCount returns the number of indices drawn by RecordDraws.
func (r *MeshResources) IndexCount() uint32 {
	if r == nil {
		return 0
	}
	return r.indexCount
}

// BuildResources uploads mesh, binds view and writes uniforms, returning
// resources ready for RecordDraws.
func (p *MeshPipeline) BuildResources(mesh *rrect.Mesh, view hal.TextureView, u Uniforms) (*MeshResources, error) {
	res := &MeshResources{}
	if err := p.UpdateResources(res, mesh, view, u); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateResources refreshes res with a new mesh, texture view and
// uniforms, reusing its buffers when the sizes match. On error res is
// released and must be rebuilt.
func (p *MeshPipeline) UpdateResources(res *MeshResources, mesh *rrect.Mesh, view hal.TextureView, u Uniforms) error {
	if mesh == nil || mesh.IndexCount() == 0 {
		return ErrNilMesh
	}
	if view == nil {
		return ErrNoTexture
	}
	if err := p.ensurePipeline(); err != nil {
		return err
	}

	err := p.updateResources(res, mesh, view, u)
	if err != nil {
		p.DestroyResources(res)
	}
	return err
}

func (p *MeshPipeline) updateResources(res *MeshResources, mesh *rrect.Mesh, view hal.TextureView, u Uniforms) error {
	vertexData := mesh.VertexBytes()
	indexData := mesh.IndexBytes()

	var err error
	res.vertBuf, res.vertSize, err = p.writeBuffer(res.vertBuf, res.vertSize, "rounded_mesh_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}
	res.idxBuf, res.idxSize, err = p.writeBuffer(res.idxBuf, res.idxSize, "rounded_mesh_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("index buffer: %w", err)
	}

	uniformBuf := res.uniformBuf
	res.uniformBuf, _, err = p.writeBuffer(res.uniformBuf, meshUniformSize, "rounded_mesh_uniform", u.bytes(),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return fmt.Errorf("uniform buffer: %w", err)
	}

	if res.bindGroup == nil || res.view != view || res.uniformBuf != uniformBuf {
		if res.bindGroup != nil {
			p.device.DestroyBindGroup(res.bindGroup)
			res.bindGroup = nil
		}
		bindGroup, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "rounded_mesh_bind",
			Layout: p.uniformLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{
					Buffer: res.uniformBuf.NativeHandle(), Offset: 0, Size: meshUniformSize,
				}},
				{Binding: 1, Resource: gputypes.TextureViewBinding{
					TextureView: view.NativeHandle(),
				}},
				{Binding: 2, Resource: gputypes.SamplerBinding{
					Sampler: p.sampler.NativeHandle(),
				}},
			},
		})
		if err != nil {
			return fmt.Errorf("create rounded_mesh bind group: %w", err)
		}
		res.bindGroup = bindGroup
		res.view = view
	}

	res.indexCount = uint32(mesh.IndexCount()) //nolint:gosec // bounded by the uint16 index range

	slogger().Debug("rounded mesh uploaded",
		"vertexBytes", len(vertexData),
		"indexBytes", len(indexData),
		"indices", res.indexCount)
	return nil
}

// writeBuffer writes data into buf when it has exactly the data size,
// otherwise replaces it with a new buffer. It returns the buffer holding
// data and its size.
func (p *MeshPipeline) writeBuffer(buf hal.Buffer, size uint64, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	n := uint64(len(data))
	if buf != nil && size != n {
		p.device.DestroyBuffer(buf)
		buf = nil
	}
	if buf == nil {
		var err error
		buf, err = p.device.CreateBuffer(&hal.BufferDescriptor{
			Label: label,
			Size:  n,
			Usage: usage,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("create %s: %w", label, err)
		}
	}
	if err := p.queue.WriteBuffer(buf, 0, data); err != nil {
		p.device.DestroyBuffer(buf)
		return nil, 0, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, n, nil
}

// DestroyResources releases the GPU objects held by res. The texture view
// is borrowed and left alone. Safe to call on nil or released resources.
func (p *MeshPipeline) DestroyResources(res *MeshResources) {
	if res == nil || p.device == nil {
		return
	}
	if res.bindGroup != nil {
		p.device.DestroyBindGroup(res.bindGroup)
	}
	for _, b := range [...]hal.Buffer{res.uniformBuf, res.idxBuf, res.vertBuf} {
		if b != nil {
			p.device.DestroyBuffer(b)
		}
	}
	*res = MeshResources{}
}
