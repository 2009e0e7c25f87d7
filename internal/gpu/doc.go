//go:build !nogpu

// Package gpu draws textured rrect meshes with a wgpu HAL device.
//
// This is an internal package used by the public gpu package. It receives
// an already opened hal.Device and hal.Queue and never creates devices or
// surfaces itself.
//
// # Architecture Overview
//
//	rrect.Mesh -> MeshResources (vertex, index, uniform buffers + bind group)
//	           -> MeshPipeline.RecordDraws (caller-owned render pass)
//	           or MeshPipeline.RenderFrame (own pass, clear + draw + submit)
//
// Key components:
//
//   - MeshPipeline: shader module, bind group layout, sampler and render
//     pipeline, created lazily on the first BuildResources call
//   - MeshResources: per-mesh GPU buffers, rewritten in place when the size
//     of the mesh does not change
//   - Uniforms: the model-view-projection and texture transform matrices
//
// # Shader
//
// shaders/rounded_mesh.wgsl is compiled from WGSL to SPIR-V with
// gogpu/naga at pipeline creation. The vertex stage reads the interleaved
// position and texture coordinate attributes described by
// rrect.VertexLayout; the fragment stage samples the bound texture.
//
// # Build Tags
//
// The package is excluded with the nogpu build tag.
package gpu
