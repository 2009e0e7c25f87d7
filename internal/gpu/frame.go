//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoTarget is returned by RenderFrame without a target view.
var ErrNoTarget = errors.New("gpu: no render target")

// FrameTarget is the color attachment a frame is rendered into.
type FrameTarget struct {
	// View is the attachment drawn to. With MSAA it is the multisampled
	// texture view.
	View hal.TextureView

	// ResolveTarget receives the resolved image when the pipeline uses
	// MSAA. Nil for single-sampled rendering.
	ResolveTarget hal.TextureView

	// Clear is the color the target is cleared to before drawing.
	Clear gputypes.Color
}

// RenderFrame encodes one render pass that clears the target and draws res,
// and submits it to the queue. It returns the submission index.
//
// The pass is the whole frame: the rounded corners show the clear color.
// Callers that composite the mesh into a larger pass use RecordDraws
// instead.
func (p *MeshPipeline) RenderFrame(target FrameTarget, res *MeshResources) (uint64, error) {
	if target.View == nil {
		return 0, ErrNoTarget
	}
	if res == nil || p.pipeline == nil {
		return 0, ErrNotPrepared
	}

	encoder, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "rrect_frame_encoder",
	})
	if err != nil {
		return 0, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rrect_frame"); err != nil {
		return 0, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "rrect_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:          target.View,
			ResolveTarget: target.ResolveTarget,
			LoadOp:        gputypes.LoadOpClear,
			StoreOp:       gputypes.StoreOpStore,
			ClearValue:    target.Clear,
		}},
	})
	p.RecordDraws(rp, res)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return 0, fmt.Errorf("end encoding: %w", err)
	}
	defer p.device.FreeCommandBuffer(cmdBuf)

	idx, err := p.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return 0, fmt.Errorf("submit: %w", err)
	}
	slogger().Debug("rrect frame submitted",
		"submission", idx,
		"indices", res.indexCount)
	return idx, nil
}
