//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyAlignment is the row pitch alignment required for texture to
// buffer copies.
const copyAlignment = 256

// Submit executes one compiled frame against the active target.
func (b *Backend) Submit(frame *backend.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if frame == nil || frame.Stream == nil {
		return nil
	}

	target, err := b.activeTarget(frame.Width, frame.Height)
	if err != nil {
		return err
	}

	draws := frame.Stream.DrawCalls()
	if draws == 0 && frame.Clear == nil {
		b.stats = Stats{}
		return nil
	}

	var res *frameResources
	if draws > 0 {
		res, err = b.buildFrameResources(frame)
		if err != nil {
			return err
		}
		defer res.destroy(b.device)
	}
	return b.encodeFrame(frame, target, res)
}

// activeTarget resolves the destination for this frame. Draws land in
// the top of the target stack, or in the main surface sized to the
// frame when the stack is empty.
func (b *Backend) activeTarget(width, height int) (*renderTarget, error) {
	if n := len(b.stack); n > 0 {
		return b.stack[n-1], nil
	}
	return b.ensureSurface(width, height)
}

// encodeFrame records one render pass for the frame and blocks until
// the GPU has executed it.
func (b *Backend) encodeFrame(frame *backend.Frame, target *renderTarget, res *frameResources) error {
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "batch_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("batch_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	if res != nil {
		b.transitionSampledTargets(encoder, res, target)
	}

	// Offscreen targets come back from being sampled; move the
	// storage into attachment layout before the pass.
	if target.usage != gputypes.TextureUsageRenderAttachment {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: target.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: target.usage,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
		target.usage = gputypes.TextureUsageRenderAttachment
	}

	attachment := hal.RenderPassColorAttachment{
		View:    target.renderView,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if frame.Clear != nil {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = gputypes.Color{
			R: float64(frame.Clear[0]),
			G: float64(frame.Clear[1]),
			B: float64(frame.Clear[2]),
			A: float64(frame.Clear[3]),
		}
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "batch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})

	stats := Stats{}
	if res != nil {
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.SetIndexBuffer(res.idxBuf, gputypes.IndexFormatUint32, 0)

		boundPipeline := -1
		var boundBind bindKey
		haveBind := false
		skipDraws := false
		for _, cmd := range frame.Stream.Commands() {
			switch c := cmd.(type) {
			case ember.BindStateCommand:
				stats.StatesBound++

				pi := int(c.State.Blend)
				if pi >= blendModeCount {
					pi = 0
				}
				if pi != boundPipeline {
					rp.SetPipeline(b.pipelines[pi])
					boundPipeline = pi
				}

				key := bindKey{space: c.State.Space, texture: c.State.Texture}
				if !haveBind || key != boundBind {
					rp.SetBindGroup(0, res.bindGroups[key], nil)
					boundBind = key
					haveBind = true
				}

				x, y, w, h, draw := scissorRect(c.State.Clip, target.width, target.height)
				skipDraws = !draw
				if draw {
					rp.SetScissorRect(x, y, w, h)
				}

			case ember.DrawRangeCommand:
				stats.DrawCalls++
				stats.Indices += int(c.IndexCount)
				if skipDraws {
					continue
				}
				rp.DrawIndexed(c.IndexCount, 1, c.FirstIndex, 0, 0)
			}
		}
	}
	rp.End()

	// Offscreen storage goes back to being sampleable once the pass
	// is done.
	if !target.texture.IsZero() {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: target.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageTextureBinding,
			},
		}})
		target.usage = gputypes.TextureUsageTextureBinding
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if err := b.submitAndWait(cmdBuf); err != nil {
		return err
	}

	b.stats = stats
	ember.Logger().Debug("wgpu: frame submitted",
		"draws", stats.DrawCalls,
		"states", stats.StatesBound,
		"indices", stats.Indices)
	return nil
}

// transitionSampledTargets moves offscreen storage the frame samples
// into texture binding layout. A target that was never rendered still
// sits in attachment layout. The active target is left alone.
func (b *Backend) transitionSampledTargets(encoder hal.CommandEncoder, res *frameResources, active *renderTarget) {
	for key := range res.bindGroups {
		if key.texture.IsZero() {
			continue
		}
		for _, rt := range b.targets {
			if rt == active || rt.texture != key.texture {
				continue
			}
			if rt.usage != gputypes.TextureUsageTextureBinding {
				encoder.TransitionTextures([]hal.TextureBarrier{{
					Texture: rt.tex,
					Usage: hal.TextureUsageTransition{
						OldUsage: rt.usage,
						NewUsage: gputypes.TextureUsageTextureBinding,
					},
				}})
				rt.usage = gputypes.TextureUsageTextureBinding
			}
		}
	}
}

// submitAndWait submits one command buffer and blocks until the GPU
// signals its fence.
func (b *Backend) submitAndWait(cmdBuf hal.CommandBuffer) error {
	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := b.device.Wait(fence, 1, b.config.WaitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for frame: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: wait for frame: timed out after %v", b.config.WaitTimeout)
	}
	return nil
}

// ReadSurface copies the main surface back to the CPU as tightly
// packed RGBA pixels. It returns an error before the first Submit.
func (b *Backend) ReadSurface() (width, height int, pixels []byte, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return 0, 0, nil, backend.ErrNotInitialized
	}
	if b.surface == nil {
		return 0, 0, nil, fmt.Errorf("wgpu: read surface: no frame submitted")
	}
	surface := b.surface

	bytesPerRow := uint32(surface.width) * 4
	alignedRow := (bytesPerRow + copyAlignment - 1) &^ (copyAlignment - 1)
	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "surface_staging",
		Size:  uint64(alignedRow) * uint64(surface.height),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, 0, nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "surface_read_encoder",
	})
	if err != nil {
		return 0, 0, nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("surface_read"); err != nil {
		return 0, 0, nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: surface.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(surface.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  alignedRow,
			RowsPerImage: uint32(surface.height),
		},
		TextureBase: hal.ImageCopyTexture{
			Texture:  surface.tex,
			MipLevel: 0,
		},
		Size: hal.Extent3D{
			Width:              uint32(surface.width),
			Height:             uint32(surface.height),
			DepthOrArrayLayers: 1,
		},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: surface.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return 0, 0, nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	if err := b.submitAndWait(cmdBuf); err != nil {
		return 0, 0, nil, err
	}

	padded := make([]byte, uint64(alignedRow)*uint64(surface.height))
	if err := b.queue.ReadBuffer(staging, 0, padded); err != nil {
		return 0, 0, nil, fmt.Errorf("wgpu: read staging buffer: %w", err)
	}

	pixels = make([]byte, surface.width*surface.height*4)
	for row := 0; row < surface.height; row++ {
		src := padded[uint64(row)*uint64(alignedRow):]
		copy(pixels[row*surface.width*4:(row+1)*surface.width*4], src[:bytesPerRow])
	}
	return surface.width, surface.height, pixels, nil
}
