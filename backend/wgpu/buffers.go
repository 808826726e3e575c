//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// createAndUploadBuffer creates a buffer and writes data into it.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// bindKey identifies one bind group within a frame: the projection
// space and the bound texture.
type bindKey struct {
	space   ember.Space
	texture ember.TextureID
}

// frameResources holds the per-frame GPU resources for one Submit:
// the vertex and index upload, one uniform buffer per projection, and
// one bind group per distinct (space, texture) pair in the stream.
type frameResources struct {
	vertBuf    hal.Buffer
	idxBuf     hal.Buffer
	worldBuf   hal.Buffer
	screenBuf  hal.Buffer
	bindGroups map[bindKey]hal.BindGroup
}

// destroy releases everything in reverse creation order. Safe to call
// on partially built resources.
func (r *frameResources) destroy(device hal.Device) {
	for key, bg := range r.bindGroups {
		if bg != nil {
			device.DestroyBindGroup(bg)
		}
		delete(r.bindGroups, key)
	}
	if r.screenBuf != nil {
		device.DestroyBuffer(r.screenBuf)
		r.screenBuf = nil
	}
	if r.worldBuf != nil {
		device.DestroyBuffer(r.worldBuf)
		r.worldBuf = nil
	}
	if r.idxBuf != nil {
		device.DestroyBuffer(r.idxBuf)
		r.idxBuf = nil
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
}

// buildFrameResources uploads the frame's geometry and views and
// creates the bind groups its stream needs. States naming an unknown
// texture fail here, before anything is encoded.
func (b *Backend) buildFrameResources(frame *backend.Frame) (*frameResources, error) {
	res := &frameResources{bindGroups: make(map[bindKey]hal.BindGroup)}

	vertBuf, err := b.createAndUploadBuffer("batch_verts",
		buildVertexData(frame.Buffers.Vertices),
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	res.vertBuf = vertBuf

	idxBuf, err := b.createAndUploadBuffer("batch_indices",
		buildIndexData(frame.Buffers.Triangles),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(b.device)
		return nil, err
	}
	res.idxBuf = idxBuf

	worldBuf, err := b.createAndUploadBuffer("batch_world_uniform",
		makeViewUniform(frame.View.World),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(b.device)
		return nil, err
	}
	res.worldBuf = worldBuf

	screenBuf, err := b.createAndUploadBuffer("batch_screen_uniform",
		makeViewUniform(frame.View.Screen),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(b.device)
		return nil, err
	}
	res.screenBuf = screenBuf

	for _, cmd := range frame.Stream.Commands() {
		bind, ok := cmd.(ember.BindStateCommand)
		if !ok {
			continue
		}
		key := bindKey{space: bind.State.Space, texture: bind.State.Texture}
		if _, exists := res.bindGroups[key]; exists {
			continue
		}
		bg, err := b.createBindGroup(res, key)
		if err != nil {
			res.destroy(b.device)
			return nil, err
		}
		res.bindGroups[key] = bg
	}

	return res, nil
}

// createBindGroup builds the bind group for one (space, texture) pair.
// The zero texture binds the white fallback page.
func (b *Backend) createBindGroup(res *frameResources, key bindKey) (hal.BindGroup, error) {
	uniformBuf := res.worldBuf
	if key.space == ember.SpaceScreen {
		uniformBuf = res.screenBuf
	}

	tex := b.white
	if !key.texture.IsZero() {
		t, ok := b.textures[key.texture]
		if !ok {
			return nil, fmt.Errorf("wgpu: bind texture %d: %w", key.texture, backend.ErrUnknownTexture)
		}
		tex = t
	}

	bg, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "batch_bind",
		Layout: b.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: viewUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: tex.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: b.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create bind group: %w", err)
	}
	return bg, nil
}
