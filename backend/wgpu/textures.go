//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// texture is a sampleable RGBA texture array.
type texture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	layers int
	// shared marks the backing texture of a live render target. The
	// target owns the storage; this entry owns only its sample view.
	shared bool
}

// renderTarget is a surface draws land in. Offscreen targets register
// a sampleable array view of their storage in the texture table; the
// main surface has no texture handle.
type renderTarget struct {
	tex        hal.Texture
	renderView hal.TextureView
	texture    ember.TextureID
	width      int
	height     int
	// usage tracks the texture's current layout for barriers.
	usage gputypes.TextureUsage
}

// createTextureArray creates a texture array and its sample view.
func (b *Backend) createTextureArray(label string, width, height, layers int) (*texture, error) {
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: uint32(layers),
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %s: %w", label, err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           label + "_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimension2DArray,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: uint32(layers),
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %s: %w", label, err)
	}
	return &texture{tex: tex, view: view, width: width, height: height, layers: layers}, nil
}

// createWhiteTexture creates the 1x1 white page bound for untextured
// batches.
func (b *Backend) createWhiteTexture() (*texture, error) {
	t, err := b.createTextureArray("batch_white", 1, 1, 1)
	if err != nil {
		return nil, err
	}
	b.writeTextureLayer(t, 0, 0, 0, 1, 1, []byte{255, 255, 255, 255})
	return t, nil
}

// writeTextureLayer uploads tightly packed RGBA pixels into a region
// of one array layer.
func (b *Backend) writeTextureLayer(t *texture, layer, x, y, width, height int, pixels []byte) {
	b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y), Z: uint32(layer)},
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(width) * 4,
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
}

// CreateTexture allocates a texture array.
func (b *Backend) CreateTexture(width, height, layers int) (ember.TextureID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 || layers <= 0 {
		return 0, fmt.Errorf("wgpu: invalid texture size %dx%dx%d", width, height, layers)
	}
	b.nextHandle++
	id := ember.TextureID(b.nextHandle)
	t, err := b.createTextureArray(fmt.Sprintf("texture_%d", id), width, height, layers)
	if err != nil {
		return 0, err
	}
	b.textures[id] = t
	return id, nil
}

// UploadTexture writes pixels into a region of one texture layer.
func (b *Backend) UploadTexture(id ember.TextureID, layer, x, y, width, height int, pixels []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("wgpu: upload to texture %d: %w", id, backend.ErrUnknownTexture)
	}
	if layer < 0 || layer >= t.layers {
		return fmt.Errorf("wgpu: upload to texture %d layer %d of %d: %w",
			id, layer, t.layers, backend.ErrUnknownTexture)
	}
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("wgpu: upload region %d,%d %dx%d outside texture %dx%d",
			x, y, width, height, t.width, t.height)
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("wgpu: upload of %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}
	b.writeTextureLayer(t, layer, x, y, width, height, pixels[:width*height*4])
	return nil
}

// DestroyTexture releases a texture. Unknown handles are ignored.
func (b *Backend) DestroyTexture(id ember.TextureID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.textures[id]; ok {
		b.destroyTextureResources(t)
		delete(b.textures, id)
	}
}

// destroyTextureResources releases a texture's view, and its storage
// unless a render target owns it.
func (b *Backend) destroyTextureResources(t *texture) {
	if t.view != nil {
		b.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil && !t.shared {
		b.device.DestroyTexture(t.tex)
	}
	t.tex = nil
}

// CreateTarget allocates an offscreen render target whose storage can
// be sampled like any other texture once rendered to.
func (b *Backend) CreateTarget(width, height int) (ember.TargetID, ember.TextureID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return 0, 0, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}
	b.nextHandle++
	targetID := ember.TargetID(b.nextHandle)
	b.nextHandle++
	textureID := ember.TextureID(b.nextHandle)

	label := fmt.Sprintf("target_%d", targetID)
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: label,
		Size: hal.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("wgpu: create target %s: %w", label, err)
	}
	renderView, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_render_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return 0, 0, fmt.Errorf("wgpu: create target render view: %w", err)
	}
	sampleView, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           label + "_sample_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimension2DArray,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		b.device.DestroyTextureView(renderView)
		b.device.DestroyTexture(tex)
		return 0, 0, fmt.Errorf("wgpu: create target sample view: %w", err)
	}

	b.textures[textureID] = &texture{
		tex: tex, view: sampleView,
		width: width, height: height, layers: 1,
		shared: true,
	}
	b.targets[targetID] = &renderTarget{
		tex: tex, renderView: renderView, texture: textureID,
		width: width, height: height,
		usage: gputypes.TextureUsageRenderAttachment,
	}
	return targetID, textureID, nil
}

// DestroyTarget releases a render target and its backing texture.
// Unknown handles are ignored.
func (b *Backend) DestroyTarget(id ember.TargetID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.targets == nil {
		return
	}
	rt, ok := b.targets[id]
	if !ok {
		return
	}
	if t, live := b.textures[rt.texture]; live {
		b.destroyTextureResources(t)
		delete(b.textures, rt.texture)
	}
	b.destroyTargetResources(rt)
	delete(b.targets, id)
}

// destroyTargetResources releases a target's render view and storage.
func (b *Backend) destroyTargetResources(rt *renderTarget) {
	if rt.renderView != nil {
		b.device.DestroyTextureView(rt.renderView)
		rt.renderView = nil
	}
	if rt.tex != nil {
		b.device.DestroyTexture(rt.tex)
		rt.tex = nil
	}
}

// PushTarget redirects subsequent Submit calls into the given target.
func (b *Backend) PushTarget(id ember.TargetID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	rt, ok := b.targets[id]
	if !ok {
		return fmt.Errorf("wgpu: push target %d: %w", id, backend.ErrUnknownTarget)
	}
	b.stack = append(b.stack, rt)
	return nil
}

// PopTarget restores the previously active target.
func (b *Backend) PopTarget() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if len(b.stack) == 0 {
		return backend.ErrNoTarget
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// ensureSurface sizes the main surface to the frame, recreating it
// when the frame size changes.
func (b *Backend) ensureSurface(width, height int) (*renderTarget, error) {
	w, h := max(width, 1), max(height, 1)
	if b.surface != nil && b.surface.width == w && b.surface.height == h {
		return b.surface, nil
	}
	if b.surface != nil {
		b.destroyTargetResources(b.surface)
		b.surface = nil
	}
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label: "batch_surface",
		Size: hal.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create surface: %w", err)
	}
	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "batch_surface_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create surface view: %w", err)
	}
	b.surface = &renderTarget{
		tex: tex, renderView: view,
		width: w, height: h,
		usage: gputypes.TextureUsageRenderAttachment,
	}
	return b.surface, nil
}
