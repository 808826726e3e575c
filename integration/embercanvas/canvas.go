// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package embercanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend/headless"
	"github.com/gogpu/ember/draw"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("embercanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("embercanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("embercanvas: nil DeviceProvider")
)

// textureDestroyer matches the Destroy method of device textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas composes ember frames on the CPU and mirrors the result into
// a GPU texture for drawing inside a gogpu window.
//
// Canvas is NOT safe for concurrent use. Create one Canvas per
// goroutine, or use external synchronization.
type Canvas struct {
	engine   *ember.Engine
	ctx      *draw.Context
	compose  *headless.Backend
	provider gpucontext.DeviceProvider

	texture     any  // Lazy-created device texture
	oldTexture  any  // Previous texture awaiting deferred destruction
	dirty       bool // Needs GPU upload
	sizeChanged bool // Resize pending, texture must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a Canvas for integrated mode.
// The provider should come from gogpu.App.GPUContextProvider().
//
// The Canvas starts transparent. Use Context() to register textures,
// materials and fonts, and Draw to compose frames.
//
// Returns an error if dimensions are invalid or the provider is nil.
func New(provider gpucontext.DeviceProvider, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	compose := headless.New()
	if err := compose.Init(); err != nil {
		return nil, fmt.Errorf("embercanvas: compose backend init: %w", err)
	}
	engine := ember.NewEngine()

	return &Canvas{
		engine:   engine,
		ctx:      draw.NewContext(engine, compose),
		compose:  compose,
		provider: provider,
		width:    width,
		height:   height,
		dirty:    true, // first Flush creates the texture
	}, nil
}

// MustNew is like New but panics on error.
// Use only when errors are programming mistakes (e.g., hardcoded dimensions).
func MustNew(provider gpucontext.DeviceProvider, width, height int) *Canvas {
	c, err := New(provider, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Context returns the drawing context. Use it to register textures,
// materials and fonts; frame orchestration belongs to Draw.
//
// Returns nil if the canvas is closed.
func (c *Canvas) Context() *draw.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Size returns width and height as a convenience.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// MarkDirty flags the canvas for GPU upload on next Flush().
// Draw and Clear set it automatically.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// IsDirty returns true if the canvas has pending changes
// that need to be uploaded to the GPU.
func (c *Canvas) IsDirty() bool {
	return c.dirty
}

// Draw composes one frame of drawables onto the canvas. The frame
// paints over the existing content; use Clear to start from a solid
// color. When fn returns an error the recording is discarded and the
// canvas keeps its previous content.
func (c *Canvas) Draw(fn func(*draw.Context) error) error {
	return c.frame(nil, fn)
}

// Clear wipes the canvas to the given color.
func (c *Canvas) Clear(color [4]float32) error {
	return c.frame(&color, func(*draw.Context) error { return nil })
}

func (c *Canvas) frame(clear *[4]float32, fn func(*draw.Context) error) error {
	if c.closed {
		return ErrCanvasClosed
	}
	view := ember.ScreenView(float32(c.width), float32(c.height))
	c.ctx.BeginFrame(view, c.width, c.height, clear)
	if err := fn(c.ctx); err != nil {
		c.ctx.AbandonFrame()
		return err
	}
	if err := c.ctx.EndFrame(); err != nil {
		return err
	}
	c.dirty = true
	return nil
}

// Resize changes canvas dimensions. The canvas content is cleared and
// the GPU texture is recreated on the next Flush.
//
// Returns an error if dimensions are invalid or the canvas is closed.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	// No-op if dimensions haven't changed
	if c.width == width && c.height == height {
		return nil
	}

	c.width = width
	c.height = height
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Flush snapshots the composed pixels for GPU upload if dirty.
// Returns the texture for manual drawing if needed.
//
// The texture is created lazily on first Flush().
// Subsequent calls only upload data if the dirty flag is set.
//
// Returns an error if the texture update fails or the canvas is closed.
func (c *Canvas) Flush() (any, error) {
	if c.closed {
		return nil, ErrCanvasClosed
	}

	// If size changed, defer old texture destruction until after the new
	// texture upload has made the GPU idle. The old texture may still be
	// referenced by in-flight command buffers; destroying it now would
	// free descriptor heap entries the GPU is reading. RenderToEx
	// destroys it after NewTextureFromRGBA's internal wait.
	if c.sizeChanged {
		if c.texture != nil {
			// Destroy any previously deferred texture first
			if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
				destroyer.Destroy()
			}
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	// Skip if not dirty
	if !c.dirty && c.texture != nil {
		return c.texture, nil
	}

	data := c.surfaceRGBA()

	// Create texture if needed (lazy initialization)
	if c.texture == nil {
		c.texture = &pendingTexture{width: c.width, height: c.height, data: data}
		c.dirty = false
		return c.texture, nil
	}

	// Update existing texture
	if updater, ok := c.texture.(interface{ UpdateData(data []byte) error }); ok {
		if err := updater.UpdateData(data); err != nil {
			return nil, fmt.Errorf("embercanvas: texture update failed: %w", err)
		}
	}

	c.dirty = false
	return c.texture, nil
}

// surfaceRGBA returns the composed pixels as tightly packed RGBA. A
// canvas that was never drawn to, or whose surface predates a resize,
// reads as transparent.
func (c *Canvas) surfaceRGBA() []byte {
	surface := c.compose.Surface()
	if surface == nil || surface.Width() != c.width || surface.Height() != c.height {
		return make([]byte, c.width*c.height*4)
	}
	return surface.Data()
}

// Texture returns the current GPU texture without flushing.
// Returns nil if the texture hasn't been created yet.
//
// Use Flush() to ensure the texture exists and is up-to-date.
func (c *Canvas) Texture() any {
	return c.texture
}

// Provider returns the DeviceProvider associated with this canvas.
// Returns nil if the canvas is closed.
func (c *Canvas) Provider() gpucontext.DeviceProvider {
	if c.closed {
		return nil
	}
	return c.provider
}

// Close releases all resources associated with the Canvas.
// After Close, the Canvas should not be used.
// Close is idempotent, multiple calls are safe.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	// Destroy textures (current and any deferred old texture)
	if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	c.oldTexture = nil
	if destroyer, ok := c.texture.(textureDestroyer); ok {
		destroyer.Destroy()
	}
	c.texture = nil

	c.compose.Close()
	c.ctx = nil
	c.engine = nil
	c.provider = nil
	return nil
}

// pendingTexture is a placeholder for texture creation. It holds the
// pixels needed to create a real texture once a renderer is available,
// which happens during RenderTo.
type pendingTexture struct {
	width  int
	height int
	data   []byte
}
