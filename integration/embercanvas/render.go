// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package embercanvas

import (
	"errors"
	"fmt"
)

// Rendering errors.
var (
	// ErrInvalidDrawContext is returned when the draw context has no
	// DrawTexture method.
	ErrInvalidDrawContext = errors.New("embercanvas: dc must have DrawTexture(texture any, x, y float32) error")

	// ErrInvalidRenderer is returned when the draw context's renderer
	// cannot create textures.
	ErrInvalidRenderer = errors.New("embercanvas: renderer must have NewTextureFromRGBA(width, height int, data []byte) (any, error)")
)

// textureDrawer matches the frame side of a gogpu draw context.
type textureDrawer interface {
	DrawTexture(texture any, x, y float32) error
}

// rendererSource exposes the renderer behind a draw context.
type rendererSource interface {
	Renderer() any
}

// textureCreator creates device textures from tightly packed RGBA.
type textureCreator interface {
	NewTextureFromRGBA(width, height int, data []byte) (any, error)
}

// RenderOptions controls how the canvas is rendered to the target.
type RenderOptions struct {
	// X, Y is the position to draw the texture (default: 0, 0)
	X, Y float32

	// ScaleX, ScaleY are the scale factors (default: 1, 1)
	// Values < 1 shrink, values > 1 enlarge
	ScaleX float32
	ScaleY float32

	// Alpha is the opacity from 0 (transparent) to 1 (opaque) (default: 1)
	Alpha float32

	// FlipY flips the texture vertically (default: false)
	// Useful when coordinate systems differ between canvas and GPU
	FlipY bool
}

// DefaultRenderOptions returns options with sensible defaults.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		X:      0,
		Y:      0,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
		FlipY:  false,
	}
}

// RenderTo draws the canvas content into a gogpu draw context.
// This is the primary integration method.
//
// The canvas content is flushed to the GPU and drawn at position (0, 0).
//
// Example:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc)
//	})
//
// Returns an error if:
//   - The canvas is closed
//   - dc has no DrawTexture method
//   - Texture creation or drawing fails
func (c *Canvas) RenderTo(dc any) error {
	return c.RenderToEx(dc, DefaultRenderOptions())
}

// RenderToEx draws the canvas with additional options.
// Use this when you need positioning, scaling, or transparency control.
//
// Example:
//
//	opts := embercanvas.RenderOptions{
//	    X: 100, Y: 50,
//	    ScaleX: 0.5, ScaleY: 0.5,
//	    Alpha: 0.8,
//	}
//	canvas.RenderToEx(dc, opts)
func (c *Canvas) RenderToEx(dc any, opts RenderOptions) error {
	if c.closed {
		return ErrCanvasClosed
	}

	drawer, ok := dc.(textureDrawer)
	if !ok {
		return ErrInvalidDrawContext
	}

	// Flush to ensure the snapshot is up-to-date
	tex, err := c.Flush()
	if err != nil {
		return err
	}

	// If the texture is pending (placeholder), create the real device
	// texture now that a renderer is reachable.
	if pending, isPending := tex.(*pendingTexture); isPending {
		source, ok := dc.(rendererSource)
		if !ok {
			return ErrInvalidRenderer
		}
		rend := source.Renderer()
		if rend == nil {
			return ErrInvalidRenderer
		}
		creator, ok := rend.(textureCreator)
		if !ok {
			return ErrInvalidRenderer
		}

		// NewTextureFromRGBA writes through the queue and waits for the
		// GPU. After it returns, all prior GPU work is complete, so the
		// deferred old texture can be destroyed safely.
		realTex, err := creator.NewTextureFromRGBA(pending.width, pending.height, pending.data)
		if err != nil {
			return fmt.Errorf("embercanvas: NewTextureFromRGBA failed: %w", err)
		}

		// Composed pixels are straight alpha, not premultiplied.
		if pt, ok := realTex.(interface{ SetPremultiplied(bool) }); ok {
			pt.SetPremultiplied(false)
		}

		c.texture = realTex
		tex = realTex

		if destroyer, ok := c.oldTexture.(textureDestroyer); ok {
			destroyer.Destroy()
		}
		c.oldTexture = nil
	}

	// Draw texture at position
	// Note: ScaleX, ScaleY, Alpha, FlipY are currently ignored (basic rendering)
	return drawer.DrawTexture(tex, opts.X, opts.Y)
}

// RenderToPosition is a convenience method for rendering at a specific position.
//
//	canvas.RenderToPosition(dc, 100, 50)
//
// is equivalent to:
//
//	canvas.RenderToEx(dc, RenderOptions{X: 100, Y: 50, ScaleX: 1, ScaleY: 1, Alpha: 1})
func (c *Canvas) RenderToPosition(dc any, x, y float32) error {
	return c.RenderToEx(dc, RenderOptions{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
		Alpha:  1,
	})
}

// RenderToScaled is a convenience method for rendering with uniform scaling.
//
//	canvas.RenderToScaled(dc, 0.5) // Render at half size
func (c *Canvas) RenderToScaled(dc any, scale float32) error {
	return c.RenderToEx(dc, RenderOptions{
		X:      0,
		Y:      0,
		ScaleX: scale,
		ScaleY: scale,
		Alpha:  1,
	})
}
