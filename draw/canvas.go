package draw

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
)

// Canvas is an offscreen render target whose color attachment doubles
// as a sprite texture. Drawing into it splits the frame: everything
// recorded so far is submitted to the previous target first, then the
// canvas content, each as its own backend submission.
type Canvas struct {
	backend backend.RenderBackend
	target  ember.TargetID
	texture Texture
	width   int
	height  int
}

// NewCanvas creates an offscreen target of the given size.
func NewCanvas(ctx *Context, width, height int) (*Canvas, error) {
	target, textureID, err := ctx.Backend().CreateTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("draw: create canvas: %w", err)
	}
	return &Canvas{
		backend: ctx.Backend(),
		target:  target,
		texture: Texture{ID: textureID, Width: width, Height: height, Layers: 1},
		width:   width,
		height:  height,
	}, nil
}

// Texture returns the color attachment.
func (c *Canvas) Texture() Texture {
	return c.texture
}

// SpriteTexture returns a ref for drawing the canvas content as a
// sprite.
func (c *Canvas) SpriteTexture() TextureRef {
	return TextureValue(c.texture)
}

// Size returns the canvas dimensions in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// With redirects drawing to the canvas for the duration of f. Work
// recorded before the call is flushed to the enclosing target first;
// work recorded by f is flushed to the canvas with a screen-space view
// of the canvas dimensions. While f runs the context view and size
// report the canvas, so redirection nests. A non-nil clear fills the
// canvas before f's content. When f fails its recording is dropped and
// the canvas keeps its previous content.
func (c *Canvas) With(ctx *Context, clear *[4]float32, f func() error) error {
	if err := ctx.flush(ctx.view, ctx.width, ctx.height, ctx.takeClear()); err != nil {
		return err
	}
	if err := c.backend.PushTarget(c.target); err != nil {
		return fmt.Errorf("draw: push canvas target: %w", err)
	}
	prevView, prevWidth, prevHeight := ctx.view, ctx.width, ctx.height
	ctx.view = ember.ScreenView(float32(c.width), float32(c.height))
	ctx.width, ctx.height = c.width, c.height

	ferr := f()
	var flushErr error
	if ferr == nil {
		flushErr = ctx.flush(ctx.view, c.width, c.height, clear)
	} else {
		ctx.engine.BeginFrame()
	}
	ctx.view, ctx.width, ctx.height = prevView, prevWidth, prevHeight
	popErr := c.backend.PopTarget()

	if ferr != nil {
		return ferr
	}
	if flushErr != nil {
		return flushErr
	}
	if popErr != nil {
		return fmt.Errorf("draw: pop canvas target: %w", popErr)
	}
	return nil
}

// Resize recreates the target at a new size. The content is lost and
// the texture handle changes. Resizing to the current size is a no-op.
func (c *Canvas) Resize(ctx *Context, width, height int) error {
	if width == c.width && height == c.height {
		return nil
	}
	target, textureID, err := ctx.Backend().CreateTarget(width, height)
	if err != nil {
		return fmt.Errorf("draw: resize canvas: %w", err)
	}
	c.backend.DestroyTarget(c.target)
	c.target = target
	c.texture = Texture{ID: textureID, Width: width, Height: height, Layers: 1}
	c.width = width
	c.height = height
	return nil
}

// MatchScreen resizes the canvas to the open frame's dimensions.
func (c *Canvas) MatchScreen(ctx *Context) error {
	width, height := ctx.Size()
	if width <= 0 || height <= 0 {
		return ErrNoFrame
	}
	return c.Resize(ctx, width, height)
}

// Close destroys the render target and its color attachment.
func (c *Canvas) Close() {
	if !c.target.IsZero() {
		c.backend.DestroyTarget(c.target)
		c.target = 0
		c.texture = Texture{}
	}
}
