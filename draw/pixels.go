package draw

import (
	"fmt"

	"github.com/gogpu/ember/backend"
)

// Pixels is a CPU-side RGBA buffer bound to a backend texture, for
// procedural textures and software drawing. Writes go to the buffer;
// Commit uploads them.
type Pixels struct {
	backend backend.RenderBackend
	texture Texture
	buffer  []byte
}

// NewPixels creates a pixel buffer with its backing texture. The
// buffer starts fully transparent.
func NewPixels(ctx *Context, width, height int) (*Pixels, error) {
	id, err := ctx.Backend().CreateTexture(width, height, 1)
	if err != nil {
		return nil, fmt.Errorf("draw: create pixels texture: %w", err)
	}
	return &Pixels{
		backend: ctx.Backend(),
		texture: Texture{ID: id, Width: width, Height: height, Layers: 1},
		buffer:  make([]byte, width*height*4),
	}, nil
}

// NewScreenPixels creates a pixel buffer matching the open frame's
// dimensions.
func NewScreenPixels(ctx *Context) (*Pixels, error) {
	width, height := ctx.Size()
	if width <= 0 || height <= 0 {
		return nil, ErrNoFrame
	}
	return NewPixels(ctx, width, height)
}

// Texture returns the backing texture.
func (p *Pixels) Texture() Texture {
	return p.texture
}

// SpriteTexture returns a ref for drawing the buffer as a sprite.
func (p *Pixels) SpriteTexture() TextureRef {
	return TextureValue(p.texture)
}

// Width returns the buffer width in pixels.
func (p *Pixels) Width() int {
	return p.texture.Width
}

// Height returns the buffer height in pixels.
func (p *Pixels) Height() int {
	return p.texture.Height
}

// Bytes returns the backing RGBA bytes in row-major order. Mutations
// become visible on the texture after Commit.
func (p *Pixels) Bytes() []byte {
	return p.buffer
}

// At returns the pixel at x, y, or zero outside the buffer.
func (p *Pixels) At(x, y int) [4]byte {
	if !p.contains(x, y) {
		return [4]byte{}
	}
	i := (y*p.texture.Width + x) * 4
	return [4]byte{p.buffer[i], p.buffer[i+1], p.buffer[i+2], p.buffer[i+3]}
}

// Set writes the pixel at x, y. Writes outside the buffer are ignored.
func (p *Pixels) Set(x, y int, rgba [4]byte) {
	if !p.contains(x, y) {
		return
	}
	i := (y*p.texture.Width + x) * 4
	copy(p.buffer[i:i+4], rgba[:])
}

// Fill writes one color over the whole buffer.
func (p *Pixels) Fill(rgba [4]byte) {
	for i := 0; i < len(p.buffer); i += 4 {
		copy(p.buffer[i:i+4], rgba[:])
	}
}

func (p *Pixels) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.texture.Width && y < p.texture.Height
}

// Commit uploads the buffer to the texture.
func (p *Pixels) Commit() error {
	err := p.backend.UploadTexture(p.texture.ID, 0, 0, 0, p.texture.Width, p.texture.Height, p.buffer)
	if err != nil {
		return fmt.Errorf("draw: commit pixels: %w", err)
	}
	return nil
}

// Close destroys the backing texture. The buffer stays readable.
func (p *Pixels) Close() {
	if !p.texture.IsZero() {
		p.backend.DestroyTexture(p.texture.ID)
		p.texture.ID = 0
	}
}
