package headless

import (
	"image"
)

// Pixmap is a rectangular RGBA pixel buffer. Channels are stored as
// 8-bit straight (non-premultiplied) values, 4 bytes per pixel,
// row-major from the top-left corner.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// NewPixmap creates a pixmap with the given dimensions, cleared to
// transparent black.
func NewPixmap(width, height int) *Pixmap {
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap in pixels.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap in pixels.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA, 4 bytes per pixel).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// At returns the normalized color of a single pixel.
// Out-of-bounds reads return transparent black.
func (p *Pixmap) At(x, y int) [4]float32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return [4]float32{}
	}
	i := (y*p.width + x) * 4
	return [4]float32{
		float32(p.data[i+0]) / 255,
		float32(p.data[i+1]) / 255,
		float32(p.data[i+2]) / 255,
		float32(p.data[i+3]) / 255,
	}
}

// Set writes the normalized color of a single pixel.
// Out-of-bounds writes are ignored.
func (p *Pixmap) Set(x, y int, c [4]float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = unit8(c[0])
	p.data[i+1] = unit8(c[1])
	p.data[i+2] = unit8(c[2])
	p.data[i+3] = unit8(c[3])
}

// Fill sets every pixel to the given color.
func (p *Pixmap) Fill(c [4]float32) {
	r, g, b, a := unit8(c[0]), unit8(c[1]), unit8(c[2]), unit8(c[3])
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Upload copies a tightly packed RGBA pixel block into the region at
// (x, y). Rows outside the pixmap are clipped away.
func (p *Pixmap) Upload(x, y, width, height int, pixels []uint8) {
	for row := 0; row < height; row++ {
		dy := y + row
		if dy < 0 || dy >= p.height {
			continue
		}
		for col := 0; col < width; col++ {
			dx := x + col
			if dx < 0 || dx >= p.width {
				continue
			}
			src := (row*width + col) * 4
			dst := (dy*p.width + dx) * 4
			copy(p.data[dst:dst+4], pixels[src:src+4])
		}
	}
}

// Image returns a copy of the pixmap as a standard library image.
func (p *Pixmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// unit8 converts a normalized channel to its 8-bit value, clamping to
// the valid range.
func unit8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
