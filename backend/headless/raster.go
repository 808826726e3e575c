package headless

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/ember"
)

// screenVertex is a vertex projected to pixel coordinates.
type screenVertex struct {
	x, y  float32
	uv    [3]float32
	color [4]float32
}

// scissor is a half-open pixel rectangle.
type scissor struct {
	x0, y0, x1, y1 int
}

func (s scissor) empty() bool {
	return s.x0 >= s.x1 || s.y0 >= s.y1
}

// shadeContext carries the per-draw state the rasterizer needs.
type shadeContext struct {
	target    *Pixmap
	texture   *texture
	filtering Filtering
	blend     ember.BlendMode
	clip      scissor
}

// orient2d is twice the signed area of the triangle (a, b, c). In
// pixel coordinates (y down) it is positive when c lies to the right
// of the edge a to b.
func orient2d(ax, ay, bx, by, cx, cy float32) float32 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}

// topLeft reports whether the edge from a to b is a top or left edge
// of a positively oriented triangle. Pixel centers exactly on an edge
// belong to the triangle only when the edge is top or left, so two
// triangles sharing an edge never both shade the same pixel.
func topLeft(ax, ay, bx, by float32) bool {
	if ay == by {
		return bx > ax
	}
	return by < ay
}

// rasterTriangle fills one triangle into the context's target and
// returns the number of pixels shaded. Winding does not matter;
// degenerate triangles shade nothing.
func rasterTriangle(ctx *shadeContext, v0, v1, v2 screenVertex) int {
	area := orient2d(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}
	if area == 0 {
		return 0
	}

	// Bounding box clamped to the scissor; pixel centers at +0.5.
	minX := max(int(math32.Floor(min(v0.x, v1.x, v2.x))), ctx.clip.x0)
	minY := max(int(math32.Floor(min(v0.y, v1.y, v2.y))), ctx.clip.y0)
	maxX := min(int(math32.Ceil(max(v0.x, v1.x, v2.x))), ctx.clip.x1)
	maxY := min(int(math32.Ceil(max(v0.y, v1.y, v2.y))), ctx.clip.y1)
	if minX >= maxX || minY >= maxY {
		return 0
	}

	// Edge function steps. w0 tracks edge v1->v2, w1 edge v2->v0,
	// w2 edge v0->v1.
	a12, b12 := v1.y-v2.y, v2.x-v1.x
	a20, b20 := v2.y-v0.y, v0.x-v2.x
	a01, b01 := v0.y-v1.y, v1.x-v0.x

	px := float32(minX) + 0.5
	py := float32(minY) + 0.5
	w0Row := orient2d(v1.x, v1.y, v2.x, v2.y, px, py)
	w1Row := orient2d(v2.x, v2.y, v0.x, v0.y, px, py)
	w2Row := orient2d(v0.x, v0.y, v1.x, v1.y, px, py)

	edge0 := topLeft(v1.x, v1.y, v2.x, v2.y)
	edge1 := topLeft(v2.x, v2.y, v0.x, v0.y)
	edge2 := topLeft(v0.x, v0.y, v1.x, v1.y)

	inv := 1 / area
	shaded := 0
	for y := minY; y < maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		for x := minX; x < maxX; x++ {
			if covers(w0, edge0) && covers(w1, edge1) && covers(w2, edge2) {
				l0, l1, l2 := w0*inv, w1*inv, w2*inv
				shadePixel(ctx, x, y, v0, v1, v2, l0, l1, l2)
				shaded++
			}
			w0 += a12
			w1 += a20
			w2 += a01
		}
		w0Row += b12
		w1Row += b20
		w2Row += b01
	}
	return shaded
}

// covers reports whether an edge function value admits the pixel,
// applying the top-left tie break at zero.
func covers(w float32, topLeft bool) bool {
	if w == 0 {
		return topLeft
	}
	return w > 0
}

// shadePixel computes the source color at barycentric (l0, l1, l2)
// and blends it into the target.
func shadePixel(ctx *shadeContext, x, y int, v0, v1, v2 screenVertex, l0, l1, l2 float32) {
	src := [4]float32{
		l0*v0.color[0] + l1*v1.color[0] + l2*v2.color[0],
		l0*v0.color[1] + l1*v1.color[1] + l2*v2.color[1],
		l0*v0.color[2] + l1*v1.color[2] + l2*v2.color[2],
		l0*v0.color[3] + l1*v1.color[3] + l2*v2.color[3],
	}
	if ctx.texture != nil {
		uv := [3]float32{
			l0*v0.uv[0] + l1*v1.uv[0] + l2*v2.uv[0],
			l0*v0.uv[1] + l1*v1.uv[1] + l2*v2.uv[1],
			l0*v0.uv[2] + l1*v1.uv[2] + l2*v2.uv[2],
		}
		t := sampleTexture(ctx.texture, ctx.filtering, uv)
		src[0] *= t[0]
		src[1] *= t[1]
		src[2] *= t[2]
		src[3] *= t[3]
	}
	dst := ctx.target.At(x, y)
	ctx.target.Set(x, y, blendColor(ctx.blend, src, dst))
}

// sampleTexture samples a texture array with clamp-to-edge
// addressing. The third UV component selects the layer.
func sampleTexture(t *texture, filtering Filtering, uv [3]float32) [4]float32 {
	layer := clampInt(int(uv[2]+0.5), 0, len(t.layers)-1)
	pix := t.layers[layer]

	if filtering == FilterLinear {
		fx := uv[0]*float32(t.width) - 0.5
		fy := uv[1]*float32(t.height) - 0.5
		x0 := int(math32.Floor(fx))
		y0 := int(math32.Floor(fy))
		dx := fx - float32(x0)
		dy := fy - float32(y0)

		c00 := texel(pix, x0, y0)
		c10 := texel(pix, x0+1, y0)
		c01 := texel(pix, x0, y0+1)
		c11 := texel(pix, x0+1, y0+1)

		var out [4]float32
		for i := range out {
			top := c00[i] + (c10[i]-c00[i])*dx
			bot := c01[i] + (c11[i]-c01[i])*dx
			out[i] = top + (bot-top)*dy
		}
		return out
	}

	x := clampInt(int(uv[0]*float32(t.width)), 0, t.width-1)
	y := clampInt(int(uv[1]*float32(t.height)), 0, t.height-1)
	return pix.At(x, y)
}

// texel reads one texel with clamp-to-edge addressing.
func texel(pix *Pixmap, x, y int) [4]float32 {
	return pix.At(clampInt(x, 0, pix.width-1), clampInt(y, 0, pix.height-1))
}

// blendColor combines a source fragment with the destination pixel.
// The equations mirror the fixed-function factors GPU backends use:
// alpha is (SrcAlpha, OneMinusSrcAlpha), additive is (One, One),
// multiply is (DstColor, Zero) and none replaces the destination.
func blendColor(mode ember.BlendMode, src, dst [4]float32) [4]float32 {
	switch mode {
	case ember.BlendAlpha:
		sa := src[3]
		inv := 1 - sa
		return [4]float32{
			src[0]*sa + dst[0]*inv,
			src[1]*sa + dst[1]*inv,
			src[2]*sa + dst[2]*inv,
			src[3]*sa + dst[3]*inv,
		}
	case ember.BlendAdditive:
		return [4]float32{
			min(src[0]+dst[0], 1),
			min(src[1]+dst[1], 1),
			min(src[2]+dst[2], 1),
			min(src[3]+dst[3], 1),
		}
	case ember.BlendMultiply:
		return [4]float32{
			src[0] * dst[0],
			src[1] * dst[1],
			src[2] * dst[2],
			src[3] * dst[3],
		}
	default:
		return src
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
