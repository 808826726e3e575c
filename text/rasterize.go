package text

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// glyphImage is the rasterized coverage of one glyph. Left and Top
// position the top-left corner of the bitmap relative to the pen at
// the baseline, y-down, so Top is negative for glyphs above it.
type glyphImage struct {
	width   int
	height  int
	left    float32
	top     float32
	advance float32
	data    []byte
}

// rasterizer fills glyph outlines into coverage bitmaps. It reuses an
// sfnt buffer and a scanline rasterizer across calls, so it is not
// safe for concurrent use.
type rasterizer struct {
	buf sfnt.Buffer
	ras vector.Rasterizer
}

// rasterize loads the outline of a glyph at the given pixel size and
// fills it. Glyphs without an outline, such as spaces, come back with
// a zero-size image carrying only the advance.
func (z *rasterizer) rasterize(f *Font, gid uint16, size float32) (glyphImage, error) {
	ppem := toFixed(size)
	segments, err := f.outline.LoadGlyph(&z.buf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		return glyphImage{}, fmt.Errorf("text: load glyph %d: %w", gid, err)
	}

	advance := z.glyphAdvance(f, gid, ppem)
	if len(segments) == 0 {
		return glyphImage{advance: advance}, nil
	}

	// The outline is already scaled to ppem with the y axis pointing
	// down. Find its pixel bounds.
	var minX, minY float32 = math32.MaxFloat32, math32.MaxFloat32
	var maxX, maxY float32 = -math32.MaxFloat32, -math32.MaxFloat32
	for _, seg := range segments {
		for _, arg := range seg.Args[:segmentPoints(seg.Op)] {
			x := fromFixed(arg.X)
			y := fromFixed(arg.Y)
			minX = math32.Min(minX, x)
			minY = math32.Min(minY, y)
			maxX = math32.Max(maxX, x)
			maxY = math32.Max(maxY, y)
		}
	}

	x0 := math32.Floor(minX)
	y0 := math32.Floor(minY)
	w := int(math32.Ceil(maxX) - x0)
	h := int(math32.Ceil(maxY) - y0)
	if w <= 0 || h <= 0 {
		return glyphImage{advance: advance}, nil
	}

	z.ras.Reset(w, h)
	started := false
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				z.ras.ClosePath()
			}
			z.ras.MoveTo(fromFixed(seg.Args[0].X)-x0, fromFixed(seg.Args[0].Y)-y0)
			started = true
		case sfnt.SegmentOpLineTo:
			z.ras.LineTo(fromFixed(seg.Args[0].X)-x0, fromFixed(seg.Args[0].Y)-y0)
		case sfnt.SegmentOpQuadTo:
			z.ras.QuadTo(
				fromFixed(seg.Args[0].X)-x0, fromFixed(seg.Args[0].Y)-y0,
				fromFixed(seg.Args[1].X)-x0, fromFixed(seg.Args[1].Y)-y0,
			)
		case sfnt.SegmentOpCubeTo:
			z.ras.CubeTo(
				fromFixed(seg.Args[0].X)-x0, fromFixed(seg.Args[0].Y)-y0,
				fromFixed(seg.Args[1].X)-x0, fromFixed(seg.Args[1].Y)-y0,
				fromFixed(seg.Args[2].X)-x0, fromFixed(seg.Args[2].Y)-y0,
			)
		}
	}
	if started {
		z.ras.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.ras.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return glyphImage{
		width:   w,
		height:  h,
		left:    x0,
		top:     y0,
		advance: advance,
		data:    mask.Pix,
	}, nil
}

// glyphAdvance returns the unhinted advance, matching the unhinted
// outline coordinates.
func (z *rasterizer) glyphAdvance(f *Font, gid uint16, ppem fixed.Int26_6) float32 {
	advance, err := f.outline.GlyphAdvance(&z.buf, sfnt.GlyphIndex(gid), ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

// segmentPoints returns how many of a segment's points are meaningful.
func segmentPoints(op sfnt.SegmentOp) int {
	switch op {
	case sfnt.SegmentOpQuadTo:
		return 2
	case sfnt.SegmentOpCubeTo:
		return 3
	default:
		return 1
	}
}
