package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/ember"
)

// Renderer shapes text blocks into atlas-backed glyph quads. Include
// lays out a block and packs any new glyphs; RenderTo drains the
// pending quads into a vertex stream. The atlas persists across
// frames, so steady-state frames rasterize nothing.
//
// A Renderer keeps mutable shaping and rasterization state and is not
// safe for concurrent use.
type Renderer struct {
	atlas    *Atlas
	layouter layoutEngine
	raster   rasterizer
	pending  []renderGlyph
	dirty    bool
}

// renderGlyph is a pending quad: an atlas slot placed in block space.
type renderGlyph struct {
	slot  Slot
	x, y  float32
	color [4]float32
}

// NewRenderer creates a renderer with a default atlas.
func NewRenderer() *Renderer {
	return &Renderer{atlas: NewAtlas(DefaultAtlasConfig())}
}

// NewRendererWithAtlas creates a renderer drawing into a shared or
// custom-sized atlas.
func NewRendererWithAtlas(atlas *Atlas) *Renderer {
	if atlas == nil {
		atlas = NewAtlas(DefaultAtlasConfig())
	}
	return &Renderer{atlas: atlas}
}

// Atlas returns the glyph atlas.
func (r *Renderer) Atlas() *Atlas {
	return r.atlas
}

// Include lays out a block and appends its glyph quads to the pending
// set. Glyphs missing from the atlas are rasterized and packed; a
// packing failure aborts with ErrAtlasFull or ErrGlyphTooLarge.
// Glyphs whose outline cannot be loaded are skipped.
func (r *Renderer) Include(b *Block) error {
	res := r.layouter.layout(b)
	for _, g := range res.glyphs {
		key := glyphKey{font: g.font, gid: g.gid, size: quantizeSize(g.size)}
		slot, ok := r.atlas.lookup(key)
		if !ok {
			img, err := r.raster.rasterize(g.font, g.gid, unquantizeSize(key.size))
			if err != nil {
				continue
			}
			slot, err = r.atlas.insert(key, img)
			if err != nil {
				return fmt.Errorf("text: include glyph %d: %w", g.gid, err)
			}
			r.dirty = true
		}
		if slot.Width == 0 {
			continue
		}
		r.pending = append(r.pending, renderGlyph{
			slot:  slot,
			x:     g.x + slot.Left,
			y:     g.y + slot.Top,
			color: g.color,
		})
	}
	return nil
}

// RenderTo emits the pending glyph quads into the stream and clears
// them. Positions are in block space; callers apply transforms when
// pushing the stream through an engine.
func (r *Renderer) RenderTo(stream *ember.Stream[ember.Vertex]) {
	for _, g := range r.pending {
		page := float32(g.slot.Page)
		x0, y0 := g.x, g.y
		x1 := x0 + float32(g.slot.Width)
		y1 := y0 + float32(g.slot.Height)
		stream.Quad([4]ember.Vertex{
			{Position: [2]float32{x0, y0}, UV: [3]float32{g.slot.U0, g.slot.V0, page}, Color: g.color},
			{Position: [2]float32{x1, y0}, UV: [3]float32{g.slot.U1, g.slot.V0, page}, Color: g.color},
			{Position: [2]float32{x1, y1}, UV: [3]float32{g.slot.U1, g.slot.V1, page}, Color: g.color},
			{Position: [2]float32{x0, y1}, UV: [3]float32{g.slot.U0, g.slot.V1, page}, Color: g.color},
		})
	}
	r.pending = r.pending[:0]
}

// Pending returns the number of glyph quads waiting for RenderTo.
func (r *Renderer) Pending() int {
	return len(r.pending)
}

// Clear drops pending quads without emitting them. Call it at frame
// start so an abandoned frame cannot leak into the next one. The
// atlas keeps its glyphs.
func (r *Renderer) Clear() {
	r.pending = r.pending[:0]
}

// Dirty reports whether the atlas gained glyphs since the last
// MarkUploaded, meaning the font texture needs a re-upload.
func (r *Renderer) Dirty() bool {
	return r.dirty
}

// MarkUploaded records that the current atlas contents reached the
// texture.
func (r *Renderer) MarkUploaded() {
	r.dirty = false
}

// Measure returns the content extents of a block in line mode: the
// widest line and the summed line advances.
func (r *Renderer) Measure(b *Block) (width, height float32) {
	res := r.layouter.layout(b)
	return res.width, res.height
}

// MeasureInk returns the tight bounding rectangle of the block's glyph
// outlines, y-down in block space. Whitespace-only blocks return a
// zero rectangle.
func (r *Renderer) MeasureInk(b *Block) ember.Rect {
	res := r.layouter.layout(b)
	var buf sfnt.Buffer
	first := true
	var minX, minY, maxX, maxY float32
	for _, g := range res.glyphs {
		bounds, _, err := g.font.outline.GlyphBounds(&buf, sfnt.GlyphIndex(g.gid), toFixed(g.size), font.HintingNone)
		if err != nil || bounds.Min.X >= bounds.Max.X || bounds.Min.Y >= bounds.Max.Y {
			continue
		}
		x0 := g.x + fromFixed(bounds.Min.X)
		y0 := g.y + fromFixed(bounds.Min.Y)
		x1 := g.x + fromFixed(bounds.Max.X)
		y1 := g.y + fromFixed(bounds.Max.Y)
		if first {
			minX, minY, maxX, maxY = x0, y0, x1, y1
			first = false
			continue
		}
		minX = min(minX, x0)
		minY = min(minY, y0)
		maxX = max(maxX, x1)
		maxY = max(maxY, y1)
	}
	if first {
		return ember.Rect{}
	}
	return ember.R(minX, minY, maxX-minX, maxY-minY)
}
