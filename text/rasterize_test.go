package text

import (
	"testing"

	"golang.org/x/image/font/sfnt"
)

func glyphID(t *testing.T, f *Font, r rune) uint16 {
	t.Helper()
	idx, err := f.outline.GlyphIndex(nil, r)
	if err != nil || idx == 0 {
		t.Fatalf("no glyph for %q", r)
	}
	return uint16(idx)
}

func TestRasterizeGlyph(t *testing.T) {
	f := loadTestFont(t)
	var z rasterizer

	img, err := z.rasterize(f, glyphID(t, f, 'A'), 32)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if img.width <= 0 || img.height <= 0 {
		t.Fatalf("bitmap = %dx%d, want positive", img.width, img.height)
	}
	if len(img.data) != img.width*img.height {
		t.Fatalf("data = %d bytes for %dx%d", len(img.data), img.width, img.height)
	}
	if img.advance <= 0 {
		t.Errorf("advance = %g, want > 0", img.advance)
	}
	if img.top >= 0 {
		t.Errorf("top = %g, want above the baseline", img.top)
	}

	var ink int
	for _, c := range img.data {
		if c > 0 {
			ink++
		}
	}
	if ink == 0 {
		t.Error("bitmap has no coverage")
	}
	if ink == len(img.data) {
		t.Error("bitmap is fully covered, A should have gaps")
	}
}

func TestRasterizeSpace(t *testing.T) {
	f := loadTestFont(t)
	var z rasterizer

	img, err := z.rasterize(f, glyphID(t, f, ' '), 32)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if img.width != 0 || img.height != 0 || img.data != nil {
		t.Errorf("space bitmap = %dx%d with %d bytes, want none", img.width, img.height, len(img.data))
	}
	if img.advance <= 0 {
		t.Errorf("space advance = %g, want > 0", img.advance)
	}
}

func TestRasterizeScalesWithSize(t *testing.T) {
	f := loadTestFont(t)
	var z rasterizer

	small, err := z.rasterize(f, glyphID(t, f, 'M'), 16)
	if err != nil {
		t.Fatalf("rasterize 16: %v", err)
	}
	big, err := z.rasterize(f, glyphID(t, f, 'M'), 64)
	if err != nil {
		t.Fatalf("rasterize 64: %v", err)
	}
	if big.width < 3*small.width || big.height < 3*small.height {
		t.Errorf("64px = %dx%d, 16px = %dx%d, want about 4x",
			big.width, big.height, small.width, small.height)
	}
	if big.advance <= small.advance {
		t.Errorf("advance did not grow: %g vs %g", big.advance, small.advance)
	}
}

func TestRasterizeCounterIsHollow(t *testing.T) {
	f := loadTestFont(t)
	var z rasterizer

	img, err := z.rasterize(f, glyphID(t, f, 'O'), 64)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	// The middle row of an O crosses ink, counter, ink.
	row := img.data[(img.height/2)*img.width : (img.height/2+1)*img.width]
	mid := img.width / 2
	if row[mid] != 0 {
		t.Errorf("center coverage = %d, want 0", row[mid])
	}
	var left, right bool
	for _, c := range row[:mid] {
		if c > 0 {
			left = true
			break
		}
	}
	for _, c := range row[mid+1:] {
		if c > 0 {
			right = true
			break
		}
	}
	if !left || !right {
		t.Errorf("no ink beside the counter: left %v right %v", left, right)
	}
}

func TestRasterizeBadGlyph(t *testing.T) {
	f := loadTestFont(t)
	var z rasterizer

	if _, err := z.rasterize(f, uint16(f.NumGlyphs()+100), 32); err == nil {
		t.Error("no error for an out-of-range glyph id")
	}
}
