package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrAtlasFull is returned when a glyph cannot be packed because
	// every page is exhausted and the page limit is reached.
	ErrAtlasFull = errors.New("text: atlas full")

	// ErrGlyphTooLarge is returned when a rasterized glyph can never
	// fit a single atlas page.
	ErrGlyphTooLarge = errors.New("text: glyph exceeds page size")
)
