// Package text bridges fonts to the batching engine.
//
// The pipeline splits into a few small parts:
//
//   - Font: heavyweight parsed font, shared across the application
//   - Store: named font registry with stable insertion order
//   - Atlas: shelf-packed glyph coverage pages, one texture array layer
//     per page
//   - Renderer: shapes styled text blocks, rasterizes missing glyphs
//     into the atlas and emits textured quads
//
// Shaping runs through go-text/typesetting, so kerning, ligatures and
// right-to-left runs come out correctly. Rasterization walks the sfnt
// glyph outlines from golang.org/x/image. Coordinates are y-down with
// the origin at the top left of a block, the convention the engine
// vertex stream uses.
//
// # Example usage
//
//	font, err := text.LoadFont("regular", ttf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	renderer := text.NewRenderer()
//	block := text.NewBlock(text.Options{MaxWidth: 300}).
//	    Span(text.Style{Font: font, Size: 24, Color: ember.White}, "Hello")
//
//	if err := renderer.Include(block); err != nil {
//	    log.Fatal(err)
//	}
//	renderer.RenderTo(stream)
//
// The atlas pages reach the GPU as layers of an ordinary texture array;
// callers upload them whenever Renderer.Dirty reports new glyphs.
package text
