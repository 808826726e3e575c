package draw

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/text"
)

// Text draws a block of styled text through the context glyph
// renderer. Glyphs always blend with alpha, since atlas coverage is
// meaningless under other modes.
type Text struct {
	// Font names a font in the context store.
	Font string
	// Size is the font size in pixels.
	Size float32
	// Tint colors the glyphs. Zero means white.
	Tint [4]float32
	// Content is the text to lay out. Newlines break lines.
	Content string

	// MaxWidth bounds line length in pixels. Zero means unbounded.
	MaxWidth float32
	// MaxHeight is the frame height used by vertical alignment.
	MaxHeight float32
	// Horizontal and Vertical align content within the frame.
	Horizontal text.Align
	Vertical   text.Align
	// Wrap selects the line breaking behavior.
	Wrap text.WrapMode
	// LineHeight scales the per-line advance. Zero means 1.
	LineHeight float32

	// Block, when set, is laid out instead of the fields above. It
	// carries its own fonts, styles and options.
	Block *text.Block

	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Placement positions the block.
	Placement Placement
	// ScreenSpace draws in screen coordinates.
	ScreenSpace bool
}

// NewText creates a text drawable in the named font.
func NewText(font string, size float32, content string) Text {
	return Text{Font: font, Size: size, Content: content, Tint: ember.White}
}

// block resolves the drawable into a layout block.
func (t Text) block(ctx *Context) (*text.Block, error) {
	if t.Block != nil {
		return t.Block, nil
	}
	f := ctx.Fonts.Get(t.Font)
	if f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFont, t.Font)
	}
	b := text.NewBlock(text.Options{
		MaxWidth:   t.MaxWidth,
		MaxHeight:  t.MaxHeight,
		Horizontal: t.Horizontal,
		Vertical:   t.Vertical,
		LineHeight: t.LineHeight,
		Wrap:       t.Wrap,
	})
	b.Span(text.Style{Font: f, Size: t.Size, Color: tintOrWhite(t.Tint)}, t.Content)
	return b, nil
}

// Draw lays out the block, packs any new glyphs into the atlas and
// records the glyph quads.
func (t Text) Draw(ctx *Context) error {
	block, err := t.block(ctx)
	if err != nil {
		return err
	}
	if err := ctx.ensureGlyphTexture(); err != nil {
		return err
	}
	if err := ctx.glyphs.Include(block); err != nil {
		return err
	}
	material, err := ctx.resolveMaterial(t.Material)
	if err != nil {
		return err
	}

	ctx.scratch.Clear()
	ctx.glyphs.RenderTo(ctx.scratch)
	vertices := ctx.scratch.Vertices()
	if len(vertices) == 0 {
		return nil
	}
	state := ember.RenderState{
		Material: material,
		Texture:  ctx.fontsTexture.ID,
		Blend:    ember.BlendAlpha,
		Space:    spaceOf(t.ScreenSpace),
	}
	return ctx.engine.Push(vertices, ctx.scratch.Triangles(), t.Placement.Matrix(), state)
}

// MeasureText returns the laid-out dimensions of a text drawable
// without rendering it.
func (c *Context) MeasureText(t Text) (width, height float32, err error) {
	block, err := t.block(c)
	if err != nil {
		return 0, 0, err
	}
	width, height = c.glyphs.Measure(block)
	return width, height, nil
}
