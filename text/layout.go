package text

import (
	"strings"

	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"
)

// Align positions content along one axis of a block.
type Align uint8

const (
	// AlignStart keeps content at the left or top edge.
	AlignStart Align = iota
	// AlignCenter centers content.
	AlignCenter
	// AlignEnd pushes content to the right or bottom edge.
	AlignEnd
)

// String returns the string representation of the alignment.
func (a Align) String() string {
	switch a {
	case AlignStart:
		return "Start"
	case AlignCenter:
		return "Center"
	case AlignEnd:
		return "End"
	default:
		return "Unknown"
	}
}

func (a Align) factor() float32 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignEnd:
		return 1
	default:
		return 0
	}
}

// Style is the per-span appearance of text in a block.
type Style struct {
	Font  *Font
	Size  float32
	Color [4]float32
}

// Options control the layout of a whole block.
type Options struct {
	// MaxWidth bounds line length in pixels. Zero means unbounded;
	// wrapping and horizontal alignment then work against the widest
	// line.
	MaxWidth float32
	// MaxHeight is the frame height used by vertical alignment. Zero
	// means the content height. Lines are never dropped.
	MaxHeight float32
	// Horizontal and Vertical align content within the frame.
	Horizontal Align
	Vertical   Align
	// LineHeight scales the per-line advance. Zero means 1.
	LineHeight float32
	// Wrap selects the line breaking behavior.
	Wrap WrapMode
}

// Block is styled text to lay out, built from spans. Spans concatenate;
// newlines inside a span force line breaks.
type Block struct {
	opts  Options
	spans []span
}

type span struct {
	style Style
	text  string
}

// NewBlock creates an empty block with the given layout options.
func NewBlock(opts Options) *Block {
	return &Block{opts: opts}
}

// Span appends styled text and returns the block for chaining. Spans
// with a nil font or a non-positive size are ignored at layout time.
func (b *Block) Span(style Style, text string) *Block {
	b.spans = append(b.spans, span{style: style, text: text})
	return b
}

// Options returns the layout options of the block.
func (b *Block) Options() Options {
	return b.opts
}

// Empty reports whether the block has no text at all.
func (b *Block) Empty() bool {
	for _, sp := range b.spans {
		if sp.text != "" {
			return false
		}
	}
	return true
}

// layoutGlyph is one glyph positioned in block space. The position is
// the pen at the baseline; the rasterized bearing moves it to the quad
// corner later.
type layoutGlyph struct {
	font  *Font
	gid   uint16
	size  float32
	color [4]float32
	x, y  float32
}

type layoutResult struct {
	glyphs []layoutGlyph
	width  float32
	height float32
}

// token is a word or word fragment of shaped glyphs that wraps as a
// unit. Trailing spaces count toward width but not toward trim, so
// they may overhang the wrap edge.
type token struct {
	style  Style
	glyphs []shapedGlyph
	width  float32
	trim   float32
}

// builtLine is one laid-out line before vertical placement.
type builtLine struct {
	tokens  []token
	width   float32 // trailing spaces of the last token excluded
	ascent  float32
	advance float32
}

// paragraph is the text between two mandatory breaks. The fallback
// style sizes empty lines.
type paragraph struct {
	pieces   []span
	fallback Style
}

// layoutEngine turns blocks into positioned glyphs. It owns a shaper
// and a metrics cache, so it is not safe for concurrent use.
type layoutEngine struct {
	shaper  shaping.HarfbuzzShaper
	metrics map[metricsKey]Metrics
}

type metricsKey struct {
	font *Font
	size int32
}

func (le *layoutEngine) fontMetrics(f *Font, size float32) Metrics {
	if f == nil {
		return Metrics{}
	}
	key := metricsKey{font: f, size: quantizeSize(size)}
	if m, ok := le.metrics[key]; ok {
		return m
	}
	if le.metrics == nil {
		le.metrics = make(map[metricsKey]Metrics)
	}
	m := f.Metrics(size)
	le.metrics[key] = m
	return m
}

func (le *layoutEngine) layout(b *Block) layoutResult {
	var lines []builtLine
	for _, p := range splitParagraphs(b) {
		lines = append(lines, le.paragraphLines(p, b.opts)...)
	}
	return place(lines, b.opts)
}

// splitParagraphs cuts the block's spans at newlines. Every newline
// terminates a paragraph, so consecutive newlines produce empty ones.
func splitParagraphs(b *Block) []paragraph {
	var paras []paragraph
	var cur paragraph
	haveFallback := false
	for _, sp := range b.spans {
		if sp.style.Font == nil || sp.style.Size <= 0 {
			continue
		}
		text := sp.text
		for {
			idx := strings.IndexByte(text, '\n')
			if idx < 0 {
				break
			}
			if head := text[:idx]; head != "" {
				cur.pieces = append(cur.pieces, span{style: sp.style, text: head})
			}
			if !haveFallback {
				cur.fallback = sp.style
			}
			paras = append(paras, cur)
			cur = paragraph{}
			haveFallback = false
			text = text[idx+1:]
		}
		if text != "" {
			cur.pieces = append(cur.pieces, span{style: sp.style, text: text})
			if !haveFallback {
				cur.fallback = sp.style
				haveFallback = true
			}
		}
	}
	if len(cur.pieces) > 0 {
		paras = append(paras, cur)
	}
	return paras
}

// paragraphLines shapes one paragraph and fills lines greedily.
func (le *layoutEngine) paragraphLines(p paragraph, opts Options) []builtLine {
	var runes []rune
	type styleRange struct {
		style      Style
		start, end int
	}
	var ranges []styleRange
	for _, piece := range p.pieces {
		start := len(runes)
		runes = append(runes, []rune(piece.text)...)
		ranges = append(ranges, styleRange{style: piece.style, start: start, end: len(runes)})
	}
	if len(runes) == 0 {
		return []builtLine{le.buildLine(nil, p.fallback, opts)}
	}

	levels := bidiLevels(string(runes), len(runes))

	// Runs are maximal same-style, same-direction slices in logical
	// order. HarfBuzz reverses glyphs inside right-to-left runs.
	var tokens []token
	for _, sr := range ranges {
		i := sr.start
		for i < sr.end {
			j := i + 1
			for j < sr.end && levels[j] == levels[i] {
				j++
			}
			tokens = append(tokens, le.runTokens(sr.style, runes[i:j], levels[i]%2 == 1, opts.Wrap)...)
			i = j
		}
	}
	if len(tokens) == 0 {
		return []builtLine{le.buildLine(nil, p.fallback, opts)}
	}
	return le.fillLines(tokens, p.fallback, opts)
}

// bidiLevels returns the embedding level parity per rune, 0 for
// left-to-right and 1 for right-to-left.
func bidiLevels(text string, runeCount int) []int {
	levels := make([]int, runeCount)
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return levels
	}
	ordering, err := p.Order()
	if err != nil {
		return levels
	}
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		start, end := run.Pos()
		level := 0
		if run.Direction() == bidi.RightToLeft {
			level = 1
		}
		for j := start; j <= end && j < runeCount; j++ {
			levels[j] = level
		}
	}
	return levels
}

// runTokens shapes one run and groups its glyphs into wrap tokens.
func (le *layoutEngine) runTokens(st Style, runes []rune, rtl bool, mode WrapMode) []token {
	shaped := shapeRun(&le.shaper, st.Font, st.Size, runes, rtl)
	if len(shaped) == 0 {
		return nil
	}

	var starts []int
	if mode == WrapChar {
		for i := range runes {
			starts = append(starts, i)
		}
	} else {
		starts = append(starts, 0)
		breaks := breakOpportunities(runes)
		for i := 1; i < len(runes); i++ {
			if breaks[i] {
				starts = append(starts, i)
			}
		}
	}

	wordOf := make([]int, len(runes))
	for w := range starts {
		end := len(runes)
		if w+1 < len(starts) {
			end = starts[w+1]
		}
		for i := starts[w]; i < end; i++ {
			wordOf[i] = w
		}
	}

	words := make([]token, len(starts))
	for w := range words {
		words[w].style = st
	}
	for _, g := range shaped {
		c := g.cluster
		if c < 0 {
			c = 0
		} else if c >= len(runes) {
			c = len(runes) - 1
		}
		w := wordOf[c]
		words[w].glyphs = append(words[w].glyphs, g)
		words[w].width += g.xAdvance
	}

	out := words[:0]
	for w := range words {
		if len(words[w].glyphs) == 0 {
			continue
		}
		start := starts[w]
		end := len(runes)
		if w+1 < len(starts) {
			end = starts[w+1]
		}
		words[w].trim = trimWidth(words[w], runes, start, end)
		out = append(out, words[w])
	}
	return out
}

// trimWidth is the token width without its trailing space advances.
func trimWidth(t token, runes []rune, start, end int) float32 {
	tail := end
	for tail > start && classifyRune(runes[tail-1]) == breakSpace {
		tail--
	}
	if tail == end {
		return t.width
	}
	trimmed := t.width
	for _, g := range t.glyphs {
		if g.cluster >= tail {
			trimmed -= g.xAdvance
		}
	}
	return trimmed
}

// fillLines assigns tokens to lines greedily. The fit test ignores a
// token's trailing spaces so they overhang instead of wrapping.
func (le *layoutEngine) fillLines(tokens []token, fallback Style, opts Options) []builtLine {
	wrapping := opts.Wrap != WrapNone && opts.MaxWidth > 0
	var lines []builtLine
	var cur []token
	var curWidth float32

	flush := func() {
		lines = append(lines, le.buildLine(cur, fallback, opts))
		cur = nil
		curWidth = 0
	}
	push := func(t token) {
		if wrapping && len(cur) > 0 && curWidth+t.trim > opts.MaxWidth {
			flush()
		}
		cur = append(cur, t)
		curWidth += t.width
	}

	for _, t := range tokens {
		if wrapping && opts.Wrap == WrapWordChar && t.trim > opts.MaxWidth {
			for _, frag := range splitToken(t, opts.MaxWidth) {
				push(frag)
			}
			continue
		}
		push(t)
	}
	flush()
	return lines
}

// splitToken cuts an oversized token at cluster boundaries so each
// fragment fits maxWidth. A fragment always keeps at least one
// cluster, so progress is guaranteed.
func splitToken(t token, maxWidth float32) []token {
	var out []token
	cur := token{style: t.style}
	for i := 0; i < len(t.glyphs); {
		j := i + 1
		for j < len(t.glyphs) && t.glyphs[j].cluster == t.glyphs[i].cluster {
			j++
		}
		var groupWidth float32
		for _, g := range t.glyphs[i:j] {
			groupWidth += g.xAdvance
		}
		if len(cur.glyphs) > 0 && cur.width+groupWidth > maxWidth {
			cur.trim = cur.width
			out = append(out, cur)
			cur = token{style: t.style}
		}
		cur.glyphs = append(cur.glyphs, t.glyphs[i:j]...)
		cur.width += groupWidth
		i = j
	}
	if len(cur.glyphs) > 0 {
		cur.trim = cur.width
		out = append(out, cur)
	}
	return out
}

// buildLine computes the metrics of one line. An empty token list
// produces a blank line sized by the fallback style.
func (le *layoutEngine) buildLine(tokens []token, fallback Style, opts Options) builtLine {
	var ascent, descent, gap float32
	if len(tokens) == 0 {
		m := le.fontMetrics(fallback.Font, fallback.Size)
		ascent, descent, gap = m.Ascent, m.Descent, m.LineGap
	} else {
		for _, t := range tokens {
			m := le.fontMetrics(t.style.Font, t.style.Size)
			ascent = max(ascent, m.Ascent)
			descent = max(descent, m.Descent)
			gap = max(gap, m.LineGap)
		}
	}
	mult := opts.LineHeight
	if mult <= 0 {
		mult = 1
	}
	var width float32
	for i, t := range tokens {
		if i == len(tokens)-1 {
			width += t.trim
		} else {
			width += t.width
		}
	}
	return builtLine{
		tokens:  tokens,
		width:   width,
		ascent:  ascent,
		advance: (ascent + descent + gap) * mult,
	}
}

// place stacks lines top to bottom and applies alignment. The returned
// extents are the content size, independent of alignment offsets.
func place(lines []builtLine, opts Options) layoutResult {
	var contentWidth, contentHeight float32
	for _, ln := range lines {
		contentWidth = max(contentWidth, ln.width)
		contentHeight += ln.advance
	}

	frameWidth := opts.MaxWidth
	if frameWidth <= 0 {
		frameWidth = contentWidth
	}
	hf := opts.Horizontal.factor()

	var y float32
	if opts.MaxHeight > 0 {
		y = (opts.MaxHeight - contentHeight) * opts.Vertical.factor()
	}

	var glyphs []layoutGlyph
	for _, ln := range lines {
		baseline := y + ln.ascent
		pen := (frameWidth - ln.width) * hf
		for _, t := range ln.tokens {
			for _, g := range t.glyphs {
				glyphs = append(glyphs, layoutGlyph{
					font:  t.style.Font,
					gid:   g.gid,
					size:  t.style.Size,
					color: t.style.Color,
					x:     pen + g.xOffset,
					y:     baseline + g.yOffset,
				})
				pen += g.xAdvance
			}
		}
		y += ln.advance
	}
	return layoutResult{glyphs: glyphs, width: contentWidth, height: contentHeight}
}
