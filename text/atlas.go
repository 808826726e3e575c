package text

import "fmt"

// AtlasConfig sizes the glyph atlas. Pages are fixed-size coverage
// bitmaps; each page becomes one layer of the font texture array.
type AtlasConfig struct {
	// PageWidth and PageHeight are the page dimensions in pixels.
	PageWidth  int
	PageHeight int
	// Padding is the gap between packed glyphs, keeping linear
	// filtering from bleeding neighbors.
	Padding int
	// MaxPages bounds the texture array depth.
	MaxPages int
}

// DefaultAtlasConfig returns the config used by NewRenderer.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		PageWidth:  1024,
		PageHeight: 1024,
		Padding:    1,
		MaxPages:   8,
	}
}

// sizeQuantum is the number of size buckets per pixel. Rasterized
// glyphs are keyed on quarter-pixel sizes so nearby float sizes share
// atlas slots.
const sizeQuantum = 4

func quantizeSize(size float32) int32 {
	return int32(size*sizeQuantum + 0.5)
}

func unquantizeSize(q int32) float32 {
	return float32(q) / sizeQuantum
}

// glyphKey identifies one rasterized glyph in the atlas.
type glyphKey struct {
	font *Font
	gid  uint16
	size int32
}

// Slot is the atlas placement of one rasterized glyph. U and V are
// normalized texture coordinates of the glyph rectangle on its page.
// Left and Top are the bearing from the pen position at the baseline
// to the top-left corner of the rectangle, y-down.
type Slot struct {
	Page   int
	X, Y   int
	Width  int
	Height int
	U0, V0 float32
	U1, V1 float32
	Left   float32
	Top    float32
	// Advance is the unhinted horizontal advance recorded at
	// rasterization time. Layout uses shaped advances; this one is
	// informational.
	Advance float32
}

// Atlas stores rasterized glyph coverage in shelf-packed pages. Glyphs
// persist across frames; pages only grow until Reset.
type Atlas struct {
	config  AtlasConfig
	packers []*shelfPacker
	pages   [][]byte
	slots   map[glyphKey]Slot
}

// NewAtlas creates an atlas. Zero config fields fall back to the
// defaults.
func NewAtlas(config AtlasConfig) *Atlas {
	def := DefaultAtlasConfig()
	if config.PageWidth <= 0 {
		config.PageWidth = def.PageWidth
	}
	if config.PageHeight <= 0 {
		config.PageHeight = def.PageHeight
	}
	if config.Padding < 0 {
		config.Padding = def.Padding
	}
	if config.MaxPages <= 0 {
		config.MaxPages = def.MaxPages
	}
	return &Atlas{
		config: config,
		slots:  make(map[glyphKey]Slot),
	}
}

// lookup returns the slot for a key, if already packed.
func (a *Atlas) lookup(key glyphKey) (Slot, bool) {
	slot, ok := a.slots[key]
	return slot, ok
}

// insert packs a rasterized glyph and blits its coverage into a page.
// Empty images are recorded with a zero-size slot so repeated lookups
// skip rasterization.
func (a *Atlas) insert(key glyphKey, img glyphImage) (Slot, error) {
	if img.width <= 0 || img.height <= 0 {
		slot := Slot{Page: -1, Advance: img.advance}
		a.slots[key] = slot
		return slot, nil
	}
	if img.width+a.config.Padding > a.config.PageWidth ||
		img.height+a.config.Padding > a.config.PageHeight {
		return Slot{}, fmt.Errorf("text: glyph %dx%d on page %dx%d: %w",
			img.width, img.height, a.config.PageWidth, a.config.PageHeight, ErrGlyphTooLarge)
	}

	page, x, y, ok := a.pack(img.width, img.height)
	if !ok {
		return Slot{}, fmt.Errorf("text: %d pages of %dx%d: %w",
			a.config.MaxPages, a.config.PageWidth, a.config.PageHeight, ErrAtlasFull)
	}

	dst := a.pages[page]
	for row := 0; row < img.height; row++ {
		copy(dst[(y+row)*a.config.PageWidth+x:], img.data[row*img.width:(row+1)*img.width])
	}

	pw := float32(a.config.PageWidth)
	ph := float32(a.config.PageHeight)
	slot := Slot{
		Page:    page,
		X:       x,
		Y:       y,
		Width:   img.width,
		Height:  img.height,
		U0:      float32(x) / pw,
		V0:      float32(y) / ph,
		U1:      float32(x+img.width) / pw,
		V1:      float32(y+img.height) / ph,
		Left:    img.left,
		Top:     img.top,
		Advance: img.advance,
	}
	a.slots[key] = slot
	return slot, nil
}

// pack finds room on an existing page or opens a new one.
func (a *Atlas) pack(w, h int) (page, x, y int, ok bool) {
	for i, p := range a.packers {
		if x, y, ok := p.allocate(w, h); ok {
			return i, x, y, true
		}
	}
	if len(a.packers) >= a.config.MaxPages {
		return 0, 0, 0, false
	}
	packer := newShelfPacker(a.config.PageWidth, a.config.PageHeight, a.config.Padding)
	x, y, ok = packer.allocate(w, h)
	if !ok {
		return 0, 0, 0, false
	}
	a.packers = append(a.packers, packer)
	a.pages = append(a.pages, make([]byte, a.config.PageWidth*a.config.PageHeight))
	return len(a.packers) - 1, x, y, true
}

// Reset drops every glyph but keeps page memory for reuse.
func (a *Atlas) Reset() {
	for i, p := range a.packers {
		p.reset()
		data := a.pages[i]
		for j := range data {
			data[j] = 0
		}
	}
	clear(a.slots)
}

// Size returns the page dimensions and the number of allocated pages.
// A fresh atlas reports zero pages.
func (a *Atlas) Size() (width, height, pages int) {
	return a.config.PageWidth, a.config.PageHeight, len(a.pages)
}

// Config returns the atlas configuration after defaulting.
func (a *Atlas) Config() AtlasConfig {
	return a.config
}

// GlyphCount returns the number of cached glyphs, including empty
// ones such as spaces.
func (a *Atlas) GlyphCount() int {
	return len(a.slots)
}

// Page returns the coverage bitmap of one page, one byte per pixel in
// row-major order. The slice aliases atlas memory and is valid until
// the next insert or Reset.
func (a *Atlas) Page(i int) []byte {
	if i < 0 || i >= len(a.pages) {
		return nil
	}
	return a.pages[i]
}

// Image returns a copy of all pages concatenated, page-major. Useful
// for debugging and for backends that upload the whole array at once.
func (a *Atlas) Image() []byte {
	out := make([]byte, 0, len(a.pages)*a.config.PageWidth*a.config.PageHeight)
	for _, p := range a.pages {
		out = append(out, p...)
	}
	return out
}

// AppendPageRGBA appends one page expanded to RGBA with white color
// channels and coverage in alpha, the layout texture uploads expect.
func (a *Atlas) AppendPageRGBA(dst []byte, i int) []byte {
	if i < 0 || i >= len(a.pages) {
		return dst
	}
	for _, c := range a.pages[i] {
		dst = append(dst, 255, 255, 255, c)
	}
	return dst
}

// Utilization returns the used fraction of the allocated page area.
func (a *Atlas) Utilization() float64 {
	if len(a.packers) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range a.packers {
		sum += p.utilization()
	}
	return sum / float64(len(a.packers))
}
