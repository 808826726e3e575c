package text

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed font shared across the application. It carries two
// views of the same data: an sfnt font for outline rasterization and a
// shaping font for glyph selection. Both are read-only after parsing,
// so a Font may be used from multiple renderers.
type Font struct {
	name    string
	outline *sfnt.Font
	shape   *shapeFont
}

// LoadFont parses TTF or OTF data. The name identifies the font in a
// Store; when empty, the family name recorded in the font is used.
func LoadFont(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	outline, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font %q: %w", name, err)
	}
	shape, err := parseShapeFont(data)
	if err != nil {
		return nil, fmt.Errorf("text: parse font %q for shaping: %w", name, err)
	}
	if name == "" {
		name = familyName(outline)
	}
	return &Font{name: name, outline: outline, shape: shape}, nil
}

// Name returns the registry name of the font.
func (f *Font) Name() string {
	return f.name
}

// HasGlyph reports whether the font maps the rune to a real glyph.
func (f *Font) HasGlyph(r rune) bool {
	idx, err := f.outline.GlyphIndex(nil, r)
	return err == nil && idx != 0
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.outline.NumGlyphs()
}

// Metrics returns the vertical metrics scaled to the given pixel size.
func (f *Font) Metrics(size float32) Metrics {
	var buf sfnt.Buffer
	m, err := f.outline.Metrics(&buf, fixed.Int26_6(size*64), font.HintingFull)
	if err != nil {
		return Metrics{}
	}
	ascent := fromFixed(m.Ascent)
	descent := fromFixed(m.Descent)
	height := fromFixed(m.Height)
	gap := height - ascent - descent
	if gap < 0 {
		gap = 0
	}
	return Metrics{
		Ascent:     ascent,
		Descent:    descent,
		LineGap:    gap,
		LineHeight: height,
		XHeight:    fromFixed(m.XHeight),
		CapHeight:  fromFixed(m.CapHeight),
	}
}

// Metrics holds vertical font metrics at a specific pixel size.
// Ascent and Descent are positive distances from the baseline.
type Metrics struct {
	Ascent     float32
	Descent    float32
	LineGap    float32
	LineHeight float32
	XHeight    float32
	CapHeight  float32
}

// familyName reads the family name table entry, if present.
func familyName(f *sfnt.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// fromFixed converts a 26.6 fixed-point value to float32.
func fromFixed(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// toFixed converts a float32 to 26.6 fixed point.
func toFixed(v float32) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// Store is a named font registry with stable insertion order, so fonts
// can be addressed either by name or by index.
type Store struct {
	names []string
	fonts []*Font
}

// NewStore creates an empty font registry.
func NewStore() *Store {
	return &Store{}
}

// Insert registers a font under the given name, replacing a previous
// entry with the same name in place. An empty name falls back to the
// font's own name.
func (s *Store) Insert(name string, f *Font) {
	if name == "" {
		name = f.Name()
	}
	for i, n := range s.names {
		if n == name {
			s.fonts[i] = f
			return
		}
	}
	s.names = append(s.names, name)
	s.fonts = append(s.fonts, f)
}

// Remove deletes the named entry and returns the removed font, or nil
// when the name is unknown. The order of the remaining entries is
// preserved.
func (s *Store) Remove(name string) *Font {
	for i, n := range s.names {
		if n == name {
			f := s.fonts[i]
			s.names = append(s.names[:i], s.names[i+1:]...)
			s.fonts = append(s.fonts[:i], s.fonts[i+1:]...)
			return f
		}
	}
	return nil
}

// Get returns the named font, or nil when the name is unknown.
func (s *Store) Get(name string) *Font {
	for i, n := range s.names {
		if n == name {
			return s.fonts[i]
		}
	}
	return nil
}

// IndexOf returns the position of the named entry.
func (s *Store) IndexOf(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// At returns the font at the given index, or nil when out of range.
func (s *Store) At(index int) *Font {
	if index < 0 || index >= len(s.fonts) {
		return nil
	}
	return s.fonts[index]
}

// Len returns the number of registered fonts.
func (s *Store) Len() int {
	return len(s.names)
}

// Names returns the registered names in insertion order.
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Fonts returns the registered fonts in insertion order.
func (s *Store) Fonts() []*Font {
	out := make([]*Font, len(s.fonts))
	copy(out, s.fonts)
	return out
}
