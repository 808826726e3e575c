package text

import (
	"bytes"
	"math"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/ember/internal/cache"
)

// shapeFont aliases the typesetting font type so the rest of the
// package can hold one without importing two packages named font.
type shapeFont = font.Font

// parseShapeFont parses font data for the shaping path. The returned
// Font is read-only and safe for concurrent use; a fresh Face wraps
// it on every shaping call.
func parseShapeFont(data []byte) (*shapeFont, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
}

// shapedGlyph is one glyph produced by shaping, with offsets and
// advances converted to pixels. Cluster is the rune index within the
// shaped run, used to map break opportunities back onto glyphs.
type shapedGlyph struct {
	gid      uint16
	cluster  int
	xOffset  float32
	yOffset  float32
	xAdvance float32
}

// shapeKey identifies a shaped run. The size is stored as float bits
// so the key stays comparable without float equality pitfalls.
type shapeKey struct {
	font *Font
	size uint32
	rtl  bool
	text string
}

// shapedRuns caches shaping output process-wide. Shaping dominates
// layout cost and interface text repeats across frames, so renderers
// on any goroutine share one cache. Cached slices are read-only.
var shapedRuns = cache.New[shapeKey, []shapedGlyph](cache.DefaultCapacity, func(k shapeKey) uint64 {
	h := cache.StringHasher(k.text) ^ uint64(k.size)
	if k.rtl {
		h = ^h
	}
	return h
})

// shapeRun shapes a run of runes with a single font, size and
// direction, consulting the shared cache first. Glyphs come back in
// visual order; for right-to-left runs that is the reverse of the
// logical rune order. Callers must not modify the returned slice.
func shapeRun(shaper *shaping.HarfbuzzShaper, f *Font, size float32, runes []rune, rtl bool) []shapedGlyph {
	if len(runes) == 0 || f == nil {
		return nil
	}
	key := shapeKey{font: f, size: math.Float32bits(size), rtl: rtl, text: string(runes)}
	return shapedRuns.GetOrCreate(key, func() []shapedGlyph {
		return shapeUncached(shaper, f, size, runes, rtl)
	})
}

func shapeUncached(shaper *shaping.HarfbuzzShaper, f *Font, size float32, runes []rune, rtl bool) []shapedGlyph {
	dir := di.DirectionLTR
	if rtl {
		dir = di.DirectionRTL
	}

	// font.Face is not safe for concurrent use; font.NewFace is cheap
	// and wraps the shared read-only Font.
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(f.shape),
		Size:      toFixed(size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	output := shaper.Shape(input)

	glyphs := make([]shapedGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		glyphs[i] = shapedGlyph{
			gid:      uint16(g.GlyphID),
			cluster:  g.ClusterIndex,
			xOffset:  fromFixed(g.XOffset),
			yOffset:  -fromFixed(g.YOffset),
			xAdvance: fromFixed(g.XAdvance),
		}
	}
	return glyphs
}

// detectScript returns the script of the first non-space rune. Mixed
// script text should be split into runs before shaping.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
