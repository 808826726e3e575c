package text

import "unicode"

// WrapMode specifies how text is wrapped when it exceeds the maximum
// width of a block.
type WrapMode uint8

const (
	// WrapWordChar breaks at word boundaries first, then falls back
	// to character boundaries for words longer than a line. This is
	// the default mode.
	WrapWordChar WrapMode = iota

	// WrapNone disables wrapping; lines may exceed MaxWidth.
	WrapNone

	// WrapWord breaks at word boundaries only. Long words overflow.
	WrapWord

	// WrapChar breaks at character boundaries.
	WrapChar
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapWordChar:
		return "WordChar"
	case WrapNone:
		return "None"
	case WrapWord:
		return "Word"
	case WrapChar:
		return "Char"
	default:
		return "Unknown"
	}
}

// breakClass is a collapsed UAX #14 line breaking class. Only the
// classes that change greedy wrapping behavior are distinguished.
type breakClass uint8

const (
	breakOther breakClass = iota
	breakSpace
	breakHyphen
	breakIdeographic
)

// classifyRune returns the break class of a rune.
func classifyRune(r rune) breakClass {
	switch r {
	case ' ', '\t', '\u200b': // zero width space
		return breakSpace
	case '-', '\u2010': // hyphen
		return breakHyphen
	case '\u00a0', '\u2011':
		// Non-breaking space and hyphen glue their neighbors.
		return breakOther
	}
	if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
		return breakIdeographic
	}
	if unicode.IsSpace(r) {
		return breakSpace
	}
	return breakOther
}

// breakOpportunities marks the rune indices a line may break before.
// Index 0 is never an opportunity. A break is allowed after spaces and
// hyphens and on both sides of ideographs.
func breakOpportunities(runes []rune) []bool {
	breaks := make([]bool, len(runes))
	for i := 1; i < len(runes); i++ {
		switch classifyRune(runes[i-1]) {
		case breakSpace, breakHyphen, breakIdeographic:
			breaks[i] = true
			continue
		}
		if classifyRune(runes[i]) == breakIdeographic {
			breaks[i] = true
		}
	}
	return breaks
}
