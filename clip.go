package ember

// Clip is an axis-aligned scissor rectangle in target pixel coordinates.
//
// The zero value means "no clipping". Active clips with zero area are
// legal: geometry under them still produces draw commands, and the
// backend scissors them to nothing. Inactive clips are normalized to
// the zero value so that comparing RenderState with == treats every
// unclipped state as identical.
type Clip struct {
	X, Y          int32
	Width, Height int32
	Active        bool
}

// ClipRect creates an active clip covering the given pixel rectangle.
// Negative sizes are clamped to zero.
func ClipRect(x, y, width, height int32) Clip {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Clip{X: x, Y: y, Width: width, Height: height, Active: true}
}

// IsEmpty reports whether the clip is active but covers no pixels.
func (c Clip) IsEmpty() bool {
	return c.Active && (c.Width == 0 || c.Height == 0)
}

// Intersect combines two clips. An inactive side passes the other
// through unchanged. A disjoint intersection yields an active clip of
// zero area anchored at the nearest shared edge, never an inactive one.
func (c Clip) Intersect(other Clip) Clip {
	if !c.Active {
		return other.normalize()
	}
	if !other.Active {
		return c.normalize()
	}

	x0 := max(c.X, other.X)
	y0 := max(c.Y, other.Y)
	x1 := min(c.X+c.Width, other.X+other.Width)
	y1 := min(c.Y+c.Height, other.Y+other.Height)

	w := x1 - x0
	if w < 0 {
		w = 0
	}
	h := y1 - y0
	if h < 0 {
		h = 0
	}
	return Clip{X: x0, Y: y0, Width: w, Height: h, Active: true}
}

// normalize zeroes the coordinate fields of an inactive clip so that
// all unclipped values compare equal.
func (c Clip) normalize() Clip {
	if !c.Active {
		return Clip{}
	}
	return c
}
