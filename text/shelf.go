package text

// shelfPacker packs rectangles into horizontal shelves. Each shelf has
// a fixed height set by the tallest item placed so far; items go left
// to right until the shelf is full, then a new shelf opens below. Fast
// and close to optimal for the near-uniform heights of glyph masks.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf
	used    int
}

// shelf is a horizontal strip of the page.
type shelf struct {
	y      int // top of the strip
	height int // tallest item so far
	x      int // next free slot
}

func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{width: width, height: height, padding: padding}
}

// allocate finds space for a w by h rectangle. The padding separates
// neighbors; it is not part of the returned position.
func (p *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + p.padding
	paddedH := h + p.padding

	for i := range p.shelves {
		s := &p.shelves[i]
		if s.x+paddedW > p.width {
			continue
		}
		if h > s.height {
			// Taller than the shelf. The last shelf may still grow
			// downward if nothing sits below it.
			if i == len(p.shelves)-1 && s.y+paddedH <= p.height {
				s.height = h
				x, y = s.x, s.y
				s.x += paddedW
				p.used += w * h
				return x, y, true
			}
			continue
		}
		x, y = s.x, s.y
		s.x += paddedW
		p.used += w * h
		return x, y, true
	}

	newY := 0
	if n := len(p.shelves); n > 0 {
		last := p.shelves[n-1]
		newY = last.y + last.height + p.padding
	}
	if newY+paddedH > p.height {
		return -1, -1, false
	}
	p.shelves = append(p.shelves, shelf{y: newY, height: h, x: paddedW})
	p.used += w * h
	return 0, newY, true
}

// reset clears all allocations but keeps the shelf slice capacity.
func (p *shelfPacker) reset() {
	p.shelves = p.shelves[:0]
	p.used = 0
}

// utilization returns the used fraction of the page area.
func (p *shelfPacker) utilization() float64 {
	total := p.width * p.height
	if total <= 0 {
		return 0
	}
	return float64(p.used) / float64(total)
}
