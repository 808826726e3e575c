package ember

// Triangle is one index triple into a vertex array.
type Triangle struct {
	A, B, C uint32
}

// Offset returns the triangle with all three indices shifted by o.
// Emitters build triangles relative to their own vertices and shift
// them to the stream position at append time.
func (t Triangle) Offset(o uint32) Triangle {
	return Triangle{A: t.A + o, B: t.B + o, C: t.C + o}
}
