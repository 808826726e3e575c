package ember

import "slices"

// DefaultChunkSize is the reservation step for stream storage growth.
const DefaultChunkSize = 1024

// Batch binds a RenderState to a contiguous run of triangles.
// Start and End are triangle indices into the owning stream; the last
// batch stays open (End lags the triangle cursor) until the next batch
// boundary or BatchEnd closes it.
type Batch struct {
	State RenderState
	Start int
	End   int
}

// Stream accumulates vertices, triangles and batches for one frame.
//
// Storage grows in fixed chunks and is retained across Clear, so a
// stream that has reached its steady-state size stops allocating.
// Triangles hold absolute vertex indices; batches hold triangle ranges.
// A Stream is not safe for concurrent use.
type Stream[V any] struct {
	vertices  []V
	triangles []Triangle
	batches   []Batch
	chunkSize int
}

// NewStream creates a stream that grows its storage by chunkSize
// elements at a time. A non-positive chunkSize falls back to
// DefaultChunkSize.
func NewStream[V any](chunkSize int) *Stream[V] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Stream[V]{
		vertices:  make([]V, 0, chunkSize),
		triangles: make([]Triangle, 0, chunkSize),
		batches:   make([]Batch, 0, chunkSize),
		chunkSize: chunkSize,
	}
}

// Fork returns a new empty stream with the same growth configuration.
// Recording layers build geometry in a fork and splice it back with
// Append.
func (s *Stream[V]) Fork() *Stream[V] {
	return NewStream[V](s.chunkSize)
}

// Transformed runs f, then applies t to every vertex f appended.
func (s *Stream[V]) Transformed(f func(*Stream[V]), t func(*V)) *Stream[V] {
	start := len(s.vertices)
	f(s)
	for i := start; i < len(s.vertices); i++ {
		t(&s.vertices[i])
	}
	return s
}

// Triangle appends three vertices and one triangle covering them.
func (s *Stream[V]) Triangle(vertices [3]V) *Stream[V] {
	s.ensureCapacity()
	offset := uint32(len(s.vertices))
	s.vertices = append(s.vertices, vertices[:]...)
	s.triangles = append(s.triangles, Triangle{A: 0, B: 1, C: 2}.Offset(offset))
	return s
}

// TriangleFan appends the vertices and fans triangles out from the
// first one. Fewer than three vertices append no triangles.
func (s *Stream[V]) TriangleFan(vertices []V) *Stream[V] {
	s.ensureCapacity()
	start := uint32(len(s.vertices))
	s.vertices = append(s.vertices, vertices...)
	end := uint32(len(s.vertices))
	if end-start < 3 {
		return s
	}
	for offset := start + 1; offset+1 < end; offset++ {
		s.triangles = append(s.triangles, Triangle{A: start, B: offset, C: offset + 1})
	}
	return s
}

// TriangleStrip appends the vertices and connects each consecutive
// triple, flipping the winding of every second triangle. Fewer than
// three vertices append no triangles.
func (s *Stream[V]) TriangleStrip(vertices []V) *Stream[V] {
	s.ensureCapacity()
	start := uint32(len(s.vertices))
	s.vertices = append(s.vertices, vertices...)
	end := uint32(len(s.vertices))
	if end-start < 3 {
		return s
	}
	flip := false
	for offset := start; offset+2 < end; offset++ {
		if flip {
			s.triangles = append(s.triangles, Triangle{A: offset + 1, B: offset, C: offset + 2})
		} else {
			s.triangles = append(s.triangles, Triangle{A: offset, B: offset + 1, C: offset + 2})
		}
		flip = !flip
	}
	return s
}

// Quad appends four corner vertices and the two triangles covering
// them. Corners are given in winding order.
func (s *Stream[V]) Quad(vertices [4]V) *Stream[V] {
	s.ensureCapacity()
	offset := uint32(len(s.vertices))
	s.vertices = append(s.vertices, vertices[:]...)
	s.triangles = append(s.triangles,
		Triangle{A: 0, B: 1, C: 2}.Offset(offset),
		Triangle{A: 2, B: 3, C: 0}.Offset(offset),
	)
	return s
}

// Extend appends vertices together with triangles indexed relative to
// them. The triangles are shifted to the stream position of the first
// appended vertex.
func (s *Stream[V]) Extend(vertices []V, triangles []Triangle) *Stream[V] {
	s.ensureCapacity()
	offset := uint32(len(s.vertices))
	s.vertices = append(s.vertices, vertices...)
	for _, triangle := range triangles {
		s.triangles = append(s.triangles, triangle.Offset(offset))
	}
	return s
}

// ExtendVertices appends raw vertices without touching triangles.
// Callers are responsible for keeping the stream consistent.
func (s *Stream[V]) ExtendVertices(vertices []V) *Stream[V] {
	s.vertices = append(s.vertices, vertices...)
	return s
}

// ExtendTriangles appends raw triangles. With relative set, indices are
// shifted by the current vertex count first. Callers are responsible
// for keeping every index inside the vertex storage.
func (s *Stream[V]) ExtendTriangles(relative bool, triangles []Triangle) *Stream[V] {
	if relative {
		offset := uint32(len(s.vertices))
		for _, triangle := range triangles {
			s.triangles = append(s.triangles, triangle.Offset(offset))
		}
	} else {
		s.triangles = append(s.triangles, triangles...)
	}
	return s
}

// ExtendBatches appends raw batch records. Callers are responsible for
// keeping ranges inside the triangle storage and non-overlapping.
func (s *Stream[V]) ExtendBatches(batches []Batch) *Stream[V] {
	s.batches = append(s.batches, batches...)
	return s
}

// Append moves the entire contents of other into s, shifting triangle
// indices and batch ranges to their new positions. other is left empty
// with its capacity intact.
func (s *Stream[V]) Append(other *Stream[V]) {
	offset := len(s.triangles)
	s.Extend(other.vertices, other.triangles)
	for _, batch := range other.batches {
		batch.Start += offset
		batch.End += offset
		s.batches = append(s.batches, batch)
	}
	other.vertices = other.vertices[:0]
	other.triangles = other.triangles[:0]
	other.batches = other.batches[:0]
}

// AppendCloned copies the entire contents of other into s, shifting
// triangle indices and batch ranges. other is unchanged.
func (s *Stream[V]) AppendCloned(other *Stream[V]) {
	offset := len(s.triangles)
	s.Extend(other.vertices, other.triangles)
	for _, batch := range other.batches {
		batch.Start += offset
		batch.End += offset
		s.batches = append(s.batches, batch)
	}
}

// Clear empties the stream. Backing storage is retained, so the next
// frame reuses the capacity this one reached.
func (s *Stream[V]) Clear() {
	s.vertices = s.vertices[:0]
	s.triangles = s.triangles[:0]
	s.batches = s.batches[:0]
}

// Batch closes the open batch and opens a new one with the given state
// at the current triangle cursor, regardless of whether the state
// matches.
func (s *Stream[V]) Batch(state RenderState) {
	if len(s.batches) == cap(s.batches) {
		s.batches = slices.Grow(s.batches, s.chunkSize)
	}
	s.BatchEnd()
	start := len(s.triangles)
	s.batches = append(s.batches, Batch{State: state, Start: start, End: start})
}

// BatchOptimized extends the open batch when its state equals the
// given one, and otherwise behaves like Batch. This is the merge point
// that keeps runs of identical state in a single draw.
func (s *Stream[V]) BatchOptimized(state RenderState) {
	if n := len(s.batches); n > 0 && s.batches[n-1].State == state {
		s.batches[n-1].End = len(s.triangles)
		return
	}
	s.Batch(state)
}

// BatchEnd closes the open batch over every triangle appended since it
// was opened. Safe to call with no batches.
func (s *Stream[V]) BatchEnd() {
	if n := len(s.batches); n > 0 {
		s.batches[n-1].End = len(s.triangles)
	}
}

// Vertices returns the vertex storage. The slice aliases the stream;
// callers must not grow it.
func (s *Stream[V]) Vertices() []V { return s.vertices }

// Triangles returns the triangle storage. The slice aliases the
// stream; callers must not grow it.
func (s *Stream[V]) Triangles() []Triangle { return s.triangles }

// Batches returns the batch records. The slice aliases the stream;
// callers must not grow it.
func (s *Stream[V]) Batches() []Batch { return s.batches }

// VertexCapacity returns the current vertex storage capacity.
func (s *Stream[V]) VertexCapacity() int { return cap(s.vertices) }

// TriangleCapacity returns the current triangle storage capacity.
func (s *Stream[V]) TriangleCapacity() int { return cap(s.triangles) }

// ensureCapacity reserves one growth chunk ahead of the write cursors
// so steady-state frames append without reallocating.
func (s *Stream[V]) ensureCapacity() {
	if len(s.vertices) == cap(s.vertices) {
		s.vertices = slices.Grow(s.vertices, s.chunkSize)
	}
	if len(s.triangles) == cap(s.triangles) {
		s.triangles = slices.Grow(s.triangles, s.chunkSize)
	}
}
