package ember

import "testing"

func testState(material MaterialID) RenderState {
	return RenderState{Material: material, Blend: BlendAlpha}
}

func TestStreamQuad(t *testing.T) {
	s := NewStream[Vertex](16)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})

	if got := len(s.Vertices()); got != 4 {
		t.Fatalf("vertex count = %d, want 4", got)
	}
	want := []Triangle{{A: 0, B: 1, C: 2}, {A: 2, B: 3, C: 0}}
	got := s.Triangles()
	if len(got) != len(want) {
		t.Fatalf("triangle count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStreamSecondQuadOffsets(t *testing.T) {
	s := NewStream[Vertex](16)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	s.Quad([4]Vertex{V(2, 0), V(3, 0), V(3, 1), V(2, 1)})

	got := s.Triangles()
	want := []Triangle{
		{A: 0, B: 1, C: 2}, {A: 2, B: 3, C: 0},
		{A: 4, B: 5, C: 6}, {A: 6, B: 7, C: 4},
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStreamTriangleFan(t *testing.T) {
	s := NewStream[Vertex](16)
	s.TriangleFan([]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1), V(-1, 1)})

	want := []Triangle{
		{A: 0, B: 1, C: 2},
		{A: 0, B: 2, C: 3},
		{A: 0, B: 3, C: 4},
	}
	got := s.Triangles()
	if len(got) != len(want) {
		t.Fatalf("fan of 5 vertices: triangle count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStreamTriangleFanTooFewVertices(t *testing.T) {
	s := NewStream[Vertex](16)
	s.TriangleFan([]Vertex{V(0, 0), V(1, 0)})
	if got := len(s.Triangles()); got != 0 {
		t.Errorf("fan of 2 vertices: triangle count = %d, want 0", got)
	}
	if got := len(s.Vertices()); got != 2 {
		t.Errorf("fan of 2 vertices: vertex count = %d, want 2", got)
	}
}

func TestStreamTriangleStrip(t *testing.T) {
	s := NewStream[Vertex](16)
	s.TriangleStrip([]Vertex{V(0, 0), V(0, 1), V(1, 0), V(1, 1)})

	// Every second triangle flips winding.
	want := []Triangle{
		{A: 0, B: 1, C: 2},
		{A: 2, B: 1, C: 3},
	}
	got := s.Triangles()
	if len(got) != len(want) {
		t.Fatalf("strip of 4 vertices: triangle count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestStreamExtendShiftsRelativeTriangles(t *testing.T) {
	s := NewStream[Vertex](16)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	s.Extend(
		[]Vertex{V(5, 5), V(6, 5), V(6, 6)},
		[]Triangle{{A: 0, B: 1, C: 2}},
	)

	got := s.Triangles()
	last := got[len(got)-1]
	want := Triangle{A: 4, B: 5, C: 6}
	if last != want {
		t.Errorf("extended triangle = %+v, want %+v", last, want)
	}
}

func TestStreamBatchProtocol(t *testing.T) {
	s := NewStream[Vertex](16)
	a := testState(1)
	b := testState(2)

	s.BatchOptimized(a)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	s.BatchOptimized(a) // same state, must extend
	s.Quad([4]Vertex{V(2, 0), V(3, 0), V(3, 1), V(2, 1)})
	s.BatchOptimized(b) // state change, closes the first batch
	s.Quad([4]Vertex{V(4, 0), V(5, 0), V(5, 1), V(4, 1)})
	s.BatchEnd()

	batches := s.Batches()
	if len(batches) != 2 {
		t.Fatalf("batch count = %d, want 2", len(batches))
	}
	if batches[0].State != a || batches[0].Start != 0 || batches[0].End != 4 {
		t.Errorf("batch 0 = %+v, want state a over triangles [0,4)", batches[0])
	}
	if batches[1].State != b || batches[1].Start != 4 || batches[1].End != 6 {
		t.Errorf("batch 1 = %+v, want state b over triangles [4,6)", batches[1])
	}
}

func TestStreamBatchForcesSplit(t *testing.T) {
	s := NewStream[Vertex](16)
	a := testState(1)

	s.Batch(a)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	s.Batch(a) // identical state, split anyway
	s.Quad([4]Vertex{V(2, 0), V(3, 0), V(3, 1), V(2, 1)})
	s.BatchEnd()

	if got := len(s.Batches()); got != 2 {
		t.Errorf("forced batch count = %d, want 2", got)
	}
}

func TestStreamBatchEndWithoutBatches(t *testing.T) {
	s := NewStream[Vertex](16)
	s.BatchEnd() // must not panic
	if got := len(s.Batches()); got != 0 {
		t.Errorf("batch count = %d, want 0", got)
	}
}

func TestStreamCoverageExact(t *testing.T) {
	// Batch ranges must tile the triangle storage exactly: no gap, no
	// overlap, in order.
	s := NewStream[Vertex](16)
	states := []RenderState{testState(1), testState(1), testState(2), testState(3), testState(3)}
	for _, st := range states {
		s.BatchOptimized(st)
		s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	}
	s.BatchEnd()

	cursor := 0
	for i, batch := range s.Batches() {
		if batch.Start != cursor {
			t.Errorf("batch %d starts at %d, want %d", i, batch.Start, cursor)
		}
		if batch.End < batch.Start {
			t.Errorf("batch %d has negative range %+v", i, batch)
		}
		cursor = batch.End
	}
	if cursor != len(s.Triangles()) {
		t.Errorf("batches cover %d triangles, want %d", cursor, len(s.Triangles()))
	}
}

func TestStreamAppendFixesOffsets(t *testing.T) {
	live := NewStream[Vertex](16)
	live.BatchOptimized(testState(1))
	live.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	live.BatchEnd()

	recorded := live.Fork()
	recorded.BatchOptimized(testState(2))
	recorded.Quad([4]Vertex{V(9, 9), V(10, 9), V(10, 10), V(9, 10)})
	recorded.BatchEnd()

	live.Append(recorded)

	if got := len(recorded.Vertices()); got != 0 {
		t.Errorf("source vertex count after Append = %d, want 0 (drained)", got)
	}
	batches := live.Batches()
	if len(batches) != 2 {
		t.Fatalf("batch count = %d, want 2", len(batches))
	}
	if batches[1].Start != 2 || batches[1].End != 4 {
		t.Errorf("appended batch range = [%d,%d), want [2,4)", batches[1].Start, batches[1].End)
	}
	tris := live.Triangles()
	if tris[2] != (Triangle{A: 4, B: 5, C: 6}) {
		t.Errorf("appended triangle = %+v, want indices shifted by 4", tris[2])
	}
}

func TestStreamAppendClonedKeepsSource(t *testing.T) {
	live := NewStream[Vertex](16)
	recorded := live.Fork()
	recorded.BatchOptimized(testState(2))
	recorded.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	recorded.BatchEnd()

	live.AppendCloned(recorded)
	live.AppendCloned(recorded)

	if got := len(recorded.Vertices()); got != 4 {
		t.Errorf("source vertex count after AppendCloned = %d, want 4", got)
	}
	if got := len(live.Vertices()); got != 8 {
		t.Errorf("live vertex count = %d, want 8", got)
	}
	batches := live.Batches()
	if len(batches) != 2 || batches[1].Start != 2 || batches[1].End != 4 {
		t.Errorf("second clone batches = %+v, want second range [2,4)", batches)
	}
}

func TestStreamClearRetainsCapacity(t *testing.T) {
	s := NewStream[Vertex](8)
	for range 100 {
		s.BatchOptimized(testState(1))
		s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	}
	vcap := s.VertexCapacity()
	tcap := s.TriangleCapacity()

	s.Clear()

	if got := len(s.Vertices()); got != 0 {
		t.Errorf("vertex count after Clear = %d, want 0", got)
	}
	if got := len(s.Triangles()); got != 0 {
		t.Errorf("triangle count after Clear = %d, want 0", got)
	}
	if got := len(s.Batches()); got != 0 {
		t.Errorf("batch count after Clear = %d, want 0", got)
	}
	if got := s.VertexCapacity(); got != vcap {
		t.Errorf("vertex capacity after Clear = %d, want %d", got, vcap)
	}
	if got := s.TriangleCapacity(); got != tcap {
		t.Errorf("triangle capacity after Clear = %d, want %d", got, tcap)
	}
}

func TestStreamTransformed(t *testing.T) {
	s := NewStream[Vertex](16)
	s.Quad([4]Vertex{V(100, 100), V(101, 100), V(101, 101), V(100, 101)})
	s.Transformed(func(s *Stream[Vertex]) {
		s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})
	}, func(v *Vertex) {
		v.Position[0] += 10
		v.Position[1] += 20
	})

	// Vertices appended before Transformed stay put.
	if got := s.Vertices()[0].Position; got != [2]float32{100, 100} {
		t.Errorf("pre-existing vertex = %v, want {100 100}", got)
	}
	// Vertices appended inside are shifted.
	if got := s.Vertices()[4].Position; got != [2]float32{10, 20} {
		t.Errorf("transformed vertex = %v, want {10 20}", got)
	}
}

func TestStreamForkIsEmptyWithSameChunk(t *testing.T) {
	s := NewStream[Vertex](64)
	s.Quad([4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)})

	f := s.Fork()
	if got := len(f.Vertices()); got != 0 {
		t.Errorf("fork vertex count = %d, want 0", got)
	}
	if got := f.VertexCapacity(); got != 64 {
		t.Errorf("fork vertex capacity = %d, want 64", got)
	}
}

func BenchmarkStreamQuads(b *testing.B) {
	s := NewStream[Vertex](DefaultChunkSize)
	state := testState(1)
	corners := [4]Vertex{V(0, 0), V(1, 0), V(1, 1), V(0, 1)}
	b.ReportAllocs()
	for b.Loop() {
		s.Clear()
		for range 1000 {
			s.BatchOptimized(state)
			s.Quad(corners)
		}
		s.BatchEnd()
	}
}
