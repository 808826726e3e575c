package ember

import "fmt"

// Engine accumulates draw requests over a frame and compiles them into
// an ordered, minimal draw stream.
//
// The frame protocol is BeginFrame, any number of pushes interleaved
// with transform pushes and pops, EndFrame, Compile, then hand the
// result plus Buffers to a backend. BeginFrame always succeeds and
// abandons whatever came before it, including frames that ended with
// an error, so recovery is simply starting the next frame.
//
// An Engine is single-threaded by contract: one goroutine owns it for
// the duration of a frame. It never locks.
type Engine struct {
	stream     *Stream[Vertex]
	transforms *TransformStack
	opts       engineOptions
	compiled   DrawStream
	open       bool
}

// NewEngine creates an engine with the given options.
func NewEngine(opts ...Option) *Engine {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		stream:     NewStream[Vertex](o.chunkSize),
		transforms: NewTransformStack(),
		opts:       o,
	}
}

// BeginFrame opens a fresh frame. Geometry and batches from the
// previous frame are discarded, storage capacity is retained, the
// transform stack returns to identity and any previously compiled
// stream becomes invalid. It never fails.
func (e *Engine) BeginFrame() {
	e.stream.Clear()
	e.transforms.Reset()
	e.compiled.clear()
	e.open = true
}

// EndFrame closes the frame. After it returns, pushes fail with
// ErrFrameClosed until the next BeginFrame. It reports
// ErrUnbalancedTransformStack when transform pushes and pops did not
// pair up over the frame; the frame is closed either way.
func (e *Engine) EndFrame() error {
	if !e.open {
		return fmt.Errorf("end frame: %w", ErrFrameClosed)
	}
	e.open = false
	e.stream.BatchEnd()
	if !e.transforms.Balanced() {
		depth := e.transforms.Depth()
		e.transforms.Reset()
		return fmt.Errorf("end frame at depth %d: %w", depth, ErrUnbalancedTransformStack)
	}
	Logger().Debug("ember: frame closed",
		"vertices", len(e.stream.Vertices()),
		"triangles", len(e.stream.Triangles()),
		"batches", len(e.stream.Batches()),
	)
	return nil
}

// Push appends transformed geometry under the given render state.
//
// The vertices are copied, transformed by the active stack transform
// composed with local, and appended together with the triangles, whose
// indices refer to this push's vertices only. The state's clip is
// intersected with the active stack clip; if the resulting state
// equals the open batch's state the batch is extended, otherwise a new
// batch starts. A push with no vertices or no triangles is a no-op.
//
// Errors: ErrFrameClosed outside an open frame, ErrInvalidGeometry if
// a triangle indexes past the pushed vertices, ErrCapacityExceeded if
// a configured cap would be passed. A failed push leaves the frame
// exactly as it was.
func (e *Engine) Push(vertices []Vertex, triangles []Triangle, local Matrix, state RenderState) error {
	if !e.open {
		return fmt.Errorf("push: %w", ErrFrameClosed)
	}
	if len(vertices) == 0 || len(triangles) == 0 {
		return nil
	}
	limit := uint32(len(vertices))
	for _, t := range triangles {
		if t.A >= limit || t.B >= limit || t.C >= limit {
			return fmt.Errorf("push: triangle (%d %d %d) outside %d vertices: %w",
				t.A, t.B, t.C, limit, ErrInvalidGeometry)
		}
	}
	if err := e.checkCapacity(len(vertices), len(triangles)); err != nil {
		return err
	}
	e.emit(state, func(s *Stream[Vertex]) {
		s.Extend(vertices, triangles)
	}, local)
	return nil
}

// PushQuad appends one transformed quad. Corners are given in winding
// order.
func (e *Engine) PushQuad(corners [4]Vertex, local Matrix, state RenderState) error {
	if !e.open {
		return fmt.Errorf("push quad: %w", ErrFrameClosed)
	}
	if err := e.checkCapacity(4, 2); err != nil {
		return err
	}
	e.emit(state, func(s *Stream[Vertex]) {
		s.Quad(corners)
	}, local)
	return nil
}

// PushTriangleFan appends the vertices fanned out from the first one.
// Fewer than three vertices are a no-op.
func (e *Engine) PushTriangleFan(vertices []Vertex, local Matrix, state RenderState) error {
	if !e.open {
		return fmt.Errorf("push fan: %w", ErrFrameClosed)
	}
	if len(vertices) < 3 {
		return nil
	}
	if err := e.checkCapacity(len(vertices), len(vertices)-2); err != nil {
		return err
	}
	e.emit(state, func(s *Stream[Vertex]) {
		s.TriangleFan(vertices)
	}, local)
	return nil
}

// PushTriangleStrip appends the vertices as a connected strip.
// Fewer than three vertices are a no-op.
func (e *Engine) PushTriangleStrip(vertices []Vertex, local Matrix, state RenderState) error {
	if !e.open {
		return fmt.Errorf("push strip: %w", ErrFrameClosed)
	}
	if len(vertices) < 3 {
		return nil
	}
	if err := e.checkCapacity(len(vertices), len(vertices)-2); err != nil {
		return err
	}
	e.emit(state, func(s *Stream[Vertex]) {
		s.TriangleStrip(vertices)
	}, local)
	return nil
}

// Merge splices a recorded stream into the frame, shifting its
// triangle indices and batch ranges. The recorded batches carry their
// own effective states; the active transform and clip do not apply.
// The source stream is drained.
func (e *Engine) Merge(other *Stream[Vertex]) error {
	if !e.open {
		return fmt.Errorf("merge: %w", ErrFrameClosed)
	}
	if err := e.checkCapacity(len(other.Vertices()), len(other.Triangles())); err != nil {
		return err
	}
	e.stream.BatchEnd()
	e.stream.Append(other)
	return nil
}

// MergeCloned is Merge without draining the source, so the same
// recording can be spliced into many frames.
func (e *Engine) MergeCloned(other *Stream[Vertex]) error {
	if !e.open {
		return fmt.Errorf("merge: %w", ErrFrameClosed)
	}
	if err := e.checkCapacity(len(other.Vertices()), len(other.Triangles())); err != nil {
		return err
	}
	e.stream.BatchEnd()
	e.stream.AppendCloned(other)
	return nil
}

// PushTransform enters a nested coordinate space. The new space is the
// current one composed with delta; the new clip is the current clip
// intersected with clip. A zero clip inherits the current one.
func (e *Engine) PushTransform(delta Matrix, clip Clip) {
	e.transforms.Push(delta, clip)
}

// PopTransform leaves the innermost coordinate space. Unmatched pops
// are reported by EndFrame.
func (e *Engine) PopTransform() {
	e.transforms.Pop()
}

// WithTransform runs f inside a nested coordinate space, popping it on
// every path out of f.
func (e *Engine) WithTransform(delta Matrix, clip Clip, f func()) {
	e.PushTransform(delta, clip)
	defer e.PopTransform()
	f()
}

// Transform returns the composed matrix and effective clip of the
// innermost space.
func (e *Engine) Transform() (Matrix, Clip) {
	return e.transforms.Current()
}

// Compile turns the frame's batches into an ordered draw stream: one
// state bind and one draw range per batch, in exact submission order.
// Compiling an open frame closes it first with EndFrame semantics.
//
// With strict empty-frame checking enabled, a frame with no batches
// fails with ErrEmptyFrame; otherwise it compiles to an empty stream.
// The result aliases the engine and is valid until the next
// BeginFrame.
func (e *Engine) Compile() (*DrawStream, error) {
	if e.open {
		if err := e.EndFrame(); err != nil {
			return nil, err
		}
	}
	e.compiled.clear()
	batches := e.stream.Batches()
	if len(batches) == 0 && e.opts.strictEmptyFrames {
		return nil, fmt.Errorf("compile: %w", ErrEmptyFrame)
	}
	e.compiled.compileBatches(batches)
	Logger().Debug("ember: frame compiled",
		"commands", e.compiled.Len(),
		"draws", e.compiled.DrawCalls(),
	)
	return &e.compiled, nil
}

// Buffers returns the read-only view of the frame's geometry that a
// backend uploads alongside the compiled stream. The slices alias the
// engine and are valid until the next BeginFrame.
func (e *Engine) Buffers() Buffers {
	return Buffers{
		Vertices:  e.stream.Vertices(),
		Triangles: e.stream.Triangles(),
	}
}

// Stream exposes the underlying vertex stream. Recording layers fork
// it; tests inspect it. Mutating it directly bypasses the engine's
// validation and state composition.
func (e *Engine) Stream() *Stream[Vertex] {
	return e.stream
}

// emit declares the batch, then appends and transforms geometry.
// The batch is declared first so an equal-state run keeps extending
// while the triangles land behind it.
func (e *Engine) emit(state RenderState, f func(*Stream[Vertex]), local Matrix) {
	active, activeClip := e.transforms.Current()
	state.Clip = activeClip.Intersect(state.Clip)
	e.stream.BatchOptimized(state)

	m := active.Multiply(local)
	if m.IsIdentity() {
		f(e.stream)
		return
	}
	e.stream.Transformed(f, func(v *Vertex) {
		p := m.TransformPoint(Point{X: v.Position[0], Y: v.Position[1]})
		v.Position[0] = p.X
		v.Position[1] = p.Y
	})
}

// checkCapacity enforces the optional hard caps ahead of an append of
// vertices and triangles.
func (e *Engine) checkCapacity(vertices, triangles int) error {
	if n := e.opts.maxVertices; n > 0 && len(e.stream.Vertices())+vertices > n {
		return fmt.Errorf("push of %d vertices over cap %d: %w", vertices, n, ErrCapacityExceeded)
	}
	if n := e.opts.maxTriangles; n > 0 && len(e.stream.Triangles())+triangles > n {
		return fmt.Errorf("push of %d triangles over cap %d: %w", triangles, n, ErrCapacityExceeded)
	}
	return nil
}

// Buffers is the read-only geometry view handed to backends. Vertices
// upload as the vertex buffer; Triangles flatten to the 32-bit index
// buffer, three indices per triangle.
type Buffers struct {
	Vertices  []Vertex
	Triangles []Triangle
}
