package ember

// transformFrame is one level of the transform stack: the composed
// matrix and the accumulated clip at that level.
type transformFrame struct {
	matrix Matrix
	clip   Clip
}

// TransformStack composes nested coordinate spaces over a frame.
//
// The bottom frame is identity with no clipping and is never removed.
// Push composes the delta onto the parent matrix and intersects the
// clip, so the top of the stack always holds the full local-to-target
// transform and the effective scissor. Pops below the bottom are
// tolerated at call time and reported by Balanced.
type TransformStack struct {
	frames    []transformFrame
	underflow int
}

// NewTransformStack creates a stack holding only the identity frame.
func NewTransformStack() *TransformStack {
	t := &TransformStack{frames: make([]transformFrame, 0, 16)}
	t.Reset()
	return t
}

// Reset drops every pushed frame and clears the underflow record.
// Storage is retained.
func (t *TransformStack) Reset() {
	t.frames = t.frames[:0]
	t.frames = append(t.frames, transformFrame{matrix: Identity()})
	t.underflow = 0
}

// Push enters a nested space: the new matrix is parent times delta,
// the new clip is the parent clip intersected with clip. A zero
// (inactive) clip inherits the parent clip unchanged.
func (t *TransformStack) Push(delta Matrix, clip Clip) {
	top := t.frames[len(t.frames)-1]
	t.frames = append(t.frames, transformFrame{
		matrix: top.matrix.Multiply(delta),
		clip:   top.clip.Intersect(clip),
	})
}

// Pop leaves the current nested space. Popping at the bottom keeps the
// identity frame in place and records the imbalance.
func (t *TransformStack) Pop() {
	if len(t.frames) <= 1 {
		t.underflow++
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Current returns the composed matrix and effective clip of the
// innermost space.
func (t *TransformStack) Current() (Matrix, Clip) {
	top := t.frames[len(t.frames)-1]
	return top.matrix, top.clip
}

// Depth returns the number of frames, including the identity bottom.
func (t *TransformStack) Depth() int {
	return len(t.frames)
}

// Balanced reports whether every push since the last Reset has been
// matched by exactly one pop, with no pops below the bottom.
func (t *TransformStack) Balanced() bool {
	return len(t.frames) == 1 && t.underflow == 0
}
