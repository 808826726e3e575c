package draw

import "github.com/gogpu/ember"

// Layer records geometry into its own stream, detached from the live
// frame, to be spliced in later. Recording a static scene once and
// submitting the layer every frame skips the per-frame transform and
// batching work.
//
// The layer stream carries its batches with the states they were
// recorded under; the context transform stack at submit time does not
// apply.
type Layer struct {
	stream *ember.Stream[ember.Vertex]
}

// NewLayer creates a layer forked from the context stream, sharing its
// growth configuration.
func NewLayer(ctx *Context) *Layer {
	return &Layer{stream: ctx.Engine().Stream().Fork()}
}

// Stream returns the recording stream for direct geometry access.
func (l *Layer) Stream() *ember.Stream[ember.Vertex] {
	return l.stream
}

// Record runs f against the recording stream after opening a batch
// with the given state.
func (l *Layer) Record(state ember.RenderState, f func(*ember.Stream[ember.Vertex])) {
	l.stream.Batch(state)
	f(l.stream)
	l.stream.BatchEnd()
}

// Clear empties the recording, keeping its capacity.
func (l *Layer) Clear() {
	l.stream.Clear()
}

// Submit splices the recording into the live frame and drains the
// layer.
func (l *Layer) Submit(ctx *Context) error {
	return ctx.Engine().Merge(l.stream)
}

// SubmitCloned splices a copy of the recording into the live frame,
// keeping the layer for further submissions.
func (l *Layer) SubmitCloned(ctx *Context) error {
	return ctx.Engine().MergeCloned(l.stream)
}
