// Package headless provides a CPU draw stream executor.
//
// The headless backend rasterizes compiled frames into an in-memory
// pixmap using the same state model as the GPU backends: one native
// draw per draw range, scissor rectangles, texture arrays and the four
// fixed blend modes. It needs no display, no GPU and no cgo, which
// makes it the backend of choice for tests, golden-image comparison
// and server-side rendering.
//
// Importing the package registers it under the name "headless":
//
//	import _ "github.com/gogpu/ember/backend/headless"
//
// Beyond the RenderBackend interface the backend exposes Surface, the
// pixmap holding the main target's contents, and LastStats, the per
// frame work counters. Stats make batching behavior observable: a
// frame's DrawCalls equals the number of draw ranges in its stream,
// including ranges whose scissor leaves no pixels to shade.
package headless
