// Package ember provides a batched 2D rendering engine for Go.
//
// # Overview
//
// ember is a Pure Go drawing core designed for the GoGPU ecosystem.
// Arbitrary call sites push geometry with transforms, textures and
// render state over a frame; the engine accumulates everything into a
// single vertex stream, merges adjacent requests with identical state
// into batches, and compiles the frame into an ordered draw stream
// that any backend can replay with one native draw per batch.
//
// # Quick Start
//
//	import "github.com/gogpu/ember"
//
//	e := ember.NewEngine()
//
//	e.BeginFrame()
//	e.Push(vertices, triangles, ember.Identity(), state)
//	if err := e.EndFrame(); err != nil {
//	    // handle unbalanced transforms
//	}
//	stream, err := e.Compile()
//	// hand stream and e.Buffers() to a backend
//
// # Architecture
//
// The library is organized into:
//   - Public API: Engine, Stream, Matrix, Camera, RenderState, DrawStream
//   - Backends: backend (interface and registry), backend/headless, backend/wgpu
//   - Higher layers: draw (sprites, tiles, text, particles), text (glyph atlas),
//     input (actions and axes), gui (immediate mode widgets)
//
// # Ordering
//
// Submission order is painter order. The compiled stream preserves it
// exactly; batching only ever merges adjacent requests whose render
// state matches field for field, so blending and overlap behave as if
// every request were drawn individually.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians, 0 is right, increases counter-clockwise
//
// # Concurrency
//
// An Engine is owned by one goroutine for the duration of a frame and
// never locks. Backends guard their own shared resources.
package ember

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
