// Package backend provides a pluggable draw stream executor abstraction.
//
// The backend package allows the ember library to support multiple
// rendering implementations. A backend consumes compiled frames: it
// uploads the frame's vertex and index buffers, walks the command
// stream in order, and issues exactly one native draw call per draw
// range.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// Importing a backend package registers it:
//
//	import _ "github.com/gogpu/ember/backend/headless"
//	import _ "github.com/gogpu/ember/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get(backend.BackendHeadless)
//
// # Frame Submission
//
// A frame bundles the engine's frozen buffers, the compiled command
// stream, and the camera's view matrices:
//
//	b, err := backend.InitDefault()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	stream, _ := engine.Compile()
//	err = b.Submit(&backend.Frame{
//		Buffers: engine.Buffers(),
//		Stream:  stream,
//		View:    camera.View(),
//		Width:   800,
//		Height:  600,
//	})
//
// # Available Backends
//
// - "headless": CPU rasterizer writing to an in-memory pixmap (always available)
// - "wgpu": GPU-accelerated via gogpu/wgpu (excluded by the nogpu build tag)
package backend
