// Package wgpu executes compiled draw streams on the GPU through the
// gogpu/wgpu hardware abstraction layer.
//
// The backend registers itself as "wgpu" on import:
//
//	import _ "github.com/gogpu/ember/backend/wgpu"
//
// # Architecture Overview
//
// The backend is a thin executor: batching, state sorting and clip
// resolution already happened in the engine, so one frame maps onto
// the GPU as
//
//	vertices/triangles -> one vertex + one index buffer upload
//	BindState          -> pipeline (blend), bind group (view + texture), scissor
//	DrawRange          -> one DrawIndexed call
//
// Components:
//
//   - device.go: HAL instance and adapter selection (Vulkan).
//   - pipeline.go: shader compilation via naga and one render pipeline
//     per blend mode, sharing a single bind group layout.
//   - textures.go: RGBA texture arrays, render targets and the white
//     1x1 fallback page bound for untextured batches.
//   - buffers.go: per-frame buffer creation and upload.
//   - submit.go: render pass encoding, submission and readback.
//
// All textures are 2D arrays; a plain texture is an array with one
// layer, and the vertex UV selects the layer in its third component.
//
// # Frame Lifetime
//
// Submit creates the frame's buffers and bind groups, encodes a single
// render pass, submits it and waits on a fence. Per-frame resources
// are destroyed as soon as the fence signals; textures, targets and
// pipelines live until Close.
//
// # Blend Modes
//
// Pipelines differ only in their fixed-function blend state:
//
//	BlendNone     - no blending, source replaces destination
//	BlendAlpha    - (SrcAlpha, OneMinusSrcAlpha) on all channels
//	BlendAdditive - (One, One)
//	BlendMultiply - (DstColor, Zero)
//
// Colors are straight alpha throughout; nothing premultiplies.
//
// Build with the nogpu tag to exclude the backend; the package then
// keeps only its CPU-side encoding helpers and registers nothing.
package wgpu
