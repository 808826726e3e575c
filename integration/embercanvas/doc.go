// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package embercanvas embeds an ember scene in a gogpu window.
//
// A Canvas composes frames on the CPU through the headless backend and
// hands the finished pixels to the window as a GPU texture. The data
// flow is:
//
//	draw.Context (record) -> headless compose (CPU) -> GPU texture -> window
//
// # Architecture
//
// Canvas owns an engine, a drawing context and a headless backend, and
// manages the texture upload pipeline:
//
//   - Draw runs one frame of drawables against the canvas
//   - Flush uploads the composed pixels to a GPU texture
//   - RenderTo draws the texture into a gogpu frame
//
// # Usage
//
//	canvas, err := embercanvas.New(app.GPUContextProvider(), 800, 600)
//	if err != nil {
//		return err
//	}
//	defer canvas.Close()
//
//	canvas.Draw(func(ctx *draw.Context) error {
//		s := draw.NewSprite(draw.TextureName("logo"))
//		s.Placement.Position = ember.Pt(100, 100)
//		return ctx.Draw(s)
//	})
//
//	app.OnDraw(func(dc *gogpu.Context) {
//		canvas.RenderTo(dc)
//	})
//
// Frames accumulate: a Draw paints over what previous draws left on the
// canvas. Clear wipes it.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Create one Canvas per
// goroutine, or use external synchronization.
//
// # Performance Notes
//
//   - The texture is created lazily on first Flush
//   - Dirty tracking skips uploads when nothing changed
//   - Composition cost scales with canvas area, so size the canvas to
//     what it shows rather than to the window
//
// # Integration Without Circular Imports
//
// The window side is typed structurally: RenderTo accepts any value
// with a DrawTexture method and reaches its texture factory through a
// Renderer method. Only gpucontext.DeviceProvider is imported, so the
// package integrates with gogpu without depending on it.
package embercanvas
