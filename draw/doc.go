// Package draw is the high-level drawing layer over the ember engine.
//
// A Context pairs an Engine with a render backend and adds what frame
// recording alone does not give you: named texture and material
// registries, default stacks for material and blend state, glyph atlas
// management for text, and frame orchestration that compiles the
// recorded stream and submits it.
//
// Everything drawable is a plain value implementing the Drawable
// interface. Values are configured through exported fields; the New*
// constructors only fill in the conventional defaults (full texture
// region, white tint, inherited blending). A drawable is consumed by
// Context.Draw and turns into vertices on the engine stream, so
// anything drawn through this package batches with everything else in
// the frame.
//
//	engine := ember.NewEngine()
//	ctx := draw.NewContext(engine, backend)
//
//	ctx.BeginFrame(ember.ScreenView(800, 600), 800, 600, &clear)
//	sprite := draw.NewSprite(draw.TextureName("hero"))
//	sprite.Placement.Position = ember.Pt(128, 64)
//	err := ctx.Draw(sprite)
//	...
//	err = ctx.EndFrame()
package draw
