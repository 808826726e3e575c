package draw

import "github.com/gogpu/ember"

// Sprite draws one textured quad.
//
// The zero region means the full texture, the zero tint means white,
// and a zero size takes the texture dimensions. A sprite with neither
// size nor texture draws nothing.
type Sprite struct {
	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Texture names the sampled texture. The zero ref draws the quad
	// untextured with vertex color only.
	Texture TextureRef
	// Region is the normalized texture subrectangle shown by the quad.
	Region ember.Rect
	// Page selects the texture array layer.
	Page float32
	// Tint multiplies the sampled texel.
	Tint [4]float32
	// Placement positions the quad.
	Placement Placement
	// Size is the quad extent in pixels before scaling. Zero takes the
	// texture size.
	Size ember.Point
	// Pivot is the normalized anchor inside the quad that Placement
	// positions and rotates around.
	Pivot ember.Point
	// Blend overrides the context blend stack.
	Blend ember.BlendMode
	// ScreenSpace draws in screen coordinates instead of world
	// coordinates.
	ScreenSpace bool
}

// NewSprite creates a sprite with the conventional defaults: full
// region, white tint, inherited blending.
func NewSprite(texture TextureRef) Sprite {
	return Sprite{
		Texture: texture,
		Region:  ember.R(0, 0, 1, 1),
		Tint:    ember.White,
		Blend:   BlendInherit,
	}
}

// Draw records the sprite quad.
func (s Sprite) Draw(ctx *Context) error {
	tex, err := ctx.resolveTexture(s.Texture)
	if err != nil {
		return err
	}
	material, err := ctx.resolveMaterial(s.Material)
	if err != nil {
		return err
	}

	size := s.Size
	if size.X == 0 && size.Y == 0 {
		size = tex.Size()
	}
	if size.X == 0 && size.Y == 0 {
		return nil
	}

	state := ember.RenderState{
		Material: material,
		Texture:  tex.ID,
		Blend:    ctx.resolveBlend(s.Blend),
		Space:    spaceOf(s.ScreenSpace),
	}
	local := s.Placement.Matrix()
	if s.Pivot.X != 0 || s.Pivot.Y != 0 {
		local = local.Multiply(ember.Translate(-size.X*s.Pivot.X, -size.Y*s.Pivot.Y))
	}
	return ctx.engine.PushQuad(spriteQuad(size, regionOrFull(s.Region), s.Page, tintOrWhite(s.Tint)), local, state)
}

// spriteQuad builds the four corners of an axis-aligned quad from
// origin to size, with texture coordinates mapped over region.
func spriteQuad(size ember.Point, region ember.Rect, page float32, tint [4]float32) [4]ember.Vertex {
	u0, v0 := region.X, region.Y
	u1, v1 := region.X+region.W, region.Y+region.H
	return [4]ember.Vertex{
		{Position: [2]float32{0, 0}, UV: [3]float32{u0, v0, page}, Color: tint},
		{Position: [2]float32{size.X, 0}, UV: [3]float32{u1, v0, page}, Color: tint},
		{Position: [2]float32{size.X, size.Y}, UV: [3]float32{u1, v1, page}, Color: tint},
		{Position: [2]float32{0, size.Y}, UV: [3]float32{u0, v1, page}, Color: tint},
	}
}
