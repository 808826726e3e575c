package draw

import "github.com/gogpu/ember"

// Texture is a registered backend texture together with its dimensions.
// Drawables need the size for defaulting sprite extents, so the
// registry stores it alongside the handle.
type Texture struct {
	ID     ember.TextureID
	Width  int
	Height int
	Layers int
}

// IsZero reports whether the texture names no backend resource.
func (t Texture) IsZero() bool {
	return t.ID.IsZero()
}

// Size returns the texture dimensions in pixels.
func (t Texture) Size() ember.Point {
	return ember.Pt(float32(t.Width), float32(t.Height))
}

// TextureRef names a texture either by registry name or by value. The
// zero ref means "no texture": the drawable renders untextured with
// its vertex colors only.
type TextureRef struct {
	name  string
	value Texture
}

// TextureName references a texture registered on the context under
// the given name. Resolution fails at draw time when the name is not
// registered.
func TextureName(name string) TextureRef {
	return TextureRef{name: name}
}

// TextureValue references a texture directly, bypassing the registry.
func TextureValue(t Texture) TextureRef {
	return TextureRef{value: t}
}

// IsZero reports whether the ref names no texture at all.
func (r TextureRef) IsZero() bool {
	return r.name == "" && r.value.IsZero()
}

// MaterialRef names a material either by registry name or by handle.
// The zero ref means "inherit": the drawable takes the top of the
// context material stack, falling back to the default pipeline.
type MaterialRef struct {
	name string
	id   ember.MaterialID
}

// MaterialName references a material registered on the context under
// the given name.
func MaterialName(name string) MaterialRef {
	return MaterialRef{name: name}
}

// MaterialValue references a material handle directly.
func MaterialValue(id ember.MaterialID) MaterialRef {
	return MaterialRef{id: id}
}

// IsZero reports whether the ref names no material.
func (r MaterialRef) IsZero() bool {
	return r.name == "" && r.id.IsZero()
}
