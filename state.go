package ember

// BlendMode selects the fixed-function blending applied to a batch.
type BlendMode uint8

const (
	// BlendNone writes source pixels without blending.
	BlendNone BlendMode = iota
	// BlendAlpha is standard alpha compositing of source over destination.
	BlendAlpha
	// BlendAdditive adds source to destination, scaled by source alpha.
	BlendAdditive
	// BlendMultiply multiplies destination by source.
	BlendMultiply
)

var blendModeNames = [...]string{
	BlendNone:     "None",
	BlendAlpha:    "Alpha",
	BlendAdditive: "Additive",
	BlendMultiply: "Multiply",
}

// String returns the name of the blend mode.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return "Unknown"
}

// Space selects the projection a batch is drawn with.
type Space uint8

const (
	// SpaceWorld draws under the camera's world matrix.
	SpaceWorld Space = iota
	// SpaceScreen draws in raw pixel coordinates, ignoring the camera
	// transform. Overlays and GUI use it.
	SpaceScreen
)

var spaceNames = [...]string{
	SpaceWorld:  "World",
	SpaceScreen: "Screen",
}

// String returns the name of the space.
func (s Space) String() string {
	if int(s) < len(spaceNames) {
		return spaceNames[s]
	}
	return "Unknown"
}

// RenderState is the complete pipeline state a batch is drawn with.
//
// The struct is comparable, and batch compatibility is plain equality:
// two requests share a batch only when every field matches exactly.
// There is no fuzzy matching and no field is exempt; a change in any
// one of them closes the open batch. Values are copied at push time
// and never mutated afterwards.
type RenderState struct {
	// Material names the shader program and its bound uniform block.
	// Distinct uniform values are distinct materials.
	Material MaterialID
	// Texture names the texture array sampled by the material.
	// The zero value means the material samples nothing.
	Texture TextureID
	// Blend is the fixed-function blending for this batch.
	Blend BlendMode
	// Clip is the scissor rectangle, already intersected with every
	// enclosing clip at push time.
	Clip Clip
	// Space selects the world or screen projection.
	Space Space
}
