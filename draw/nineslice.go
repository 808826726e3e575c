package draw

import "github.com/gogpu/ember"

// Margins are edge insets of a nine-slice: left, right, top, bottom.
type Margins struct {
	Left   float32
	Right  float32
	Top    float32
	Bottom float32
}

// UniformMargins returns equal insets on all four edges.
func UniformMargins(v float32) Margins {
	return Margins{Left: v, Right: v, Top: v, Bottom: v}
}

// Clamp limits each inset to the normalized [0, 1] range.
func (m Margins) Clamp() Margins {
	clamp := func(v float32) float32 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	return Margins{
		Left:   clamp(m.Left),
		Right:  clamp(m.Right),
		Top:    clamp(m.Top),
		Bottom: clamp(m.Bottom),
	}
}

// fitToSize shrinks pixel margins proportionally when opposing insets
// together exceed the available extent on their axis.
func (m Margins) fitToSize(size ember.Point) Margins {
	if w := m.Left + m.Right; w > size.X && w > 0 {
		scale := size.X / w
		m.Left *= scale
		m.Right *= scale
	}
	if h := m.Top + m.Bottom; h > size.Y && h > 0 {
		scale := size.Y / h
		m.Top *= scale
		m.Bottom *= scale
	}
	return m
}

// NineSlice draws a quad split into a 3x3 cell grid whose corner cells
// keep their pixel size while the edge and center cells stretch, the
// usual way panels and frames scale.
type NineSlice struct {
	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Texture names the sampled texture.
	Texture TextureRef
	// Region is the normalized texture subrectangle.
	Region ember.Rect
	// Page selects the texture array layer.
	Page float32
	// Tint multiplies the sampled texel.
	Tint [4]float32
	// Placement positions the grid.
	Placement Placement
	// Size is the target extent in pixels before scaling. Zero takes
	// the texture size.
	Size ember.Point
	// Pivot is the normalized anchor inside the grid.
	Pivot ember.Point
	// SourceMargins select the corner cells inside the region,
	// normalized to the region extent and clamped to [0, 1].
	SourceMargins Margins
	// TargetMargins are the corner cell extents on the target, in
	// pixels. Margins wider than the size shrink proportionally.
	TargetMargins Margins
	// FrameOnly skips the center cell, drawing only the frame.
	FrameOnly bool
	// Blend overrides the context blend stack.
	Blend ember.BlendMode
	// ScreenSpace draws in screen coordinates.
	ScreenSpace bool
}

// NewNineSlice creates a nine-slice with the conventional defaults
// and the given margins applied to both source and target.
func NewNineSlice(texture TextureRef, margins Margins) NineSlice {
	return NineSlice{
		Texture:       texture,
		Region:        ember.R(0, 0, 1, 1),
		Tint:          ember.White,
		SourceMargins: margins,
		TargetMargins: margins,
		Blend:         BlendInherit,
	}
}

// Grid vertices are laid out in four rows top to bottom, four columns
// left to right, so vertex index = row*4 + col. Triangles reference
// them counter-clockwise per cell, with the center cell kept separate
// so FrameOnly can skip it.
var (
	nineSliceUpper = [8]ember.Triangle{
		{A: 0, B: 1, C: 5}, {A: 5, B: 4, C: 0},
		{A: 1, B: 2, C: 6}, {A: 6, B: 5, C: 1},
		{A: 2, B: 3, C: 7}, {A: 7, B: 6, C: 2},
		{A: 4, B: 5, C: 9}, {A: 9, B: 8, C: 4},
	}
	nineSliceCenter = [2]ember.Triangle{
		{A: 5, B: 6, C: 10}, {A: 10, B: 9, C: 5},
	}
	nineSliceLower = [8]ember.Triangle{
		{A: 6, B: 7, C: 11}, {A: 11, B: 10, C: 6},
		{A: 8, B: 9, C: 13}, {A: 13, B: 12, C: 8},
		{A: 9, B: 10, C: 14}, {A: 14, B: 13, C: 9},
		{A: 10, B: 11, C: 15}, {A: 15, B: 14, C: 10},
	}
)

// Draw records the nine-slice grid.
func (n NineSlice) Draw(ctx *Context) error {
	tex, err := ctx.resolveTexture(n.Texture)
	if err != nil {
		return err
	}
	material, err := ctx.resolveMaterial(n.Material)
	if err != nil {
		return err
	}

	size := n.Size
	if size.X == 0 && size.Y == 0 {
		size = tex.Size()
	}
	if size.X == 0 && size.Y == 0 {
		return nil
	}

	region := regionOrFull(n.Region)
	tint := tintOrWhite(n.Tint)
	source := n.SourceMargins.Clamp()
	target := n.TargetMargins.fitToSize(size)

	// Column x positions and row y positions of the grid lines.
	xs := [4]float32{0, target.Left, size.X - target.Right, size.X}
	ys := [4]float32{0, target.Top, size.Y - target.Bottom, size.Y}
	// Matching texture coordinates inside the region.
	us := [4]float32{
		region.X,
		region.X + region.W*source.Left,
		region.X + region.W*(1-source.Right),
		region.X + region.W,
	}
	vs := [4]float32{
		region.Y,
		region.Y + region.H*source.Top,
		region.Y + region.H*(1-source.Bottom),
		region.Y + region.H,
	}

	var vertices [16]ember.Vertex
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			vertices[row*4+col] = ember.Vertex{
				Position: [2]float32{xs[col], ys[row]},
				UV:       [3]float32{us[col], vs[row], n.Page},
				Color:    tint,
			}
		}
	}

	triangles := make([]ember.Triangle, 0, 18)
	triangles = append(triangles, nineSliceUpper[:]...)
	if !n.FrameOnly {
		triangles = append(triangles, nineSliceCenter[:]...)
	}
	triangles = append(triangles, nineSliceLower[:]...)

	state := ember.RenderState{
		Material: material,
		Texture:  tex.ID,
		Blend:    ctx.resolveBlend(n.Blend),
		Space:    spaceOf(n.ScreenSpace),
	}
	local := n.Placement.Matrix()
	if n.Pivot.X != 0 || n.Pivot.Y != 0 {
		local = local.Multiply(ember.Translate(-size.X*n.Pivot.X, -size.Y*n.Pivot.Y))
	}
	return ctx.engine.Push(vertices[:], triangles, local, state)
}
