package draw

import "github.com/gogpu/ember"

// Placement positions a drawable in its space: translate, then rotate,
// then scale. The zero value is the identity placement; a zero Scale
// is treated as (1, 1) so that literal-built drawables render at
// natural size.
type Placement struct {
	// Position in target pixels (world or screen space, depending on
	// the drawable).
	Position ember.Point
	// Rotation around the pivot, in radians.
	Rotation float32
	// Scale factors. The zero value means no scaling.
	Scale ember.Point
}

// At returns a placement at the given position.
func At(x, y float32) Placement {
	return Placement{Position: ember.Pt(x, y)}
}

// Matrix returns the local transform of the placement.
func (p Placement) Matrix() ember.Matrix {
	scale := p.Scale
	if scale.X == 0 && scale.Y == 0 {
		scale = ember.Pt(1, 1)
	}
	m := ember.Translate(p.Position.X, p.Position.Y)
	if p.Rotation != 0 {
		m = m.Multiply(ember.Rotate(p.Rotation))
	}
	if scale.X != 1 || scale.Y != 1 {
		m = m.Multiply(ember.Scale(scale.X, scale.Y))
	}
	return m
}

// tintOrWhite maps the zero tint to the neutral white so that
// literal-built drawables are visible without setting a color.
func tintOrWhite(tint [4]float32) [4]float32 {
	if tint == ([4]float32{}) {
		return ember.White
	}
	return tint
}

// regionOrFull maps an empty region to the full texture rectangle.
func regionOrFull(region ember.Rect) ember.Rect {
	if region.IsEmpty() {
		return ember.R(0, 0, 1, 1)
	}
	return region
}

// spaceOf translates the screen-space flag of a drawable into the
// render state coordinate space.
func spaceOf(screen bool) ember.Space {
	if screen {
		return ember.SpaceScreen
	}
	return ember.SpaceWorld
}
