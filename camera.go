package ember

// scalingMode discriminates Scaling variants.
type scalingMode uint8

const (
	scalingNone scalingMode = iota
	scalingConstant
	scalingStretch
	scalingFitHorizontal
	scalingFitVertical
	scalingFitToView
)

// Scaling maps a viewport size in pixels to the size of the visible
// world region. Construct values with the Scaling* functions; the zero
// value is ScalingNone.
type Scaling struct {
	mode   scalingMode
	value  float32
	size   Point
	inside bool
}

// ScalingNone shows one world unit per pixel.
func ScalingNone() Scaling {
	return Scaling{mode: scalingNone}
}

// ScalingConstant multiplies the viewport size by a constant factor.
func ScalingConstant(value float32) Scaling {
	return Scaling{mode: scalingConstant, value: value}
}

// ScalingStretch shows exactly the given world size, ignoring aspect.
func ScalingStretch(width, height float32) Scaling {
	return Scaling{mode: scalingStretch, size: Point{X: width, Y: height}}
}

// ScalingFitHorizontal fixes the visible world width and derives the
// height from the viewport aspect.
func ScalingFitHorizontal(width float32) Scaling {
	return Scaling{mode: scalingFitHorizontal, value: width}
}

// ScalingFitVertical fixes the visible world height and derives the
// width from the viewport aspect.
func ScalingFitVertical(height float32) Scaling {
	return Scaling{mode: scalingFitVertical, value: height}
}

// ScalingFitToView fits the given world region to the viewport
// preserving aspect. With inside set the whole region stays visible
// (letterboxing); without it the region covers the viewport (cropping).
func ScalingFitToView(width, height float32, inside bool) Scaling {
	return Scaling{mode: scalingFitToView, size: Point{X: width, Y: height}, inside: inside}
}

// WorldSize returns the visible world size for a viewport in pixels.
func (s Scaling) WorldSize(viewport Point) Point {
	switch s.mode {
	case scalingConstant:
		return viewport.Mul(s.value)
	case scalingStretch:
		return s.size
	case scalingFitHorizontal:
		return Point{X: s.value, Y: s.value * viewport.Y / viewport.X}
	case scalingFitVertical:
		return Point{X: s.value * viewport.X / viewport.Y, Y: s.value}
	case scalingFitToView:
		sourceAspect := s.size.X / s.size.Y
		targetAspect := viewport.X / viewport.Y
		if (targetAspect >= sourceAspect) != s.inside {
			return Point{X: viewport.X * s.size.X / viewport.Y, Y: s.size.Y}
		}
		return Point{X: s.size.X, Y: viewport.Y * s.size.Y / viewport.X}
	default:
		return viewport
	}
}

// View carries the two projection matrices a backend binds per frame.
// Batches select between them with their RenderState Space field.
type View struct {
	// World maps world coordinates to clip space under the camera.
	World Matrix
	// Screen maps raw pixel coordinates to clip space.
	Screen Matrix
}

// ScreenView returns a view whose world and screen matrices both map
// pixel coordinates with the origin at the top-left corner. It is the
// view to submit when no camera is involved.
func ScreenView(width, height float32) View {
	if width == 0 || height == 0 {
		return View{World: Identity(), Screen: Identity()}
	}
	m := ortho(0, width, 0, height)
	return View{World: m, Screen: m}
}

// Camera derives the frame's projection matrices from a viewport, a
// scaling policy and the camera's own placement in the world.
//
// ScreenAlignment anchors the world origin inside the viewport in
// normalized coordinates: {0, 0} puts it at the top-left corner,
// {0.5, 0.5} at the center. Transform is the camera's placement; the
// world matrix applies its inverse.
type Camera struct {
	ScreenAlignment Point
	ScreenSize      Point
	Scaling         Scaling
	Transform       Matrix
}

// NewCamera creates a camera with an identity transform.
func NewCamera() Camera {
	return Camera{Transform: Identity()}
}

// ortho maps the rectangle spanned by the edges to clip space, with
// the top edge at +1 and no depth.
func ortho(left, right, top, bottom float32) Matrix {
	return Matrix{
		A: 2 / (right - left), B: 0, C: -(right + left) / (right - left),
		D: 0, E: 2 / (top - bottom), F: -(top + bottom) / (top - bottom),
	}
}

// ScreenMatrix returns the pixel-space projection.
func (c Camera) ScreenMatrix() Matrix {
	if c.ScreenSize.X == 0 || c.ScreenSize.Y == 0 {
		return Identity()
	}
	return ortho(0, c.ScreenSize.X, 0, c.ScreenSize.Y)
}

// WorldSize returns the visible world size under the camera's scaling.
func (c Camera) WorldSize() Point {
	return c.Scaling.WorldSize(c.ScreenSize)
}

// WorldOffset returns the world-space position of the viewport's
// top-left corner relative to the camera, as set by ScreenAlignment.
func (c Camera) WorldOffset() Point {
	size := c.WorldSize()
	return Point{X: size.X * -c.ScreenAlignment.X, Y: size.Y * -c.ScreenAlignment.Y}
}

// WorldProjectionMatrix returns the world projection without the
// camera transform applied.
func (c Camera) WorldProjectionMatrix() Matrix {
	if c.ScreenSize.X == 0 || c.ScreenSize.Y == 0 {
		return Identity()
	}
	size := c.WorldSize()
	offset := c.WorldOffset()
	return ortho(offset.X, size.X+offset.X, offset.Y, size.Y+offset.Y)
}

// WorldMatrix returns the full world projection: the camera transform
// inverted, then projected.
func (c Camera) WorldMatrix() Matrix {
	return c.WorldProjectionMatrix().Multiply(c.Transform.Invert())
}

// View returns both projections for the current camera state.
func (c Camera) View() View {
	return View{World: c.WorldMatrix(), Screen: c.ScreenMatrix()}
}

// WorldPolygon returns the world-space corners of the viewport in
// top-left, top-right, bottom-right, bottom-left order.
func (c Camera) WorldPolygon() [4]Point {
	inv := c.WorldMatrix().Invert()
	return [4]Point{
		inv.TransformPoint(Point{X: -1, Y: 1}),
		inv.TransformPoint(Point{X: 1, Y: 1}),
		inv.TransformPoint(Point{X: 1, Y: -1}),
		inv.TransformPoint(Point{X: -1, Y: -1}),
	}
}

// WorldRectangle returns the axis-aligned bounds of the visible world
// region. Cheap visibility culling tests against it.
func (c Camera) WorldRectangle() Rect {
	corners := c.WorldPolygon()
	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, p := range corners[1:] {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
