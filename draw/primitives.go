package draw

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/ember"
)

// Primitives is the shared configuration of the raw geometry
// drawables. Primitive vertices are in world (or screen) coordinates
// already; only the context transform stack applies to them.
type Primitives struct {
	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Texture names the sampled texture. The zero ref draws vertex
	// color only.
	Texture TextureRef
	// Blend overrides the context blend stack.
	Blend ember.BlendMode
	// ScreenSpace draws in screen coordinates.
	ScreenSpace bool
}

// NewPrimitives creates a primitives configuration with inherited
// blending.
func NewPrimitives() Primitives {
	return Primitives{Blend: BlendInherit}
}

func (p Primitives) state(ctx *Context) (ember.RenderState, error) {
	tex, err := ctx.resolveTexture(p.Texture)
	if err != nil {
		return ember.RenderState{}, err
	}
	material, err := ctx.resolveMaterial(p.Material)
	if err != nil {
		return ember.RenderState{}, err
	}
	return ember.RenderState{
		Material: material,
		Texture:  tex.ID,
		Blend:    ctx.resolveBlend(p.Blend),
		Space:    spaceOf(p.ScreenSpace),
	}, nil
}

// Triangles draws a vertex list three at a time. A trailing partial
// triangle is ignored.
type Triangles struct {
	Primitives Primitives
	Vertices   []ember.Vertex
}

// Triangles wraps a vertex list into a triangle-list drawable.
func (p Primitives) Triangles(vertices ...ember.Vertex) Triangles {
	return Triangles{Primitives: p, Vertices: vertices}
}

// Draw records the triangle list.
func (t Triangles) Draw(ctx *Context) error {
	count := len(t.Vertices) / 3 * 3
	if count == 0 {
		return nil
	}
	state, err := t.Primitives.state(ctx)
	if err != nil {
		return err
	}
	triangles := make([]ember.Triangle, 0, count/3)
	for i := 0; i < count; i += 3 {
		triangles = append(triangles, ember.Triangle{A: uint32(i), B: uint32(i + 1), C: uint32(i + 2)})
	}
	return ctx.engine.Push(t.Vertices[:count], triangles, ember.Identity(), state)
}

// TriangleFan draws a vertex list as a fan around its first vertex.
type TriangleFan struct {
	Primitives Primitives
	Vertices   []ember.Vertex
}

// TriangleFan wraps a vertex list into a fan drawable.
func (p Primitives) TriangleFan(vertices ...ember.Vertex) TriangleFan {
	return TriangleFan{Primitives: p, Vertices: vertices}
}

// Draw records the fan.
func (t TriangleFan) Draw(ctx *Context) error {
	if len(t.Vertices) < 3 {
		return nil
	}
	state, err := t.Primitives.state(ctx)
	if err != nil {
		return err
	}
	return ctx.engine.PushTriangleFan(t.Vertices, ember.Identity(), state)
}

// TriangleStrip draws a vertex list as a strip.
type TriangleStrip struct {
	Primitives Primitives
	Vertices   []ember.Vertex
}

// TriangleStrip wraps a vertex list into a strip drawable.
func (p Primitives) TriangleStrip(vertices ...ember.Vertex) TriangleStrip {
	return TriangleStrip{Primitives: p, Vertices: vertices}
}

// Draw records the strip.
func (t TriangleStrip) Draw(ctx *Context) error {
	if len(t.Vertices) < 3 {
		return nil
	}
	state, err := t.Primitives.state(ctx)
	if err != nil {
		return err
	}
	return ctx.engine.PushTriangleStrip(t.Vertices, ember.Identity(), state)
}

// RegularPolygon draws a filled regular polygon centered on the
// origin, with texture coordinates mapping the unit circle onto the
// full texture.
type RegularPolygon struct {
	Primitives Primitives
	// Sides is the number of polygon edges. Values below one draw
	// nothing.
	Sides int
	// Radius is the distance from center to each corner, in pixels.
	Radius float32
	// Tint colors every vertex. Zero means white.
	Tint [4]float32
}

// RegularPolygon builds a polygon drawable.
func (p Primitives) RegularPolygon(sides int, radius float32) RegularPolygon {
	return RegularPolygon{Primitives: p, Sides: sides, Radius: radius}
}

// Draw records the polygon as a fan anchored on its first rim vertex.
func (r RegularPolygon) Draw(ctx *Context) error {
	if r.Sides < 1 {
		return nil
	}
	state, err := r.Primitives.state(ctx)
	if err != nil {
		return err
	}
	tint := tintOrWhite(r.Tint)
	step := 2 * math32.Pi / float32(r.Sides)
	vertices := make([]ember.Vertex, 0, r.Sides+1)
	for i := 0; i <= r.Sides; i++ {
		sin, cos := math32.Sincos(step * float32(i))
		vertices = append(vertices, ember.Vertex{
			Position: [2]float32{cos * r.Radius, sin * r.Radius},
			UV:       [3]float32{(cos + 1) * 0.5, (sin + 1) * 0.5, 0},
			Color:    tint,
		})
	}
	return ctx.engine.PushTriangleFan(vertices, ember.Identity(), state)
}

// Lines draws an open polyline as one quad per segment. Segments do
// not share join geometry; thick lines show notches on sharp corners.
type Lines struct {
	Primitives Primitives
	// Points are the polyline corners in order.
	Points []ember.Point
	// Tint colors every vertex. Zero means white.
	Tint [4]float32
	// Thickness is the line width in pixels. Zero means one.
	Thickness float32
}

// Lines builds a polyline drawable.
func (p Primitives) Lines(points ...ember.Point) Lines {
	return Lines{Primitives: p, Points: points}
}

// Draw records the segment quads.
func (l Lines) Draw(ctx *Context) error {
	if len(l.Points) < 2 {
		return nil
	}
	state, err := l.Primitives.state(ctx)
	if err != nil {
		return err
	}
	tint := tintOrWhite(l.Tint)
	thickness := l.Thickness
	if thickness == 0 {
		thickness = 1
	}
	half := thickness / 2
	for i := 0; i+1 < len(l.Points); i++ {
		prev, next := l.Points[i], l.Points[i+1]
		tangent := next.Sub(prev)
		normal := ember.Pt(tangent.Y, -tangent.X).Normalize().Mul(half)
		quad := [4]ember.Vertex{
			lineVertex(prev.Sub(normal), tint),
			lineVertex(prev.Add(normal), tint),
			lineVertex(next.Add(normal), tint),
			lineVertex(next.Sub(normal), tint),
		}
		if err := ctx.engine.PushTriangleStrip(quad[:], ember.Identity(), state); err != nil {
			return err
		}
	}
	return nil
}

func lineVertex(p ember.Point, tint [4]float32) ember.Vertex {
	return ember.Vertex{Position: [2]float32{p.X, p.Y}, Color: tint}
}
