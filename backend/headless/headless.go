package headless

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
)

// Filtering selects how textures are sampled.
type Filtering uint8

const (
	// FilterNearest samples the closest texel.
	FilterNearest Filtering = iota
	// FilterLinear blends the four closest texels.
	FilterLinear
)

// Config holds headless backend parameters.
type Config struct {
	// Filtering selects the texture sampling mode.
	// Default: FilterNearest
	Filtering Filtering
}

// DefaultConfig returns the default headless configuration.
func DefaultConfig() Config {
	return Config{Filtering: FilterNearest}
}

// init registers the headless backend on package import.
func init() {
	backend.Register(backend.BackendHeadless, func() backend.RenderBackend {
		return New()
	})
}

// Backend executes compiled frames on the CPU, writing into an
// in-memory pixmap. It exists for tests, server-side rendering and
// machines without a GPU: every draw range becomes one rasterizer
// pass over the target, honoring scissor and blend state exactly as a
// GPU backend would.
//
// Materials select GPU pipelines and have no headless equivalent; the
// shading model is fixed to texture times vertex color.
type Backend struct {
	config      Config
	initialized bool

	surface  *Pixmap
	textures map[ember.TextureID]*texture
	targets  map[ember.TargetID]*renderTarget
	stack    []*renderTarget

	nextHandle uint64
	stats      Stats
}

// texture is an array of equally sized pixmap layers.
type texture struct {
	width  int
	height int
	layers []*Pixmap
}

// renderTarget is an offscreen surface whose pixels back a sampleable
// texture.
type renderTarget struct {
	texture ember.TextureID
	pix     *Pixmap
}

// Stats counts the work done by the most recent Submit.
type Stats struct {
	// StatesBound is the number of state binds processed.
	StatesBound int
	// DrawCalls is the number of native draws issued, one per draw range.
	DrawCalls int
	// Triangles is the number of triangles covered by the executed ranges.
	Triangles int
	// PixelsShaded is the number of pixels written.
	PixelsShaded int
}

// New creates a headless backend with the default configuration.
func New() *Backend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a headless backend with the given configuration.
func NewWithConfig(config Config) *Backend {
	return &Backend{config: config}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendHeadless
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.textures = make(map[ember.TextureID]*texture)
	b.targets = make(map[ember.TargetID]*renderTarget)
	b.initialized = true
	return nil
}

// Close releases all backend resources.
func (b *Backend) Close() {
	b.surface = nil
	b.textures = nil
	b.targets = nil
	b.stack = nil
	b.initialized = false
}

// Surface returns the pixmap holding the main target's contents, or
// nil before the first Submit.
func (b *Backend) Surface() *Pixmap {
	return b.surface
}

// LastStats returns the counters from the most recent Submit.
func (b *Backend) LastStats() Stats {
	return b.stats
}

// CreateTexture allocates a texture array.
func (b *Backend) CreateTexture(width, height, layers int) (ember.TextureID, error) {
	if !b.initialized {
		return 0, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 || layers <= 0 {
		return 0, fmt.Errorf("headless: invalid texture size %dx%dx%d", width, height, layers)
	}
	t := &texture{width: width, height: height, layers: make([]*Pixmap, layers)}
	for i := range t.layers {
		t.layers[i] = NewPixmap(width, height)
	}
	b.nextHandle++
	id := ember.TextureID(b.nextHandle)
	b.textures[id] = t
	return id, nil
}

// UploadTexture writes pixels into a region of one texture layer.
func (b *Backend) UploadTexture(id ember.TextureID, layer, x, y, width, height int, pixels []byte) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("headless: upload to texture %d: %w", id, backend.ErrUnknownTexture)
	}
	if layer < 0 || layer >= len(t.layers) {
		return fmt.Errorf("headless: upload to texture %d layer %d of %d: %w",
			id, layer, len(t.layers), backend.ErrUnknownTexture)
	}
	if len(pixels) < width*height*4 {
		return fmt.Errorf("headless: upload of %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}
	t.layers[layer].Upload(x, y, width, height, pixels)
	return nil
}

// DestroyTexture releases a texture. Unknown handles are ignored.
func (b *Backend) DestroyTexture(id ember.TextureID) {
	if b.textures != nil {
		delete(b.textures, id)
	}
}

// CreateTarget allocates an offscreen render target. The backing
// texture samples whatever was last rendered into the target.
func (b *Backend) CreateTarget(width, height int) (ember.TargetID, ember.TextureID, error) {
	if !b.initialized {
		return 0, 0, backend.ErrNotInitialized
	}
	tex, err := b.CreateTexture(width, height, 1)
	if err != nil {
		return 0, 0, err
	}
	b.nextHandle++
	id := ember.TargetID(b.nextHandle)
	b.targets[id] = &renderTarget{texture: tex, pix: b.textures[tex].layers[0]}
	return id, tex, nil
}

// DestroyTarget releases a render target and its backing texture.
// Unknown handles are ignored.
func (b *Backend) DestroyTarget(id ember.TargetID) {
	if b.targets == nil {
		return
	}
	if rt, ok := b.targets[id]; ok {
		b.DestroyTexture(rt.texture)
		delete(b.targets, id)
	}
}

// PushTarget redirects subsequent Submit calls into the given target.
func (b *Backend) PushTarget(id ember.TargetID) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	rt, ok := b.targets[id]
	if !ok {
		return fmt.Errorf("headless: push target %d: %w", id, backend.ErrUnknownTarget)
	}
	b.stack = append(b.stack, rt)
	return nil
}

// PopTarget restores the previously active target.
func (b *Backend) PopTarget() error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if len(b.stack) == 0 {
		return backend.ErrNoTarget
	}
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

// Submit executes one compiled frame.
func (b *Backend) Submit(frame *backend.Frame) error {
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	if frame == nil || frame.Stream == nil {
		return nil
	}

	target := b.activeTarget(frame.Width, frame.Height)
	if frame.Clear != nil {
		target.Fill(*frame.Clear)
	}

	b.stats = Stats{}
	var state ember.RenderState
	for _, cmd := range frame.Stream.Commands() {
		switch c := cmd.(type) {
		case ember.BindStateCommand:
			state = c.State
			b.stats.StatesBound++
		case ember.DrawRangeCommand:
			if err := b.drawRange(target, frame, state, c); err != nil {
				return err
			}
		}
	}

	ember.Logger().Debug("headless: frame submitted",
		"draws", b.stats.DrawCalls,
		"triangles", b.stats.Triangles,
		"pixels", b.stats.PixelsShaded)
	return nil
}

// activeTarget returns the pixmap draws currently land in, sizing the
// main surface to the frame when no offscreen target is pushed.
func (b *Backend) activeTarget(width, height int) *Pixmap {
	if len(b.stack) > 0 {
		return b.stack[len(b.stack)-1].pix
	}
	w, h := max(width, 1), max(height, 1)
	if b.surface == nil || b.surface.width != w || b.surface.height != h {
		b.surface = NewPixmap(w, h)
	}
	return b.surface
}

// drawRange rasterizes the triangles covered by one draw command.
func (b *Backend) drawRange(target *Pixmap, frame *backend.Frame, state ember.RenderState, cmd ember.DrawRangeCommand) error {
	b.stats.DrawCalls++
	b.stats.Triangles += int(cmd.IndexCount) / 3

	var tex *texture
	if !state.Texture.IsZero() {
		var ok bool
		tex, ok = b.textures[state.Texture]
		if !ok {
			return fmt.Errorf("headless: draw with texture %d: %w", state.Texture, backend.ErrUnknownTexture)
		}
	}

	clip := targetScissor(target, state.Clip)
	if clip.empty() {
		return nil
	}

	view := frame.View.World
	if state.Space == ember.SpaceScreen {
		view = frame.View.Screen
	}

	ctx := shadeContext{
		target:    target,
		texture:   tex,
		filtering: b.config.Filtering,
		blend:     state.Blend,
		clip:      clip,
	}

	vertices := frame.Buffers.Vertices
	triangles := frame.Buffers.Triangles
	first := int(cmd.FirstIndex) / 3
	last := first + int(cmd.IndexCount)/3
	for _, tri := range triangles[first:last] {
		v0 := projectVertex(vertices[tri.A], view, target)
		v1 := projectVertex(vertices[tri.B], view, target)
		v2 := projectVertex(vertices[tri.C], view, target)
		b.stats.PixelsShaded += rasterTriangle(&ctx, v0, v1, v2)
	}
	return nil
}

// targetScissor intersects a clip with the target bounds, yielding
// half-open pixel bounds.
func targetScissor(target *Pixmap, clip ember.Clip) scissor {
	s := scissor{x1: target.width, y1: target.height}
	if !clip.Active {
		return s
	}
	s.x0 = max(s.x0, int(clip.X))
	s.y0 = max(s.y0, int(clip.Y))
	s.x1 = min(s.x1, int(clip.X+clip.Width))
	s.y1 = min(s.y1, int(clip.Y+clip.Height))
	return s
}

// projectVertex maps a vertex through the view matrix into pixel
// coordinates.
func projectVertex(v ember.Vertex, view ember.Matrix, target *Pixmap) screenVertex {
	p := view.TransformPoint(ember.Point{X: v.Position[0], Y: v.Position[1]})
	return screenVertex{
		x:     (p.X + 1) * 0.5 * float32(target.width),
		y:     (1 - p.Y) * 0.5 * float32(target.height),
		uv:    v.UV,
		color: v.Color,
	}
}
