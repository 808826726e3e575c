package draw

import (
	"fmt"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/ember/text"
)

// BlendInherit is a sentinel blend mode meaning "take the active
// context blend". Constructors set it on new drawables; a drawable
// built as a literal carries ember.BlendNone instead, which only
// differs once a blend has been pushed on the context stack.
const BlendInherit ember.BlendMode = 0xFF

// Drawable is anything that can record itself onto a context.
type Drawable interface {
	Draw(ctx *Context) error
}

// ContextOption configures a Context during creation.
type ContextOption func(*contextOptions)

type contextOptions struct {
	atlas text.AtlasConfig
}

// WithGlyphAtlas sets the glyph atlas configuration. Zero fields fall
// back to the text package defaults.
func WithGlyphAtlas(config text.AtlasConfig) ContextOption {
	return func(o *contextOptions) {
		o.atlas = config
	}
}

// Context wraps an engine and a backend with the conveniences a frame
// of drawables needs: named texture and material registries, default
// stacks for material and blend state, font storage with glyph atlas
// upload, and begin/end frame orchestration.
//
// Like the engine it wraps, a Context is single-threaded.
type Context struct {
	engine  *ember.Engine
	backend backend.RenderBackend

	// Fonts holds the fonts available to text drawables, keyed by the
	// name they are drawn under.
	Fonts *text.Store

	textures  map[string]Texture
	materials map[string]ember.MaterialID

	materialStack []ember.MaterialID
	blendStack    []ember.BlendMode

	glyphs       *text.Renderer
	fontsTexture Texture
	white        Texture
	scratch      *ember.Stream[ember.Vertex]
	rgba         []byte

	view         ember.View
	width        int
	height       int
	pendingClear *[4]float32
	inFrame      bool
}

// NewContext creates a drawing context over the given engine and
// backend. The backend must be initialized by the caller.
func NewContext(engine *ember.Engine, b backend.RenderBackend, opts ...ContextOption) *Context {
	var o contextOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		engine:    engine,
		backend:   b,
		Fonts:     text.NewStore(),
		textures:  make(map[string]Texture),
		materials: make(map[string]ember.MaterialID),
		glyphs:    text.NewRendererWithAtlas(text.NewAtlas(o.atlas)),
		scratch:   engine.Stream().Fork(),
	}
}

// Engine returns the wrapped engine for direct stream access.
func (c *Context) Engine() *ember.Engine {
	return c.engine
}

// Backend returns the render backend the context submits to.
func (c *Context) Backend() backend.RenderBackend {
	return c.backend
}

// Glyphs returns the glyph renderer shared by text drawables.
func (c *Context) Glyphs() *text.Renderer {
	return c.glyphs
}

// View returns the view of the open frame.
func (c *Context) View() ember.View {
	return c.view
}

// Size returns the target dimensions of the open frame in pixels, or
// zeros when no frame is open.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// BeginFrame opens a frame targeting the given view and dimensions.
// A non-nil clear color is applied by the first submission of the
// frame. The material and blend stacks are reset; registered textures,
// materials and fonts persist across frames.
func (c *Context) BeginFrame(view ember.View, width, height int, clear *[4]float32) {
	c.ensureWhite()
	c.glyphs.Clear()
	c.materialStack = c.materialStack[:0]
	c.blendStack = c.blendStack[:0]
	c.view = view
	c.width = width
	c.height = height
	c.pendingClear = nil
	if clear != nil {
		cc := *clear
		c.pendingClear = &cc
	}
	c.inFrame = true
	c.engine.BeginFrame()
}

// EndFrame compiles and submits everything recorded since BeginFrame.
func (c *Context) EndFrame() error {
	if !c.inFrame {
		return nil
	}
	c.inFrame = false
	return c.flush(c.view, c.width, c.height, c.takeClear())
}

// AbandonFrame closes the frame and discards its recording without
// submitting anything, pending clear color included. Registered
// textures, materials and fonts are unaffected.
func (c *Context) AbandonFrame() {
	if !c.inFrame {
		return
	}
	c.inFrame = false
	c.pendingClear = nil
	c.engine.BeginFrame()
}

// flush uploads pending glyph pages, compiles the recorded stream,
// submits it to the backend against the given target parameters, and
// reopens the engine frame for further recording.
func (c *Context) flush(view ember.View, width, height int, clear *[4]float32) error {
	uploadErr := c.uploadAtlas()
	compiled, err := c.engine.Compile()
	if err != nil {
		return err
	}
	frame := backend.Frame{
		Buffers: c.engine.Buffers(),
		Stream:  compiled,
		View:    view,
		Width:   width,
		Height:  height,
		Clear:   clear,
	}
	submitErr := c.backend.Submit(&frame)
	c.engine.BeginFrame()
	if uploadErr != nil {
		return uploadErr
	}
	return submitErr
}

// takeClear consumes the pending clear color, so that only the first
// submission of a frame clears the target.
func (c *Context) takeClear() *[4]float32 {
	clear := c.pendingClear
	c.pendingClear = nil
	return clear
}

// ensureWhite lazily creates the 1x1 white texture. Failure is not
// fatal: drawables fall back to untextured vertex color.
func (c *Context) ensureWhite() {
	if !c.white.IsZero() {
		return
	}
	id, err := c.backend.CreateTexture(1, 1, 1)
	if err != nil {
		ember.Logger().Warn("draw: create white texture", "error", err)
		return
	}
	if err := c.backend.UploadTexture(id, 0, 0, 0, 1, 1, []byte{0xff, 0xff, 0xff, 0xff}); err != nil {
		ember.Logger().Warn("draw: upload white texture", "error", err)
		c.backend.DestroyTexture(id)
		return
	}
	c.white = Texture{ID: id, Width: 1, Height: 1, Layers: 1}
}

// WhiteTexture returns the built-in 1x1 white texture, created on the
// first BeginFrame. It is zero when creation failed.
func (c *Context) WhiteTexture() Texture {
	return c.white
}

// GlyphTexture returns the texture array holding the glyph atlas. It
// is zero until the first text drawable is drawn.
func (c *Context) GlyphTexture() Texture {
	return c.fontsTexture
}

// ensureGlyphTexture creates the glyph texture array at the atlas page
// bound. Creating it at full depth up front keeps the handle stable,
// so states captured before an upload stay valid when the atlas grows
// a page mid-frame.
func (c *Context) ensureGlyphTexture() error {
	if !c.fontsTexture.IsZero() {
		return nil
	}
	config := c.glyphs.Atlas().Config()
	id, err := c.backend.CreateTexture(config.PageWidth, config.PageHeight, config.MaxPages)
	if err != nil {
		return fmt.Errorf("draw: create glyph texture: %w", err)
	}
	c.fontsTexture = Texture{
		ID:     id,
		Width:  config.PageWidth,
		Height: config.PageHeight,
		Layers: config.MaxPages,
	}
	return nil
}

// uploadAtlas copies dirty atlas pages into the glyph texture.
func (c *Context) uploadAtlas() error {
	if !c.glyphs.Dirty() || c.fontsTexture.IsZero() {
		return nil
	}
	atlas := c.glyphs.Atlas()
	width, height, pages := atlas.Size()
	for i := 0; i < pages; i++ {
		c.rgba = atlas.AppendPageRGBA(c.rgba[:0], i)
		if err := c.backend.UploadTexture(c.fontsTexture.ID, i, 0, 0, width, height, c.rgba); err != nil {
			return fmt.Errorf("draw: upload glyph page %d: %w", i, err)
		}
	}
	c.glyphs.MarkUploaded()
	return nil
}

// AddTexture registers a texture under a name, replacing any previous
// registration.
func (c *Context) AddTexture(name string, t Texture) {
	c.textures[name] = t
}

// Texture returns the texture registered under the name.
func (c *Context) Texture(name string) (Texture, bool) {
	t, ok := c.textures[name]
	return t, ok
}

// RemoveTexture unregisters and returns the named texture. The backend
// resource is not destroyed; use UnloadTexture for that.
func (c *Context) RemoveTexture(name string) (Texture, bool) {
	t, ok := c.textures[name]
	if ok {
		delete(c.textures, name)
	}
	return t, ok
}

// AddMaterial registers a material handle under a name.
func (c *Context) AddMaterial(name string, id ember.MaterialID) {
	c.materials[name] = id
}

// Material returns the material registered under the name.
func (c *Context) Material(name string) (ember.MaterialID, bool) {
	id, ok := c.materials[name]
	return id, ok
}

// RemoveMaterial unregisters and returns the named material.
func (c *Context) RemoveMaterial(name string) (ember.MaterialID, bool) {
	id, ok := c.materials[name]
	if ok {
		delete(c.materials, name)
	}
	return id, ok
}

// LoadTexture creates a backend texture, uploads the given pixels and
// registers it under the name. Pixels are tightly packed RGBA with all
// layers concatenated; nil pixels create the texture without content.
func (c *Context) LoadTexture(name string, width, height, layers int, pixels []byte) (Texture, error) {
	if layers <= 0 {
		layers = 1
	}
	id, err := c.backend.CreateTexture(width, height, layers)
	if err != nil {
		return Texture{}, fmt.Errorf("draw: load texture %q: %w", name, err)
	}
	layerSize := width * height * 4
	for i := 0; i < layers && len(pixels) >= (i+1)*layerSize; i++ {
		layer := pixels[i*layerSize : (i+1)*layerSize]
		if err := c.backend.UploadTexture(id, i, 0, 0, width, height, layer); err != nil {
			c.backend.DestroyTexture(id)
			return Texture{}, fmt.Errorf("draw: load texture %q: %w", name, err)
		}
	}
	t := Texture{ID: id, Width: width, Height: height, Layers: layers}
	c.AddTexture(name, t)
	return t, nil
}

// UnloadTexture unregisters the named texture and destroys its backend
// resource. Unknown names are a no-op.
func (c *Context) UnloadTexture(name string) {
	if t, ok := c.RemoveTexture(name); ok && !t.IsZero() {
		c.backend.DestroyTexture(t.ID)
	}
}

// resolveTexture maps a ref to a registered texture. The zero ref
// resolves to the zero texture, which renders untextured.
func (c *Context) resolveTexture(ref TextureRef) (Texture, error) {
	if ref.name != "" {
		t, ok := c.textures[ref.name]
		if !ok {
			return Texture{}, fmt.Errorf("%w: %q", ErrUnknownTexture, ref.name)
		}
		return t, nil
	}
	return ref.value, nil
}

// resolveMaterial maps a ref to a material handle. The zero ref takes
// the top of the material stack, falling back to the default pipeline.
func (c *Context) resolveMaterial(ref MaterialRef) (ember.MaterialID, error) {
	if ref.name != "" {
		id, ok := c.materials[ref.name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, ref.name)
		}
		return id, nil
	}
	if !ref.id.IsZero() {
		return ref.id, nil
	}
	return c.ActiveMaterial(), nil
}

// resolveBlend maps BlendInherit to the active context blend.
func (c *Context) resolveBlend(blend ember.BlendMode) ember.BlendMode {
	if blend == BlendInherit {
		return c.ActiveBlend()
	}
	return blend
}

// PushMaterial resolves the ref and pushes it as the default material
// for drawables that do not name their own.
func (c *Context) PushMaterial(ref MaterialRef) error {
	id, err := c.resolveMaterial(ref)
	if err != nil {
		return err
	}
	c.materialStack = append(c.materialStack, id)
	return nil
}

// PopMaterial removes the top default material. Popping an empty stack
// is a no-op.
func (c *Context) PopMaterial() {
	if n := len(c.materialStack); n > 0 {
		c.materialStack = c.materialStack[:n-1]
	}
}

// WithMaterial runs f with the ref pushed as the default material.
func (c *Context) WithMaterial(ref MaterialRef, f func()) error {
	if err := c.PushMaterial(ref); err != nil {
		return err
	}
	defer c.PopMaterial()
	f()
	return nil
}

// ActiveMaterial returns the top default material, or the zero handle
// selecting the backend's default pipeline.
func (c *Context) ActiveMaterial() ember.MaterialID {
	if n := len(c.materialStack); n > 0 {
		return c.materialStack[n-1]
	}
	return 0
}

// PushBlend pushes a default blend mode for drawables left at
// BlendInherit.
func (c *Context) PushBlend(blend ember.BlendMode) {
	c.blendStack = append(c.blendStack, blend)
}

// PopBlend removes the top default blend mode.
func (c *Context) PopBlend() {
	if n := len(c.blendStack); n > 0 {
		c.blendStack = c.blendStack[:n-1]
	}
}

// WithBlend runs f with the blend mode pushed as the default.
func (c *Context) WithBlend(blend ember.BlendMode, f func()) {
	c.PushBlend(blend)
	defer c.PopBlend()
	f()
}

// ActiveBlend returns the top default blend mode, or ember.BlendNone.
func (c *Context) ActiveBlend() ember.BlendMode {
	if n := len(c.blendStack); n > 0 {
		return c.blendStack[n-1]
	}
	return ember.BlendNone
}

// PushTransform composes a transform onto the engine transform stack.
func (c *Context) PushTransform(delta ember.Matrix) {
	c.engine.PushTransform(delta, ember.Clip{})
}

// PushClip composes a scissor rectangle onto the engine transform
// stack without changing the transform.
func (c *Context) PushClip(clip ember.Clip) {
	c.engine.PushTransform(ember.Identity(), clip)
}

// PopTransform removes the top transform stack entry. It pairs with
// both PushTransform and PushClip.
func (c *Context) PopTransform() {
	c.engine.PopTransform()
}

// WithTransform runs f with the transform pushed.
func (c *Context) WithTransform(delta ember.Matrix, f func()) {
	c.engine.WithTransform(delta, ember.Clip{}, f)
}

// WithClip runs f with the scissor rectangle pushed.
func (c *Context) WithClip(clip ember.Clip, f func()) {
	c.engine.WithTransform(ember.Identity(), clip, f)
}

// Transform returns the accumulated transform and clip.
func (c *Context) Transform() (ember.Matrix, ember.Clip) {
	return c.engine.Transform()
}

// Draw records the drawables onto the frame in order, stopping at the
// first failure.
func (c *Context) Draw(drawables ...Drawable) error {
	for _, d := range drawables {
		if err := d.Draw(c); err != nil {
			return err
		}
	}
	return nil
}
