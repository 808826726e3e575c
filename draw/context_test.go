package draw

import (
	"errors"
	"testing"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend/headless"
	"github.com/gogpu/ember/text"
)

// textAtlasConfig keeps test glyph textures small.
func textAtlasConfig() text.AtlasConfig {
	return text.AtlasConfig{PageWidth: 256, PageHeight: 256, Padding: 1, MaxPages: 2}
}

// newTestContext builds a context over an initialized headless backend
// with a small glyph atlas.
func newTestContext(t *testing.T) (*Context, *headless.Backend) {
	t.Helper()
	b := headless.New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(b.Close)
	engine := ember.NewEngine()
	ctx := NewContext(engine, b, WithGlyphAtlas(textAtlasConfig()))
	return ctx, b
}

// beginTestFrame opens a frame on a width x height pixel target.
func beginTestFrame(ctx *Context, width, height int, clear *[4]float32) {
	ctx.BeginFrame(ember.ScreenView(float32(width), float32(height)), width, height, clear)
}

func solidSprite(tint [4]float32, x, y, w, h float32) Sprite {
	s := NewSprite(TextureRef{})
	s.Tint = tint
	s.Placement.Position = ember.Pt(x, y)
	s.Size = ember.Pt(w, h)
	return s
}

func samePixel(got, want [4]float32) bool {
	const tolerance = 0.01
	for i := range got {
		d := got[i] - want[i]
		if d < -tolerance || d > tolerance {
			return false
		}
	}
	return true
}

func TestContextTextureRegistry(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := Texture{ID: 7, Width: 16, Height: 8, Layers: 1}
	ctx.AddTexture("bricks", tex)

	got, ok := ctx.Texture("bricks")
	if !ok || got != tex {
		t.Fatalf("Texture(bricks) = %+v, %v, want %+v, true", got, ok, tex)
	}
	if _, ok := ctx.Texture("missing"); ok {
		t.Error("Texture(missing) reported ok")
	}

	removed, ok := ctx.RemoveTexture("bricks")
	if !ok || removed != tex {
		t.Fatalf("RemoveTexture(bricks) = %+v, %v", removed, ok)
	}
	if _, ok := ctx.Texture("bricks"); ok {
		t.Error("texture still registered after removal")
	}
}

func TestContextMaterialRegistry(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.AddMaterial("glow", 3)

	if id, ok := ctx.Material("glow"); !ok || id != 3 {
		t.Fatalf("Material(glow) = %d, %v, want 3, true", id, ok)
	}
	if removed, ok := ctx.RemoveMaterial("glow"); !ok || removed != 3 {
		t.Fatalf("RemoveMaterial(glow) = %d, %v", removed, ok)
	}
	if _, ok := ctx.Material("glow"); ok {
		t.Error("material still registered after removal")
	}
}

func TestContextResolveTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	tex := Texture{ID: 11, Width: 4, Height: 4, Layers: 1}
	ctx.AddTexture("hero", tex)

	if got, err := ctx.resolveTexture(TextureName("hero")); err != nil || got != tex {
		t.Errorf("resolve by name = %+v, %v", got, err)
	}
	if got, err := ctx.resolveTexture(TextureValue(tex)); err != nil || got != tex {
		t.Errorf("resolve by value = %+v, %v", got, err)
	}
	if got, err := ctx.resolveTexture(TextureRef{}); err != nil || !got.IsZero() {
		t.Errorf("resolve zero ref = %+v, %v, want zero texture", got, err)
	}
	if _, err := ctx.resolveTexture(TextureName("missing")); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("resolve unknown name = %v, want ErrUnknownTexture", err)
	}
}

func TestContextResolveMaterial(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.AddMaterial("glow", 5)

	if id, err := ctx.resolveMaterial(MaterialRef{}); err != nil || id != 0 {
		t.Errorf("zero ref with empty stack = %d, %v, want default pipeline", id, err)
	}
	if id, err := ctx.resolveMaterial(MaterialName("glow")); err != nil || id != 5 {
		t.Errorf("resolve by name = %d, %v", id, err)
	}
	if id, err := ctx.resolveMaterial(MaterialValue(9)); err != nil || id != 9 {
		t.Errorf("resolve by value = %d, %v", id, err)
	}
	if _, err := ctx.resolveMaterial(MaterialName("missing")); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("resolve unknown name = %v, want ErrUnknownMaterial", err)
	}

	if err := ctx.PushMaterial(MaterialName("glow")); err != nil {
		t.Fatalf("PushMaterial() = %v", err)
	}
	if id, err := ctx.resolveMaterial(MaterialRef{}); err != nil || id != 5 {
		t.Errorf("zero ref with stack = %d, %v, want 5", id, err)
	}
	ctx.PopMaterial()
	if got := ctx.ActiveMaterial(); got != 0 {
		t.Errorf("ActiveMaterial after pop = %d, want 0", got)
	}
	ctx.PopMaterial() // empty pop is a no-op
}

func TestContextPushMaterialUnknownName(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.PushMaterial(MaterialName("missing")); !errors.Is(err, ErrUnknownMaterial) {
		t.Fatalf("PushMaterial(missing) = %v, want ErrUnknownMaterial", err)
	}
	if got := ctx.ActiveMaterial(); got != 0 {
		t.Errorf("failed push changed the stack: ActiveMaterial = %d", got)
	}
}

func TestContextBlendStack(t *testing.T) {
	ctx, _ := newTestContext(t)

	if got := ctx.ActiveBlend(); got != ember.BlendNone {
		t.Fatalf("default ActiveBlend = %v, want BlendNone", got)
	}
	if got := ctx.resolveBlend(BlendInherit); got != ember.BlendNone {
		t.Errorf("resolveBlend(BlendInherit) empty = %v, want BlendNone", got)
	}

	ctx.PushBlend(ember.BlendAdditive)
	if got := ctx.resolveBlend(BlendInherit); got != ember.BlendAdditive {
		t.Errorf("resolveBlend(BlendInherit) = %v, want BlendAdditive", got)
	}
	if got := ctx.resolveBlend(ember.BlendMultiply); got != ember.BlendMultiply {
		t.Errorf("explicit blend overridden to %v", got)
	}
	ctx.PopBlend()

	var inside ember.BlendMode
	ctx.WithBlend(ember.BlendAlpha, func() {
		inside = ctx.ActiveBlend()
	})
	if inside != ember.BlendAlpha {
		t.Errorf("WithBlend inner = %v, want BlendAlpha", inside)
	}
	if got := ctx.ActiveBlend(); got != ember.BlendNone {
		t.Errorf("WithBlend leaked: ActiveBlend = %v", got)
	}
}

func TestContextFrameClearAndDraw(t *testing.T) {
	ctx, b := newTestContext(t)
	clear := [4]float32{0, 0, 1, 1}
	beginTestFrame(ctx, 4, 4, &clear)

	if err := ctx.Draw(solidSprite([4]float32{1, 0, 0, 1}, 0, 0, 2, 2)); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}

	surface := b.Surface()
	if surface == nil {
		t.Fatal("no surface after submit")
	}
	if got := surface.At(0, 0); !samePixel(got, [4]float32{1, 0, 0, 1}) {
		t.Errorf("sprite pixel = %v, want red", got)
	}
	if got := surface.At(3, 3); !samePixel(got, clear) {
		t.Errorf("background pixel = %v, want clear color", got)
	}
}

func TestContextEndFrameWithoutBegin(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame without BeginFrame = %v", err)
	}
}

func TestContextAbandonFrame(t *testing.T) {
	ctx, b := newTestContext(t)
	blue := [4]float32{0, 0, 1, 1}
	beginTestFrame(ctx, 2, 2, &blue)
	if err := ctx.Draw(solidSprite([4]float32{1, 0, 0, 1}, 0, 0, 2, 2)); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}

	green := [4]float32{0, 1, 0, 1}
	beginTestFrame(ctx, 2, 2, &green)
	if err := ctx.Draw(solidSprite([4]float32{1, 1, 0, 1}, 0, 0, 2, 2)); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	ctx.AbandonFrame()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame after abandon = %v", err)
	}

	// Neither the recording nor the pending clear of the abandoned
	// frame reached the surface.
	if got := b.Surface().At(0, 0); !samePixel(got, [4]float32{1, 0, 0, 1}) {
		t.Errorf("pixel after abandon = %v, want first frame's red", got)
	}

	// Abandoning outside a frame is a no-op.
	ctx.AbandonFrame()
}

func TestContextWhiteTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	if !ctx.WhiteTexture().IsZero() {
		t.Fatal("white texture exists before the first frame")
	}
	beginTestFrame(ctx, 4, 4, nil)
	white := ctx.WhiteTexture()
	if white.IsZero() {
		t.Fatal("white texture missing after BeginFrame")
	}
	if white.Width != 1 || white.Height != 1 {
		t.Errorf("white texture size = %dx%d, want 1x1", white.Width, white.Height)
	}

	s := NewSprite(TextureValue(white))
	s.Size = ember.Pt(2, 2)
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw(white sprite) = %v", err)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestContextLoadUnloadTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
	}
	tex, err := ctx.LoadTexture("duo", 2, 1, 1, pixels)
	if err != nil {
		t.Fatalf("LoadTexture() = %v", err)
	}
	if tex.IsZero() || tex.Width != 2 || tex.Height != 1 {
		t.Fatalf("loaded texture = %+v", tex)
	}
	if got, ok := ctx.Texture("duo"); !ok || got != tex {
		t.Fatalf("registry lookup = %+v, %v", got, ok)
	}

	ctx.UnloadTexture("duo")
	if _, ok := ctx.Texture("duo"); ok {
		t.Error("texture still registered after UnloadTexture")
	}
	ctx.UnloadTexture("duo") // unknown name is a no-op
}

func TestContextTransformHelpers(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 8, 8, nil)

	ctx.PushTransform(ember.Translate(5, 0))
	if err := ctx.Draw(solidSprite(ember.White, 0, 0, 1, 1)); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	ctx.PopTransform()

	vertices := ctx.Engine().Stream().Vertices()
	if len(vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(vertices))
	}
	if vertices[0].Position[0] != 5 {
		t.Errorf("transformed x = %v, want 5", vertices[0].Position[0])
	}

	m, _ := ctx.Transform()
	if !m.IsIdentity() {
		t.Errorf("transform not restored after pop: %+v", m)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestContextClipHelpers(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 8, 8, nil)

	clip := ember.ClipRect(1, 1, 4, 4)
	ctx.WithClip(clip, func() {
		if err := ctx.Draw(solidSprite(ember.White, 0, 0, 8, 8)); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
	})

	batches := ctx.Engine().Stream().Batches()
	if len(batches) != 1 {
		t.Fatalf("batch count = %d, want 1", len(batches))
	}
	if batches[0].State.Clip != clip {
		t.Errorf("batch clip = %+v, want %+v", batches[0].State.Clip, clip)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestContextDrawStopsAtFirstError(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 8, 8, nil)

	good := solidSprite(ember.White, 0, 0, 1, 1)
	bad := NewSprite(TextureName("missing"))
	bad.Size = ember.Pt(1, 1)

	err := ctx.Draw(good, bad, good)
	if !errors.Is(err, ErrUnknownTexture) {
		t.Fatalf("Draw() = %v, want ErrUnknownTexture", err)
	}
	if got := len(ctx.Engine().Stream().Vertices()); got != 4 {
		t.Errorf("vertex count after failed draw = %d, want 4", got)
	}
}

func TestContextStacksResetAcrossFrames(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.AddMaterial("glow", 2)

	beginTestFrame(ctx, 4, 4, nil)
	ctx.PushBlend(ember.BlendAdditive)
	if err := ctx.PushMaterial(MaterialName("glow")); err != nil {
		t.Fatalf("PushMaterial() = %v", err)
	}
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}

	beginTestFrame(ctx, 4, 4, nil)
	if got := ctx.ActiveBlend(); got != ember.BlendNone {
		t.Errorf("blend stack survived the frame: %v", got)
	}
	if got := ctx.ActiveMaterial(); got != 0 {
		t.Errorf("material stack survived the frame: %d", got)
	}
}
