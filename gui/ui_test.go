package gui

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend/headless"
	"github.com/gogpu/ember/draw"
	"github.com/gogpu/ember/input"
	"github.com/gogpu/ember/text"
)

type testInput struct {
	x     *input.AxisRef
	y     *input.AxisRef
	click *input.ActionRef
}

func (in testInput) press() { in.click.Set(in.click.Get().Change(true)) }

func (in testInput) release() { in.click.Set(in.click.Get().Change(false)) }

func (in testInput) settle() { in.click.Set(in.click.Get().Update()) }

func (in testInput) move(x, y float32) {
	in.x.Set(input.Axis(x))
	in.y.Set(input.Axis(y))
}

func newTestUI(t *testing.T) (*UI, testInput) {
	t.Helper()
	b := headless.New()
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	t.Cleanup(b.Close)

	engine := ember.NewEngine()
	ctx := draw.NewContext(engine, b, draw.WithGlyphAtlas(text.AtlasConfig{
		PageWidth:  256,
		PageHeight: 256,
		Padding:    1,
		MaxPages:   2,
	}))
	f, err := text.LoadFont("default", goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFont() = %v", err)
	}
	ctx.Fonts.Insert("default", f)

	in := testInput{x: input.NewAxisRef(), y: input.NewAxisRef(), click: input.NewActionRef()}
	ui := New(ctx, DefaultTheme())
	ui.BindPointer(in.x, in.y, in.click)
	return ui, in
}

// buttonFrame runs one widget pass with a single button and reports
// whether it was clicked.
func buttonFrame(t *testing.T, ui *UI, rect ember.Rect) bool {
	t.Helper()
	ctx := ui.Context()
	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	clicked, err := ui.Button("ok", rect, "")
	if err != nil {
		t.Fatalf("Button() = %v", err)
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
	return clicked
}

func TestButtonClickLifecycle(t *testing.T) {
	ui, in := newTestUI(t)
	rect := ember.R(10, 10, 40, 20)

	in.move(30, 20)
	if buttonFrame(t, ui, rect) {
		t.Fatal("clicked while idle")
	}
	if !ui.IsHot("ok") {
		t.Fatal("button not hot under the pointer")
	}

	in.press()
	if buttonFrame(t, ui, rect) {
		t.Fatal("clicked on press")
	}
	if !ui.IsActive("ok") {
		t.Fatal("button not active after press")
	}

	in.settle()
	if buttonFrame(t, ui, rect) {
		t.Fatal("clicked while held")
	}
	if !ui.IsActive("ok") {
		t.Fatal("button lost active while held")
	}

	in.release()
	if !buttonFrame(t, ui, rect) {
		t.Fatal("release over the button did not click")
	}
	if ui.IsActive("ok") {
		t.Fatal("button still active after click")
	}
}

func TestButtonReleaseOutside(t *testing.T) {
	ui, in := newTestUI(t)
	rect := ember.R(10, 10, 40, 20)

	in.move(30, 20)
	in.press()
	buttonFrame(t, ui, rect)
	if !ui.IsActive("ok") {
		t.Fatal("button not active after press")
	}

	in.settle()
	in.move(90, 90)
	buttonFrame(t, ui, rect)

	in.release()
	if buttonFrame(t, ui, rect) {
		t.Fatal("release outside the button clicked it")
	}
	if ui.IsActive("ok") {
		t.Fatal("button still active after outside release")
	}
}

func TestButtonTintFollowsState(t *testing.T) {
	ui, in := newTestUI(t)
	ctx := ui.Context()
	rect := ember.R(0, 0, 20, 20)

	tintAfterPass := func() [4]float32 {
		ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
		ui.Begin()
		if _, err := ui.Button("ok", rect, ""); err != nil {
			t.Fatalf("Button() = %v", err)
		}
		vertices := ctx.Engine().Stream().Vertices()
		if len(vertices) != 4 {
			t.Fatalf("vertex count = %d, want 4", len(vertices))
		}
		tint := vertices[0].Color
		ui.End()
		if err := ctx.EndFrame(); err != nil {
			t.Fatalf("EndFrame() = %v", err)
		}
		return tint
	}

	in.move(50, 50)
	if got := tintAfterPass(); got != ui.Theme.ButtonIdle {
		t.Errorf("idle tint = %v, want %v", got, ui.Theme.ButtonIdle)
	}
	in.move(10, 10)
	if got := tintAfterPass(); got != ui.Theme.ButtonHot {
		t.Errorf("hot tint = %v, want %v", got, ui.Theme.ButtonHot)
	}
	in.press()
	if got := tintAfterPass(); got != ui.Theme.ButtonActive {
		t.Errorf("active tint = %v, want %v", got, ui.Theme.ButtonActive)
	}
}

func TestButtonLabelDraws(t *testing.T) {
	ui, _ := newTestUI(t)
	ctx := ui.Context()

	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	if _, err := ui.Button("ok", ember.R(10, 10, 60, 24), "OK"); err != nil {
		t.Fatalf("Button() = %v", err)
	}
	vertices := ctx.Engine().Stream().Vertices()
	if len(vertices) <= 4 || len(vertices)%4 != 0 {
		t.Errorf("vertex count = %d, want box plus glyph quads", len(vertices))
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestLabelDrawsText(t *testing.T) {
	ui, _ := newTestUI(t)
	ctx := ui.Context()

	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	if err := ui.Label(ember.R(5, 5, 90, 0), "hello"); err != nil {
		t.Fatalf("Label() = %v", err)
	}
	if got := len(ctx.Engine().Stream().Vertices()); got == 0 || got%4 != 0 {
		t.Errorf("vertex count = %d, want glyph quads", got)
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestPanelFlatAndTextured(t *testing.T) {
	ui, _ := newTestUI(t)
	ctx := ui.Context()

	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	if err := ui.Panel(ember.R(0, 0, 50, 50)); err != nil {
		t.Fatalf("Panel() = %v", err)
	}
	if got := len(ctx.Engine().Stream().Vertices()); got != 4 {
		t.Errorf("flat panel vertex count = %d, want 4", got)
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}

	if _, err := ctx.LoadTexture("panel", 8, 8, 1, nil); err != nil {
		t.Fatalf("LoadTexture() = %v", err)
	}
	ui.Theme.Panel = draw.TextureName("panel")
	ui.Theme.PanelSource = draw.UniformMargins(0.25)
	ui.Theme.PanelMargins = draw.UniformMargins(4)

	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	if err := ui.Panel(ember.R(0, 0, 50, 50)); err != nil {
		t.Fatalf("Panel() = %v", err)
	}
	if got := len(ctx.Engine().Stream().Vertices()); got != 16 {
		t.Errorf("textured panel vertex count = %d, want 16", got)
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}

func TestActiveClearedWithoutWidget(t *testing.T) {
	ui, in := newTestUI(t)
	ctx := ui.Context()
	rect := ember.R(10, 10, 40, 20)

	in.move(30, 20)
	in.press()
	buttonFrame(t, ui, rect)
	if !ui.IsActive("ok") {
		t.Fatal("button not active after press")
	}

	in.release()
	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
	if ui.IsActive("ok") {
		t.Fatal("active widget survived a pass it was not emitted in")
	}
}

func TestUnknownFontPropagates(t *testing.T) {
	ui, _ := newTestUI(t)
	ctx := ui.Context()
	ui.Theme.Font = "missing"

	ctx.BeginFrame(ember.ScreenView(100, 100), 100, 100, nil)
	ui.Begin()
	err := ui.Label(ember.R(0, 0, 50, 0), "hi")
	if !errors.Is(err, draw.ErrUnknownFont) {
		t.Fatalf("Label() = %v, want ErrUnknownFont", err)
	}
	ui.End()
	if err := ctx.EndFrame(); err != nil {
		t.Fatalf("EndFrame() = %v", err)
	}
}
