package gui

import (
	"hash/fnv"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/draw"
	"github.com/gogpu/ember/input"
)

// UI runs one immediate-mode pass per frame: Begin samples the bound
// input refs, widgets render and interact in call order, End settles
// the interaction state.
type UI struct {
	// Theme is the shared widget appearance, mutable between frames.
	Theme Theme

	draw     *draw.Context
	pointerX *input.AxisRef
	pointerY *input.AxisRef
	click    *input.ActionRef

	pointer    ember.Point
	clickState input.ActionState
	hot        uint64
	active     uint64
}

// New creates a UI drawing through the given context.
func New(ctx *draw.Context, theme Theme) *UI {
	return &UI{Theme: theme, draw: ctx}
}

// Context returns the draw context widgets render through.
func (ui *UI) Context() *draw.Context {
	return ui.draw
}

// BindPointer wires the pointer position and primary click refs,
// typically bound to MouseX, MouseY and a mouse button in an input
// mapping. Nil refs read as zero.
func (ui *UI) BindPointer(x, y *input.AxisRef, click *input.ActionRef) {
	ui.pointerX = x
	ui.pointerY = y
	ui.click = click
}

// Begin starts a widget pass: samples the bound input and forgets the
// previous frame's hot widget.
func (ui *UI) Begin() {
	if ui.pointerX != nil {
		ui.pointer.X = float32(ui.pointerX.Get())
	}
	if ui.pointerY != nil {
		ui.pointer.Y = float32(ui.pointerY.Get())
	}
	ui.clickState = input.Idle
	if ui.click != nil {
		ui.clickState = ui.click.Get()
	}
	ui.hot = 0
}

// End settles the pass. A click that ended this frame releases the
// active widget even when that widget was not emitted.
func (ui *UI) End() {
	if ui.clickState.IsUp() {
		ui.active = 0
	}
}

// Pointer returns the pointer position sampled at Begin.
func (ui *UI) Pointer() ember.Point {
	return ui.pointer
}

// IsHot reports whether the pointer was over the widget this pass.
func (ui *UI) IsHot(id string) bool {
	return ui.hot != 0 && ui.hot == widgetID(id)
}

// IsActive reports whether the widget holds the current click.
func (ui *UI) IsActive(id string) bool {
	return ui.active != 0 && ui.active == widgetID(id)
}

// widgetID hashes a widget id for hot and active comparisons.
func widgetID(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// interact updates hot and active for one widget and reports a
// completed click: pressed on the widget, released still over it.
func (ui *UI) interact(id uint64, rect ember.Rect) bool {
	inside := rect.Contains(ui.pointer)
	if inside {
		ui.hot = id
	}
	clicked := false
	if ui.active == id && ui.clickState.IsReleased() {
		clicked = inside
		ui.active = 0
	}
	if inside && ui.clickState.IsPressed() && ui.active == 0 {
		ui.active = id
	}
	return clicked
}
