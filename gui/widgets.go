package gui

import (
	"github.com/gogpu/ember"
	"github.com/gogpu/ember/draw"
)

// Panel draws a non-interactive background box.
func (ui *UI) Panel(rect ember.Rect) error {
	return ui.box(rect, ui.Theme.PanelTint)
}

// Label draws themed text at the rectangle origin, wrapping at its
// width when positive.
func (ui *UI) Label(rect ember.Rect, content string) error {
	t := draw.NewText(ui.Theme.Font, ui.Theme.FontSize, content)
	t.Tint = ui.Theme.Text
	t.MaxWidth = rect.W
	t.Placement = draw.Placement{Position: rect.Min()}
	t.ScreenSpace = true
	return ui.draw.Draw(t)
}

// Button draws a clickable box with a centered label and reports
// whether it was clicked this frame.
func (ui *UI) Button(id string, rect ember.Rect, label string) (bool, error) {
	wid := widgetID(id)
	clicked := ui.interact(wid, rect)

	tint := ui.Theme.ButtonIdle
	switch {
	case ui.active == wid:
		tint = ui.Theme.ButtonActive
	case ui.hot == wid:
		tint = ui.Theme.ButtonHot
	}
	if err := ui.box(rect, tint); err != nil {
		return clicked, err
	}
	if label == "" {
		return clicked, nil
	}

	t := draw.NewText(ui.Theme.Font, ui.Theme.FontSize, label)
	t.Tint = ui.Theme.Text
	t.ScreenSpace = true
	width, height, err := ui.draw.MeasureText(t)
	if err != nil {
		return clicked, err
	}
	t.Placement = draw.Placement{Position: ember.Pt(
		rect.X+(rect.W-width)/2,
		rect.Y+(rect.H-height)/2,
	)}
	return clicked, ui.draw.Draw(t)
}

// box fills a rectangle with the theme panel, nine-sliced when
// textured.
func (ui *UI) box(rect ember.Rect, tint [4]float32) error {
	if ui.Theme.Panel.IsZero() {
		sprite := draw.NewSprite(draw.TextureRef{})
		sprite.Tint = tint
		sprite.Size = rect.Size()
		sprite.Placement = draw.Placement{Position: rect.Min()}
		sprite.ScreenSpace = true
		return ui.draw.Draw(sprite)
	}
	slice := draw.NewNineSlice(ui.Theme.Panel, ui.Theme.PanelSource)
	slice.TargetMargins = ui.Theme.PanelMargins
	slice.Tint = tint
	slice.Size = rect.Size()
	slice.Placement = draw.Placement{Position: rect.Min()}
	slice.ScreenSpace = true
	return ui.draw.Draw(slice)
}
