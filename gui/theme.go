package gui

import (
	"github.com/gogpu/ember"
	"github.com/gogpu/ember/draw"
)

// Theme holds the shared widget appearance. The zero Panel ref draws
// widgets as flat fills; a textured panel draws nine-slices with the
// theme margins.
type Theme struct {
	// Font names a font in the context store; FontSize is in pixels.
	Font     string
	FontSize float32
	// Text tints widget labels.
	Text [4]float32

	// Panel is the widget background texture. PanelSource gives the
	// nine-slice cuts as texture fractions, PanelMargins as target
	// pixels.
	Panel        draw.TextureRef
	PanelSource  draw.Margins
	PanelMargins draw.Margins
	// PanelTint colors panel backgrounds.
	PanelTint [4]float32

	// Button background tints per interaction state.
	ButtonIdle   [4]float32
	ButtonHot    [4]float32
	ButtonActive [4]float32
}

// DefaultTheme returns a dark flat theme using the font registered
// under "default".
func DefaultTheme() Theme {
	return Theme{
		Font:         "default",
		FontSize:     16,
		Text:         ember.White,
		PanelTint:    [4]float32{0.13, 0.13, 0.16, 0.94},
		ButtonIdle:   [4]float32{0.22, 0.22, 0.26, 1},
		ButtonHot:    [4]float32{0.30, 0.30, 0.36, 1},
		ButtonActive: [4]float32{0.16, 0.16, 0.20, 1},
	}
}
