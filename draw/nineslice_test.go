package draw

import (
	"testing"

	"github.com/gogpu/ember"
)

func TestMarginsClamp(t *testing.T) {
	m := Margins{Left: -0.5, Right: 1.5, Top: 0.25, Bottom: 1}.Clamp()
	want := Margins{Left: 0, Right: 1, Top: 0.25, Bottom: 1}
	if m != want {
		t.Fatalf("Clamp() = %+v, want %+v", m, want)
	}
}

func TestMarginsFitToSize(t *testing.T) {
	tests := []struct {
		name    string
		margins Margins
		size    ember.Point
		want    Margins
	}{
		{
			name:    "fits untouched",
			margins: Margins{Left: 2, Right: 2, Top: 2, Bottom: 2},
			size:    ember.Pt(10, 10),
			want:    Margins{Left: 2, Right: 2, Top: 2, Bottom: 2},
		},
		{
			name:    "horizontal overflow scales x only",
			margins: Margins{Left: 8, Right: 8, Top: 2, Bottom: 2},
			size:    ember.Pt(10, 100),
			want:    Margins{Left: 5, Right: 5, Top: 2, Bottom: 2},
		},
		{
			name:    "vertical overflow scales y only",
			margins: Margins{Left: 2, Right: 2, Top: 8, Bottom: 8},
			size:    ember.Pt(100, 10),
			want:    Margins{Left: 2, Right: 2, Top: 5, Bottom: 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.margins.fitToSize(tt.size); got != tt.want {
				t.Errorf("fitToSize(%v) = %+v, want %+v", tt.size, got, tt.want)
			}
		})
	}
}

func TestNineSliceGeometry(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	n := NewNineSlice(TextureRef{}, UniformMargins(2))
	n.Size = ember.Pt(10, 10)
	n.SourceMargins = UniformMargins(0.25)
	if err := ctx.Draw(n); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	vertices := ctx.Engine().Stream().Vertices()
	if len(vertices) != 16 {
		t.Fatalf("vertex count = %d, want 16", len(vertices))
	}
	if got := len(ctx.Engine().Stream().Triangles()); got != 18 {
		t.Fatalf("triangle count = %d, want 18", got)
	}

	xs := []float32{0, 2, 8, 10}
	ys := []float32{0, 2, 8, 10}
	us := []float32{0, 0.25, 0.75, 1}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			v := vertices[row*4+col]
			nearPoint(t, v.Position, xs[col], ys[row])
			if v.UV[0] != us[col] || v.UV[1] != us[row] {
				t.Errorf("vertex (%d,%d) uv = %v, want (%v, %v)",
					row, col, v.UV, us[col], us[row])
			}
		}
	}
}

func TestNineSliceFrameOnly(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	n := NewNineSlice(TextureRef{}, UniformMargins(2))
	n.Size = ember.Pt(10, 10)
	n.FrameOnly = true
	if err := ctx.Draw(n); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	triangles := ctx.Engine().Stream().Triangles()
	if len(triangles) != 16 {
		t.Fatalf("triangle count = %d, want 16", len(triangles))
	}
	center := ember.Triangle{A: 5, B: 6, C: 10}
	for _, tri := range triangles {
		if tri == center {
			t.Fatal("frame-only grid contains the center cell")
		}
	}
}

func TestNineSliceMarginsExceedingSize(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	n := NewNineSlice(TextureRef{}, Margins{})
	n.Size = ember.Pt(10, 10)
	n.TargetMargins = UniformMargins(8)
	if err := ctx.Draw(n); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	// 8+8 margins on a 10 pixel extent shrink to 5+5: the center
	// columns and rows collapse onto the middle grid line.
	vertices := ctx.Engine().Stream().Vertices()
	nearPoint(t, vertices[1].Position, 5, 0)
	nearPoint(t, vertices[2].Position, 5, 0)
	nearPoint(t, vertices[4].Position, 0, 5)
	nearPoint(t, vertices[8].Position, 0, 5)
}

func TestNineSliceSizeDefaultsToTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	if _, err := ctx.LoadTexture("panel", 12, 6, 1, nil); err != nil {
		t.Fatalf("LoadTexture() = %v", err)
	}
	beginTestFrame(ctx, 64, 64, nil)

	if err := ctx.Draw(NewNineSlice(TextureName("panel"), UniformMargins(1))); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	vertices := ctx.Engine().Stream().Vertices()
	nearPoint(t, vertices[15].Position, 12, 6)
}

func TestNineSlicePlacementAndPivot(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	n := NewNineSlice(TextureRef{}, UniformMargins(1))
	n.Size = ember.Pt(4, 4)
	n.Pivot = ember.Pt(0.5, 0.5)
	n.Placement.Position = ember.Pt(10, 10)
	if err := ctx.Draw(n); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	vertices := ctx.Engine().Stream().Vertices()
	nearPoint(t, vertices[0].Position, 8, 8)
	nearPoint(t, vertices[15].Position, 12, 12)
}
