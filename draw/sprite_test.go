package draw

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/ember"
)

func nearPoint(t *testing.T, got [2]float32, wantX, wantY float32) {
	t.Helper()
	const tolerance = 1e-4
	if math32.Abs(got[0]-wantX) > tolerance || math32.Abs(got[1]-wantY) > tolerance {
		t.Errorf("position = (%v, %v), want (%v, %v)", got[0], got[1], wantX, wantY)
	}
}

func TestSpriteQuadGeometry(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	s := NewSprite(TextureRef{})
	s.Placement.Position = ember.Pt(10, 20)
	s.Size = ember.Pt(4, 6)
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	vertices := ctx.Engine().Stream().Vertices()
	if len(vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(vertices))
	}
	nearPoint(t, vertices[0].Position, 10, 20)
	nearPoint(t, vertices[1].Position, 14, 20)
	nearPoint(t, vertices[2].Position, 14, 26)
	nearPoint(t, vertices[3].Position, 10, 26)

	wantUV := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for i, v := range vertices {
		if v.UV != wantUV[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v.UV, wantUV[i])
		}
		if v.Color != ember.White {
			t.Errorf("vertex %d color = %v, want white", i, v.Color)
		}
	}

	if got := len(ctx.Engine().Stream().Triangles()); got != 2 {
		t.Errorf("triangle count = %d, want 2", got)
	}
}

func TestSpriteRegionPageTint(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	s := NewSprite(TextureRef{})
	s.Size = ember.Pt(1, 1)
	s.Region = ember.R(0.25, 0.5, 0.5, 0.25)
	s.Page = 2
	s.Tint = [4]float32{0, 1, 0, 0.5}
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	vertices := ctx.Engine().Stream().Vertices()
	wantUV := [][3]float32{
		{0.25, 0.5, 2}, {0.75, 0.5, 2}, {0.75, 0.75, 2}, {0.25, 0.75, 2},
	}
	for i, v := range vertices {
		if v.UV != wantUV[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v.UV, wantUV[i])
		}
		if v.Color != s.Tint {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, s.Tint)
		}
	}
}

func TestSpritePivotRotation(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	s := NewSprite(TextureRef{})
	s.Size = ember.Pt(2, 2)
	s.Pivot = ember.Pt(0.5, 0.5)
	s.Placement.Rotation = math32.Pi / 2
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	// A quarter turn around the center maps (x, y) to (-y, x).
	vertices := ctx.Engine().Stream().Vertices()
	nearPoint(t, vertices[0].Position, 1, -1)
	nearPoint(t, vertices[1].Position, 1, 1)
	nearPoint(t, vertices[2].Position, -1, 1)
	nearPoint(t, vertices[3].Position, -1, -1)
}

func TestSpriteScale(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	s := NewSprite(TextureRef{})
	s.Size = ember.Pt(2, 2)
	s.Placement.Scale = ember.Pt(3, 0.5)
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	vertices := ctx.Engine().Stream().Vertices()
	nearPoint(t, vertices[2].Position, 6, 1)
}

func TestSpriteSizeDefaultsToTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	if _, err := ctx.LoadTexture("sheet", 8, 4, 1, nil); err != nil {
		t.Fatalf("LoadTexture() = %v", err)
	}
	beginTestFrame(ctx, 64, 64, nil)

	if err := ctx.Draw(NewSprite(TextureName("sheet"))); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	vertices := ctx.Engine().Stream().Vertices()
	if len(vertices) != 4 {
		t.Fatalf("vertex count = %d, want 4", len(vertices))
	}
	nearPoint(t, vertices[2].Position, 8, 4)
}

func TestSpriteWithoutSizeOrTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	if err := ctx.Draw(NewSprite(TextureRef{})); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if got := len(ctx.Engine().Stream().Vertices()); got != 0 {
		t.Errorf("vertex count = %d, want 0", got)
	}
}

func TestSpriteUnknownTexture(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	err := ctx.Draw(NewSprite(TextureName("missing")))
	if !errors.Is(err, ErrUnknownTexture) {
		t.Fatalf("Draw() = %v, want ErrUnknownTexture", err)
	}
}

func TestSpriteLiteralDefaults(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	// A literal-built sprite has a zero region and tint; both fall
	// back to the conventional defaults at draw time.
	if err := ctx.Draw(Sprite{Size: ember.Pt(1, 1)}); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	vertices := ctx.Engine().Stream().Vertices()
	if vertices[2].UV != ([3]float32{1, 1, 0}) {
		t.Errorf("literal sprite uv = %v, want full region", vertices[2].UV)
	}
	if vertices[0].Color != ember.White {
		t.Errorf("literal sprite color = %v, want white", vertices[0].Color)
	}
}

func TestSpriteStateAndBatching(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	a := solidSprite(ember.White, 0, 0, 1, 1)
	b := solidSprite([4]float32{1, 0, 0, 1}, 2, 0, 1, 1)
	if err := ctx.Draw(a, b); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	// Tint is per-vertex data, not state: both quads share one batch.
	if got := len(ctx.Engine().Stream().Batches()); got != 1 {
		t.Fatalf("batch count = %d, want 1", got)
	}

	c := solidSprite(ember.White, 4, 0, 1, 1)
	c.Blend = ember.BlendAdditive
	if err := ctx.Draw(c); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if got := len(ctx.Engine().Stream().Batches()); got != 2 {
		t.Errorf("batch count after blend change = %d, want 2", got)
	}
}

func TestSpriteScreenSpace(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	s := solidSprite(ember.White, 0, 0, 1, 1)
	s.ScreenSpace = true
	if err := ctx.Draw(s); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	batches := ctx.Engine().Stream().Batches()
	if len(batches) != 1 || batches[0].State.Space != ember.SpaceScreen {
		t.Fatalf("batch state = %+v, want screen space", batches[0].State)
	}
}

func TestSpriteInheritsContextBlend(t *testing.T) {
	ctx, _ := newTestContext(t)
	beginTestFrame(ctx, 64, 64, nil)

	ctx.WithBlend(ember.BlendAlpha, func() {
		if err := ctx.Draw(solidSprite(ember.White, 0, 0, 1, 1)); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
	})
	batches := ctx.Engine().Stream().Batches()
	if len(batches) != 1 || batches[0].State.Blend != ember.BlendAlpha {
		t.Fatalf("batch blend = %+v, want BlendAlpha", batches[0].State.Blend)
	}
}
