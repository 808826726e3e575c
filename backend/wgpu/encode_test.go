package wgpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/ember"
)

func f32At(t *testing.T, buf []byte, off int) float32 {
	t.Helper()
	if off+4 > len(buf) {
		t.Fatalf("offset %d out of range for %d byte buffer", off, len(buf))
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestBuildVertexDataLayout(t *testing.T) {
	verts := []ember.Vertex{
		{Position: [2]float32{1, 2}, UV: [3]float32{0.25, 0.5, 3}, Color: [4]float32{0.1, 0.2, 0.3, 0.4}},
		{Position: [2]float32{-5, 7}, UV: [3]float32{1, 0, 0}, Color: [4]float32{1, 1, 1, 1}},
	}
	buf := buildVertexData(verts)
	if len(buf) != 2*batchVertexStride {
		t.Fatalf("len = %d, want %d", len(buf), 2*batchVertexStride)
	}

	want := []struct {
		off int
		val float32
	}{
		{0, 1}, {4, 2},
		{8, 0.25}, {12, 0.5}, {16, 3},
		{20, 0.1}, {24, 0.2}, {28, 0.3}, {32, 0.4},
		{batchVertexStride + 0, -5}, {batchVertexStride + 4, 7},
	}
	for _, w := range want {
		if got := f32At(t, buf, w.off); got != w.val {
			t.Errorf("float at offset %d = %v, want %v", w.off, got, w.val)
		}
	}
}

func TestBuildIndexData(t *testing.T) {
	tris := []ember.Triangle{{A: 0, B: 1, C: 2}, {A: 2, B: 3, C: 0}}
	buf := buildIndexData(tris)
	if len(buf) != 2*triangleIndexSize {
		t.Fatalf("len = %d, want %d", len(buf), 2*triangleIndexSize)
	}

	want := []uint32{0, 1, 2, 2, 3, 0}
	for i, idx := range want {
		if got := binary.LittleEndian.Uint32(buf[i*4:]); got != idx {
			t.Errorf("index %d = %d, want %d", i, got, idx)
		}
	}
}

func TestMakeViewUniformIdentity(t *testing.T) {
	buf := makeViewUniform(ember.Identity())
	if len(buf) != viewUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), viewUniformSize)
	}
	for i := 0; i < 16; i++ {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if got := f32At(t, buf, i*4); got != want {
			t.Errorf("word %d = %v, want %v", i, got, want)
		}
	}
}

// TestMakeViewUniformColumns checks that the affine coefficients land
// in the column-major slots the shader reads.
func TestMakeViewUniformColumns(t *testing.T) {
	m := ember.Matrix{A: 2, B: 3, C: 4, D: 5, E: 6, F: 7}
	buf := makeViewUniform(m)

	want := map[int]float32{
		0: 2, 1: 5, // col0: A, D
		4: 3, 5: 6, // col1: B, E
		10: 1,      // col2: unit z
		12: 4, 13: 7, 15: 1, // col3: C, F, w
	}
	for i := 0; i < 16; i++ {
		if got := f32At(t, buf, i*4); got != want[i] {
			t.Errorf("word %d = %v, want %v", i, got, want[i])
		}
	}
}

func TestScissorRect(t *testing.T) {
	tests := []struct {
		name string
		clip ember.Clip
		x, y uint32
		w, h uint32
		draw bool
	}{
		{
			name: "inactive covers target",
			clip: ember.Clip{},
			x:    0, y: 0, w: 100, h: 80, draw: true,
		},
		{
			name: "inside passes through",
			clip: ember.ClipRect(10, 20, 30, 40),
			x:    10, y: 20, w: 30, h: 40, draw: true,
		},
		{
			name: "clamped to target",
			clip: ember.ClipRect(-5, -5, 200, 200),
			x:    0, y: 0, w: 100, h: 80, draw: true,
		},
		{
			name: "overhanging edge",
			clip: ember.ClipRect(90, 70, 50, 50),
			x:    90, y: 70, w: 10, h: 10, draw: true,
		},
		{
			name: "outside is empty",
			clip: ember.ClipRect(200, 0, 10, 10),
			draw: false,
		},
		{
			name: "zero size is empty",
			clip: ember.ClipRect(10, 10, 0, 0),
			draw: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h, draw := scissorRect(tt.clip, 100, 80)
			if draw != tt.draw {
				t.Fatalf("draw = %v, want %v", draw, tt.draw)
			}
			if !draw {
				return
			}
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("rect = (%d,%d %dx%d), want (%d,%d %dx%d)",
					x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}
