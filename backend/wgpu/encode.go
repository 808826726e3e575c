package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/ember"
)

// batchVertexStride is the size of one serialized vertex in bytes:
//
//	position (2x f32) + uv/page (3x f32) + color (4x f32) = 36 bytes
const batchVertexStride = 36

// triangleIndexSize is the size of one serialized triangle: three
// little-endian uint32 indices.
const triangleIndexSize = 12

// viewUniformSize is the size of the ViewUniforms block in batch.wgsl.
const viewUniformSize = 64

func putFloat32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

// buildVertexData serializes vertices into the interleaved layout
// batchVertexLayout describes.
func buildVertexData(vertices []ember.Vertex) []byte {
	buf := make([]byte, len(vertices)*batchVertexStride)
	off := 0
	for i := range vertices {
		v := &vertices[i]
		putFloat32(buf, off+0, v.Position[0])
		putFloat32(buf, off+4, v.Position[1])
		putFloat32(buf, off+8, v.UV[0])
		putFloat32(buf, off+12, v.UV[1])
		putFloat32(buf, off+16, v.UV[2])
		putFloat32(buf, off+20, v.Color[0])
		putFloat32(buf, off+24, v.Color[1])
		putFloat32(buf, off+28, v.Color[2])
		putFloat32(buf, off+32, v.Color[3])
		off += batchVertexStride
	}
	return buf
}

// buildIndexData serializes triangles as little-endian uint32 indices,
// three per triangle, in triangle order. DrawRange first-index values
// address this flat array.
func buildIndexData(triangles []ember.Triangle) []byte {
	buf := make([]byte, len(triangles)*triangleIndexSize)
	off := 0
	for _, t := range triangles {
		binary.LittleEndian.PutUint32(buf[off:], t.A)
		binary.LittleEndian.PutUint32(buf[off+4:], t.B)
		binary.LittleEndian.PutUint32(buf[off+8:], t.C)
		off += triangleIndexSize
	}
	return buf
}

// makeViewUniform expands a 2D affine projection into the mat4x4
// consumed by batch.wgsl. WGSL matrices are column-major in memory:
//
//	| A B 0 C |        col0 = (A, D, 0, 0)
//	| D E 0 F |   =>   col1 = (B, E, 0, 0)
//	| 0 0 1 0 |        col2 = (0, 0, 1, 0)
//	| 0 0 0 1 |        col3 = (C, F, 0, 1)
func makeViewUniform(m ember.Matrix) []byte {
	words := [16]float32{
		m.A, m.D, 0, 0,
		m.B, m.E, 0, 0,
		0, 0, 1, 0,
		m.C, m.F, 0, 1,
	}
	buf := make([]byte, viewUniformSize)
	for i, w := range words {
		putFloat32(buf, i*4, w)
	}
	return buf
}

// scissorRect intersects a clip with the target bounds and returns the
// scissor rectangle to set. draw is false when the intersection is
// empty; draws under such a state cover no pixels and are skipped.
func scissorRect(clip ember.Clip, width, height int) (x, y, w, h uint32, draw bool) {
	if !clip.Active {
		return 0, 0, uint32(width), uint32(height), true
	}
	x0 := max(int(clip.X), 0)
	y0 := max(int(clip.Y), 0)
	x1 := min(int(clip.X)+int(clip.Width), width)
	y1 := min(int(clip.Y)+int(clip.Height), height)
	if x0 >= x1 || y0 >= y1 {
		return 0, 0, 0, 0, false
	}
	return uint32(x0), uint32(y0), uint32(x1 - x0), uint32(y1 - y0), true
}
