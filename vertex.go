package ember

// Vertex is the interleaved layout consumed by the standard pipelines:
// position, texture coordinate with array page, premultiplication-agnostic
// tint. The field order matches the GPU vertex buffer layout byte for
// byte, so a vertex slice can be uploaded without repacking.
type Vertex struct {
	// Position is the target-space position in pixels.
	Position [2]float32
	// UV holds the normalized texture coordinate and the texture array
	// page index in its third component.
	UV [3]float32
	// Color is the per-vertex tint, multiplied with the sampled texel.
	Color [4]float32
}

// Vertex3D is the layout for custom streams carrying depth and normals.
// The engine core never inspects it; it exists for callers that run
// their own Stream with a 3D material.
type Vertex3D struct {
	Position [3]float32
	Normal   [3]float32
	UV       [3]float32
	Color    [4]float32
}

// White is the neutral tint.
var White = [4]float32{1, 1, 1, 1}

// V is a convenience constructor for the common case of an untextured,
// white vertex at x, y.
func V(x, y float32) Vertex {
	return Vertex{Position: [2]float32{x, y}, Color: White}
}
