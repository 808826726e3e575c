package draw

import "github.com/gogpu/ember"

// Cell is an integer grid coordinate or extent.
type Cell struct {
	X int
	Y int
}

// TileSetItem describes one tile id: where it samples from and how
// many cells it covers when drawn.
type TileSetItem struct {
	// Region is the normalized texture subrectangle. Zero means the
	// full texture.
	Region ember.Rect
	// Page selects the texture array layer.
	Page float32
	// Tint multiplies the sampled texel. Zero means white.
	Tint [4]float32
	// Size is the tile extent in cells. Zero means one cell.
	Size Cell
	// Offset shifts the tile by whole cells when drawn, for tiles
	// whose artwork hangs outside their map location.
	Offset Cell
}

// TileSet maps tile ids to their items and carries the render state
// shared by all tiles drawn from it.
type TileSet struct {
	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Texture names the tile sheet.
	Texture TextureRef
	// Blend overrides the context blend stack.
	Blend ember.BlendMode
	// Mappings is the id to item table. Instances with unmapped ids
	// are skipped.
	Mappings map[int]TileSetItem
}

// NewTileSet creates a tile set over a texture with inherited
// blending.
func NewTileSet(texture TextureRef, mappings map[int]TileSetItem) TileSet {
	return TileSet{Texture: texture, Blend: BlendInherit, Mappings: mappings}
}

// TileInstance places one tile id at a map location.
type TileInstance struct {
	ID       int
	Location Cell
}

// TilesEmitter scales tile instances into target space.
type TilesEmitter struct {
	// Placement positions the whole emission.
	Placement Placement
	// TileSize is the extent of one cell in pixels.
	TileSize ember.Point
	// ScreenSpace draws in screen coordinates.
	ScreenSpace bool
}

// NewTilesEmitter creates an emitter with the given cell size.
func NewTilesEmitter(tileSize ember.Point) TilesEmitter {
	return TilesEmitter{TileSize: tileSize}
}

// Emit pairs the emitter with a set and instances into a drawable.
func (e TilesEmitter) Emit(set TileSet, instances []TileInstance) Tiles {
	return Tiles{Emitter: e, Set: set, Instances: instances}
}

// Tiles draws instances of a tile set as one quad per tile. All quads
// share one render state, so they collapse into a single batch.
type Tiles struct {
	Emitter   TilesEmitter
	Set       TileSet
	Instances []TileInstance
}

// Draw records one quad per mapped instance.
func (t Tiles) Draw(ctx *Context) error {
	tex, err := ctx.resolveTexture(t.Set.Texture)
	if err != nil {
		return err
	}
	material, err := ctx.resolveMaterial(t.Set.Material)
	if err != nil {
		return err
	}

	state := ember.RenderState{
		Material: material,
		Texture:  tex.ID,
		Blend:    ctx.resolveBlend(t.Set.Blend),
		Space:    spaceOf(t.Emitter.ScreenSpace),
	}
	local := t.Emitter.Placement.Matrix()
	tileSize := t.Emitter.TileSize

	for _, instance := range t.Instances {
		item, ok := t.Set.Mappings[instance.ID]
		if !ok {
			continue
		}
		cells := item.Size
		if cells.X == 0 && cells.Y == 0 {
			cells = Cell{X: 1, Y: 1}
		}
		origin := ember.Pt(
			float32(instance.Location.X+item.Offset.X)*tileSize.X,
			float32(instance.Location.Y+item.Offset.Y)*tileSize.Y,
		)
		size := ember.Pt(float32(cells.X)*tileSize.X, float32(cells.Y)*tileSize.Y)
		quad := spriteQuad(size, regionOrFull(item.Region), item.Page, tintOrWhite(item.Tint))
		for i := range quad {
			quad[i].Position[0] += origin.X
			quad[i].Position[1] += origin.Y
		}
		if err := ctx.engine.PushQuad(quad, local, state); err != nil {
			return err
		}
	}
	return nil
}

// TileMap is a dense row-major grid of tile ids with emission filters.
type TileMap struct {
	// Include, when non-empty, limits emission to these ids.
	Include map[int]struct{}
	// Exclude, when non-empty, drops these ids from emission.
	Exclude map[int]struct{}

	size   Cell
	buffer []int
}

// NewTileMap creates a map of the given size with every cell set to
// fill.
func NewTileMap(size Cell, fill int) *TileMap {
	if size.X < 0 {
		size.X = 0
	}
	if size.Y < 0 {
		size.Y = 0
	}
	buffer := make([]int, size.X*size.Y)
	for i := range buffer {
		buffer[i] = fill
	}
	return &TileMap{size: size, buffer: buffer}
}

// NewTileMapWithBuffer creates a map over an existing id buffer. The
// buffer length must equal size.X*size.Y.
func NewTileMapWithBuffer(size Cell, buffer []int) (*TileMap, bool) {
	if size.X < 0 || size.Y < 0 || len(buffer) != size.X*size.Y {
		return nil, false
	}
	return &TileMap{size: size, buffer: buffer}, true
}

// Size returns the map extent in cells.
func (m *TileMap) Size() Cell {
	return m.size
}

// Buffer returns the backing id slice in row-major order.
func (m *TileMap) Buffer() []int {
	return m.buffer
}

// Index returns the buffer index of a location.
func (m *TileMap) Index(location Cell) int {
	return location.Y*m.size.X + location.X
}

// Location returns the map location of a buffer index.
func (m *TileMap) Location(index int) Cell {
	return Cell{X: index % m.size.X, Y: index / m.size.X}
}

// Get returns the id at a location, reporting false when the location
// is outside the map.
func (m *TileMap) Get(location Cell) (int, bool) {
	if !m.contains(location) {
		return 0, false
	}
	return m.buffer[m.Index(location)], true
}

// Set writes the id at a location. Locations outside the map are
// ignored.
func (m *TileMap) Set(location Cell, id int) {
	if m.contains(location) {
		m.buffer[m.Index(location)] = id
	}
}

// Fill writes the id over the half-open cell rectangle [from, to).
func (m *TileMap) Fill(from, to Cell, id int) {
	for y := from.Y; y < to.Y; y++ {
		for x := from.X; x < to.X; x++ {
			m.Set(Cell{X: x, Y: y}, id)
		}
	}
}

func (m *TileMap) contains(location Cell) bool {
	return location.X >= 0 && location.Y >= 0 &&
		location.X < m.size.X && location.Y < m.size.Y
}

// Emit returns the instances passing the include and exclude filters,
// in row-major order.
func (m *TileMap) Emit() []TileInstance {
	out := make([]TileInstance, 0, len(m.buffer))
	for i, id := range m.buffer {
		if len(m.Include) > 0 {
			if _, ok := m.Include[id]; !ok {
				continue
			}
		}
		if len(m.Exclude) > 0 {
			if _, ok := m.Exclude[id]; ok {
				continue
			}
		}
		out = append(out, TileInstance{ID: id, Location: m.Location(i)})
	}
	return out
}
