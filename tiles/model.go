package tiles

import "math/rand"

// cell holds the inferred terrain/wall/elevation state for one grid cell.
// A nil *string index — modelled here as a pointer to the kind's id, or
// nil for "None" — lets "no terrain"/"no wall" be distinguished from
// index 0.
type cell struct {
	terrain   *string
	wall      *string
	elevation byte
}

// TilesModel is a dense width x height map of authored + inferred tile
// state: ordered per-layer placements, and the elevation/wall/terrain
// grids border synthesis reads and writes.
type TilesModel struct {
	Width, Height int

	layers     []*Layer
	layerIndex map[string]*Layer

	cells []cell // row-major, len Width*Height

	terrainKinds map[string]*TerrainKind
	wallKinds    map[string]*WallKind

	terrainBorders *borderContribs
	wallBorders    *borderContribs

	rng *rand.Rand
}

// NewTilesModel creates an empty model of the given dimensions. rng may be
// nil, in which case a source with the fixed seed 1 is used.
func NewTilesModel(width, height int, rng *rand.Rand) *TilesModel {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &TilesModel{
		Width:        width,
		Height:       height,
		layerIndex:   map[string]*Layer{},
		cells:        make([]cell, width*height),
		terrainKinds: map[string]*TerrainKind{},
		wallKinds:    map[string]*WallKind{},
		rng:          rng,
	}
}

func (m *TilesModel) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func (m *TilesModel) idx(x, y int) int { return y*m.Width + x }

// RegisterTerrainKind / RegisterWallKind add an authored kind to the model
// so border synthesis can look up its edge tiles.
func (m *TilesModel) RegisterTerrainKind(k *TerrainKind) { m.terrainKinds[k.ID] = k }
func (m *TilesModel) RegisterWallKind(k *WallKind)       { m.wallKinds[k.ID] = k }

// Layer returns the named layer, creating it (with the given entity draw
// order) if it does not yet exist.
func (m *TilesModel) Layer(name string, entityIndex EntityLayerIndex) *Layer {
	if l, ok := m.layerIndex[name]; ok {
		return l
	}
	l := NewLayer(name, m.Width, m.Height, entityIndex)
	m.layers = append(m.layers, l)
	m.layerIndex[name] = l
	return l
}

// Layers returns all layers in creation order.
func (m *TilesModel) Layers() []*Layer { return m.layers }

// Add places tile at (x, y) on the named layer.
func (m *TilesModel) Add(layer string, x, y int, tile *Tile) {
	m.Layer(layer, EntitiesBelowLayer).Add(x, y, tile)
}

// RemoveAll clears every placement on the named layer.
func (m *TilesModel) RemoveAll(layer string) {
	if l, ok := m.layerIndex[layer]; ok {
		l.RemoveAll()
	}
}

// RemoveWithin drops placements on the named layer whose footprint
// intersects rect.
func (m *TilesModel) RemoveWithin(layer string, rect Rect) {
	if l, ok := m.layerIndex[layer]; ok {
		l.RemoveWithin(rect)
	}
}

// SetTerrainIndex sets the terrain kind id painted at (x, y); pass "" to
// clear it back to "no terrain".
func (m *TilesModel) SetTerrainIndex(x, y int, kindID string) {
	if !m.inBounds(x, y) {
		return
	}
	c := &m.cells[m.idx(x, y)]
	if kindID == "" {
		c.terrain = nil
	} else {
		id := kindID
		c.terrain = &id
	}
}

// SetWall sets the wall kind id and elevation at (x, y); pass "" to clear.
func (m *TilesModel) SetWall(x, y int, kindID string, elevation byte) {
	if !m.inBounds(x, y) {
		return
	}
	c := &m.cells[m.idx(x, y)]
	if kindID == "" {
		c.wall = nil
	} else {
		id := kindID
		c.wall = &id
	}
	c.elevation = elevation
}

// SetElevation sets only the elevation byte at (x, y), independent of any
// wall painted there.
func (m *TilesModel) SetElevation(x, y int, elevation byte) {
	if !m.inBounds(x, y) {
		return
	}
	m.cells[m.idx(x, y)].elevation = elevation
}

// TerrainAt / WallAt / ElevationAt read back the inferred grids.
func (m *TilesModel) TerrainAt(x, y int) (string, bool) {
	if !m.inBounds(x, y) {
		return "", false
	}
	c := m.cells[m.idx(x, y)].terrain
	if c == nil {
		return "", false
	}
	return *c, true
}

func (m *TilesModel) WallAt(x, y int) (string, bool) {
	if !m.inBounds(x, y) {
		return "", false
	}
	c := m.cells[m.idx(x, y)].wall
	if c == nil {
		return "", false
	}
	return *c, true
}

func (m *TilesModel) ElevationAt(x, y int) byte {
	if !m.inBounds(x, y) {
		return 0
	}
	return m.cells[m.idx(x, y)].elevation
}

// PickVariant rolls [0, base_weight+len(variants)) and returns the base
// tile if the roll lands below base_weight, else the selected variant.
func (m *TilesModel) PickVariant(k *TerrainKind) *Tile {
	if len(k.Variants) == 0 {
		return k.Base
	}
	roll := m.rng.Intn(k.BaseWeight + len(k.Variants))
	if roll < k.BaseWeight {
		return k.Base
	}
	return k.Variants[roll-k.BaseWeight]
}

// Shift translates every tile on every layer by (dx, dy). It rejects (and
// makes no change) if any placement would cross the area boundary.
func (m *TilesModel) Shift(dx, dy int) bool {
	for _, l := range m.layers {
		for _, p := range l.Tiles() {
			nx, ny := p.X+dx, p.Y+dy
			if nx < 0 || ny < 0 || nx+p.Tile.W > m.Width || ny+p.Tile.H > m.Height {
				return false
			}
		}
	}
	for _, l := range m.layers {
		l.Shift(dx, dy)
	}
	return true
}
