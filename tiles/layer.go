package tiles

// EntityLayerIndex marks where, relative to a terrain layer, entities are
// drawn: below the layer's tiles (ground clutter drawn over feet) or above
// them (overhanging terrain such as tree canopies).
type EntityLayerIndex int

const (
	EntitiesBelowLayer EntityLayerIndex = iota
	EntitiesAboveLayer
)

// Layer is a named, ordered collection of tile placements, plus the grids
// derived from them at construction time: a tile-index grid for rendering
// and the entity draw-order marker.
type Layer struct {
	Name             string
	EntityLayerIndex EntityLayerIndex

	tiles []Placement

	width, height int
	// renderGrid[y][x] is the topmost tile placed so that (x,y) falls
	// within its footprint, or nil.
	renderGrid [][]*Tile
}

// NewLayer creates an empty layer sized to width x height.
func NewLayer(name string, width, height int, entityIndex EntityLayerIndex) *Layer {
	l := &Layer{Name: name, EntityLayerIndex: entityIndex, width: width, height: height}
	l.renderGrid = newTileGrid(width, height)
	return l
}

func newTileGrid(width, height int) [][]*Tile {
	g := make([][]*Tile, height)
	for y := range g {
		g[y] = make([]*Tile, width)
	}
	return g
}

// Tiles returns the layer's placements in insertion order.
func (l *Layer) Tiles() []Placement {
	return l.tiles
}

// Add appends tile at (x, y), de-duplicating an exact repeat (the same
// *Tile pointer at the same position already present).
func (l *Layer) Add(x, y int, tile *Tile) {
	for _, p := range l.tiles {
		if p.X == x && p.Y == y && p.Tile == tile {
			return
		}
	}
	l.tiles = append(l.tiles, Placement{X: x, Y: y, Tile: tile})
	l.paintRenderGrid(x, y, tile)
}

func (l *Layer) paintRenderGrid(x, y int, tile *Tile) {
	for ly := 0; ly < tile.H; ly++ {
		for lx := 0; lx < tile.W; lx++ {
			gx, gy := x+lx, y+ly
			if gx < 0 || gy < 0 || gx >= l.width || gy >= l.height {
				continue
			}
			l.renderGrid[gy][gx] = tile
		}
	}
}

// RemoveAll drops every placement on the layer.
func (l *Layer) RemoveAll() {
	l.tiles = nil
	l.renderGrid = newTileGrid(l.width, l.height)
}

// Rect is an axis-aligned tile-space rectangle, used by RemoveWithin and
// by the targeter shapes.
type Rect struct {
	X, Y, W, H int
}

// Intersects reports whether r and footprint (at ox, oy sized w x h)
// overlap.
func (r Rect) Intersects(ox, oy, w, h int) bool {
	return ox < r.X+r.W && ox+w > r.X && oy < r.Y+r.H && oy+h > r.Y
}

// RemoveWithin drops any placement whose footprint intersects rect, and
// recomputes the render grid from the remaining placements.
func (l *Layer) RemoveWithin(rect Rect) {
	kept := l.tiles[:0:0]
	for _, p := range l.tiles {
		if rect.Intersects(p.X, p.Y, p.Tile.W, p.Tile.H) {
			continue
		}
		kept = append(kept, p)
	}
	l.tiles = kept
	l.renderGrid = newTileGrid(l.width, l.height)
	for _, p := range l.tiles {
		l.paintRenderGrid(p.X, p.Y, p.Tile)
	}
}

// TileAt returns the topmost tile painting cell (x, y) on this layer, or
// nil.
func (l *Layer) TileAt(x, y int) *Tile {
	if x < 0 || y < 0 || y >= len(l.renderGrid) || x >= len(l.renderGrid[y]) {
		return nil
	}
	return l.renderGrid[y][x]
}

// Shift translates every placement on the layer by (dx, dy). The caller is
// responsible for rejecting shifts that would cross the area boundary
// before calling this (see TilesModel.Shift).
func (l *Layer) Shift(dx, dy int) {
	shifted := make([]Placement, len(l.tiles))
	for i, p := range l.tiles {
		shifted[i] = Placement{X: p.X + dx, Y: p.Y + dy, Tile: p.Tile}
	}
	l.tiles = nil
	l.renderGrid = newTileGrid(l.width, l.height)
	for _, p := range shifted {
		l.Add(p.X, p.Y, p.Tile)
	}
}
