package tiles

// BorderLayer is the layer name terrain border synthesis paints into.
const BorderLayer = "borders"

// wallBorderLayer is the layer name wall border synthesis paints into.
const wallBorderLayer = "wall_borders"

// borderContribs tracks, per source cell, the placements that cell's last
// Check*Border call emitted — a 3-way outer-corner tile is painted at a
// *neighbouring* cell, so clearing and recomputing one source cell must
// not disturb another source cell's contribution that happens to land on
// the same map position. Recomputing a source cell replaces only its own
// entry; the visible layer is the flattened union of every entry.
type borderContribs struct {
	bySource map[Point][]Placement
}

// Point is a plain grid coordinate, used as a map key for border-synthesis
// bookkeeping.
type Point struct{ X, Y int }

func newBorderContribs() *borderContribs {
	return &borderContribs{bySource: map[Point][]Placement{}}
}

// CheckAddTerrainBorder recomputes and (re-)paints the border tiles
// contributed by cell (x, y) given its current terrain and its 8
// neighbours. It is idempotent: re-running it for the same cell, with no
// change to the terrain grid, paints the same tiles; running it for
// (x,y) and its 8 neighbours after a single terrain edit always agrees
// with a full-grid recomputation (spec.md 8), since each cell's
// contribution is independent of recomputation order.
func (m *TilesModel) CheckAddTerrainBorder(x, y int) {
	contribs := m.terrainBorderContribs()
	var emitted []Placement

	selfID, hasSelf := m.TerrainAt(x, y)
	if hasSelf {
		if kind, ok := m.terrainKinds[selfID]; ok {
			isBorder := func(dx, dy int) (string, bool) {
				nx, ny := x+dx, y+dy
				if !m.inBounds(nx, ny) {
					return "", true // off-grid treated as "None" neighbour
				}
				nid, has := m.TerrainAt(nx, ny)
				if !has {
					return "", true
				}
				nk, ok := m.terrainKinds[nid]
				if !ok || nk.Index > kind.Index {
					return nid, true
				}
				return nid, false
			}
			emitted = m.collectBorders(x, y, kind.Edges, isBorder)
		}
	}

	contribs.bySource[Point{x, y}] = emitted
	m.rebuildBorderLayer(BorderLayer, contribs)
}

// CheckAddWallBorder is the wall analogue of CheckAddTerrainBorder. A
// neighbour is a wall border if it is unpopulated or strictly
// lower-elevation than (x, y).
func (m *TilesModel) CheckAddWallBorder(x, y int) {
	contribs := m.wallBorderContribs()
	var emitted []Placement

	selfID, hasSelf := m.WallAt(x, y)
	if hasSelf {
		if kind, ok := m.wallKinds[selfID]; ok {
			selfElevation := m.ElevationAt(x, y)
			isBorder := func(dx, dy int) (string, bool) {
				nx, ny := x+dx, y+dy
				if !m.inBounds(nx, ny) {
					return "", true
				}
				nid, has := m.WallAt(nx, ny)
				if !has {
					return "", true
				}
				if m.ElevationAt(nx, ny) < selfElevation {
					return nid, true
				}
				return nid, false
			}
			emitted = m.collectBorders(x, y, kind.Edges, isBorder)

			if kind.InteriorBorder && kind.AllSides != nil && m.allWallNeighboursPresent(x, y) {
				emitted = append(emitted, Placement{X: x, Y: y, Tile: kind.AllSides})
			}
			emitted = append(emitted, m.collectWallDiagonals(x, y, kind)...)
		}
	}

	contribs.bySource[Point{x, y}] = emitted
	m.rebuildBorderLayer(wallBorderLayer, contribs)
}

func (m *TilesModel) terrainBorderContribs() *borderContribs {
	if m.terrainBorders == nil {
		m.terrainBorders = newBorderContribs()
	}
	return m.terrainBorders
}

func (m *TilesModel) wallBorderContribs() *borderContribs {
	if m.wallBorders == nil {
		m.wallBorders = newBorderContribs()
	}
	return m.wallBorders
}

func (m *TilesModel) rebuildBorderLayer(layerName string, contribs *borderContribs) {
	layer := m.Layer(layerName, EntitiesBelowLayer)
	layer.RemoveAll()
	for _, placements := range contribs.bySource {
		for _, p := range placements {
			layer.Add(p.X, p.Y, p.Tile)
		}
	}
}

// collectBorders applies the straight/inner/outer corner rule described in
// spec.md 4.3 for the 8 neighbour directions of (x, y) and returns the
// placements (x,y)'s own terrain/wall contributes — including, for 3-way
// outer corners, placements that land on a neighbouring cell.
func (m *TilesModel) collectBorders(x, y int, edges map[string]*EdgesList, isBorder func(dx, dy int) (string, bool)) []Placement {
	var out []Placement

	borderDir := map[Direction]bool{}
	kindDir := map[Direction]string{}
	for _, d := range allDirections() {
		dx, dy := d.Delta()
		kind, b := isBorder(dx, dy)
		borderDir[d] = b
		kindDir[d] = kind
	}

	for _, d := range cardinals {
		if !borderDir[d] {
			continue
		}
		el := edges[kindDir[d]]
		if el == nil || el.Straight == nil {
			continue
		}
		if t := el.Straight[d]; t != nil {
			out = append(out, Placement{X: x, Y: y, Tile: t})
		}
	}

	for _, d := range diagonals {
		c1, c2 := adjacentCardinals(d)
		switch {
		case borderDir[d] && borderDir[c1] && borderDir[c2]:
			// 3-way agreement: outer corner, placed at the diagonal
			// neighbour so it fills the gap exposed there.
			el := edges[kindDir[d]]
			if el == nil || el.Outer == nil {
				continue
			}
			if t := el.Outer[d]; t != nil {
				dx, dy := d.Delta()
				out = append(out, Placement{X: x + dx, Y: y + dy, Tile: t})
			}
		case borderDir[c1] && borderDir[c2] && !borderDir[d]:
			// 2-way agreement: inner corner, placed on self.
			el := edges[kindDir[c1]]
			if el == nil || el.Inner == nil {
				el = edges[kindDir[c2]]
			}
			if el == nil || el.Inner == nil {
				continue
			}
			if t := el.Inner[d]; t != nil {
				out = append(out, Placement{X: x, Y: y, Tile: t})
			}
		}
	}
	return out
}

func allDirections() []Direction {
	all := make([]Direction, 0, 8)
	all = append(all, cardinals[:]...)
	all = append(all, diagonals[:]...)
	return all
}

func (m *TilesModel) allWallNeighboursPresent(x, y int) bool {
	for _, d := range allDirections() {
		dx, dy := d.Delta()
		nx, ny := x+dx, y+dy
		if !m.inBounds(nx, ny) {
			return false
		}
		if _, has := m.WallAt(nx, ny); !has {
			return false
		}
	}
	return true
}

// collectWallDiagonals returns the NE-SW / NW-SE diagonal tiles for the
// 2-wall-neighbour configuration described in spec.md 4.3.
func (m *TilesModel) collectWallDiagonals(x, y int, kind *WallKind) []Placement {
	var out []Placement

	_, hasNE := m.WallAt(x+1, y-1)
	_, hasSW := m.WallAt(x-1, y+1)
	_, hasN := m.WallAt(x, y-1)
	_, hasS := m.WallAt(x, y+1)
	_, hasE := m.WallAt(x+1, y)
	_, hasW := m.WallAt(x-1, y)

	if hasNE && hasSW && !hasN && !hasS && !hasE && !hasW && kind.DiagNESW != nil {
		out = append(out, Placement{X: x, Y: y, Tile: kind.DiagNESW})
	}

	_, hasNW := m.WallAt(x-1, y-1)
	_, hasSE := m.WallAt(x+1, y+1)
	if hasNW && hasSE && !hasN && !hasS && !hasE && !hasW && kind.DiagNWSE != nil {
		out = append(out, Placement{X: x, Y: y, Tile: kind.DiagNWSE})
	}
	return out
}

// RecomputeAllBorders runs Check*Border for every cell; used to verify
// that incremental border updates agree with a full recomputation (the
// testable property from spec.md 8).
func (m *TilesModel) RecomputeAllBorders() {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			m.CheckAddTerrainBorder(x, y)
			m.CheckAddWallBorder(x, y)
		}
	}
}
