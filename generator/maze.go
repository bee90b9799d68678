// Package generator builds procedural areas: a room-and-corridor maze
// carved over a scaled region grid, translated into wall placements on a
// tiles.TilesModel, followed by terrain, prop, and encounter passes.
package generator

import "math/rand"

// Point is a region-grid coordinate, distinct from tile-grid coordinates
// (a region cell maps to a gridWidth x gridHeight block of tiles).
type Point struct{ X, Y int }

// TileKind classifies one cell of the maze's region grid.
type TileKind int

const (
	KindWall TileKind = iota
	KindCorridor
	KindRoom
	KindDoorway
)

// MazeCell is the full per-cell state: its kind, the region id it belongs
// to (meaningless for Wall), and whether a Room cell is a fixed
// transition room.
type MazeCell struct {
	Kind       TileKind
	Region     int
	Transition bool
}

// RoomParams controls room placement, corridor carving, region
// connection, and dead-end trimming.
type RoomParams struct {
	MinSize, MaxSize             Point
	MinSpacing                   int
	RoomPlacementAttempts        int
	WindingChance                int // percent, 1-100
	DeadEndKeepChance            int // percent, 1-100
	ExtraConnectionChance        int // percent, 1-100
	CorridorEdgeOverfillChance   int // percent, 1-100
	RoomEdgeOverfillChance       int // percent, 1-100
	Invert                       bool
	GenCorridors                 bool
}

type direction int

const (
	dirNorth direction = iota
	dirSouth
	dirEast
	dirWest
)

var directions = [4]direction{dirNorth, dirSouth, dirEast, dirWest}

func (d direction) add(p Point, mult int) Point {
	switch d {
	case dirNorth:
		return Point{p.X, p.Y - mult}
	case dirSouth:
		return Point{p.X, p.Y + mult}
	case dirEast:
		return Point{p.X + mult, p.Y}
	case dirWest:
		return Point{p.X - mult, p.Y}
	}
	return p
}

// Room is a rectangular room placed on the region grid, with odd-aligned
// origin and dimensions (the classical maze-carve invariant: corridors
// grow from odd cells, so rooms must land on the same parity).
type Room struct {
	X, Y, Width, Height int
}

func (r Room) contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

func (r Room) overlaps(other Room, params RoomParams) bool {
	sp := params.MinSpacing - 1
	if r.X > other.X+other.Width+sp || other.X > r.X+r.Width+sp {
		return false
	}
	if r.Y > other.Y+other.Height+sp || other.Y > r.Y+r.Height+sp {
		return false
	}
	return true
}

func genRoom(rng *rand.Rand, areaWidth, areaHeight int, params RoomParams) Room {
	width := (randRange(rng, params.MinSize.X, params.MaxSize.X+1)/2)*2 + 1
	height := (randRange(rng, params.MinSize.Y, params.MaxSize.Y+1)/2)*2 + 1
	x := (randRange(rng, 0, areaWidth-width)/2)*2 + 1
	y := (randRange(rng, 0, areaHeight-height)/2)*2 + 1
	return Room{X: x, Y: y, Width: width, Height: height}
}

func centerRoomOn(rng *rand.Rand, areaWidth, areaHeight int, params RoomParams, loc Point) Room {
	room := genRoom(rng, areaWidth, areaHeight, params)
	room.X = loc.X - room.Width/2
	room.Y = loc.Y - room.Height/2

	if room.X < 0 {
		room.X = 0
	} else if room.X+room.Width >= areaWidth {
		room.X = areaWidth - room.Width - 1
	}
	if room.Y < 0 {
		room.Y = 0
	} else if room.Y+room.Height >= areaHeight {
		room.Y = areaHeight - room.Height - 1
	}
	return room
}

// randRange returns a value in [lo, hi); hi <= lo yields lo.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

// Maze is the region-grid maze: a dense array of MazeCell plus the rooms
// placed into it. Region ids are assigned sequentially as rooms and
// corridor floods are added, and remain stable after Generate returns.
type Maze struct {
	width, height int
	rooms         []Room
	tiles         []MazeCell
	curRegion     int
	rng           *rand.Rand

	// regionOverfillEdges is allocated empty by NewMaze and is not read
	// or written anywhere else: the maze applies no rough-edge treatment
	// to corridor or room edges.
	regionOverfillEdges map[int]int
}

// NewMaze creates an all-wall maze of the given region-grid size.
func NewMaze(width, height int, rng *rand.Rand) *Maze {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Maze{
		width:               width,
		height:              height,
		tiles:               make([]MazeCell, width*height),
		rng:                 rng,
		regionOverfillEdges: map[int]int{},
	}
}

func (m *Maze) Width() int  { return m.width }
func (m *Maze) Height() int { return m.height }

// Generate runs the full room-placement, corridor-carve, region-connect,
// and dead-end-trim pipeline. openLocs are fixed points (e.g. area
// transitions) that must fall inside a placed room and may never be
// overlapped by another room.
func (m *Maze) Generate(params RoomParams, openLocs []Point) {
	m.generateRooms(params, openLocs)

	if params.GenCorridors {
		m.generateCorridors(params)
		m.connectRegions(params)
		m.removeDeadEnds(params)
	}
}

func (m *Maze) generateRooms(params RoomParams, openLocs []Point) {
	if !params.Invert {
		for _, loc := range openLocs {
			room := centerRoomOn(m.rng, m.width, m.height, params, loc)
			m.addRoom(room, true)
		}
	}

	for i := 0; i < params.RoomPlacementAttempts; i++ {
		room := genRoom(m.rng, m.width, m.height, params)

		overlaps := false
		for _, other := range m.rooms {
			if room.overlaps(other, params) {
				overlaps = true
				break
			}
		}
		if params.Invert {
			for _, p := range openLocs {
				if room.contains(p) {
					overlaps = true
					break
				}
			}
		}
		if overlaps {
			continue
		}
		m.addRoom(room, false)
	}
}

func (m *Maze) addRoom(room Room, transition bool) {
	for yi := room.Y; yi < room.Y+room.Height; yi++ {
		for xi := room.X; xi < room.X+room.Width; xi++ {
			m.setTile(xi, yi, MazeCell{Kind: KindRoom, Region: m.curRegion, Transition: transition})
		}
	}
	m.curRegion++
	m.rooms = append(m.rooms, room)
}

func (m *Maze) generateCorridors(params RoomParams) {
	for y := 1; y < m.height-1; y += 2 {
		for x := 1; x < m.width-1; x += 2 {
			if m.tile(x, y).Kind != KindWall {
				continue
			}
			m.growMaze(x, y, params)
			m.curRegion++
		}
	}
}

func (m *Maze) growMaze(x, y int, params RoomParams) {
	region := m.curRegion
	m.setTile(x, y, MazeCell{Kind: KindCorridor, Region: region})

	lastDir := -1
	cells := []Point{{x, y}}

	for len(cells) > 0 {
		cell := cells[len(cells)-1]

		var unmade []direction
		for _, dir := range directions {
			p := dir.add(cell, 2)
			if p.X < 0 || p.Y < 0 || p.X >= m.width || p.Y >= m.height {
				continue
			}
			if m.tile(p.X, p.Y).Kind != KindWall {
				continue
			}
			unmade = append(unmade, dir)
		}

		// prefer continuing in the same direction: swap it to the front;
		// the candidate it displaces takes its old slot.
		if lastDir >= 0 {
			for i, d := range unmade {
				if int(d) == lastDir && i != 0 {
					unmade[0], unmade[i] = unmade[i], unmade[0]
					break
				}
			}
		}

		if len(unmade) == 0 {
			cells = cells[:len(cells)-1]
			lastDir = -1
			continue
		}

		var dir direction
		if len(unmade) == 1 || randRange(m.rng, 1, 101) >= params.WindingChance {
			dir = unmade[0]
		} else {
			dir = unmade[m.rng.Intn(len(unmade))]
		}

		newCell := dir.add(cell, 1)
		m.setTile(newCell.X, newCell.Y, MazeCell{Kind: KindCorridor, Region: region})
		newCell = dir.add(cell, 2)
		m.setTile(newCell.X, newCell.Y, MazeCell{Kind: KindCorridor, Region: region})
		cells = append(cells, newCell)
		lastDir = int(dir)
	}
}

func (m *Maze) connectRegions(params RoomParams) {
	connectorRegions := map[Point]map[int]bool{}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.tile(x, y).Kind != KindWall {
				continue
			}
			regions := map[int]bool{}
			for _, dir := range directions {
				p := dir.add(Point{x, y}, 1)
				if p.X < 0 || p.Y < 0 || p.X >= m.width || p.Y >= m.height {
					continue
				}
				cell := m.tile(p.X, p.Y)
				if cell.Kind == KindCorridor || cell.Kind == KindRoom {
					regions[cell.Region] = true
				}
			}
			if len(regions) < 2 {
				continue
			}
			connectorRegions[Point{x, y}] = regions
		}
	}

	connectors := make([]Point, 0, len(connectorRegions))
	for p := range connectorRegions {
		connectors = append(connectors, p)
	}
	m.rng.Shuffle(len(connectors), func(i, j int) { connectors[i], connectors[j] = connectors[j], connectors[i] })

	merged := make([]int, m.curRegion)
	openRegions := map[int]bool{}
	for i := 0; i < m.curRegion; i++ {
		openRegions[i] = true
		merged[i] = i
	}

	for len(openRegions) > 1 {
		if len(connectors) == 0 {
			break
		}
		connector := connectors[0]

		m.setTile(connector.X, connector.Y, MazeCell{Kind: KindDoorway})

		var sources []int
		for region := range connectorRegions[connector] {
			sources = append(sources, merged[region])
		}
		dest := sources[0]
		sources = sources[1:]

		containsSource := func(v int) bool {
			for _, s := range sources {
				if s == v {
					return true
				}
			}
			return false
		}

		for i := 0; i < m.curRegion; i++ {
			if containsSource(merged[i]) {
				merged[i] = dest
			}
		}
		for _, s := range sources {
			delete(openRegions, s)
		}

		kept := connectors[:0:0]
		for _, conn := range connectors {
			dx, dy := connector.X-conn.X, connector.Y-conn.Y
			if dx*dx+dy*dy < 4 {
				continue
			}

			regions := map[int]bool{}
			for region := range connectorRegions[conn] {
				regions[merged[region]] = true
			}
			if len(regions) > 1 {
				kept = append(kept, conn)
				continue
			}

			if randRange(m.rng, 1, 101) < params.ExtraConnectionChance {
				m.setTile(conn.X, conn.Y, MazeCell{Kind: KindDoorway})
			}
		}
		connectors = kept
	}
}

func (m *Maze) removeDeadEnds(params RoomParams) {
	didWork := true
	for didWork {
		didWork = false
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				if m.tile(x, y).Kind == KindWall {
					continue
				}

				exits := 0
				for _, dir := range directions {
					p := dir.add(Point{x, y}, 1)
					if p.X < 0 || p.Y < 0 || p.X >= m.width || p.Y >= m.height {
						continue
					}
					if m.tile(p.X, p.Y).Kind != KindWall {
						exits++
					}
				}
				if exits > 1 {
					continue
				}
				if randRange(m.rng, 1, 101) < params.DeadEndKeepChance {
					continue
				}

				m.setTile(x, y, MazeCell{Kind: KindWall})
				didWork = true
			}
		}
	}
}

// Neighbors returns the tile kind at (x,y) and its 4 cardinal neighbours,
// in order: self, North, East, South, West. A nil entry means off-grid.
func (m *Maze) Neighbors(x, y int) [5]*MazeCell {
	var out [5]*MazeCell
	out[0] = m.tileChecked(x, y)
	out[1] = m.tileChecked(x, y-1)
	out[2] = m.tileChecked(x+1, y)
	out[3] = m.tileChecked(x, y+1)
	out[4] = m.tileChecked(x-1, y)
	return out
}

// Region returns the region id at (x, y), or -1 for a wall cell.
func (m *Maze) Region(x, y int) int {
	c := m.tile(x, y)
	if c.Kind == KindWall {
		return -1
	}
	return c.Region
}

func (m *Maze) tileChecked(x, y int) *MazeCell {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return nil
	}
	c := m.tile(x, y)
	return &c
}

func (m *Maze) tile(x, y int) MazeCell { return m.tiles[x+y*m.width] }

func (m *Maze) setTile(x, y int, c MazeCell) { m.tiles[x+y*m.width] = c }

// Rooms returns the placed rooms in generation order (fixed transition
// rooms first, if any, followed by randomly placed rooms).
func (m *Maze) Rooms() []Room { return m.rooms }
