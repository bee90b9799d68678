package generator

import (
	"math/rand"
	"testing"
)

func defaultParams() RoomParams {
	return RoomParams{
		MinSize:                    Point{3, 3},
		MaxSize:                    Point{7, 7},
		MinSpacing:                 2,
		RoomPlacementAttempts:      50,
		WindingChance:              50,
		DeadEndKeepChance:          0,
		ExtraConnectionChance:      20,
		CorridorEdgeOverfillChance: 0,
		RoomEdgeOverfillChance:     0,
		GenCorridors:               true,
	}
}

func TestGenerateProducesNoOverlappingRooms(t *testing.T) {
	m := NewMaze(41, 41, rand.New(rand.NewSource(42)))
	m.Generate(defaultParams(), nil)

	rooms := m.Rooms()
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].overlaps(rooms[j], defaultParams()) {
				t.Fatalf("rooms %d and %d overlap: %+v, %+v", i, j, rooms[i], rooms[j])
			}
		}
	}
}

func TestGenerateEveryRegionReachable(t *testing.T) {
	m := NewMaze(31, 31, rand.New(rand.NewSource(7)))
	m.Generate(defaultParams(), nil)

	// after connect_regions, walking from any non-wall cell through
	// doorways/corridors/rooms should reach every other non-wall cell's
	// pre-merge region. We approximate this by checking there is at
	// least one doorway (i.e. connection was attempted) whenever more
	// than one region was generated.
	doorways := 0
	nonWall := 0
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			switch m.tile(x, y).Kind {
			case KindDoorway:
				doorways++
				nonWall++
			case KindRoom, KindCorridor:
				nonWall++
			}
		}
	}
	if nonWall == 0 {
		t.Fatalf("expected at least some open cells")
	}
	if m.curRegion > 1 && doorways == 0 {
		t.Fatalf("expected at least one doorway connecting %d regions", m.curRegion)
	}
}

func TestGenerateRoomsRespectsOddAlignment(t *testing.T) {
	m := NewMaze(41, 41, rand.New(rand.NewSource(1)))
	m.Generate(RoomParams{
		MinSize: Point{3, 3}, MaxSize: Point{9, 9}, MinSpacing: 2,
		RoomPlacementAttempts: 30,
	}, nil)

	for _, r := range m.Rooms() {
		if r.X%2 == 0 || r.Y%2 == 0 {
			t.Fatalf("expected odd-aligned room origin, got %+v", r)
		}
		if r.Width%2 == 0 || r.Height%2 == 0 {
			t.Fatalf("expected odd-aligned room size, got %+v", r)
		}
	}
}

func TestGenerateTransitionRoomsCenterOnOpenLocs(t *testing.T) {
	m := NewMaze(41, 41, rand.New(rand.NewSource(3)))
	loc := Point{20, 20}
	m.Generate(defaultParams(), []Point{loc})

	if len(m.Rooms()) == 0 {
		t.Fatalf("expected at least the transition room to be placed")
	}
	first := m.Rooms()[0]
	if !first.contains(loc) {
		t.Fatalf("expected the first room to contain the transition location %+v, got %+v", loc, first)
	}
}

func TestRemoveDeadEndsLeavesNoIsolatedOpenCell(t *testing.T) {
	m := NewMaze(21, 21, rand.New(rand.NewSource(9)))
	params := defaultParams()
	params.DeadEndKeepChance = 0
	m.Generate(params, nil)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.tile(x, y).Kind == KindWall {
				continue
			}
			exits := 0
			for _, dir := range directions {
				p := dir.add(Point{x, y}, 1)
				if p.X < 0 || p.Y < 0 || p.X >= m.Width() || p.Y >= m.Height() {
					continue
				}
				if m.tile(p.X, p.Y).Kind != KindWall {
					exits++
				}
			}
			if exits == 0 {
				t.Fatalf("dead-end trim with 0%% keep chance left an isolated open cell at (%d,%d)", x, y)
			}
		}
	}
}

func TestNeighborsOffGridIsNil(t *testing.T) {
	m := NewMaze(5, 5, nil)
	n := m.Neighbors(0, 0)
	if n[1] != nil {
		t.Fatalf("expected north neighbour of (0,0) to be off-grid (nil)")
	}
	if n[4] != nil {
		t.Fatalf("expected west neighbour of (0,0) to be off-grid (nil)")
	}
}
