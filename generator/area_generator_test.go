package generator

import (
	"math/rand"
	"testing"

	"github.com/ashfall-tactics/tactica/tiles"
)

func TestAreaGeneratorProducesWallsAndFloor(t *testing.T) {
	model := tiles.NewTilesModel(44, 44, rand.New(rand.NewSource(5)))
	model.RegisterWallKind(&tiles.WallKind{ID: "stone", Base: tiles.NewTile("stone_base", 1, 1)})
	g := NewAreaGenerator("test_area", 2, 2, rand.New(rand.NewSource(5)))
	g.Rooms = defaultParams()
	g.Terrain = TerrainParams{RoomKind: "flagstone", CorridorKind: "flagstone"}
	g.WallKinds = []*tiles.WallKind{{ID: "stone"}}

	out := g.Generate(model, 44, 44, nil)

	if len(out.Layers) == 0 {
		t.Fatalf("expected at least one layer to be populated")
	}

	sawWall, sawFloor := false, false
	for y := 0; y < 44; y++ {
		for x := 0; x < 44; x++ {
			if _, has := model.WallAt(x, y); has {
				sawWall = true
			}
			if _, has := model.TerrainAt(x, y); has {
				sawFloor = true
			}
		}
	}
	if !sawWall {
		t.Fatalf("expected the generator to carve at least one wall cell")
	}
	if !sawFloor {
		t.Fatalf("expected the generator to paint at least one floor cell")
	}
}

func TestAreaGeneratorPropsStayWithinRoom(t *testing.T) {
	model := tiles.NewTilesModel(60, 60, rand.New(rand.NewSource(11)))
	g := NewAreaGenerator("test_area", 2, 2, rand.New(rand.NewSource(11)))
	g.Rooms = defaultParams()
	g.Rooms.RoomPlacementAttempts = 80
	g.Props = PropParams{IDs: []string{"barrel", "crate"}, Chance: 100}

	out := g.Generate(model, 60, 60, nil)

	rooms := map[Room]bool{}
	maze := NewMaze(30, 30, rand.New(rand.NewSource(11)))
	maze.Generate(g.Rooms, nil)
	for _, r := range maze.Rooms() {
		rooms[r] = true
	}

	for _, p := range out.Props {
		inAny := false
		for r := range rooms {
			x0, y0 := r.X*g.GridWidth, r.Y*g.GridHeight
			x1, y1 := x0+r.Width*g.GridWidth, y0+r.Height*g.GridHeight
			if p.X >= x0 && p.X < x1 && p.Y >= y0 && p.Y < y1 {
				inAny = true
				break
			}
		}
		if !inAny {
			t.Fatalf("prop %+v placed outside every generated room", p)
		}
	}
}
