package generator

import (
	"math/rand"

	"github.com/ashfall-tactics/tactica/tiles"
)

// GeneratorOutput is what an area generation run hands back to the area
// loader: the finished layer set plus the objects placed within it.
type GeneratorOutput struct {
	Layers     []*tiles.Layer
	Props      []PropPlacement
	Encounters []EncounterPlacement
}

// PropPlacement is a prop instance placed at a tile-grid coordinate.
type PropPlacement struct {
	X, Y int
	ID   string
}

// EncounterPlacement is an encounter trigger area placed on the region
// grid, expanded to tile coordinates.
type EncounterPlacement struct {
	X, Y, W, H int
	ID         string
}

// TerrainParams controls the terrain sub-generator: which terrain kind
// paints the floor of room and corridor cells.
type TerrainParams struct {
	RoomKind     string
	CorridorKind string
}

// PropParams and EncounterParams drive their respective sub-generators:
// a weighted id list and a placement chance (percent, 1-100) per legal
// cell.
type PropParams struct {
	IDs    []string
	Chance int
}

type EncounterParams struct {
	IDs    []string
	Chance int
}

// AreaGenerator carries the authored parameters for one area template:
// region-grid cell size in tiles, room/corridor parameters, the wall kind
// pool, and the terrain/prop/encounter sub-generator parameters.
type AreaGenerator struct {
	ID string

	GridWidth, GridHeight int
	WallKinds             []*tiles.WallKind
	Rooms                 RoomParams
	Terrain               TerrainParams
	Props                 PropParams
	Encounters            EncounterParams

	rng *rand.Rand
}

// NewAreaGenerator builds a generator for one area template. rng may be
// nil, in which case a source with the fixed seed 1 is used.
func NewAreaGenerator(id string, gridWidth, gridHeight int, rng *rand.Rand) *AreaGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &AreaGenerator{ID: id, GridWidth: gridWidth, GridHeight: gridHeight, rng: rng}
}

// Generate runs the full maze-carve + wall-placement + terrain/prop/
// encounter pipeline against a model sized width x height tiles, with
// transitions marking fixed open locations (e.g. doors to adjoining
// areas) that must fall inside a room.
func (g *AreaGenerator) Generate(model *tiles.TilesModel, width, height int, transitions []tiles.Placement) GeneratorOutput {
	regionWidth := width / g.GridWidth
	regionHeight := height / g.GridHeight

	openLocs := make([]Point, 0, len(transitions))
	for _, t := range transitions {
		openLocs = append(openLocs, Point{X: t.X / g.GridWidth, Y: t.Y / g.GridHeight})
	}

	maze := NewMaze(regionWidth, regionHeight, g.rng)
	maze.Generate(g.Rooms, openLocs)

	g.carveWalls(model, maze)
	g.paintTerrain(model, maze)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			model.CheckAddWallBorder(x, y)
			model.CheckAddTerrainBorder(x, y)
		}
	}

	props := g.generateProps(model, maze, width, height)
	encounters := g.generateEncounters(maze)

	return GeneratorOutput{Layers: model.Layers(), Props: props, Encounters: encounters}
}

// carveWalls fills every tile-grid cell under a Wall region with a wall,
// and clears walls under Room/Corridor/Doorway regions, per the region
// grid's coarser resolution.
func (g *AreaGenerator) carveWalls(model *tiles.TilesModel, maze *Maze) {
	wallKind := g.pickWallKind()

	for ry := 0; ry < maze.Height(); ry++ {
		for rx := 0; rx < maze.Width(); rx++ {
			cell := maze.tile(rx, ry)
			ox, oy := rx*g.GridWidth, ry*g.GridHeight

			for ly := 0; ly < g.GridHeight; ly++ {
				for lx := 0; lx < g.GridWidth; lx++ {
					x, y := ox+lx, oy+ly
					if cell.Kind == KindWall {
						if wallKind != nil {
							model.SetWall(x, y, wallKind.ID, 1)
						}
					} else {
						model.SetWall(x, y, "", 0)
					}
				}
			}
		}
	}
}

func (g *AreaGenerator) pickWallKind() *tiles.WallKind {
	if len(g.WallKinds) == 0 {
		return nil
	}
	return g.WallKinds[g.rng.Intn(len(g.WallKinds))]
}

// paintTerrain floods the chosen room/corridor terrain kind id across
// every non-wall region cell's tile footprint.
func (g *AreaGenerator) paintTerrain(model *tiles.TilesModel, maze *Maze) {
	for ry := 0; ry < maze.Height(); ry++ {
		for rx := 0; rx < maze.Width(); rx++ {
			cell := maze.tile(rx, ry)
			var kindID string
			switch cell.Kind {
			case KindRoom:
				kindID = g.Terrain.RoomKind
			case KindCorridor, KindDoorway:
				kindID = g.Terrain.CorridorKind
			default:
				continue
			}
			if kindID == "" {
				continue
			}

			ox, oy := rx*g.GridWidth, ry*g.GridHeight
			for ly := 0; ly < g.GridHeight; ly++ {
				for lx := 0; lx < g.GridWidth; lx++ {
					model.SetTerrainIndex(ox+lx, oy+ly, kindID)
				}
			}
		}
	}
}

// generateProps rolls Props.Chance per room-cell region and places one
// prop from Props.IDs at a uniformly chosen passable tile inside it.
func (g *AreaGenerator) generateProps(model *tiles.TilesModel, maze *Maze, width, height int) []PropPlacement {
	if len(g.Props.IDs) == 0 {
		return nil
	}

	var out []PropPlacement
	for _, room := range maze.Rooms() {
		if randRange(g.rng, 1, 101) >= g.Props.Chance {
			continue
		}

		id := g.Props.IDs[g.rng.Intn(len(g.Props.IDs))]
		x := room.X*g.GridWidth + g.rng.Intn(room.Width*g.GridWidth)
		y := room.Y*g.GridHeight + g.rng.Intn(room.Height*g.GridHeight)
		if x >= width || y >= height {
			continue
		}
		out = append(out, PropPlacement{X: x, Y: y, ID: id})
	}
	return out
}

// generateEncounters rolls Encounters.Chance per room and, on success,
// places an encounter trigger sized to the room's full footprint.
func (g *AreaGenerator) generateEncounters(maze *Maze) []EncounterPlacement {
	if len(g.Encounters.IDs) == 0 {
		return nil
	}

	var out []EncounterPlacement
	for _, room := range maze.Rooms() {
		if randRange(g.rng, 1, 101) >= g.Encounters.Chance {
			continue
		}

		id := g.Encounters.IDs[g.rng.Intn(len(g.Encounters.IDs))]
		out = append(out, EncounterPlacement{
			X: room.X * g.GridWidth, Y: room.Y * g.GridHeight,
			W: room.Width * g.GridWidth, H: room.Height * g.GridHeight,
			ID: id,
		})
	}
	return out
}
