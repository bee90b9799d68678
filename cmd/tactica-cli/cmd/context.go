package cmd

import (
	"context"
	"fmt"

	"github.com/ashfall-tactics/tactica/pathfind"
	"github.com/ashfall-tactics/tactica/persist"
	"github.com/ashfall-tactics/tactica/tiles"
	"github.com/ashfall-tactics/tactica/turn"
	"github.com/ashfall-tactics/tactica/world"
)

const sizeID = "1x1"
const areaSize = 12

// GameContext bundles the live in-memory state one CLI invocation
// operates on, plus the save store it was loaded from (if any). Each
// subcommand fetches one via GetGameContext, mutates it, then calls
// SaveGameContext unless --dryrun was given.
type GameContext struct {
	Area   *world.Area
	Mgr    *turn.Manager
	Party  *world.PartyStash
	Finder *pathfind.Finder

	Store       *persist.Store
	SlotID      string
	SlotVersion int64
	IsNewSlot   bool
}

// GetGameContext resolves the slot id and, if a save store is
// configured, loads it; otherwise it seeds a fresh demo area, the same
// fallback cmd/tactica-repl uses for a never-before-seen slot.
func GetGameContext() (*GameContext, error) {
	gc := &GameContext{SlotID: getSlotID(), IsNewSlot: true}

	if endpoint := getDBEndpoint(); endpoint != "" {
		store, err := persist.OpenStore(endpoint)
		if err != nil {
			return nil, err
		}
		gc.Store = store

		if state, version, err := store.Load(context.Background(), gc.SlotID); err == nil {
			gc.SlotVersion = version
			gc.IsNewSlot = false
			loadGameContext(gc, state)
			return gc, nil
		}
	}

	seedGameContext(gc)
	return gc, nil
}

// SaveGameContext persists gc back to its slot. It is a no-op when no
// store is configured or --dryrun was requested.
func SaveGameContext(gc *GameContext) error {
	if gc.Store == nil || isDryrun() {
		return nil
	}
	ctx := context.Background()
	state := snapshotGameContext(gc)

	if gc.IsNewSlot {
		id, err := gc.Store.Create(ctx, gc.SlotID, state)
		if err != nil {
			return fmt.Errorf("save slot: %w", err)
		}
		gc.SlotID = id
		gc.SlotVersion = 1
		gc.IsNewSlot = false
		return nil
	}

	if err := gc.Store.Save(ctx, gc.SlotID, gc.SlotVersion, state); err != nil {
		return fmt.Errorf("save slot: %w", err)
	}
	gc.SlotVersion++
	return nil
}

func newDemoModel() *tiles.TilesModel {
	model := tiles.NewTilesModel(areaSize, areaSize, nil)
	floor := tiles.NewTile("floor", 1, 1)
	model.RegisterTerrainKind(&tiles.TerrainKind{ID: "floor", Base: floor, BaseWeight: 1})
	for y := 0; y < areaSize; y++ {
		for x := 0; x < areaSize; x++ {
			model.SetTerrainIndex(x, y, "floor")
		}
	}
	return model
}

func fullyPassableGrid() [][]bool {
	grid := make([][]bool, areaSize)
	for y := range grid {
		grid[y] = make([]bool, areaSize)
		for x := range grid[y] {
			grid[y][x] = true
		}
	}
	return grid
}

func seedGameContext(gc *GameContext) {
	area := world.NewArea(gc.SlotID, gc.SlotID, areaSize, areaSize, newDemoModel())
	area.PassabilityBySize[sizeID] = fullyPassableGrid()
	gc.Area = area
	gc.Finder = pathfind.NewFinder(area.Width, area.Height)

	gc.Mgr = turn.NewManager()
	gc.Party = world.NewPartyStash()

	hero := world.NewEntity("hero-1", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	hero.AreaID = area.ID
	hero.X, hero.Y = 1, 1
	gc.Mgr.AddEntity(hero)
	gc.Party.AddMember(hero.ID)

	foe := world.NewEntity("foe-1", "Bandit", world.Hostile, 4)
	foe.AreaID = area.ID
	foe.X, foe.Y = 8, 8
	gc.Mgr.AddEntity(foe)
}

func loadGameContext(gc *GameContext, state *persist.State) {
	area := world.NewArea(state.CurrentAreaID, state.CurrentAreaID, areaSize, areaSize, newDemoModel())
	area.PassabilityBySize[sizeID] = fullyPassableGrid()
	gc.Area = area
	gc.Finder = pathfind.NewFinder(area.Width, area.Height)

	gc.Mgr = turn.NewManager()
	for _, snap := range state.Entities {
		faction := world.Hostile
		if snap.Kind == "party" {
			faction = world.Friendly
		}
		ent := world.NewEntity(snap.ActorID, snap.ActorID, faction, 4)
		ent.PartyMember = snap.Kind == "party"
		ent.AreaID = snap.AreaID
		ent.X, ent.Y = snap.X, snap.Y
		ent.SetAIActive(snap.AIActive)
		gc.Mgr.AddEntity(ent)
	}

	gc.Party = world.NewPartyStash()
	gc.Party.Coins = state.PartyCoins
	for _, id := range state.PartyMemberIDs {
		gc.Party.AddMember(id)
	}
	for _, id := range state.PartyAbilityIDs {
		gc.Party.GrantAbility(id)
	}
	for item, n := range state.PartyItemCounts {
		for i := 0; i < n; i++ {
			gc.Party.AddItem(item)
		}
	}
	for flag := range state.PartyFlags {
		gc.Party.SetFlag(flag, true)
	}
	for flag, n := range state.PartyNumFlags {
		gc.Party.AdjustNumFlag(flag, n)
	}
}

func snapshotGameContext(gc *GameContext) *persist.State {
	state := &persist.State{
		CurrentAreaID:   gc.Area.ID,
		PartyCoins:      gc.Party.Coins,
		PartyMemberIDs:  gc.Party.MemberIDs,
		PartyItemCounts: gc.Party.ItemCounts,
		PartyFlags:      gc.Party.Flags,
		PartyNumFlags:   gc.Party.NumFlags,
	}
	for id := range gc.Party.AbilityIDs {
		state.PartyAbilityIDs = append(state.PartyAbilityIDs, id)
	}
	for i, ent := range gc.Mgr.Entities() {
		if ent == nil {
			continue
		}
		kind := "hostile"
		if ent.PartyMember {
			kind = "party"
		}
		state.Entities = append(state.Entities, persist.EntitySnapshot{
			Kind:        kind,
			AreaID:      ent.AreaID,
			X:           ent.X,
			Y:           ent.Y,
			StableIndex: i,
			ActorID:     ent.ID,
			AIActive:    ent.IsAIActive(),
		})
		state.TurnOrder = append(state.TurnOrder, persist.TurnOrderEntry{Kind: "entity", Index: i})
	}
	return state
}

// entityByID finds an entity by its stable id, returning its turn-queue
// index alongside it so callers can reference it in a snapshot.
func (gc *GameContext) entityByID(id string) (int, *world.Entity) {
	for i, ent := range gc.Mgr.Entities() {
		if ent != nil && ent.ID == id {
			return i, ent
		}
	}
	return -1, nil
}
