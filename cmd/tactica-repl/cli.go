package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/ashfall-tactics/tactica/pathfind"
	"github.com/ashfall-tactics/tactica/persist"
	"github.com/ashfall-tactics/tactica/target"
	"github.com/ashfall-tactics/tactica/tiles"
	"github.com/ashfall-tactics/tactica/turn"
	"github.com/ashfall-tactics/tactica/world"
)

const defaultSizeID = "1x1"

// CLI is a thin command dispatcher over an in-memory area and turn
// queue, optionally backed by a persisted save slot. Each call to
// ExecuteCommand parses one line and mutates the live state directly,
// the same shape as a REPL driving a running simulation rather than a
// request/response API.
type CLI struct {
	readline *readline.Instance

	slot        string
	slotVersion int64
	store       *persist.Store

	area     *world.Area
	mgr      *turn.Manager
	party    *world.PartyStash
	finder   *pathfind.Finder
	selected int // index into mgr.Entities(), -1 = none
}

// NewCLI opens (or starts) a slot. If dbEndpoint is empty, the session
// is in-memory only and save/load report that no store is configured.
func NewCLI(slot, dbEndpoint string) (*CLI, error) {
	rl, err := readline.New("tactica> ")
	if err != nil {
		return nil, fmt.Errorf("open readline: %w", err)
	}

	cli := &CLI{
		readline: rl,
		slot:     slot,
		selected: -1,
	}

	if dbEndpoint != "" {
		store, err := persist.OpenStore(dbEndpoint)
		if err != nil {
			rl.Close()
			return nil, err
		}
		cli.store = store
	}

	if cli.store != nil {
		if state, version, err := cli.store.Load(context.Background(), slot); err == nil {
			cli.slotVersion = version
			cli.loadState(state)
			return cli, nil
		}
	}

	cli.newArea()
	return cli, nil
}

// Close releases the readline terminal. The save store's database
// connection, if one was opened, is not closed here.
func (cli *CLI) Close() {
	cli.readline.Close()
}

// newArea seeds a small flat, fully passable demo area with one party
// member and one hostile, the starting point for a fresh slot.
func (cli *CLI) newArea() {
	model := tiles.NewTilesModel(12, 12, nil)
	floor := tiles.NewTile("floor", 1, 1)
	model.RegisterTerrainKind(&tiles.TerrainKind{ID: "floor", Base: floor, BaseWeight: 1})
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			model.SetTerrainIndex(x, y, "floor")
		}
	}

	area := world.NewArea("start", "Starting Room", 12, 12, model)
	passable := make([][]bool, 12)
	for y := range passable {
		passable[y] = make([]bool, 12)
		for x := range passable[y] {
			passable[y][x] = true
		}
	}
	area.PassabilityBySize[defaultSizeID] = passable
	cli.area = area

	cli.mgr = turn.NewManager()
	cli.party = world.NewPartyStash()

	hero := world.NewEntity("hero-1", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	hero.AreaID = area.ID
	hero.X, hero.Y = 1, 1
	cli.mgr.AddEntity(hero)
	cli.party.AddMember(hero.ID)

	foe := world.NewEntity("foe-1", "Bandit", world.Hostile, 4)
	foe.AreaID = area.ID
	foe.X, foe.Y = 8, 8
	cli.mgr.AddEntity(foe)

	cli.finder = pathfind.NewFinder(area.Width, area.Height)
}

func (cli *CLI) loadState(state *persist.State) {
	model := tiles.NewTilesModel(12, 12, nil)
	floor := tiles.NewTile("floor", 1, 1)
	model.RegisterTerrainKind(&tiles.TerrainKind{ID: "floor", Base: floor, BaseWeight: 1})
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			model.SetTerrainIndex(x, y, "floor")
		}
	}
	area := world.NewArea(state.CurrentAreaID, state.CurrentAreaID, 12, 12, model)
	passable := make([][]bool, 12)
	for y := range passable {
		passable[y] = make([]bool, 12)
		for x := range passable[y] {
			passable[y][x] = true
		}
	}
	area.PassabilityBySize[defaultSizeID] = passable
	cli.area = area
	cli.finder = pathfind.NewFinder(area.Width, area.Height)

	cli.mgr = turn.NewManager()
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
		cli.mgr.AddEntity(ent)
	}

	cli.party = world.NewPartyStash()
	cli.party.Coins = state.PartyCoins
	for _, id := range state.PartyMemberIDs {
		cli.party.AddMember(id)
	}
	for _, id := range state.PartyAbilityIDs {
		cli.party.GrantAbility(id)
	}
	for item, n := range state.PartyItemCounts {
		for i := 0; i < n; i++ {
			cli.party.AddItem(item)
		}
	}
	for flag := range state.PartyFlags {
		cli.party.SetFlag(flag, true)
	}
	for flag, n := range state.PartyNumFlags {
		cli.party.AdjustNumFlag(flag, n)
	}
	cli.selected = -1
}

func (cli *CLI) snapshot() *persist.State {
	state := &persist.State{
		CurrentAreaID:   cli.area.ID,
		PartyCoins:      cli.party.Coins,
		PartyMemberIDs:  cli.party.MemberIDs,
		PartyItemCounts: cli.party.ItemCounts,
		PartyFlags:      cli.party.Flags,
		PartyNumFlags:   cli.party.NumFlags,
	}
	for id := range cli.party.AbilityIDs {
		state.PartyAbilityIDs = append(state.PartyAbilityIDs, id)
	}
	for i, ent := range cli.mgr.Entities() {
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

// ExecuteCommand parses and runs one command line, returning the text
// to print (or the literal string "quit" to end the REPL).
func (cli *CLI) ExecuteCommand(command string) string {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return "Empty command"
	}
	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "move":
		return cli.handleMove(args)
	case "target":
		return cli.handleTarget(args)
	case "select":
		return cli.handleSelect(args)
	case "end":
		return cli.handleEnd()
	case "status":
		return cli.handleStatus()
	case "units":
		return cli.handleUnits()
	case "party":
		return cli.handleParty()
	case "save":
		return cli.handleSave()
	case "load":
		return cli.handleLoad()
	case "help":
		return cli.handleHelp()
	case "quit", "exit":
		return "quit"
	default:
		return fmt.Sprintf("Unknown command: %s. Type 'help' for available commands.", verb)
	}
}

func (cli *CLI) entityByID(id string) (int, *world.Entity) {
	for i, ent := range cli.mgr.Entities() {
		if ent != nil && ent.ID == id {
			return i, ent
		}
	}
	return -1, nil
}

func parsePoint(s string) (x, y int, err error) {
	coords := strings.Split(s, ",")
	if len(coords) != 2 {
		return 0, 0, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err = strconv.Atoi(strings.TrimSpace(coords[0]))
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.Atoi(strings.TrimSpace(coords[1]))
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (cli *CLI) handleMove(args []string) string {
	if len(args) != 2 {
		return "Usage: move <entity> <x>,<y>"
	}
	_, ent := cli.entityByID(args[0])
	if ent == nil {
		return fmt.Sprintf("No such entity: %s", args[0])
	}
	toX, toY, err := parsePoint(args[1])
	if err != nil {
		return fmt.Sprintf("Invalid destination: %v", err)
	}

	checker := areaChecker{area: cli.area, sizeID: defaultSizeID}
	path, found := cli.finder.Find(checker, ent.X, ent.Y, pathfind.Destination{X: toX, Y: toY})
	if !found {
		return fmt.Sprintf("No path from %d,%d to %d,%d", ent.X, ent.Y, toX, toY)
	}
	ent.X, ent.Y = toX, toY
	return fmt.Sprintf("Moved %s to %d,%d (%d-step path)", ent.ID, toX, toY, len(path)-1)
}

// areaChecker adapts world.Area's per-size passability grid to
// pathfind.LocationChecker.
type areaChecker struct {
	area   *world.Area
	sizeID string
}

func (c areaChecker) Passable(x, y int) bool      { return c.area.IsPassable(c.sizeID, x, y) }
func (c areaChecker) InFriendSpace(x, y int) bool { return false }

func (cli *CLI) handleTarget(args []string) string {
	if len(args) != 2 {
		return "Usage: target <entity> <x>,<y> (shows entities a radius-2 circle at that point would affect)"
	}
	_, origin := cli.entityByID(args[0])
	if origin == nil {
		return fmt.Sprintf("No such entity: %s", args[0])
	}
	x, y, err := parsePoint(args[1])
	if err != nil {
		return fmt.Sprintf("Invalid point: %v", err)
	}

	shape := target.Shape{Kind: target.ShapeCircle, Radius: 2.0}
	occupants := map[target.Point]int{}
	lookup := func(index int) (target.Footprint4, bool) {
		ent := cli.mgr.Entities()[index]
		if ent == nil {
			return target.Footprint4{}, false
		}
		return target.Footprint4{X: ent.X, Y: ent.Y, W: 1, H: 1}, true
	}
	for i, ent := range cli.mgr.Entities() {
		if ent != nil {
			occupants[target.Point{X: ent.X, Y: ent.Y}] = i
		}
	}

	td := target.NewTargeterData(-1, target.OwnerAbility, "demo-blast")
	td.Shape = shape
	set := td.EffectedEntities(-1, x, y, occupants, lookup, nil)

	if len(set.Indices) == 0 {
		return fmt.Sprintf("No entities within radius 2 of %d,%d", x, y)
	}
	var names []string
	for _, idx := range set.Indices {
		if ent := cli.mgr.Entities()[idx]; ent != nil {
			names = append(names, ent.ID)
		}
	}
	return fmt.Sprintf("Affects: %s", strings.Join(names, ", "))
}

func (cli *CLI) handleSelect(args []string) string {
	if len(args) != 1 {
		return "Usage: select <entity>"
	}
	index, ent := cli.entityByID(args[0])
	if ent == nil {
		return fmt.Sprintf("No such entity: %s", args[0])
	}
	cli.selected = index
	return fmt.Sprintf("Selected %s at %d,%d (AP %d/%d)", ent.ID, ent.X, ent.Y, ent.ActionPoints, ent.MaxActionPoints)
}

func (cli *CLI) handleEnd() string {
	cli.mgr.Next()
	current := cli.mgr.Current()
	cli.selected = -1
	if current == nil {
		return "Turn ended. Out of combat."
	}
	return fmt.Sprintf("Turn ended. Now acting: %s", current.ID)
}

func (cli *CLI) handleStatus() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Area: %s (%dx%d)\n", cli.area.ID, cli.area.Width, cli.area.Height))
	sb.WriteString(fmt.Sprintf("Combat active: %v\n", cli.mgr.IsCombatActive()))
	if current := cli.mgr.Current(); current != nil {
		sb.WriteString(fmt.Sprintf("Current turn: %s\n", current.ID))
	}
	if cli.selected >= 0 {
		if ent := cli.mgr.Entities()[cli.selected]; ent != nil {
			sb.WriteString(fmt.Sprintf("Selected: %s at %d,%d\n", ent.ID, ent.X, ent.Y))
		}
	}
	return sb.String()
}

func (cli *CLI) handleUnits() string {
	var sb strings.Builder
	for _, ent := range cli.mgr.Entities() {
		if ent == nil {
			continue
		}
		side := "hostile"
		if ent.PartyMember {
			side = "party"
		}
		sb.WriteString(fmt.Sprintf("  %s (%s) at %d,%d - AP %d/%d\n",
			ent.ID, side, ent.X, ent.Y, ent.ActionPoints, ent.MaxActionPoints))
	}
	if sb.Len() == 0 {
		return "No entities found"
	}
	return sb.String()
}

func (cli *CLI) handleParty() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Coins: %d\n", cli.party.Coins))
	sb.WriteString(fmt.Sprintf("Members: %s\n", strings.Join(cli.party.MemberIDs, ", ")))
	if len(cli.party.ItemCounts) > 0 {
		sb.WriteString("Items:\n")
		for id, n := range cli.party.ItemCounts {
			sb.WriteString(fmt.Sprintf("  %s x%d\n", id, n))
		}
	}
	return sb.String()
}

func (cli *CLI) handleSave() string {
	if cli.store == nil {
		return "No save store configured; pass -db postgres://... to persist"
	}
	ctx := context.Background()
	state := cli.snapshot()
	if cli.slotVersion == 0 {
		id, err := cli.store.Create(ctx, cli.slot, state)
		if err != nil {
			return fmt.Sprintf("Save failed: %v", err)
		}
		cli.slot = id
		cli.slotVersion = 1
		return fmt.Sprintf("Created new slot %s", id)
	}
	if err := cli.store.Save(ctx, cli.slot, cli.slotVersion, state); err != nil {
		return fmt.Sprintf("Save failed: %v", err)
	}
	cli.slotVersion++
	return fmt.Sprintf("Saved slot %s (version %d)", cli.slot, cli.slotVersion)
}

func (cli *CLI) handleLoad() string {
	if cli.store == nil {
		return "No save store configured; pass -db postgres://... to persist"
	}
	state, version, err := cli.store.Load(context.Background(), cli.slot)
	if err != nil {
		return fmt.Sprintf("Load failed: %v", err)
	}
	cli.loadState(state)
	cli.slotVersion = version
	return fmt.Sprintf("Loaded slot %s (version %d)", cli.slot, version)
}

func (cli *CLI) handleHelp() string {
	return `Available commands:
  move <entity> <x>,<y>    Path an entity to a tile
  target <entity> <x>,<y>  Show entities a radius-2 blast at that point would hit
  select <entity>          Select an entity and show its turn state
  end                      Advance the turn queue
  status                   Show area and turn status
  units                    List every entity on the area
  party                    Show party stash contents
  save                     Persist the current state to the slot
  load                     Reload the slot, discarding unsaved changes
  help                     Show this help
  quit                     Exit the REPL`
}
