package world

import "github.com/ashfall-tactics/tactica/tiles"

// TriggerKind is the predicate a Trigger fires on.
type TriggerKind int

const (
	TriggerOnCampaignStart TriggerKind = iota
	TriggerOnAreaLoad
	TriggerOnPlayerEnter
	TriggerOnEncounterCleared
	TriggerOnEncounterActivated
)

// Trigger pairs a firing predicate with the actions it runs once.
// OnPlayerEnter/OnEncounterCleared/OnEncounterActivated carry a
// location; the others are unconditional on area state alone.
type Trigger struct {
	Kind              TriggerKind
	Location          tiles.Point
	Size              tiles.Point
	EncounterLocation tiles.Point

	OnActivate       []OnTrigger
	InitiallyEnabled bool
	fired            bool
}

// Fire runs every action in OnActivate, marks the trigger fired, and
// disables it — triggers run once per area visit, the area must be
// reloaded (or the campaign state reset) to rearm an OnCampaignStart
// trigger.
func (t *Trigger) Fire(ctx *TriggerContext) {
	if !t.InitiallyEnabled || t.fired {
		return
	}
	t.fired = true
	for _, action := range t.OnActivate {
		action.Apply(ctx)
	}
}

// Fired reports whether this trigger has already run.
func (t *Trigger) Fired() bool { return t.fired }

// ToKind is the destination of a Transition.
type ToKind int

const (
	ToArea ToKind = iota
	ToCurArea
	ToWorldMap
)

// Transition is a doorway/ladder/stairway linking two points, possibly
// across areas.
type Transition struct {
	From      tiles.Point
	SizeID    string
	ToKind    ToKind
	ToAreaID  string
	ToX, ToY  int
	HoverText string
	ImageID   string
}

// RestPolicyKind discriminates whether resting in an area is blocked
// with a message or runs a script to decide. There is no kind for
// unrestricted resting.
type RestPolicyKind int

const (
	RestDisabled RestPolicyKind = iota
	RestFireScript
)

// RestPolicy governs whether the party may rest in this area.
type RestPolicy struct {
	Kind       RestPolicyKind
	Message    string
	ScriptID   string
	ScriptFunc string
}

// Area is one loaded map: its tile model, occupants, and the triggers
// and transitions that make it interactive.
type Area struct {
	ID     string
	Name   string
	Width  int
	Height int

	Tiles *tiles.TilesModel

	// PassabilityBySize holds one precomputed grid per creature
	// footprint size id, so the path finder never recomputes passability
	// per query.
	PassabilityBySize map[string][][]bool

	Entities    []int
	Props       []PropPlacement
	Encounters  []EncounterPlacement
	Transitions []Transition
	Triggers    []Trigger

	VisibilityDistance              int
	VisibilityDistanceSquared       int
	VisibilityDistanceUpOneSquared  int

	WorldMapLocation string
	Rest             RestPolicy
}

// PropPlacement is a static interactable object placed in the area.
type PropPlacement struct {
	PropID   string
	Location tiles.Point
	Enabled  bool
}

// EncounterPlacement is a spawn group placed in the area, with the
// trigger indices that react to its state changes.
type EncounterPlacement struct {
	EncounterID string
	Location    tiles.Point
	Width       int
	Height      int
	TriggerIdx  []int
}

// NewArea constructs an empty area of the given dimensions over model.
func NewArea(id, name string, width, height int, model *tiles.TilesModel) *Area {
	return &Area{
		ID:                id,
		Name:              name,
		Width:             width,
		Height:            height,
		Tiles:             model,
		PassabilityBySize: make(map[string][][]bool),
		Rest:              RestPolicy{Kind: RestDisabled, Message: "You cannot rest here."},
	}
}

// IsPassable reports whether (x, y) is in bounds and clear for a
// footprint of sizeID, per the area's precomputed passability grid.
func (a *Area) IsPassable(sizeID string, x, y int) bool {
	grid, ok := a.PassabilityBySize[sizeID]
	if !ok {
		return false
	}
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return false
	}
	return grid[y][x]
}
