// Package world holds the data types the turn manager, effect engine, and
// targeter substrate all operate on: entities, effects, and the area they
// occupy.
package world

// Faction groups entities for hostility and AI-group checks.
type Faction int

const (
	Neutral Faction = iota
	Friendly
	Hostile
)

// Entity is a single actor on the board: a party member or an AI-driven
// creature. The turn manager only touches the fields relevant to
// scheduling; everything ability/inventory-related lives outside this
// struct's concern.
type Entity struct {
	ID      string
	Name    string
	Faction Faction

	PartyMember bool

	aiActive bool
	aiGroup  int
	hasGroup bool

	Initiative int

	ActionPoints    int
	MaxActionPoints int
	OverflowAP      int

	MarkedForRemoval bool

	AreaID string
	X, Y   int

	// SubX, SubY are the fractional-tile draw offset an animation (a move
	// or a subpos tween) applies on top of X/Y for smooth motion.
	SubX, SubY float32

	// DrawColor tints the entity's sprite; a color-tween animation writes
	// here each frame. Defaults to opaque white.
	DrawColor [4]float32

	HasAttacked bool
}

// NewEntity constructs an entity with full action points and no AI group.
func NewEntity(id, name string, faction Faction, maxAP int) *Entity {
	return &Entity{
		ID:              id,
		Name:            name,
		Faction:         faction,
		MaxActionPoints: maxAP,
		ActionPoints:    maxAP,
		DrawColor:       [4]float32{1, 1, 1, 1},
	}
}

func (e *Entity) IsPartyMember() bool { return e.PartyMember }

// IsHostileTo reports whether e and other are on opposing factions. Two
// entities of the same faction, or where either is Neutral, are never
// hostile.
func (e *Entity) IsHostileTo(other *Entity) bool {
	if e.Faction == Neutral || other.Faction == Neutral {
		return false
	}
	return e.Faction != other.Faction
}

func (e *Entity) IsAIActive() bool      { return e.aiActive }
func (e *Entity) SetAIActive(v bool)    { e.aiActive = v }
func (e *Entity) SetAIGroup(group int)  { e.aiGroup = group; e.hasGroup = true }
func (e *Entity) ClearAIGroup()         { e.hasGroup = false }
func (e *Entity) AIGroup() (int, bool)  { return e.aiGroup, e.hasGroup }

// InitTurn refreshes this entity's action points to its round allowance
// plus any carried-over overflow, then clears the overflow.
func (e *Entity) InitTurn() {
	e.ActionPoints = e.MaxActionPoints + e.OverflowAP
	e.OverflowAP = 0
}

// EndTurn carries any unused action points into overflow for next round
// and zeroes the current pool.
func (e *Entity) EndTurn() {
	e.OverflowAP = e.ActionPoints
	e.ActionPoints = 0
}

func (e *Entity) SetOverflowAP(ap int) { e.OverflowAP = ap }

func (e *Entity) IsMarkedForRemoval() bool { return e.MarkedForRemoval }

// ElapseTime is the per-tick hook for entity-local time-based state. It
// currently does nothing: the effect engine owns duration bookkeeping,
// and status effects are not run from here.
func (e *Entity) ElapseTime(elapsedMillis int) {}

// ResetForEndOfCombat restores a party member to full action points when
// combat ends. Entity carries no hit points, so no healing is applied.
func (e *Entity) ResetForEndOfCombat() {
	e.InitTurn()
}
