// Package persist implements saving and loading game state: a GORM
// store keyed by a UUID save-slot id, and the index-remapping pass that
// runs every saved entity/effect/callback reference through an
// old-index-to-new-index table as the game is rehydrated.
package persist

import "github.com/ashfall-tactics/tactica/target"

// EntitySnapshot is the persisted shape of one world.Entity: just
// enough to reconstruct it and to remap every reference to its index
// elsewhere in the save.
type EntitySnapshot struct {
	Kind             string
	AreaID           string
	X, Y             int
	StableIndex      int
	ActorID          string
	AIActive         bool
	CustomFlags      map[string]bool
	ActiveEffectIdx  []int
}

// EffectSnapshot is the persisted shape of one world.Effect.
type EffectSnapshot struct {
	Kind             string
	StableIndex      int
	RemainingMillis  int
	Callbacks        []target.CallbackData
	SurfacePoints    []target.Point
}

// MerchantSnapshot is the per-area merchant window state: what's in
// stock and when it next refreshes.
type MerchantSnapshot struct {
	AreaID      string
	LootTableID string
	LastRefresh int64
}

// State is everything a save file stores, per spec.md's persisted-state
// description: current area, every entity/effect, the turn queue, the
// party stash, merchant state per area, quest state, and which resource
// sets are active.
type State struct {
	CurrentAreaID string

	Entities []EntitySnapshot
	Effects  []EffectSnapshot

	// TurnOrder mirrors turn.Manager's internal order slice: a kind tag
	// ("entity" or "effect") paired with the stable index into Entities
	// or Effects above.
	TurnOrder []TurnOrderEntry

	PartyCoins      int
	PartyMemberIDs  []string
	PartyAbilityIDs []string
	PartyItemCounts map[string]int
	PartyFlags      map[string]bool
	PartyNumFlags   map[string]int

	Merchants []MerchantSnapshot

	QuestState map[string]string

	ActiveResourceRoots []string
}

// TurnOrderEntry is one slot in the persisted turn queue.
type TurnOrderEntry struct {
	Kind  string
	Index int
}
