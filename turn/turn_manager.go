// Package turn implements the per-combat initiative queue: entity and
// effect scheduling, real-time tick handling outside combat, AI
// activation on visibility, and the combat enter/exit state machine.
package turn

import (
	"sort"

	"github.com/ashfall-tactics/tactica/world"
)

// RoundTimeMillis is the fixed duration of one combat round.
const RoundTimeMillis = 5000

type entryKind int

const (
	entityEntry entryKind = iota
	effectEntry
)

type entry struct {
	kind  entryKind
	index int
}

// AreaVisibility answers the spatial questions the turn manager needs to
// decide AI activation, without the turn manager importing an area
// package directly.
type AreaVisibility interface {
	HasVisibility(observer, target *world.Entity) bool
	Contains(e *world.Entity) bool
}

// PartySelection lets the turn manager drive whichever party member has
// the active turn into the UI's selection, without depending on the UI.
type PartySelection interface {
	SetSelectedPartyMember(e *world.Entity)
	ClearSelectedPartyMember()
}

// AnimClearer is notified when combat starts, so in-flight animations
// tied to the old, unscheduled world can be dropped.
type AnimClearer interface {
	ClearAnims()
}

// Manager is the per-area initiative queue: a deque of entity/effect
// entries, rotated by Next, plus the combat-active state machine.
type Manager struct {
	entities []*world.Entity
	effects  []*world.Effect

	combatActive bool
	lastMillis   int

	order []entry

	listeners []ChangeListener

	Visibility AreaVisibility
	Party      PartySelection
	Anims      AnimClearer
}

// NewManager creates an empty, out-of-combat turn manager.
func NewManager() *Manager {
	return &Manager{}
}

// AddListener registers l to be notified after every state change.
func (m *Manager) AddListener(l ChangeListener) { m.listeners = append(m.listeners, l) }

func (m *Manager) notify() {
	for _, l := range m.listeners {
		l.Changed(m)
	}
}

// IsCombatActive reports whether the queue is currently in combat mode.
func (m *Manager) IsCombatActive() bool { return m.combatActive }

// Entities returns the live entity slots by stable index; a removed
// slot holds nil rather than shifting the indices after it, so a save
// record can refer to an entity by its position in this slice.
func (m *Manager) Entities() []*world.Entity { return m.entities }

// Effects returns the live effect slots by stable index, with the same
// nil-on-removal convention as Entities.
func (m *Manager) Effects() []*world.Effect { return m.effects }

// AddEntity appends e to the queue at a freshly allocated stable index
// and checks whether its presence should trigger AI activation.
func (m *Manager) AddEntity(e *world.Entity) {
	m.entities = append(m.entities, e)
	index := len(m.entities) - 1
	m.order = append(m.order, entry{kind: entityEntry, index: index})

	m.CheckAIActivation(e)
	m.notify()
}

// AddEffect appends eff to the queue at a freshly allocated stable index.
func (m *Manager) AddEffect(eff *world.Effect) {
	m.effects = append(m.effects, eff)
	index := len(m.effects) - 1
	m.order = append(m.order, entry{kind: effectEntry, index: index})
}

func (m *Manager) removeEffect(index int) {
	m.effects[index] = nil
	m.retainOrder(func(e entry) bool {
		return !(e.kind == effectEntry && e.index == index)
	})
}

func (m *Manager) removeEntity(index int) {
	m.entities[index] = nil
	m.retainOrder(func(e entry) bool {
		return !(e.kind == entityEntry && e.index == index)
	})

	if m.noHostileAIActiveRemains() {
		m.SetCombatActive(false)
	} else {
		m.notify()
	}
}

func (m *Manager) retainOrder(keep func(entry) bool) {
	kept := m.order[:0:0]
	for _, e := range m.order {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	m.order = kept
}

func (m *Manager) noHostileAIActiveRemains() bool {
	for _, e := range m.order {
		if e.kind != entityEntry {
			continue
		}
		ent := m.entities[e.index]
		if ent == nil {
			continue
		}
		if ent.IsAIActive() && ent.Faction != world.Friendly {
			return false
		}
	}
	return true
}

// Update advances simulated time to currentMillis, using the real-time
// delta since the last call. In combat, per-round effect and AP elapsing
// is driven by Next instead; here it only sweeps for entities marked for
// removal. Out of combat, the same delta also expires effects whose
// duration has run out (e.g. a buff ticking down between encounters).
func (m *Manager) Update(currentMillis int) {
	elapsed := currentMillis - m.lastMillis
	m.lastMillis = currentMillis

	if !m.combatActive {
		for index := range m.effects {
			if m.updateEffect(index, elapsed) {
				m.removeEffect(index)
			}
		}
	}

	for index := range m.entities {
		if m.updateEntity(index, elapsed) {
			m.removeEntity(index)
		}
	}
}

func (m *Manager) updateEffect(index, elapsedMillis int) bool {
	eff := m.effects[index]
	if eff == nil {
		return false
	}
	eff.Update(elapsedMillis)
	return eff.IsRemoval()
}

func (m *Manager) updateEntity(index, elapsedMillis int) bool {
	ent := m.entities[index]
	if ent == nil {
		return false
	}
	ent.ElapseTime(elapsedMillis)
	return ent.IsMarkedForRemoval()
}

// Current returns the entity with the active turn, or nil if out of
// combat or the queue is empty.
func (m *Manager) Current() *world.Entity {
	if !m.combatActive || len(m.order) == 0 {
		return nil
	}
	if m.order[0].kind != entityEntry {
		return nil
	}
	return m.entities[m.order[0].index]
}

// Next rotates the queue to the next active entity: effects and finished
// entity turns are cycled to the back one round at a time, the new
// front's turn is initialised, and listeners (and the party selection,
// if the new front is a party member) are notified.
func (m *Manager) Next() {
	m.iterateToNextEntity()
	m.initTurnForCurrentEntity()

	current := m.Current()
	if current != nil && m.Party != nil {
		if current.IsPartyMember() {
			m.Party.SetSelectedPartyMember(current)
		} else {
			m.Party.ClearSelectedPartyMember()
		}
	}

	m.notify()
}

func (m *Manager) initTurnForCurrentEntity() {
	current := m.Current()
	if current == nil {
		return
	}
	current.InitTurn()
	current.ElapseTime(RoundTimeMillis)
}

func (m *Manager) iterateToNextEntity() {
	currentEnded := false

	for {
		if currentEnded && m.currentIsActiveEntity() {
			return
		}
		if len(m.order) == 0 {
			return
		}

		front := m.order[0]
		m.order = m.order[1:]

		switch front.kind {
		case effectEntry:
			if m.updateEffect(front.index, RoundTimeMillis) {
				m.removeEffect(front.index)
			} else {
				m.order = append(m.order, front)
			}
		case entityEntry:
			if ent := m.entities[front.index]; ent != nil {
				ent.EndTurn()
			}
			m.order = append(m.order, front)
			currentEnded = true
		}
	}
}

func (m *Manager) currentIsActiveEntity() bool {
	if len(m.order) == 0 || m.order[0].kind != entityEntry {
		return false
	}
	ent := m.entities[m.order[0].index]
	if ent == nil {
		return false
	}
	return ent.IsPartyMember() || ent.IsAIActive()
}

// CheckAIActivation activates AI for every hostile entity that sees, or
// is seen by, mover, propagates activation across shared AI groups, and
// enters combat if this is the first activation.
func (m *Manager) CheckAIActivation(mover *world.Entity) {
	if m.Visibility == nil {
		return
	}

	groupsToActivate := map[int]bool{}
	stateChanged := false

	for _, ent := range m.entities {
		if ent == nil || ent == mover {
			continue
		}
		if !ent.IsHostileTo(mover) {
			continue
		}
		if !m.Visibility.Contains(ent) {
			continue
		}
		if !m.Visibility.HasVisibility(mover, ent) && !m.Visibility.HasVisibility(ent, mover) {
			continue
		}

		m.activateEntityAI(ent, groupsToActivate)
		stateChanged = true
	}

	if !stateChanged {
		return
	}

	m.activateEntityAI(mover, groupsToActivate)

	for _, ent := range m.entities {
		if ent == nil || ent.IsAIActive() {
			continue
		}
		group, ok := ent.AIGroup()
		if !ok {
			continue
		}
		if groupsToActivate[group] {
			ent.SetAIActive(true)
		}
	}

	if !m.combatActive {
		m.SetCombatActive(true)
		for !m.currentIsActiveEntity() && len(m.order) > 0 {
			front := m.order[0]
			m.order = append(m.order[1:], front)
		}
	} else {
		m.notify()
	}
}

func (m *Manager) activateEntityAI(ent *world.Entity, groups map[int]bool) {
	if ent.IsPartyMember() {
		return
	}
	ent.SetAIActive(true)
	if group, ok := ent.AIGroup(); ok {
		groups[group] = true
	}
}

// SetCombatActive transitions combat mode, running the enter/exit
// side-effects exactly once; setting the same state twice is a no-op.
func (m *Manager) SetCombatActive(active bool) {
	if active == m.combatActive {
		return
	}
	m.combatActive = active

	if active {
		m.initiateCombat()
	} else {
		m.endCombat()
	}
	m.notify()
}

func (m *Manager) endCombat() {
	for _, ent := range m.entities {
		if ent == nil {
			continue
		}
		ent.SetAIActive(false)
		if !ent.IsPartyMember() {
			continue
		}
		ent.ResetForEndOfCombat()
	}
}

// initiateCombat rolls initiative: the whole queue is stably sorted by
// Initiative (lower first), with effect entries keyed as 0, so effects
// keep their relative order among themselves and sort ahead of
// positive-initiative entities; every entity's turn is ended and its
// overflow AP cleared so the round starts clean.
func (m *Manager) initiateCombat() {
	entries := m.order
	sort.SliceStable(entries, func(i, j int) bool {
		return m.initiativeOf(entries[i]) < m.initiativeOf(entries[j])
	})
	m.order = entries

	for _, ent := range m.entities {
		if ent == nil {
			continue
		}
		ent.EndTurn()
		ent.SetOverflowAP(0)
	}

	if m.Anims != nil {
		m.Anims.ClearAnims()
	}
}

func (m *Manager) initiativeOf(e entry) int {
	if e.kind != entityEntry {
		return 0
	}
	ent := m.entities[e.index]
	if ent == nil {
		return 0
	}
	return ent.Initiative
}
