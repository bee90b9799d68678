package turn

import (
	"testing"

	"github.com/ashfall-tactics/tactica/world"
)

// fakeVisibility lets tests control exactly which pairs of entities can
// see each other, without building a real area/tiles model.
type fakeVisibility struct {
	seen    map[[2]string]bool
	present map[string]bool
}

func newFakeVisibility() *fakeVisibility {
	return &fakeVisibility{seen: map[[2]string]bool{}, present: map[string]bool{}}
}

func (v *fakeVisibility) HasVisibility(observer, target *world.Entity) bool {
	return v.seen[[2]string{observer.ID, target.ID}]
}

func (v *fakeVisibility) Contains(e *world.Entity) bool {
	if v.present == nil {
		return true
	}
	return v.present[e.ID]
}

type fakeParty struct {
	selected *world.Entity
	cleared  bool
}

func (p *fakeParty) SetSelectedPartyMember(e *world.Entity) { p.selected = e; p.cleared = false }
func (p *fakeParty) ClearSelectedPartyMember()              { p.selected = nil; p.cleared = true }

func TestCheckAIActivationEntersCombatOnVisibility(t *testing.T) {
	m := NewManager()
	vis := newFakeVisibility()
	m.Visibility = vis

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	goblin := world.NewEntity("goblin", "Goblin", world.Hostile, 4)

	vis.present[hero.ID] = true
	vis.present[goblin.ID] = true

	m.AddEntity(hero)
	m.AddEntity(goblin)

	if m.IsCombatActive() {
		t.Fatalf("adding entities that cannot see each other should not itself trigger combat")
	}

	vis.seen[[2]string{hero.ID, goblin.ID}] = true
	m.CheckAIActivation(hero)

	if !m.IsCombatActive() {
		t.Fatalf("expected combat to become active once a hostile sees the mover")
	}
	if !goblin.IsAIActive() {
		t.Fatalf("expected goblin AI to activate")
	}
}

func TestCheckAIActivationPropagatesAcrossGroup(t *testing.T) {
	m := NewManager()
	vis := newFakeVisibility()
	m.Visibility = vis

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	goblin1 := world.NewEntity("g1", "Goblin 1", world.Hostile, 4)
	goblin2 := world.NewEntity("g2", "Goblin 2", world.Hostile, 4)
	goblin1.SetAIGroup(1)
	goblin2.SetAIGroup(1)

	vis.present[hero.ID] = true
	vis.present[goblin1.ID] = true
	vis.present[goblin2.ID] = true
	vis.seen[[2]string{hero.ID, goblin1.ID}] = true

	m.AddEntity(hero)
	m.AddEntity(goblin1)
	m.AddEntity(goblin2)

	m.CheckAIActivation(hero)

	if !goblin1.IsAIActive() || !goblin2.IsAIActive() {
		t.Fatalf("expected both group members to activate, got g1=%v g2=%v", goblin1.IsAIActive(), goblin2.IsAIActive())
	}
}

func TestSetCombatActiveSortsQueueByInitiativeAscending(t *testing.T) {
	m := NewManager()

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	hero.Initiative = 5
	goblin := world.NewEntity("goblin", "Goblin", world.Hostile, 4)
	goblin.Initiative = 3

	m.AddEntity(hero)
	m.AddEntity(goblin)

	m.SetCombatActive(true)

	if front := m.Current(); front != goblin {
		t.Fatalf("expected lower-initiative goblin (3) at queue front ahead of hero (5), got %v", front)
	}
}

func TestNextRotatesToActiveEntityAndRefreshesAP(t *testing.T) {
	m := NewManager()
	party := &fakeParty{}
	m.Party = party

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	hero.Initiative = 10
	m.AddEntity(hero)
	m.SetCombatActive(true)

	hero.ActionPoints = 0
	m.Next()

	if m.Current() != hero {
		t.Fatalf("expected hero to have the active turn")
	}
	if hero.ActionPoints != hero.MaxActionPoints {
		t.Fatalf("expected Next to refresh action points, got %d", hero.ActionPoints)
	}
	if party.selected != hero {
		t.Fatalf("expected party selection to follow the active party member")
	}
}

func TestEndCombatClearsAIAndRefreshesPartyAP(t *testing.T) {
	m := NewManager()
	vis := newFakeVisibility()
	m.Visibility = vis

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	goblin := world.NewEntity("goblin", "Goblin", world.Hostile, 4)
	vis.present[hero.ID], vis.present[goblin.ID] = true, true
	vis.seen[[2]string{hero.ID, goblin.ID}] = true

	m.AddEntity(hero)
	m.AddEntity(goblin)
	m.CheckAIActivation(hero)

	if !m.IsCombatActive() {
		t.Fatalf("expected combat active precondition")
	}

	m.SetCombatActive(false)

	if goblin.IsAIActive() {
		t.Fatalf("expected AI active flag cleared on combat end")
	}
	if hero.ActionPoints != hero.MaxActionPoints {
		t.Fatalf("expected party member action points refreshed on combat end")
	}
}

func TestRemoveEntityEndsCombatWhenNoHostileAIRemains(t *testing.T) {
	m := NewManager()
	vis := newFakeVisibility()
	m.Visibility = vis

	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	hero.PartyMember = true
	goblin := world.NewEntity("goblin", "Goblin", world.Hostile, 4)
	vis.present[hero.ID], vis.present[goblin.ID] = true, true
	vis.seen[[2]string{hero.ID, goblin.ID}] = true

	m.AddEntity(hero)
	m.AddEntity(goblin)
	m.CheckAIActivation(hero)

	goblin.MarkedForRemoval = true
	m.Update(1000)

	if m.IsCombatActive() {
		t.Fatalf("expected combat to end once the only hostile AI-active entity is removed")
	}
}

func TestUpdateOutOfCombatExpiresEffectsByWallClock(t *testing.T) {
	m := NewManager()
	eff := world.NewEffect("poison", 1000)
	m.AddEffect(eff)

	m.Update(500)
	if eff.IsRemoval() {
		t.Fatalf("effect should not yet be expired")
	}

	m.Update(1500)
	if !eff.IsRemoval() {
		t.Fatalf("expected effect to expire once elapsed time reaches its duration")
	}
}

func TestSetCombatActiveTwiceIsNoOp(t *testing.T) {
	m := NewManager()
	hero := world.NewEntity("hero", "Hero", world.Friendly, 4)
	m.AddEntity(hero)

	m.SetCombatActive(true)
	hero.ActionPoints = 1
	m.SetCombatActive(true) // should not re-run initiateCombat and reset AP to 0 via EndTurn
	if hero.ActionPoints != 1 {
		t.Fatalf("expected setting combat active twice to be a no-op, AP changed to %d", hero.ActionPoints)
	}
}
