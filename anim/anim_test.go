package anim

import (
	"testing"

	"github.com/ashfall-tactics/tactica/pathfind"
	"github.com/ashfall-tactics/tactica/world"
)

func TestWaitBlocksUntilDurationElapsed(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	a := NewWait(owner, 1000)
	state.Update([]*Anim{a}, 0)

	if !state.HasBlockingAnims(owner) {
		t.Fatalf("expected wait to block immediately")
	}

	state.Update(nil, 500)
	if state.Len() != 1 {
		t.Fatalf("expected wait to still be live at 500ms of 1000ms")
	}

	state.Update(nil, 600)
	if state.Len() != 0 {
		t.Fatalf("expected wait to be removed once duration exceeded")
	}
}

func TestEntityColorTweenIsNonBlockingAndWritesColor(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	red := NewParamWithSpeed(1, -0.5)
	a := NewEntityColor(owner, 2000, [4]*Param{red, nil, nil, nil})
	state.Update([]*Anim{a}, 0)

	if state.HasBlockingAnims(owner) {
		t.Fatalf("colour tween must not block input")
	}

	state.Update(nil, 1000)
	if owner.DrawColor[0] >= 1 {
		t.Fatalf("expected red channel to decrease, got %v", owner.DrawColor[0])
	}
}

func TestMoveAnimationAdvancesAlongPathAndSnapsOnCleanup(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	owner.X, owner.Y = 0, 0
	state := NewAnimState()

	path := []pathfind.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	a := NewMove(owner, path, 100)
	state.Update([]*Anim{a}, 0)

	state.Update(nil, 150)
	if owner.X != 1 {
		t.Fatalf("expected owner at x=1 after 150ms of a 100ms/tile move, got x=%d", owner.X)
	}

	state.Update(nil, 200)
	if owner.X != 2 || owner.SubX != 0 {
		t.Fatalf("expected move to finish at final cell with no sub-pixel offset, got x=%d subx=%v", owner.X, owner.SubX)
	}
	if state.Len() != 0 {
		t.Fatalf("expected finished move to be removed")
	}
}

func TestAttackAnimationFiresOnHitAtHitFraction(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	hit := false
	a := NewMeleeAttack(owner, 1000, 0.5, func() { hit = true })
	state.Update([]*Anim{a}, 0)

	state.Update(nil, 400)
	if hit {
		t.Fatalf("onHit fired before reaching hit fraction")
	}

	state.Update(nil, 200)
	if !hit || !owner.HasAttacked {
		t.Fatalf("expected onHit to fire once progress passed the hit fraction")
	}

	state.Update(nil, 500)
	if state.Len() != 0 {
		t.Fatalf("expected attack to be removed once it has attacked and duration elapsed")
	}
}

func TestAnimMarkedForRemovalViaEffectListener(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	effect := world.NewEffect("burning", 5000)
	a := NewWait(owner, 5000)
	a.AddRemovalListener(effect)
	state.Update([]*Anim{a}, 0)

	effect.Remove()
	state.Update(nil, 10)

	if state.Len() != 0 {
		t.Fatalf("expected animation to be removed once its effect was removed")
	}
}

func TestUpdateCallbackFiresOnceAndOnlyOnce(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	fired := 0
	a := NewWait(owner, 1000)
	a.AddUpdateCallback(300, func() { fired++ })
	state.Update([]*Anim{a}, 0)

	state.Update(nil, 200)
	if fired != 0 {
		t.Fatalf("callback fired too early")
	}

	state.Update(nil, 200)
	if fired != 1 {
		t.Fatalf("expected callback to fire once at 400ms elapsed, got %d", fired)
	}

	state.Update(nil, 500)
	if fired != 1 {
		t.Fatalf("callback fired more than once")
	}
}

func TestUnfiredUpdateCallbackRunsOnCancellation(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	fired := false
	completed := false
	a := NewWait(owner, 5000)
	a.AddUpdateCallback(4000, func() { fired = true })
	a.AddCompletionCallback(func() { completed = true })
	state.Update([]*Anim{a}, 0)

	a.MarkForRemoval()
	state.Update(nil, 10)

	if !fired {
		t.Fatalf("expected an un-fired update callback to run when the animation is cancelled")
	}
	if !completed {
		t.Fatalf("expected the completion callback to run on removal")
	}
}

func TestClearBlockingAnimsOnlyAffectsOwner(t *testing.T) {
	a1 := world.NewEntity("e1", "Hero", world.Friendly, 4)
	a2 := world.NewEntity("e2", "Villain", world.Hostile, 4)
	state := NewAnimState()

	state.Update([]*Anim{NewWait(a1, 5000), NewWait(a2, 5000)}, 0)
	state.ClearBlockingAnims(a1)
	state.Update(nil, 0)

	if state.HasBlockingAnims(a1) {
		t.Fatalf("expected a1's blocking anim to be cleared")
	}
	if !state.HasBlockingAnims(a2) {
		t.Fatalf("expected a2's blocking anim to remain")
	}
}

func TestParticleGeneratorIsNonBlockingAndSpawnsOverTime(t *testing.T) {
	owner := world.NewEntity("e1", "Hero", world.Friendly, 4)
	state := NewAnimState()

	model := NewGeneratorModel(2, 0, 0)
	model.GenRate = NewParamFixed(10) // 10 particles/sec
	a := NewParticleGenerator(owner, model)
	state.Update([]*Anim{a}, 0)

	if state.HasBlockingAnims(owner) {
		t.Fatalf("particle generator must not block input")
	}

	kind := a.kind.(*particleGeneratorKind)
	state.Update(nil, 500) // half a second at 10/sec -> ~5 particles
	if len(kind.particles) == 0 {
		t.Fatalf("expected particles to have spawned")
	}
}
