package anim

import (
	"sort"

	"github.com/ashfall-tactics/tactica/pathfind"
	"github.com/ashfall-tactics/tactica/world"
)

// infiniteMillis marks an animation with no fixed duration (a particle
// generator normally runs until its owning effect removes it).
const infiniteMillis = -1

// animKind is the per-variant behaviour an Anim dispatches to: advancing
// its own state, reporting whether it blocks input, deciding whether it
// is safe to remove once its nominal duration has elapsed, and any final
// cleanup when it is actually removed.
type animKind interface {
	updateKind(owner *world.Entity, elapsedSecs float32)
	isBlocking() bool
	okToRemove() bool
	cleanupKind(owner *world.Entity)
}

// timedCallback is one entry of an Anim's sorted update-callback list.
type timedCallback struct {
	millis int
	fn     func()
}

// Anim is a single timed, per-entity behaviour: a wait, a colour or
// sub-position tween, an attack swing, a path move, or a particle
// generator. Its bookkeeping (elapsed time, callbacks, the
// marked-for-removal flag) is shared across every kind; the kind-specific
// behaviour is dispatched through animKind.
type Anim struct {
	kind  animKind
	owner *world.Entity

	elapsedMillis  int
	durationMillis int // infiniteMillis for unbounded

	markedForRemoval bool

	completionCallbacks []func()
	updateCallbacks     []timedCallback
}

func newAnim(owner *world.Entity, durationMillis int, kind animKind) *Anim {
	return &Anim{owner: owner, durationMillis: durationMillis, kind: kind}
}

// NewWait builds a pure blocking wait of durationMillis.
func NewWait(owner *world.Entity, durationMillis int) *Anim {
	return newAnim(owner, durationMillis, &waitKind{})
}

// NewEntityColor builds a four-channel colour tween (RGBA) applied to the
// owner's draw colour over durationMillis (pass infiniteMillis for an
// unbounded tween, e.g. one cancelled externally).
func NewEntityColor(owner *world.Entity, durationMillis int, color [4]*Param) *Anim {
	return newAnim(owner, durationMillis, &entityColorKind{color: color})
}

// NewEntitySubpos builds a two-Param sub-pixel offset tween applied to
// the owner's SubX/SubY.
func NewEntitySubpos(owner *world.Entity, durationMillis int, x, y *Param) *Anim {
	return newAnim(owner, durationMillis, &entitySubposKind{x: x, y: y})
}

// NewMeleeAttack builds a melee swing that calls onHit once progress
// crosses hitFraction (e.g. 0.5, the moment of impact in the swing).
func NewMeleeAttack(owner *world.Entity, durationMillis int, hitFraction float32, onHit func()) *Anim {
	return newAnim(owner, durationMillis, &attackKind{
		progress:    newFractionTween(float32(durationMillis) / 1000),
		hitFraction: hitFraction,
		onHit:       onHit,
	})
}

// NewRangedAttack builds a projectile animation; like a melee attack it
// resolves at hitFraction, but draws above entities while in flight.
func NewRangedAttack(owner *world.Entity, durationMillis int, hitFraction float32, onHit func()) *Anim {
	return newAnim(owner, durationMillis, &attackKind{
		progress:    newFractionTween(float32(durationMillis) / 1000),
		hitFraction: hitFraction,
		onHit:       onHit,
		ranged:      true,
	})
}

// NewMove builds a path-follow animation: on each tick it advances the
// path index by elapsed/perTileMillis and writes the owner's integer
// location plus a sub-pixel remainder for in-between frames. Cleanup
// snaps the owner exactly onto the path's final cell.
func NewMove(owner *world.Entity, path []pathfind.Point, perTileMillis int) *Anim {
	total := perTileMillis * (len(path) - 1)
	if total < 0 {
		total = 0
	}
	return newAnim(owner, total, &moveKind{path: path, perTileMillis: perTileMillis, frameIndex: -1})
}

// NewParticleGenerator builds a particle-emitting animation, running
// until marked for removal (normally by its originating effect expiring)
// unless model.DurationSecs is positive, in which case it stops on its
// own after that many seconds.
func NewParticleGenerator(owner *world.Entity, model *GeneratorModel) *Anim {
	duration := infiniteMillis
	if model.DurationSecs > 0 {
		duration = int(model.DurationSecs * 1000)
	}
	return newAnim(owner, duration, &particleGeneratorKind{model: model})
}

// Owner returns the entity this animation is attached to.
func (a *Anim) Owner() *world.Entity { return a.owner }

// IsBlocking reports whether this animation should gate player input.
func (a *Anim) IsBlocking() bool { return a.kind.isBlocking() }

// MarkForRemoval cancels the animation; the next Update call removes it.
func (a *Anim) MarkForRemoval() { a.markedForRemoval = true }

// AddRemovalListener wires this animation's cancel flag to effect's
// removal-listener list, so when the effect expires the animation stops
// on its next tick even though the two engines otherwise don't know
// about each other.
func (a *Anim) AddRemovalListener(effect *world.Effect) {
	effect.AddRemovalListener(func(*world.Effect) {
		a.markedForRemoval = true
	})
}

// AddCompletionCallback registers fn to run once, when the animation is
// finally removed (whether it ran to completion or was cancelled).
func (a *Anim) AddCompletionCallback(fn func()) {
	a.completionCallbacks = append(a.completionCallbacks, fn)
}

// AddUpdateCallback registers fn to fire once elapsed time passes
// timeMillis. Callbacks fire in ascending time order; any that never
// fired by the time the animation is removed fire then, alongside the
// completion callbacks, so "the callback will run" holds even for a
// cancelled animation.
func (a *Anim) AddUpdateCallback(timeMillis int, fn func()) {
	a.updateCallbacks = append(a.updateCallbacks, timedCallback{millis: timeMillis, fn: fn})
	sort.SliceStable(a.updateCallbacks, func(i, j int) bool {
		return a.updateCallbacks[i].millis < a.updateCallbacks[j].millis
	})
}

// update advances the animation by deltaMillis and reports whether it
// should be retained. The caller (AnimState) is responsible for running
// cleanup and completion callbacks once retain is false.
func (a *Anim) update(deltaMillis int) bool {
	a.elapsedMillis += deltaMillis
	elapsedSecs := float32(a.elapsedMillis) / 1000

	a.kind.updateKind(a.owner, elapsedSecs)

	for len(a.updateCallbacks) > 0 && a.elapsedMillis > a.updateCallbacks[0].millis {
		a.updateCallbacks[0].fn()
		a.updateCallbacks = a.updateCallbacks[1:]
	}

	durationExceeded := a.durationMillis != infiniteMillis && a.elapsedMillis > a.durationMillis
	if (durationExceeded && a.kind.okToRemove()) || a.markedForRemoval {
		return false
	}
	return true
}

// runCompletionCallbacks fires any callbacks that never fired during
// normal updates, then the completion callbacks, in that order.
func (a *Anim) runCompletionCallbacks() {
	for _, cb := range a.updateCallbacks {
		cb.fn()
	}
	a.updateCallbacks = nil

	for _, fn := range a.completionCallbacks {
		fn()
	}
	a.completionCallbacks = nil
}

// AnimState partitions live animations into three draw-order buckets so
// the renderer can draw below-entity anims, then entities, then
// above-entity anims (projectiles, particles) in the right order.
type AnimState struct {
	noDraw []*Anim
	below  []*Anim
	above  []*Anim
}

// NewAnimState builds an empty AnimState.
func NewAnimState() *AnimState {
	return &AnimState{}
}

// Clear drops every live animation without running cleanup or
// completion callbacks — used on area unload.
func (s *AnimState) Clear() {
	s.noDraw = nil
	s.below = nil
	s.above = nil
}

// Update routes newly-created animations into their draw bucket, then
// advances every live animation by deltaMillis, removing (and cleaning
// up) any that report they're done.
func (s *AnimState) Update(toAdd []*Anim, deltaMillis int) {
	for _, a := range toAdd {
		switch a.kind.(type) {
		case *attackKind:
			if a.kind.(*attackKind).ranged {
				s.above = append(s.above, a)
				continue
			}
			s.noDraw = append(s.noDraw, a)
		case *particleGeneratorKind:
			// TODO: support below-entity particle generators once a
			// use case needs particles rendered under the entity layer.
			s.above = append(s.above, a)
		default:
			s.noDraw = append(s.noDraw, a)
		}
	}

	s.noDraw = updateBucket(s.noDraw, deltaMillis)
	s.below = updateBucket(s.below, deltaMillis)
	s.above = updateBucket(s.above, deltaMillis)
}

func updateBucket(anims []*Anim, deltaMillis int) []*Anim {
	kept := anims[:0]
	for _, a := range anims {
		if a.update(deltaMillis) {
			kept = append(kept, a)
			continue
		}
		a.kind.cleanupKind(a.owner)
		a.runCompletionCallbacks()
	}
	return kept
}

// HasBlockingAnims reports whether entity owns any live blocking
// animation, across all three buckets.
func (s *AnimState) HasBlockingAnims(entity *world.Entity) bool {
	return hasBlockingIn(s.noDraw, entity) || hasBlockingIn(s.below, entity) || hasBlockingIn(s.above, entity)
}

func hasBlockingIn(anims []*Anim, entity *world.Entity) bool {
	for _, a := range anims {
		if a.IsBlocking() && a.owner == entity {
			return true
		}
	}
	return false
}

// ClearBlockingAnims marks every blocking animation owned by entity for
// removal — used when an entity dies mid-animation.
func (s *AnimState) ClearBlockingAnims(entity *world.Entity) {
	clearBlockingIn(s.noDraw, entity)
	clearBlockingIn(s.below, entity)
	clearBlockingIn(s.above, entity)
}

func clearBlockingIn(anims []*Anim, entity *world.Entity) {
	for _, a := range anims {
		if a.IsBlocking() && a.owner == entity {
			a.MarkForRemoval()
		}
	}
}

// ClearAllBlockingAnims marks every blocking animation in every bucket
// for removal, regardless of owner.
func (s *AnimState) ClearAllBlockingAnims() {
	for _, anims := range [][]*Anim{s.noDraw, s.below, s.above} {
		for _, a := range anims {
			if a.IsBlocking() {
				a.MarkForRemoval()
			}
		}
	}
}

// Len reports the total number of live animations across all buckets,
// mainly for tests.
func (s *AnimState) Len() int { return len(s.noDraw) + len(s.below) + len(s.above) }
