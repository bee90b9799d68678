package anim

import (
	"github.com/ashfall-tactics/tactica/pathfind"
	"github.com/ashfall-tactics/tactica/world"
)

// waitKind is a pure blocker for its nominal duration; it has no
// per-frame behaviour of its own.
type waitKind struct{}

func (k *waitKind) updateKind(*world.Entity, float32) {}
func (k *waitKind) isBlocking() bool                  { return true }
func (k *waitKind) okToRemove() bool                  { return true }
func (k *waitKind) cleanupKind(*world.Entity)         {}

// entityColorKind tweens the owner's draw colour (RGBA) across four
// independent cubic Params, non-blocking so input isn't gated on a
// cosmetic flash.
type entityColorKind struct {
	color [4]*Param
}

func (k *entityColorKind) updateKind(owner *world.Entity, elapsedSecs float32) {
	v, a, j := CubicTerms(elapsedSecs)
	for i, p := range k.color {
		if p == nil {
			continue
		}
		p.Update(v, a, j)
		owner.DrawColor[i] = p.Value
	}
}

func (k *entityColorKind) isBlocking() bool { return false }
func (k *entityColorKind) okToRemove() bool { return true }

func (k *entityColorKind) cleanupKind(owner *world.Entity) {
	owner.DrawColor = [4]float32{1, 1, 1, 1}
}

// entitySubposKind tweens the owner's sub-pixel draw offset, blocking
// since it represents genuine in-progress motion (a knockback, a lean).
type entitySubposKind struct {
	x, y *Param
}

func (k *entitySubposKind) updateKind(owner *world.Entity, elapsedSecs float32) {
	v, a, j := CubicTerms(elapsedSecs)
	k.x.Update(v, a, j)
	k.y.Update(v, a, j)
	owner.SubX = k.x.Value
	owner.SubY = k.y.Value
}

func (k *entitySubposKind) isBlocking() bool { return true }
func (k *entitySubposKind) okToRemove() bool { return true }

func (k *entitySubposKind) cleanupKind(owner *world.Entity) {
	owner.SubX = 0
	owner.SubY = 0
}

// attackKind models both melee swings and ranged projectiles: a
// [0,1] progress fraction of the swing/flight, firing onHit once
// progress crosses hitFraction. ranged distinguishes the two only for
// draw-bucket routing (ranged draws above entities as a projectile in
// flight); the update/blocking/removal behaviour is identical.
type attackKind struct {
	progress    *fractionTween
	prevElapsed float32
	hitFraction float32
	onHit       func()
	hit         bool
	ranged      bool
}

func (k *attackKind) updateKind(owner *world.Entity, elapsedSecs float32) {
	dt := elapsedSecs - k.prevElapsed
	k.prevElapsed = elapsedSecs
	k.progress.Update(dt)

	if !k.hit && k.progress.Value() >= k.hitFraction {
		k.hit = true
		owner.HasAttacked = true
		if k.onHit != nil {
			k.onHit()
		}
	}
}

func (k *attackKind) isBlocking() bool { return true }
func (k *attackKind) okToRemove() bool { return k.hit }

func (k *attackKind) cleanupKind(owner *world.Entity) {}

// moveKind consumes a pre-computed path: each tick it advances the path
// index by elapsed/perTileMillis, writing the owner's integer cell plus
// a sub-pixel remainder for the in-between frame. Cleanup snaps the
// owner exactly onto the final cell, clearing any leftover sub-pixel
// offset from rounding.
type moveKind struct {
	path          []pathfind.Point
	perTileMillis int
	frameIndex    int // index into path of the last fully-reached cell
}

func (k *moveKind) updateKind(owner *world.Entity, elapsedSecs float32) {
	if len(k.path) == 0 || k.perTileMillis <= 0 {
		return
	}
	elapsedMillis := elapsedSecs * 1000
	exact := elapsedMillis / float32(k.perTileMillis)

	index := int(exact)
	if index > len(k.path)-1 {
		index = len(k.path) - 1
	}
	k.frameIndex = index

	cur := k.path[index]
	owner.X, owner.Y = cur.X, cur.Y

	if index < len(k.path)-1 {
		frac := exact - float32(index)
		next := k.path[index+1]
		owner.SubX = float32(next.X-cur.X) * frac
		owner.SubY = float32(next.Y-cur.Y) * frac
	} else {
		owner.SubX, owner.SubY = 0, 0
	}
}

func (k *moveKind) isBlocking() bool { return true }
func (k *moveKind) okToRemove() bool { return k.frameIndex == len(k.path)-1 }

func (k *moveKind) cleanupKind(owner *world.Entity) {
	if len(k.path) == 0 {
		return
	}
	last := k.path[len(k.path)-1]
	owner.X, owner.Y = last.X, last.Y
	owner.SubX, owner.SubY = 0, 0
}
