package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// fractionTween tracks a single [0,1] progress value over a fixed
// duration, advanced each frame by a real elapsed-seconds delta. It
// wraps a *gween.Tween and exposes the same Update(dt)-returns-value
// shape phanxgames-willow's TweenGroup uses for driving a node's
// animated fields frame by frame. Melee/ranged attack swings use it for
// their "fraction of total duration" progress.
type fractionTween struct {
	tween *gween.Tween
	value float32
	done  bool
}

func newFractionTween(durationSecs float32) *fractionTween {
	if durationSecs <= 0 {
		return &fractionTween{value: 1, done: true}
	}
	return &fractionTween{tween: gween.New(0, 1, durationSecs, ease.Linear)}
}

// Update advances the tween by dtSecs and returns the new progress value.
func (f *fractionTween) Update(dtSecs float32) float32 {
	if f.done {
		return f.value
	}
	val, finished := f.tween.Update(dtSecs)
	f.value = val
	f.done = finished
	return val
}

func (f *fractionTween) Value() float32 { return f.value }
func (f *fractionTween) Done() bool     { return f.done }
