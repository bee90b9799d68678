package world

// Effect is a timed status applied to an entity or an area: a buff,
// debuff, or area hazard. DurationMillis < 0 means the effect never
// expires on its own (e.g. an equipment bonus removed by un-equipping).
//
// An effect owns a list of removal listeners, notified once when the
// effect is marked for removal. An animation registers one of these to
// learn its originating effect expired, so it can cancel itself even
// though the animation and effect engines don't otherwise know about
// each other.
type Effect struct {
	ID             string
	DurationMillis int

	elapsedMillis int
	removed       bool

	removalListeners []func(*Effect)
}

// NewEffect constructs an effect with the given duration. Pass a negative
// duration for a permanent effect.
func NewEffect(id string, durationMillis int) *Effect {
	return &Effect{ID: id, DurationMillis: durationMillis}
}

// Update advances the effect's elapsed time and marks it for removal once
// its duration has been reached.
func (e *Effect) Update(elapsedMillis int) {
	if e.removed || e.DurationMillis < 0 {
		return
	}
	e.elapsedMillis += elapsedMillis
	if e.elapsedMillis >= e.DurationMillis {
		e.markRemoved()
	}
}

// IsRemoval reports whether the effect's duration has elapsed.
func (e *Effect) IsRemoval() bool { return e.removed }

// Elapsed returns the milliseconds this effect has been active, for
// computing its remaining duration when writing a save record.
func (e *Effect) Elapsed() int { return e.elapsedMillis }

// AddRemovalListener registers fn to run once, the moment this effect is
// marked for removal (by duration expiry or an external Remove call).
func (e *Effect) AddRemovalListener(fn func(*Effect)) {
	e.removalListeners = append(e.removalListeners, fn)
}

// Remove marks the effect for removal immediately, notifying listeners,
// regardless of remaining duration.
func (e *Effect) Remove() { e.markRemoved() }

func (e *Effect) markRemoved() {
	if e.removed {
		return
	}
	e.removed = true
	for _, listener := range e.removalListeners {
		listener(e)
	}
}
