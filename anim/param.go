// Package anim runs per-entity timed behaviours — waits, colour and
// sub-position tweens, melee/ranged attack swings, path moves, and
// particle generators — advancing them each frame and firing their
// completion and mid-way callbacks.
package anim

// Param is a cubic-in-elapsed-seconds value: position, velocity,
// acceleration, and jerk terms combine into a single scalar. It drives
// every tweened quantity in this package (colour channels, sub-pixel
// offset, particle position, particle generation rate).
//
//	value = initial_value + dt*v_term + d2t*a_term + d3t*j_term
//
// where v_term/a_term/j_term are elapsed-seconds raised to the 1st/2nd/3rd
// power, computed once per frame by CubicTerms and shared across every
// Param an animation owns.
type Param struct {
	InitialValue float32
	Dt           float32
	D2t          float32
	D3t          float32
	Value        float32
}

// NewParamFixed builds a constant Param: it never changes under Update.
func NewParamFixed(value float32) *Param {
	return &Param{InitialValue: value, Value: value}
}

// NewParamWithSpeed builds a Param with a linear (velocity-only) term.
func NewParamWithSpeed(value, speed float32) *Param {
	return &Param{InitialValue: value, Value: value, Dt: speed}
}

// NewParamWithAccel builds a Param with velocity and acceleration terms.
func NewParamWithAccel(value, speed, accel float32) *Param {
	return &Param{InitialValue: value, Value: value, Dt: speed, D2t: accel}
}

// NewParamWithJerk builds a Param with velocity, acceleration, and jerk
// terms — the fully general cubic.
func NewParamWithJerk(value, speed, accel, jerk float32) *Param {
	return &Param{InitialValue: value, Value: value, Dt: speed, D2t: accel, D3t: jerk}
}

// Update recomputes Value from the shared cubic terms. vTerm/aTerm/jTerm
// come from CubicTerms, evaluated once per frame against the owning
// animation's elapsed time so every Param it holds stays in lockstep.
func (p *Param) Update(vTerm, aTerm, jTerm float32) {
	p.Value = p.InitialValue + p.Dt*vTerm + p.D2t*aTerm + p.D3t*jTerm
}

// CubicTerms returns the (v, v^2, v^3) terms for an elapsed-seconds value,
// the shared input every Param.Update call in a frame uses.
func CubicTerms(elapsedSecs float32) (vTerm, aTerm, jTerm float32) {
	vTerm = elapsedSecs
	aTerm = vTerm * vTerm
	jTerm = aTerm * vTerm
	return
}
