package anim

import (
	"math"
	"math/rand"

	"github.com/ashfall-tactics/tactica/world"
)

// Dist is a scalar random distribution particles sample from when a
// generator model specifies per-particle position/duration/size
// variance. A Fixed dist with Min==Max generates exactly Min every time.
type Dist struct {
	Min, Max float32
}

// FixedDist returns a Dist that always generates value.
func FixedDist(value float32) Dist { return Dist{Min: value, Max: value} }

// UniformDist returns a Dist sampling uniformly between min and max.
func UniformDist(min, max float32) Dist { return Dist{Min: min, Max: max} }

// Generate samples the distribution once.
func (d Dist) Generate() float32 {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.Float32()*(d.Max-d.Min)
}

// AngularDist samples a direction/magnitude pair and resolves it to
// cartesian (x, y) components, for distributions authored as an angle
// plus a radial distance rather than independent x/y ranges.
type AngularDist struct {
	AngleMin, AngleMax         float32
	MagnitudeMin, MagnitudeMax float32
}

// Generate samples an angle and magnitude and converts to cartesian.
func (d AngularDist) Generate() (x, y float32) {
	angle := d.AngleMin
	if d.AngleMax > d.AngleMin {
		angle = d.AngleMin + rand.Float32()*(d.AngleMax-d.AngleMin)
	}
	mag := d.MagnitudeMin
	if d.MagnitudeMax > d.MagnitudeMin {
		mag = d.MagnitudeMin + rand.Float32()*(d.MagnitudeMax-d.MagnitudeMin)
	}
	return mag * float32(math.Cos(float64(angle))), mag * float32(math.Sin(float64(angle)))
}

// PositionDist offsets the initial value of a spawned particle's
// position Params, either as independent x/y ranges or as a single
// angular distribution applied to both. Velocity, acceleration and jerk
// are not perturbed.
type PositionDist struct {
	X, Y    *Dist
	Angular *AngularDist
}

// GeneratorModel is the authored configuration of a particle generator:
// where it spawns particles, how fast, and for how long. Each particle
// starts from the PositionX/PositionY Params; the Red/Green/Blue/Alpha
// Params tint the generator's owner and are not carried by particles.
type GeneratorModel struct {
	PositionX, PositionY    *Param
	Red, Green, Blue, Alpha *Param

	MovesWithParent bool
	DurationSecs    float32

	// GenRate is itself a Param (not a constant): the spawn rate can
	// ramp up or down over the generator's lifetime.
	GenRate *Param

	InitialOverflow float32

	ParticlePositionDist *PositionDist
	ParticleDurationDist *Dist
	ParticleSizeDist     *[2]Dist // width, height
}

// NewGeneratorModel builds a model that spawns at a fixed (x, y) with no
// colour tween and a zero generation rate, for the caller to configure
// further before use.
func NewGeneratorModel(durationSecs, x, y float32) *GeneratorModel {
	return &GeneratorModel{
		DurationSecs: durationSecs,
		PositionX:    NewParamFixed(x),
		PositionY:    NewParamFixed(y),
		Red:          NewParamFixed(1),
		Green:        NewParamFixed(1),
		Blue:         NewParamFixed(1),
		Alpha:        NewParamFixed(1),
		GenRate:      NewParamFixed(0),
	}
}

// particle is one spawned, independently-aging point: its own
// position Params (inheriting the generator's current position plus any
// random offset) and a fixed lifetime.
type particle struct {
	x, y                   *Param
	totalDuration, current float32
	width, height          float32
}

// update advances the particle's age and position Params by frameTime
// seconds and reports whether its lifetime has elapsed.
func (p *particle) update(frameTimeSecs float32) bool {
	p.current += frameTimeSecs
	v, a, j := CubicTerms(p.current)
	p.x.Update(v, a, j)
	p.y.Update(v, a, j)
	return p.current > p.totalDuration
}

// particleGeneratorKind spawns particles at model.GenRate per second,
// carrying a running fractional accumulator (gen_overflow) so a
// sub-one-per-frame rate still spawns particles at the right long-run
// average instead of truncating to zero every frame. Non-blocking: it
// never gates player input.
type particleGeneratorKind struct {
	model       *GeneratorModel
	particles   []*particle
	genOverflow float32
	prevElapsed float32
	initialized bool
}

func (k *particleGeneratorKind) updateKind(owner *world.Entity, elapsedSecs float32) {
	if !k.initialized {
		k.genOverflow = k.model.InitialOverflow
		k.initialized = true
	}

	frameTime := elapsedSecs - k.prevElapsed
	k.prevElapsed = elapsedSecs

	numToGen := k.model.GenRate.Value*frameTime + k.genOverflow
	whole := float32(math.Trunc(float64(numToGen)))
	k.genOverflow = numToGen - whole

	for i := 0; i < int(whole); i++ {
		k.particles = append(k.particles, k.generateParticle())
	}

	v, a, j := CubicTerms(elapsedSecs)
	k.model.GenRate.Update(v, a, j)
	k.model.PositionX.Update(v, a, j)
	k.model.PositionY.Update(v, a, j)
	k.model.Red.Update(v, a, j)
	k.model.Green.Update(v, a, j)
	k.model.Blue.Update(v, a, j)
	k.model.Alpha.Update(v, a, j)

	owner.DrawColor[0] = k.model.Red.Value
	owner.DrawColor[1] = k.model.Green.Value
	owner.DrawColor[2] = k.model.Blue.Value
	owner.DrawColor[3] = k.model.Alpha.Value

	kept := k.particles[:0]
	for _, p := range k.particles {
		if !p.update(frameTime) {
			kept = append(kept, p)
		}
	}
	k.particles = kept
}

func (k *particleGeneratorKind) generateParticle() *particle {
	x := NewParamFixed(k.model.PositionX.Value)
	y := NewParamFixed(k.model.PositionY.Value)

	if dist := k.model.ParticlePositionDist; dist != nil {
		switch {
		case dist.Angular != nil:
			dx, dy := dist.Angular.Generate()
			x.InitialValue += dx
			y.InitialValue += dy
		case dist.X != nil || dist.Y != nil:
			if dist.X != nil {
				x.InitialValue += dist.X.Generate()
			}
			if dist.Y != nil {
				y.InitialValue += dist.Y.Generate()
			}
		}
	}

	total := k.model.DurationSecs
	if k.model.ParticleDurationDist != nil {
		total = k.model.ParticleDurationDist.Generate()
	}

	width, height := float32(1), float32(1)
	if k.model.ParticleSizeDist != nil {
		width = k.model.ParticleSizeDist[0].Generate()
		height = k.model.ParticleSizeDist[1].Generate()
	}

	return &particle{x: x, y: y, totalDuration: total, width: width, height: height}
}

func (k *particleGeneratorKind) isBlocking() bool { return false }
func (k *particleGeneratorKind) okToRemove() bool { return true }

func (k *particleGeneratorKind) cleanupKind(owner *world.Entity) {
	k.particles = nil
}
