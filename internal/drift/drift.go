// Package drift integrates the recognition-driven field: triads feed
// curvature and self-similarity, whose changes steer a vectorial
// drift estimate that in turn advances the planar position.
package drift

import "zetafield/internal/field"

const (
	// Curvature contribution per triad, amplified by label diversity.
	baseZetaGain  = 0.3
	diversityGain = 0.2

	// Self-similarity looks back over this many prior triads and is
	// smoothed so new evidence lands with diminishing returns.
	recognitionWindow = 3
	zetaPrimeRetain   = 0.9
	zetaPrimeGain     = 0.3

	// Drift response: curvature change rotates, self-similarity
	// change scales, and the current scalars nudge the vector.
	rotationGain      = 0.5
	scaleGain         = 0.3
	positionInfluence = 0.1

	// Planar advance per step along the drift vector.
	stepSize = 0.2
)

// seedDrift points along positive X before any history exists.
var seedDrift = field.Vec2{X: 0.1, Y: 0}

// Position is the full field state after one step.
type Position struct {
	X         float64
	Y         float64
	Zeta      float64
	ZetaPrime float64
	Drift     field.Vec2
}

// Integrator owns an append-only history of triads and positions.
// Histories grow without bound; the model targets short runs and
// only ever reads a fixed-size suffix.
type Integrator struct {
	current   Position
	positions []Position
	triads    []field.Triad
}

func NewIntegrator() *Integrator {
	return &Integrator{}
}

// Step feeds one triad into the field and returns the new position.
func (it *Integrator) Step(triad field.Triad) Position {
	prior := it.triads
	it.triads = append(it.triads, triad)

	zeta := it.current.Zeta + zetaFromTriad(triad)
	zetaPrime := it.current.ZetaPrime*zetaPrimeRetain + recognition(triad, prior)*zetaPrimeGain

	var drift field.Vec2
	if len(it.positions) == 0 {
		drift = seedDrift
	} else {
		rotation := rotationGain * (zeta - it.current.Zeta)
		scale := 1.0 + scaleGain*(zetaPrime-it.current.ZetaPrime)
		drift = it.current.Drift.Rotate(rotation).Scale(scale).Add(field.Vec2{
			X: positionInfluence * zeta,
			Y: positionInfluence * zetaPrime,
		})
	}

	next := Position{
		X:         it.current.X + drift.X*stepSize,
		Y:         it.current.Y + drift.Y*stepSize,
		Zeta:      zeta,
		ZetaPrime: zetaPrime,
		Drift:     drift,
	}

	it.positions = append(it.positions, next)
	it.current = next
	return next
}

// Current is the latest position, zero before any step.
func (it *Integrator) Current() Position {
	return it.current
}

// History returns a copy of every position produced so far.
func (it *Integrator) History() []Position {
	out := make([]Position, len(it.positions))
	copy(out, it.positions)
	return out
}

// Steps is the number of triads processed.
func (it *Integrator) Steps() int {
	return len(it.triads)
}

// zetaFromTriad is the curvature added by one triad: a base gain,
// amplified by label diversity for full-length triads.
func zetaFromTriad(triad field.Triad) float64 {
	if len(triad.Elements) < 3 {
		return baseZetaGain
	}
	return baseZetaGain * (1 + float64(triad.UniqueCount())*diversityGain)
}

// recognition is the raw self-similarity evidence: mean closeness of
// the triad to the most recent prior triads, zero with no history.
func recognition(triad field.Triad, prior []field.Triad) float64 {
	if len(prior) == 0 {
		return 0.0
	}
	start := len(prior) - recognitionWindow
	if start < 0 {
		start = 0
	}
	window := prior[start:]

	total := 0.0
	for _, prev := range window {
		total += 1.0 - triad.Deviation(prev)
	}
	return total / float64(len(window))
}
