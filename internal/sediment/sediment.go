// Package sediment models the slow axis of the field: the immediate
// slope zeta tracks what the operators do right now, while zeta
// prime integrates a fraction of it over time and keeps it. The
// shiver passes; the sediment stays.
package sediment

import "math"

const (
	// Immediate slope: clarity times oscillation.
	immediateGain = 2.0

	// Fraction of the immediate slope that settles into the deep
	// layer per unit time, plus the direct deep-operator feed.
	sedimentationRate = 0.15
	deepGain          = 0.3

	// Planar evolution: warmth drives X, depth drives Y more slowly.
	depthRate = 0.5

	coherenceGain = 0.1
)

// Position is a location in the four-axis sediment space.
type Position struct {
	X         float64
	Y         float64
	Zeta      float64
	ZetaPrime float64
}

// ImmediateMagnitude is the distance in the fast axes (X, Y, zeta).
func (p Position) ImmediateMagnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Zeta*p.Zeta)
}

// TotalMagnitude is the distance across all four axes.
func (p Position) TotalMagnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Zeta*p.Zeta + p.ZetaPrime*p.ZetaPrime)
}

// Inputs are the operator activations driving one evolution step.
type Inputs struct {
	Parabrill float64
	Parascint float64
	Paracava  float64
	Paraflu   float64
	Paralum   float64
}

// Curvature describes how the space bends around a position rather
// than the position itself.
type Curvature struct {
	Center          Position
	RadiusXY        float64
	RadiusZeta      float64
	RadiusZetaPrime float64
	Coherence       float64
}

// ImmediateSlope computes zeta from the fast operators.
func ImmediateSlope(parabrill, parascint float64) float64 {
	return parabrill * parascint * immediateGain
}

// AccumulatedSlope computes the deep contribution from the slow
// operators, scaled by the deep pattern weight.
func AccumulatedSlope(paracava, paraflu, pattern float64) float64 {
	return (paracava + paraflu) / 2.0 * pattern
}

// Tracker owns an append-only line of positions and the coherence
// they accumulate.
type Tracker struct {
	positions  []Position
	curvatures []Curvature
	coherence  float64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Evolve advances a position over one time step. Zeta is recomputed
// from the fast operators, while zeta prime keeps its value and
// grows by sedimentation from the current zeta plus the deep feed.
func (t *Tracker) Evolve(current Position, in Inputs, timeStep float64) Position {
	next := Position{
		X:    current.X + in.Paralum*timeStep,
		Y:    current.Y + in.Paracava*timeStep*depthRate,
		Zeta: ImmediateSlope(in.Parabrill, in.Parascint),
		ZetaPrime: current.ZetaPrime +
			current.Zeta*sedimentationRate*timeStep +
			AccumulatedSlope(in.Paracava, in.Paraflu, 1.0)*timeStep*deepGain,
	}
	t.positions = append(t.positions, next)
	return next
}

// Record creates a curvature around a position and adds its
// coherence to the tracker's running total. Coherence compares the
// accumulated axis against the immediate one, capped at unity.
func (t *Tracker) Record(position Position, intensity float64) Curvature {
	coherence := position.ZetaPrime / math.Max(0.1, position.Zeta)
	if coherence > 1 {
		coherence = 1
	}

	curvature := Curvature{
		Center:          position,
		RadiusXY:        1.0 + intensity,
		RadiusZeta:      0.5 + position.Zeta*0.3,
		RadiusZetaPrime: 0.3 + position.ZetaPrime*0.5,
		Coherence:       coherence,
	}
	t.curvatures = append(t.curvatures, curvature)
	t.coherence += coherence * coherenceGain
	return curvature
}

// TotalCoherence is the coherence accumulated across all recorded
// curvatures.
func (t *Tracker) TotalCoherence() float64 {
	return t.coherence
}

// History returns a copy of every evolved position.
func (t *Tracker) History() []Position {
	out := make([]Position, len(t.positions))
	copy(out, t.positions)
	return out
}
