// Package spiral models the gradient-driven helix: three fixed
// operator couplings tilt the field, and integrating any of them
// accumulates a curvature altitude that never comes back down.
package spiral

import "zetafield/internal/field"

// Kind names one of the three unlocked gradients. The set is closed
// and exhaustively handled wherever gradients are consumed.
type Kind int

const (
	// Vertical couples warmth into the curvature axis: X tilts
	// toward zeta, an elastic lifting of the field.
	Vertical Kind = iota
	// Lateral couples depth into the curvature axis: a viscous,
	// continuous sideways slide.
	Lateral
	// Diagonal couples warmth and depth together. In the reference
	// model it arises only once the spiral is saturated; that
	// precondition is an assumption here, not a guard.
	Diagonal
)

func (k Kind) String() string {
	switch k {
	case Vertical:
		return "vertical"
	case Lateral:
		return "lateral"
	case Diagonal:
		return "diagonal"
	default:
		return "unknown"
	}
}

// Direction is the fixed unit-like axis triple (x, y, zeta) the
// gradient pushes along.
func (k Kind) Direction() (x, y, zeta float64) {
	switch k {
	case Vertical:
		return 1, 0, 1
	case Lateral:
		return 0, 1, 1
	default:
		return 1, 1, 1
	}
}

// Gradient is one computed coupling: its kind, the operator weights
// that produced it, and the resulting magnitude.
type Gradient struct {
	Kind      Kind
	Operators field.OperatorWeights
	Magnitude float64
}

// VerticalGradient couples paralum, paraflu and paralux into the
// curvature axis.
func VerticalGradient(paralum, paraflu, paralux float64) Gradient {
	return Gradient{
		Kind: Vertical,
		Operators: field.OperatorWeights{
			Paralum: paralum,
			Paraflu: paraflu,
			Paralux: paralux,
		},
		Magnitude: paralum + paraflu + paralux,
	}
}

// LateralGradient couples two paracava weights around paraflu. Both
// paracava contributions count toward the magnitude; the recorded
// weight keeps their average.
func LateralGradient(paracava1, paraflu, paracava2 float64) Gradient {
	return Gradient{
		Kind: Lateral,
		Operators: field.OperatorWeights{
			Paracava: (paracava1 + paracava2) / 2,
			Paraflu:  paraflu,
		},
		Magnitude: paracava1 + paraflu + paracava2,
	}
}

// DiagonalGradient couples four operators at once, the richest
// combination in the model.
func DiagonalGradient(paralum, paracava, parabrill, parascint float64) Gradient {
	return Gradient{
		Kind: Diagonal,
		Operators: field.OperatorWeights{
			Paralum:   paralum,
			Paracava:  paracava,
			Parabrill: parabrill,
			Parascint: parascint,
		},
		Magnitude: paralum + paracava + parabrill + parascint,
	}
}

// diagonalProjection spreads the diagonal magnitude evenly over the
// X and Y components when gradients are combined.
const diagonalProjection = 0.707

// Combined folds a set of gradients into a single (x, y, zeta)
// vector. Vertical drives X, lateral drives Y, and the diagonal
// splits across both while owning the zeta component.
func Combined(gradients ...Gradient) (x, y, zeta float64) {
	for _, g := range gradients {
		switch g.Kind {
		case Vertical:
			x += g.Magnitude
		case Lateral:
			y += g.Magnitude
		case Diagonal:
			x += g.Magnitude * diagonalProjection
			y += g.Magnitude * diagonalProjection
			zeta = g.Magnitude
		}
	}
	return x, y, zeta
}
