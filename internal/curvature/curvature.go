// Package curvature turns symbolic token sequences into the scalar
// curvature of the deformation field.
package curvature

import "zetafield/internal/field"

// Per-token update rules. Triads add folds, extension stretches the
// accumulated value, alternation straightens it.
const (
	triadGain       = 0.3
	extendFactor    = 1.2
	extendGain      = 0.1
	alternateFactor = 0.8
)

// Compute folds the token sequence left to right into a curvature
// value. The fold is order-sensitive and starts from zero; feeding a
// sequence in pieces and chaining with Fold gives the same result.
func Compute(tokens []field.TokenKind) float64 {
	return Fold(0, tokens)
}

// Fold applies the token update rules to an existing accumulator.
func Fold(acc float64, tokens []field.TokenKind) float64 {
	for _, token := range tokens {
		switch token {
		case field.TokenTriad:
			acc += triadGain
		case field.TokenExtend:
			acc = acc*extendFactor + extendGain
		case field.TokenAlternate:
			acc *= alternateFactor
		}
	}
	return acc
}
