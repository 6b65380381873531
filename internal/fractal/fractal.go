// Package fractal builds the self-similar subdivision of a field
// point: each level regenerates the parent topology at half the
// radius, with curvature and self-similarity decayed.
package fractal

import (
	"math"

	"zetafield/internal/curvature"
	"zetafield/internal/field"
	"zetafield/internal/similarity"
)

const (
	// Decay per level: radius halves, curvature scales down,
	// self-similarity persists longer.
	zetaDecay      = 0.8
	zetaPrimeDecay = 0.9

	// minRadius is the floor below which the cascade stops.
	minRadius = 0.01
)

// Position is one point of a fractal level. Level records the
// recursion depth, zero at the root.
type Position struct {
	X         float64
	Y         float64
	Zeta      float64
	ZetaPrime float64
	Level     int
}

// Level is one tier of the subdivision. Positions sit at evenly
// spaced angles on a circle of the level's radius, except at the
// root, which carries the original point alone.
type Level struct {
	Level     int
	Zeta      float64
	ZetaPrime float64
	Radius    float64
	Positions []Position
}

// RingSize is the number of positions generated at the given depth.
func RingSize(level int) int {
	n := 8 - level
	if n < 3 {
		n = 3
	}
	return n
}

// Build constructs the subdivision rooted at the given point. The
// root curvature comes from the token sequence and the root
// self-similarity from the sample pattern. A zero-radius root is
// substituted with a unit radius so the cascade is never degenerate.
// Levels are returned in increasing depth, root first; the cascade
// stops at maxDepth or once the parent radius falls under the floor.
func Build(root field.Point, tokens []field.TokenKind, samples []float64, maxDepth int) []Level {
	radius := root.Radius()
	if radius == 0 {
		radius = 1.0
	}

	zeta := curvature.Compute(tokens)
	_, zetaPrime := similarity.Detect(samples, similarity.DefaultWindows)

	levels := []Level{{
		Level:     0,
		Zeta:      zeta,
		ZetaPrime: zetaPrime,
		Radius:    radius,
		Positions: []Position{{
			X:         root.X,
			Y:         root.Y,
			Zeta:      zeta,
			ZetaPrime: zetaPrime,
			Level:     0,
		}},
	}}

	for depth := 1; depth <= maxDepth; depth++ {
		if radius < minRadius {
			break
		}
		next := subdivide(depth, radius, zeta, zetaPrime)
		levels = append(levels, next)
		radius = next.Radius
		zeta = next.Zeta
		zetaPrime = next.ZetaPrime
	}

	return levels
}

// subdivide derives one level from its parent: same topology, half
// the radius, decayed curvature and self-similarity.
func subdivide(depth int, parentRadius, parentZeta, parentZetaPrime float64) Level {
	level := Level{
		Level:     depth,
		Zeta:      parentZeta * zetaDecay,
		ZetaPrime: parentZetaPrime * zetaPrimeDecay,
		Radius:    parentRadius / 2,
	}

	n := RingSize(depth)
	level.Positions = make([]Position, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		level.Positions = append(level.Positions, Position{
			X:         level.Radius * math.Cos(angle),
			Y:         level.Radius * math.Sin(angle),
			Zeta:      level.Zeta,
			ZetaPrime: level.ZetaPrime,
			Level:     depth,
		})
	}
	return level
}
