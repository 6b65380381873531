// Package stats converts engine output into export records and
// writes per-run JSON artifacts for rendering front ends.
package stats

import (
	"zetafield/internal/drift"
	"zetafield/internal/fractal"
	"zetafield/internal/model"
	"zetafield/internal/sediment"
	"zetafield/internal/spiral"
)

// SnapshotDrift converts a drift trajectory into export records.
// Every field of the position, including the derived drift magnitude
// and angle, survives the conversion.
func SnapshotDrift(positions []drift.Position) []model.DriftPosition {
	out := make([]model.DriftPosition, 0, len(positions))
	for _, pos := range positions {
		out = append(out, model.DriftPosition{
			X:                 pos.X,
			Y:                 pos.Y,
			Zeta:              pos.Zeta,
			ZetaPrime:         pos.ZetaPrime,
			ZetaStar:          model.Vec2{X: pos.Drift.X, Y: pos.Drift.Y},
			ZetaStarMagnitude: pos.Drift.Magnitude(),
			ZetaStarAngle:     pos.Drift.Angle(),
		})
	}
	return out
}

// SnapshotLevels converts a fractal subdivision into export records.
func SnapshotLevels(levels []fractal.Level) []model.FractalLevel {
	out := make([]model.FractalLevel, 0, len(levels))
	for _, level := range levels {
		positions := make([]model.FractalPosition, 0, len(level.Positions))
		for _, pos := range level.Positions {
			positions = append(positions, model.FractalPosition{
				X:         pos.X,
				Y:         pos.Y,
				Zeta:      pos.Zeta,
				ZetaPrime: pos.ZetaPrime,
				Level:     pos.Level,
			})
		}
		out = append(out, model.FractalLevel{
			Level:     level.Level,
			Zeta:      level.Zeta,
			ZetaPrime: level.ZetaPrime,
			Radius:    level.Radius,
			Positions: positions,
		})
	}
	return out
}

// SnapshotGradient converts one gradient into an export record,
// listing only the operators that participate in the coupling.
func SnapshotGradient(g spiral.Gradient) model.GradientRecord {
	operators := make(map[string]float64)
	weights := map[string]float64{
		"paralum":   g.Operators.Paralum,
		"paracava":  g.Operators.Paracava,
		"paraflu":   g.Operators.Paraflu,
		"parascint": g.Operators.Parascint,
		"parabrill": g.Operators.Parabrill,
		"paralux":   g.Operators.Paralux,
	}
	for name, weight := range weights {
		if weight != 0 {
			operators[name] = weight
		}
	}
	return model.GradientRecord{
		Kind:      g.Kind.String(),
		Magnitude: g.Magnitude,
		Operators: operators,
	}
}

// SnapshotSpiralPath converts a helical or stepwise spiral path.
func SnapshotSpiralPath(path []spiral.Position) []model.SpiralPoint {
	out := make([]model.SpiralPoint, 0, len(path))
	for _, pos := range path {
		out = append(out, model.SpiralPoint{X: pos.X, Y: pos.Y, Zeta: pos.Zeta})
	}
	return out
}

// SnapshotSediment converts an accumulated-slope history.
func SnapshotSediment(positions []sediment.Position) []model.SedimentPosition {
	out := make([]model.SedimentPosition, 0, len(positions))
	for i, pos := range positions {
		out = append(out, model.SedimentPosition{
			X:         pos.X,
			Y:         pos.Y,
			Zeta:      pos.Zeta,
			ZetaPrime: pos.ZetaPrime,
			Step:      i,
		})
	}
	return out
}
