// Package viz renders engine output as ASCII for the ctl. It only
// consumes export data and holds no engine state.
package viz

import (
	"fmt"
	"math"
	"strings"

	"zetafield/internal/model"
)

const (
	trajectoryWidth  = 60
	trajectoryHeight = 20
)

// Trajectory draws the XY path of a drift run on a character grid.
// Step numbers mark positions and arrows mark the drift direction at
// each of them.
func Trajectory(positions []model.DriftPosition) string {
	if len(positions) == 0 {
		return "(no positions)\n"
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, pos := range positions[1:] {
		if pos.X < minX {
			minX = pos.X
		}
		if pos.X > maxX {
			maxX = pos.X
		}
		if pos.Y < minY {
			minY = pos.Y
		}
		if pos.Y > maxY {
			maxY = pos.Y
		}
	}
	minX, maxX = minX-0.5, maxX+0.5
	minY, maxY = minY-0.5, maxY+0.5

	grid := make([][]rune, trajectoryHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", trajectoryWidth))
	}

	project := func(pos model.DriftPosition) (int, int) {
		px := int((pos.X - minX) / (maxX - minX) * (trajectoryWidth - 1))
		py := int((pos.Y - minY) / (maxY - minY) * (trajectoryHeight - 1))
		return px, trajectoryHeight - 1 - py
	}

	for i, pos := range positions {
		px, py := project(pos)
		if px < 0 || px >= trajectoryWidth || py < 0 || py >= trajectoryHeight {
			continue
		}
		marker := '*'
		if i < 9 {
			marker = rune('1' + i)
		}
		grid[py][px] = marker

		ax := px + arrowOffset(pos.ZetaStarAngle, true)
		ay := py + arrowOffset(pos.ZetaStarAngle, false)
		if ax >= 0 && ax < trajectoryWidth && ay >= 0 && ay < trajectoryHeight && grid[ay][ax] == ' ' {
			grid[ay][ax] = arrowRune(pos.ZetaStarAngle)
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString("  ")
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	sb.WriteString("\n  numbers = steps, arrows = drift direction\n")
	return sb.String()
}

// Descent lists a fractal subdivision level by level, indented by
// depth the way the structure nests.
func Descent(levels []model.FractalLevel) string {
	var sb strings.Builder
	for _, level := range levels {
		indent := strings.Repeat("  ", level.Level)
		fmt.Fprintf(&sb, "%slevel %d: r=%.4f zeta=%.4f zeta'=%.4f (%d positions)\n",
			indent, level.Level, level.Radius, level.Zeta, level.ZetaPrime, len(level.Positions))
	}
	return sb.String()
}

func arrowOffset(angle float64, horizontal bool) int {
	// Two cells out along the drift direction, Y flipped for screen rows.
	if horizontal {
		return int(2 * math.Cos(angle))
	}
	return -int(2 * math.Sin(angle))
}

func arrowRune(angle float64) rune {
	switch {
	case angle > -0.4 && angle < 0.4:
		return '>'
	case angle >= 0.4 && angle < 1.2:
		return '/'
	case angle >= 1.2 && angle < 2.0:
		return '^'
	case angle >= 2.0 || angle < -2.0:
		return '<'
	case angle >= -2.0 && angle < -1.2:
		return 'v'
	default:
		return '\\'
	}
}
