package spiral

import "math"

// Position is a location in gradient space: the base plane plus the
// accumulated curvature altitude.
type Position struct {
	X    float64
	Y    float64
	Zeta float64
}

// Magnitude is the distance from the origin in all three axes.
func (p Position) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Zeta*p.Zeta)
}

// Spiral integrates gradients into a helical path. Its history is
// append-only and starts at the initial position.
type Spiral struct {
	position Position
	history  []Position
	active   *Kind
}

func NewSpiral() *Spiral {
	return NewSpiralAt(Position{})
}

func NewSpiralAt(initial Position) *Spiral {
	return &Spiral{
		position: initial,
		history:  []Position{initial},
	}
}

// Apply advances the spiral along the gradient's direction by its
// magnitude over the time step. With non-negative magnitudes the
// zeta axis only ever grows: the gain cannot be undone.
func (s *Spiral) Apply(g Gradient, timeStep float64) Position {
	dx, dy, dz := g.Kind.Direction()
	s.position = Position{
		X:    s.position.X + dx*g.Magnitude*timeStep,
		Y:    s.position.Y + dy*g.Magnitude*timeStep,
		Zeta: s.position.Zeta + dz*g.Magnitude*timeStep,
	}
	s.history = append(s.history, s.position)
	kind := g.Kind
	s.active = &kind
	return s.position
}

// Position is the spiral's current location.
func (s *Spiral) Position() Position {
	return s.position
}

// Altitude is the accumulated zeta coordinate.
func (s *Spiral) Altitude() float64 {
	return s.position.Zeta
}

// Irreversible reports whether the spiral has gained altitude. Once
// true for a given instance it stays true.
func (s *Spiral) Irreversible() bool {
	return s.position.Zeta > 0
}

// ActiveKind is the kind of the last applied gradient, if any.
func (s *Spiral) ActiveKind() (Kind, bool) {
	if s.active == nil {
		return 0, false
	}
	return *s.active, true
}

// History returns a copy of every position visited, initial first.
func (s *Spiral) History() []Position {
	out := make([]Position, len(s.history))
	copy(out, s.history)
	return out
}

// Per-kind helix constants: altitude gained and planar drift per
// revolution, both scaled by the gradient magnitude.
func helixConstants(k Kind) (zetaGain, xDrift, yDrift float64) {
	switch k {
	case Vertical:
		return 0.5, 0.1, 0
	case Lateral:
		return 0.3, 0, 0.15
	default:
		return 0.4, 0.08, 0.08
	}
}

const helixBaseRadius = 1.0

// HelicalPath traces the closed-form ascending spiral for a gradient:
// a unit circle drifting and climbing with each revolution. It
// produces revolutions*pointsPerRevolution samples without stepping.
func HelicalPath(g Gradient, revolutions float64, pointsPerRevolution int) []Position {
	total := int(revolutions * float64(pointsPerRevolution))
	if total <= 0 || pointsPerRevolution <= 0 {
		return nil
	}

	zetaGain, xDrift, yDrift := helixConstants(g.Kind)
	zetaGain *= g.Magnitude
	xDrift *= g.Magnitude
	yDrift *= g.Magnitude

	path := make([]Position, 0, total)
	for i := 0; i < total; i++ {
		revolution := float64(i) / float64(pointsPerRevolution)
		theta := revolution * 2 * math.Pi
		path = append(path, Position{
			X:    helixBaseRadius*math.Cos(theta) + xDrift*revolution,
			Y:    helixBaseRadius*math.Sin(theta) + yDrift*revolution,
			Zeta: zetaGain * revolution,
		})
	}
	return path
}
