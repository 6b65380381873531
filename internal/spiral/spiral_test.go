package spiral

import (
	"math"
	"testing"
)

func TestGradientMagnitudes(t *testing.T) {
	vertical := VerticalGradient(0.8, 0.5, 0.6)
	if math.Abs(vertical.Magnitude-1.9) > 1e-12 {
		t.Fatalf("vertical magnitude: expected 1.9, got %f", vertical.Magnitude)
	}

	lateral := LateralGradient(0.7, 0.4, 0.6)
	if math.Abs(lateral.Magnitude-1.7) > 1e-12 {
		t.Fatalf("lateral magnitude: expected 1.7, got %f", lateral.Magnitude)
	}
	if math.Abs(lateral.Operators.Paracava-0.65) > 1e-12 {
		t.Fatalf("lateral paracava weight should be averaged, got %f", lateral.Operators.Paracava)
	}

	diagonal := DiagonalGradient(0.6, 0.5, 0.7, 0.4)
	if math.Abs(diagonal.Magnitude-2.2) > 1e-12 {
		t.Fatalf("diagonal magnitude: expected 2.2, got %f", diagonal.Magnitude)
	}
}

func TestGradientDirections(t *testing.T) {
	cases := []struct {
		kind    Kind
		x, y, z float64
	}{
		{Vertical, 1, 0, 1},
		{Lateral, 0, 1, 1},
		{Diagonal, 1, 1, 1},
	}
	for _, tc := range cases {
		x, y, z := tc.kind.Direction()
		if x != tc.x || y != tc.y || z != tc.z {
			t.Fatalf("%s direction: expected (%v, %v, %v), got (%v, %v, %v)",
				tc.kind, tc.x, tc.y, tc.z, x, y, z)
		}
	}
}

func TestSpiralIrreversibility(t *testing.T) {
	s := NewSpiral()
	if s.Irreversible() {
		t.Fatalf("fresh spiral must not be irreversible")
	}
	if _, ok := s.ActiveKind(); ok {
		t.Fatalf("fresh spiral must have no active gradient")
	}

	grad := VerticalGradient(0.8, 0.5, 0.6)
	s.Apply(grad, 0.2)
	if !s.Irreversible() {
		t.Fatalf("spiral must be irreversible after a positive gradient")
	}

	// Further gradients of any kind never reset the altitude.
	altitude := s.Altitude()
	s.Apply(LateralGradient(0.7, 0.4, 0.6), 0.2)
	s.Apply(DiagonalGradient(0.6, 0.5, 0.7, 0.4), 0.2)
	if s.Altitude() < altitude {
		t.Fatalf("altitude decreased from %f to %f", altitude, s.Altitude())
	}
	if !s.Irreversible() {
		t.Fatalf("irreversibility must persist")
	}
}

func TestSpiralApplyDisplacement(t *testing.T) {
	s := NewSpiral()
	grad := LateralGradient(0.7, 0.4, 0.6) // magnitude 1.7, direction (0,1,1)
	pos := s.Apply(grad, 0.2)

	if pos.X != 0 {
		t.Fatalf("lateral gradient must not move x, got %f", pos.X)
	}
	if math.Abs(pos.Y-0.34) > 1e-12 || math.Abs(pos.Zeta-0.34) > 1e-12 {
		t.Fatalf("expected y = zeta = 0.34, got y=%f zeta=%f", pos.Y, pos.Zeta)
	}

	kind, ok := s.ActiveKind()
	if !ok || kind != Lateral {
		t.Fatalf("expected active kind lateral, got %v (%v)", kind, ok)
	}
}

func TestSpiralHistoryIncludesInitial(t *testing.T) {
	s := NewSpiralAt(Position{X: 1})
	s.Apply(VerticalGradient(0.1, 0.1, 0.1), 0.1)
	history := s.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(history))
	}
	if history[0] != (Position{X: 1}) {
		t.Fatalf("history must start at the initial position, got %+v", history[0])
	}
	history[1].X = 999
	if s.History()[1].X == 999 {
		t.Fatalf("history must be returned by copy")
	}
}

func TestHelicalPathShape(t *testing.T) {
	grad := VerticalGradient(0.8, 0.5, 0.6) // magnitude 1.9
	path := HelicalPath(grad, 2.0, 36)
	if len(path) != 72 {
		t.Fatalf("expected 72 points, got %d", len(path))
	}

	// First point sits on the unit circle at angle zero.
	if math.Abs(path[0].X-1) > 1e-12 || path[0].Y != 0 || path[0].Zeta != 0 {
		t.Fatalf("unexpected first point %+v", path[0])
	}

	// Altitude climbs linearly with revolutions: 0.5 * magnitude per rev.
	last := path[len(path)-1]
	wantZeta := 0.5 * 1.9 * (71.0 / 36.0)
	if math.Abs(last.Zeta-wantZeta) > 1e-9 {
		t.Fatalf("expected final altitude %f, got %f", wantZeta, last.Zeta)
	}

	// Monotone climb throughout.
	for i := 1; i < len(path); i++ {
		if path[i].Zeta < path[i-1].Zeta {
			t.Fatalf("altitude dipped at point %d", i)
		}
	}
}

func TestHelicalPathDegenerateInputs(t *testing.T) {
	grad := LateralGradient(0.1, 0.1, 0.1)
	if path := HelicalPath(grad, 0, 36); path != nil {
		t.Fatalf("zero revolutions must yield no path")
	}
	if path := HelicalPath(grad, 1, 0); path != nil {
		t.Fatalf("zero points per revolution must yield no path")
	}
}

func TestCombinedGradientProjection(t *testing.T) {
	vertical := VerticalGradient(0.8, 0.5, 0.6)   // 1.9
	lateral := LateralGradient(0.7, 0.4, 0.6)     // 1.7
	diagonal := DiagonalGradient(0.6, 0.5, 0.7, 0.4) // 2.2

	x, y, zeta := Combined(vertical, lateral, diagonal)
	if math.Abs(x-(1.9+2.2*0.707)) > 1e-9 {
		t.Fatalf("unexpected combined x %f", x)
	}
	if math.Abs(y-(1.7+2.2*0.707)) > 1e-9 {
		t.Fatalf("unexpected combined y %f", y)
	}
	if math.Abs(zeta-2.2) > 1e-9 {
		t.Fatalf("unexpected combined zeta %f", zeta)
	}
}

func TestPositionMagnitude(t *testing.T) {
	p := Position{X: 1, Y: 2, Zeta: 2}
	if math.Abs(p.Magnitude()-3) > 1e-12 {
		t.Fatalf("expected magnitude 3, got %f", p.Magnitude())
	}
}
