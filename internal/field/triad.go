package field

// Operator names form the fixed symbolic vocabulary of the field.
// Triads are ordered tuples of these labels.
const (
	OpParalum   = "paralum"   // warmth
	OpParacava  = "paracava"  // depth
	OpParaflu   = "paraflu"   // viscosity
	OpParascint = "parascint" // oscillation
	OpParabrill = "parabrill" // definition
	OpParalux   = "paralux"   // saturation
)

// Triad is one discrete input event: an ordered tuple of operator
// labels fed into the drift integrator.
type Triad struct {
	Elements []string
}

func NewTriad(elements ...string) Triad {
	return Triad{Elements: elements}
}

// Deviation is the normalized positional mismatch between two triads.
// Triads of different lengths are maximally deviant by definition.
func (t Triad) Deviation(other Triad) float64 {
	if len(t.Elements) != len(other.Elements) || len(t.Elements) == 0 {
		return 1.0
	}
	matches := 0
	for i, element := range t.Elements {
		if element == other.Elements[i] {
			matches++
		}
	}
	return 1.0 - float64(matches)/float64(len(t.Elements))
}

// UniqueCount is the number of distinct labels in the triad.
func (t Triad) UniqueCount() int {
	seen := make(map[string]struct{}, len(t.Elements))
	for _, element := range t.Elements {
		seen[element] = struct{}{}
	}
	return len(seen)
}

// OperatorWeights holds the activation of each operator in a gradient
// coupling. Zero values mean the operator does not participate.
type OperatorWeights struct {
	Paralum   float64 `json:"paralum"`
	Paracava  float64 `json:"paracava"`
	Paraflu   float64 `json:"paraflu"`
	Parascint float64 `json:"parascint"`
	Parabrill float64 `json:"parabrill"`
	Paralux   float64 `json:"paralux"`
}

// TotalIntensity is the summed activation across all operators.
func (w OperatorWeights) TotalIntensity() float64 {
	return w.Paralum + w.Paracava + w.Paraflu + w.Parascint + w.Parabrill + w.Paralux
}
