package model

// VersionedRecord captures schema and codec evolution for exported data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Vec2 is the serialized form of a planar vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DriftPosition is the full recognition-driven field state at one
// step, with the drift vector's derived magnitude and angle included
// so renderers need no vector math of their own.
type DriftPosition struct {
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	Zeta              float64 `json:"zeta"`
	ZetaPrime         float64 `json:"zeta_prime"`
	ZetaStar          Vec2    `json:"zeta_star"`
	ZetaStarMagnitude float64 `json:"zeta_star_magnitude"`
	ZetaStarAngle     float64 `json:"zeta_star_angle"`
}

// FractalPosition is one point of a subdivision level.
type FractalPosition struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Zeta      float64 `json:"zeta"`
	ZetaPrime float64 `json:"zeta_prime"`
	Level     int     `json:"level"`
}

// FractalLevel is one tier of the subdivision.
type FractalLevel struct {
	Level     int               `json:"level"`
	Zeta      float64           `json:"zeta"`
	ZetaPrime float64           `json:"zeta_prime"`
	Radius    float64           `json:"radius"`
	Positions []FractalPosition `json:"positions"`
}

// SpiralPoint is one sample of a gradient-driven path.
type SpiralPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zeta float64 `json:"zeta"`
}

// GradientRecord describes one computed operator coupling.
type GradientRecord struct {
	Kind      string             `json:"kind"`
	Magnitude float64            `json:"magnitude"`
	Operators map[string]float64 `json:"operators"`
}

// SedimentPosition is one step of the accumulated-slope tracker.
type SedimentPosition struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Zeta      float64 `json:"zeta"`
	ZetaPrime float64 `json:"zeta_prime"`
	Step      int     `json:"step"`
}

// RunRecord is everything one simulator run produced. Sections not
// exercised by the run's kind stay empty.
type RunRecord struct {
	VersionedRecord
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	CreatedAtUTC string             `json:"created_at_utc"`
	Trajectory   []DriftPosition    `json:"trajectory,omitempty"`
	Levels       []FractalLevel     `json:"levels,omitempty"`
	Gradients    []GradientRecord   `json:"gradients,omitempty"`
	SpiralPath   []SpiralPoint      `json:"spiral_path,omitempty"`
	Sediment     []SedimentPosition `json:"sediment,omitempty"`
	Summary      map[string]float64 `json:"summary,omitempty"`
}
