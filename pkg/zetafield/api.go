// Package zetafield is the public client for the deformation-field
// simulators: it runs the engines, records runs, and writes export
// artifacts for rendering front ends.
package zetafield

import (
	"context"
	"fmt"
	"time"

	"zetafield/internal/curvature"
	"zetafield/internal/drift"
	"zetafield/internal/field"
	"zetafield/internal/fractal"
	"zetafield/internal/model"
	"zetafield/internal/sediment"
	"zetafield/internal/similarity"
	"zetafield/internal/spiral"
	"zetafield/internal/stats"
	"zetafield/internal/storage"
)

const (
	defaultExportsDir = "exports"
	defaultDBPath     = "zetafield.db"
	defaultTimeStep   = 0.2
	defaultMaxDepth   = 5
)

type Options struct {
	StoreKind  string
	DBPath     string
	ExportsDir string
}

type Client struct {
	store       storage.Store
	exportsDir  string
	initialized bool
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	exportsDir := opts.ExportsDir
	if exportsDir == "" {
		exportsDir = defaultExportsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:      store,
		exportsDir: exportsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	if c.initialized {
		return nil
	}
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	c.initialized = true
	return nil
}

// DriftRequest feeds a sequence of triads through the
// recognition-driven integrator.
type DriftRequest struct {
	Triads [][]string
}

type DriftSummary struct {
	RunID      string
	Trajectory []model.DriftPosition
	Final      model.DriftPosition
}

func (c *Client) RunDrift(ctx context.Context, req DriftRequest) (DriftSummary, error) {
	if len(req.Triads) == 0 {
		return DriftSummary{}, fmt.Errorf("at least one triad is required")
	}
	if err := c.Init(ctx); err != nil {
		return DriftSummary{}, err
	}

	integrator := drift.NewIntegrator()
	for _, elements := range req.Triads {
		integrator.Step(field.NewTriad(elements...))
	}

	trajectory := stats.SnapshotDrift(integrator.History())
	final := trajectory[len(trajectory)-1]

	run := c.newRun("drift")
	run.Trajectory = trajectory
	run.Summary = map[string]float64{
		"steps":      float64(integrator.Steps()),
		"final_zeta": final.Zeta,
	}
	if err := c.saveRun(ctx, run, final.Zeta); err != nil {
		return DriftSummary{}, err
	}

	return DriftSummary{RunID: run.ID, Trajectory: trajectory, Final: final}, nil
}

// FractalRequest subdivides a root point driven by a token sequence
// and a numeric pattern.
type FractalRequest struct {
	X        float64
	Y        float64
	Tokens   []string
	Samples  []float64
	MaxDepth int
}

type FractalSummary struct {
	RunID     string
	Zeta      float64
	ZetaPrime float64
	Levels    []model.FractalLevel
}

func (c *Client) BuildFractal(ctx context.Context, req FractalRequest) (FractalSummary, error) {
	tokens, err := parseTokens(req.Tokens)
	if err != nil {
		return FractalSummary{}, err
	}
	if err := c.Init(ctx); err != nil {
		return FractalSummary{}, err
	}
	maxDepth := req.MaxDepth
	if maxDepth == 0 {
		maxDepth = defaultMaxDepth
	}

	levels := stats.SnapshotLevels(fractal.Build(
		field.Point{X: req.X, Y: req.Y}, tokens, req.Samples, maxDepth))
	root := levels[0]

	run := c.newRun("fractal")
	run.Levels = levels
	run.Summary = map[string]float64{
		"levels":     float64(len(levels)),
		"final_zeta": root.Zeta,
	}
	if err := c.saveRun(ctx, run, root.Zeta); err != nil {
		return FractalSummary{}, err
	}

	return FractalSummary{
		RunID:     run.ID,
		Zeta:      root.Zeta,
		ZetaPrime: root.ZetaPrime,
		Levels:    levels,
	}, nil
}

// GradientSpec names one coupling and its operator inputs in
// positional order: vertical takes (paralum, paraflu, paralux),
// lateral (paracava, paraflu, paracava), diagonal (paralum,
// paracava, parabrill, parascint).
type GradientSpec struct {
	Kind    string
	Weights []float64
}

func (s GradientSpec) build() (spiral.Gradient, error) {
	switch s.Kind {
	case "vertical":
		if len(s.Weights) != 3 {
			return spiral.Gradient{}, fmt.Errorf("vertical gradient needs 3 weights, got %d", len(s.Weights))
		}
		return spiral.VerticalGradient(s.Weights[0], s.Weights[1], s.Weights[2]), nil
	case "lateral":
		if len(s.Weights) != 3 {
			return spiral.Gradient{}, fmt.Errorf("lateral gradient needs 3 weights, got %d", len(s.Weights))
		}
		return spiral.LateralGradient(s.Weights[0], s.Weights[1], s.Weights[2]), nil
	case "diagonal":
		if len(s.Weights) != 4 {
			return spiral.Gradient{}, fmt.Errorf("diagonal gradient needs 4 weights, got %d", len(s.Weights))
		}
		return spiral.DiagonalGradient(s.Weights[0], s.Weights[1], s.Weights[2], s.Weights[3]), nil
	default:
		return spiral.Gradient{}, fmt.Errorf("unknown gradient kind: %s", s.Kind)
	}
}

// SpiralRequest applies each gradient for a number of steps in order.
type SpiralRequest struct {
	Gradients     []GradientSpec
	StepsPerGrade int
	TimeStep      float64
}

type SpiralSummary struct {
	RunID        string
	Altitude     float64
	Irreversible bool
	Path         []model.SpiralPoint
	Gradients    []model.GradientRecord
}

func (c *Client) RunSpiral(ctx context.Context, req SpiralRequest) (SpiralSummary, error) {
	if len(req.Gradients) == 0 {
		return SpiralSummary{}, fmt.Errorf("at least one gradient is required")
	}
	if err := c.Init(ctx); err != nil {
		return SpiralSummary{}, err
	}
	steps := req.StepsPerGrade
	if steps <= 0 {
		steps = 5
	}
	timeStep := req.TimeStep
	if timeStep == 0 {
		timeStep = defaultTimeStep
	}

	s := spiral.NewSpiral()
	records := make([]model.GradientRecord, 0, len(req.Gradients))
	for _, spec := range req.Gradients {
		gradient, err := spec.build()
		if err != nil {
			return SpiralSummary{}, err
		}
		records = append(records, stats.SnapshotGradient(gradient))
		for i := 0; i < steps; i++ {
			s.Apply(gradient, timeStep)
		}
	}

	path := stats.SnapshotSpiralPath(s.History())
	run := c.newRun("spiral")
	run.SpiralPath = path
	run.Gradients = records
	run.Summary = map[string]float64{
		"steps":      float64(len(path) - 1),
		"final_zeta": s.Altitude(),
	}
	if err := c.saveRun(ctx, run, s.Altitude()); err != nil {
		return SpiralSummary{}, err
	}

	return SpiralSummary{
		RunID:        run.ID,
		Altitude:     s.Altitude(),
		Irreversible: s.Irreversible(),
		Path:         path,
		Gradients:    records,
	}, nil
}

// HelixRequest traces the closed-form path of a single gradient.
type HelixRequest struct {
	Gradient            GradientSpec
	Revolutions         float64
	PointsPerRevolution int
}

type HelixSummary struct {
	RunID    string
	Gradient model.GradientRecord
	Path     []model.SpiralPoint
}

func (c *Client) Helix(ctx context.Context, req HelixRequest) (HelixSummary, error) {
	gradient, err := req.Gradient.build()
	if err != nil {
		return HelixSummary{}, err
	}
	if err := c.Init(ctx); err != nil {
		return HelixSummary{}, err
	}
	revolutions := req.Revolutions
	if revolutions == 0 {
		revolutions = 2.0
	}
	perRev := req.PointsPerRevolution
	if perRev == 0 {
		perRev = 36
	}

	path := stats.SnapshotSpiralPath(spiral.HelicalPath(gradient, revolutions, perRev))
	record := stats.SnapshotGradient(gradient)

	run := c.newRun("helix")
	run.SpiralPath = path
	run.Gradients = []model.GradientRecord{record}
	finalZeta := 0.0
	if len(path) > 0 {
		finalZeta = path[len(path)-1].Zeta
	}
	run.Summary = map[string]float64{
		"points":     float64(len(path)),
		"final_zeta": finalZeta,
	}
	if err := c.saveRun(ctx, run, finalZeta); err != nil {
		return HelixSummary{}, err
	}

	return HelixSummary{RunID: run.ID, Gradient: record, Path: path}, nil
}

// SedimentPhase holds constant operator inputs over a number of steps.
type SedimentPhase struct {
	Inputs sediment.Inputs
	Steps  int
}

type SedimentRequest struct {
	Phases   []SedimentPhase
	TimeStep float64
}

type SedimentSummary struct {
	RunID          string
	Final          model.SedimentPosition
	TotalCoherence float64
	Positions      []model.SedimentPosition
}

func (c *Client) RunSediment(ctx context.Context, req SedimentRequest) (SedimentSummary, error) {
	if len(req.Phases) == 0 {
		return SedimentSummary{}, fmt.Errorf("at least one phase is required")
	}
	if err := c.Init(ctx); err != nil {
		return SedimentSummary{}, err
	}
	timeStep := req.TimeStep
	if timeStep == 0 {
		timeStep = defaultTimeStep
	}

	tracker := sediment.NewTracker()
	var position sediment.Position
	for _, phase := range req.Phases {
		steps := phase.Steps
		if steps <= 0 {
			steps = 5
		}
		for i := 0; i < steps; i++ {
			position = tracker.Evolve(position, phase.Inputs, timeStep)
		}
	}
	tracker.Record(position, 1.0)

	positions := stats.SnapshotSediment(tracker.History())
	final := positions[len(positions)-1]

	run := c.newRun("sediment")
	run.Sediment = positions
	run.Summary = map[string]float64{
		"steps":           float64(len(positions)),
		"final_zeta":      final.Zeta,
		"total_coherence": tracker.TotalCoherence(),
	}
	if err := c.saveRun(ctx, run, final.Zeta); err != nil {
		return SedimentSummary{}, err
	}

	return SedimentSummary{
		RunID:          run.ID,
		Final:          final,
		TotalCoherence: tracker.TotalCoherence(),
		Positions:      positions,
	}, nil
}

// Detect scores a sample pattern for self-similarity without
// touching the store.
func (c *Client) Detect(samples []float64, windows int) (bool, float64) {
	if windows <= 0 {
		windows = similarity.DefaultWindows
	}
	return similarity.Detect(samples, windows)
}

// Curvature folds a token sequence into its curvature value.
func (c *Client) Curvature(tokens []string) (float64, error) {
	parsed, err := parseTokens(tokens)
	if err != nil {
		return 0, err
	}
	return curvature.Compute(parsed), nil
}

type RunItem struct {
	RunID        string
	Kind         string
	CreatedAtUTC string
	Steps        int
	FinalZeta    float64
}

func (c *Client) Runs(ctx context.Context) ([]RunItem, error) {
	if err := c.Init(ctx); err != nil {
		return nil, err
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, RunItem{
			RunID:        run.ID,
			Kind:         run.Kind,
			CreatedAtUTC: run.CreatedAtUTC,
			Steps:        int(run.Summary["steps"]),
			FinalZeta:    run.Summary["final_zeta"],
		})
	}
	return items, nil
}

// Export writes a stored run's artifacts under the exports dir and
// returns the run directory.
func (c *Client) Export(ctx context.Context, runID string) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("run id is required")
	}
	if err := c.Init(ctx); err != nil {
		return "", err
	}
	run, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("run %s not found", runID)
	}
	return stats.WriteRunArtifacts(c.exportsDir, run)
}

// Delete removes a stored run. Artifacts already exported stay on
// disk.
func (c *Client) Delete(ctx context.Context, runID string) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := c.Init(ctx); err != nil {
		return err
	}
	return c.store.DeleteRun(ctx, runID)
}

// Reset deletes every stored run and returns how many were removed.
func (c *Client) Reset(ctx context.Context) (int, error) {
	if err := c.Init(ctx); err != nil {
		return 0, err
	}
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return 0, err
	}
	for _, run := range runs {
		if err := c.store.DeleteRun(ctx, run.ID); err != nil {
			return 0, err
		}
	}
	return len(runs), nil
}

func (c *Client) newRun(kind string) model.RunRecord {
	now := time.Now().UTC()
	return storage.Stamp(model.RunRecord{
		ID:           fmt.Sprintf("%s-%d", kind, now.UnixNano()),
		Kind:         kind,
		CreatedAtUTC: now.Format(time.RFC3339),
	})
}

func (c *Client) saveRun(ctx context.Context, run model.RunRecord, finalZeta float64) error {
	if err := c.store.SaveRun(ctx, run); err != nil {
		return err
	}
	if _, err := stats.WriteRunArtifacts(c.exportsDir, run); err != nil {
		return err
	}
	return stats.AppendRunIndex(c.exportsDir, stats.RunIndexEntry{
		RunID:        run.ID,
		Kind:         run.Kind,
		Steps:        int(run.Summary["steps"]),
		FinalZeta:    finalZeta,
		CreatedAtUTC: run.CreatedAtUTC,
	})
}

func parseTokens(names []string) ([]field.TokenKind, error) {
	tokens := make([]field.TokenKind, 0, len(names))
	for _, name := range names {
		kind, ok := field.ParseTokenKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown token kind: %s", name)
		}
		tokens = append(tokens, kind)
	}
	return tokens, nil
}
