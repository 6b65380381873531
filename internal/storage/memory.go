package storage

import (
	"context"
	"sort"
	"sync"

	"zetafield/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runs == nil {
		s.runs = make(map[string]model.RunRecord)
	}
	s.runs[run.ID] = cloneRun(run)
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	return cloneRun(run), true, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, cloneRun(run))
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *MemoryStore) DeleteRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.runs, id)
	return nil
}

func cloneRun(run model.RunRecord) model.RunRecord {
	out := run
	out.Trajectory = append([]model.DriftPosition(nil), run.Trajectory...)
	out.SpiralPath = append([]model.SpiralPoint(nil), run.SpiralPath...)
	out.Sediment = append([]model.SedimentPosition(nil), run.Sediment...)
	if run.Levels != nil {
		out.Levels = make([]model.FractalLevel, 0, len(run.Levels))
		for _, level := range run.Levels {
			copied := level
			copied.Positions = append([]model.FractalPosition(nil), level.Positions...)
			out.Levels = append(out.Levels, copied)
		}
	}
	if run.Gradients != nil {
		out.Gradients = make([]model.GradientRecord, 0, len(run.Gradients))
		for _, gradient := range run.Gradients {
			copied := gradient
			if gradient.Operators != nil {
				copied.Operators = make(map[string]float64, len(gradient.Operators))
				for name, weight := range gradient.Operators {
					copied.Operators[name] = weight
				}
			}
			out.Gradients = append(out.Gradients, copied)
		}
	}
	if run.Summary != nil {
		out.Summary = make(map[string]float64, len(run.Summary))
		for key, value := range run.Summary {
			out.Summary[key] = value
		}
	}
	return out
}
