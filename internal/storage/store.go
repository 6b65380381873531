package storage

import (
	"context"

	"zetafield/internal/model"
)

// Store persists run records produced by the simulators. The engines
// themselves never touch a store; persistence is strictly a driver
// concern.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	DeleteRun(ctx context.Context, id string) error
}
