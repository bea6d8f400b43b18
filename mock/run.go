package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.RunService = (*RunService)(nil)

// RunService is a mock implementation of midas.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *midas.Run) error
	FinishRunFn func(ctx context.Context, id string, upd midas.RunUpdate) (*midas.Run, error)
	FindRunsFn  func(ctx context.Context, filter midas.RunFilter) ([]*midas.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *midas.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, upd midas.RunUpdate) (*midas.Run, error) {
	return s.FinishRunFn(ctx, id, upd)
}

func (s *RunService) FindRuns(ctx context.Context, filter midas.RunFilter) ([]*midas.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
