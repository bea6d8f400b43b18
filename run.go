package midas

import (
	"context"
	"time"
)

// Run represents one harvest of the catalog.
type Run struct {
	ID             string    `json:"id"`
	DatasetVersion string    `json:"datasetVersion"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt"` // zero until the run finishes
	Downloaded     int       `json:"downloaded"`
	Skipped        int       `json:"skipped"`
	Failed         int       `json:"failed"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.DatasetVersion == "" {
		return Errorf(EINVALID, "run dataset version required")
	}
	return nil
}

// RunService represents a service for recording harvest runs.
type RunService interface {
	// CreateRun records the start of a harvest run. The run's ID and
	// StartedAt are set on return.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun records the outcome of a run.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunUpdate represents the outcome fields recorded when a run finishes.
type RunUpdate struct {
	Downloaded int `json:"downloaded"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID             *string `json:"id"`
	DatasetVersion *string `json:"datasetVersion"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
