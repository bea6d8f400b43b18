package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ukmetdata/midas"
)

// Compile-time interface verification.
var _ midas.RunService = (*RunService)(nil)

// RunService implements midas.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a harvest run.
func (s *RunService) CreateRun(ctx context.Context, run *midas.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, dataset_version, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.DatasetVersion, run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun records the outcome of a run.
func (s *RunService) FinishRun(ctx context.Context, id string, upd midas.RunUpdate) (*midas.Run, error) {
	run, err := s.findRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	run.FinishedAt = time.Now().UTC()
	run.Downloaded = upd.Downloaded
	run.Skipped = upd.Skipped
	run.Failed = upd.Failed

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, downloaded = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt.Format(time.RFC3339), run.Downloaded, run.Skipped, run.Failed, id)

	if err != nil {
		return nil, err
	}

	return run, nil
}

func (s *RunService) findRunByID(ctx context.Context, id string) (*midas.Run, error) {
	var run midas.Run
	var startedAt, finishedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, dataset_version, started_at, finished_at, downloaded, skipped, failed
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.DatasetVersion, &startedAt, &finishedAt,
		&run.Downloaded, &run.Skipped, &run.Failed)

	if err == sql.ErrNoRows {
		return nil, midas.Errorf(midas.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = parseRFC3339(startedAt, "started_at")
	if err != nil {
		return nil, err
	}
	run.FinishedAt, err = parseNullableRFC3339(finishedAt, "finished_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter midas.RunFilter) ([]*midas.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, dataset_version, started_at, finished_at, downloaded, skipped, failed FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.DatasetVersion != nil {
		query.WriteString(" AND dataset_version = ?")
		args = append(args, *filter.DatasetVersion)
	}

	query.WriteString(" ORDER BY started_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*midas.Run
	for rows.Next() {
		var run midas.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.DatasetVersion, &startedAt, &finishedAt,
			&run.Downloaded, &run.Skipped, &run.Failed); err != nil {
			return nil, err
		}

		run.StartedAt, err = parseRFC3339(startedAt, "started_at")
		if err != nil {
			return nil, err
		}
		run.FinishedAt, err = parseNullableRFC3339(finishedAt, "finished_at")
		if err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
