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
var _ midas.FileService = (*FileService)(nil)

// FileService implements midas.FileService using SQLite.
type FileService struct {
	db *DB
}

// NewFileService creates a new FileService.
func NewFileService(db *DB) *FileService {
	return &FileService{db: db}
}

// CreateFile records a processed file. A path is recorded at most
// once; processing the same file again replaces its record, so the
// stored hash always reflects the latest load.
func (s *FileService) CreateFile(ctx context.Context, file *midas.ProcessedFile) error {
	if err := file.Validate(); err != nil {
		return err
	}

	file.ID = uuid.New().String()
	file.ProcessedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, station_id, path, year, content_hash, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			station_id = excluded.station_id,
			year = excluded.year,
			content_hash = excluded.content_hash,
			processed_at = excluded.processed_at
	`, file.ID, file.StationID, file.Path, file.Year, file.ContentHash,
		file.ProcessedAt.Format(time.RFC3339))

	return err
}

// FindFileByPath retrieves the record for a path.
func (s *FileService) FindFileByPath(ctx context.Context, path string) (*midas.ProcessedFile, error) {
	var file midas.ProcessedFile
	var processedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, station_id, path, year, content_hash, processed_at
		FROM files
		WHERE path = ?
	`, path).Scan(&file.ID, &file.StationID, &file.Path, &file.Year,
		&file.ContentHash, &processedAt)

	if err == sql.ErrNoRows {
		return nil, midas.Errorf(midas.ENOTFOUND, "file not found")
	}
	if err != nil {
		return nil, err
	}

	file.ProcessedAt, err = parseRFC3339(processedAt, "processed_at")
	if err != nil {
		return nil, err
	}

	return &file, nil
}

// FindFiles retrieves processed file records matching the filter, most
// recently processed first.
func (s *FileService) FindFiles(ctx context.Context, filter midas.FileFilter) ([]*midas.ProcessedFile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, station_id, path, year, content_hash, processed_at FROM files WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.StationID != nil {
		query.WriteString(" AND station_id = ?")
		args = append(args, *filter.StationID)
	}
	if filter.Year != nil {
		query.WriteString(" AND year = ?")
		args = append(args, *filter.Year)
	}

	query.WriteString(" ORDER BY processed_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*midas.ProcessedFile
	for rows.Next() {
		var file midas.ProcessedFile
		var processedAt string

		if err := rows.Scan(&file.ID, &file.StationID, &file.Path, &file.Year,
			&file.ContentHash, &processedAt); err != nil {
			return nil, err
		}

		file.ProcessedAt, err = parseRFC3339(processedAt, "processed_at")
		if err != nil {
			return nil, err
		}

		files = append(files, &file)
	}

	return files, rows.Err()
}
