package midas

import (
	"context"
	"strings"
	"time"
)

// FileName derives the local filename for a catalog file URL: the final
// path segment truncated after the first ".csv". Truncation strips the
// query-like suffix the catalog appends to some download links.
func FileName(url string) (string, error) {
	segment := url
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}

	i := strings.Index(segment, ".csv")
	if i < 0 {
		return "", Errorf(EINVALID, "no csv filename in %q", url)
	}

	return segment[:i+len(".csv")], nil
}

// StationFile is the parsed contents of a downloaded catalog file: the
// station metadata block plus any observation rows. Capability
// descriptors carry no observations; yearly data files carry one row
// per observation hour.
type StationFile struct {
	Station      Station        `json:"station"` // ID and CreatedAt unset
	ValidFrom    time.Time      `json:"validFrom"`
	ValidTo      time.Time      `json:"validTo"`
	Observations []*Observation `json:"observations"` // StationID unset
}

// FileReader parses downloaded catalog files into station records.
type FileReader interface {
	// ReadFile parses the file at path.
	// Returns EINVALID if the file's metadata block is malformed.
	ReadFile(path string) (*StationFile, error)
}

// ProcessedFile records a downloaded data file whose observations have
// been loaded into storage. The content hash lets processing skip
// files that have not changed since they were last loaded.
type ProcessedFile struct {
	ID          string    `json:"id"`
	StationID   string    `json:"stationId"`
	Path        string    `json:"path"`
	Year        int       `json:"year"`
	ContentHash string    `json:"contentHash"`
	ProcessedAt time.Time `json:"processedAt"`
}

// Validate returns an error if the processed file contains invalid
// fields.
func (f *ProcessedFile) Validate() error {
	if f.StationID == "" {
		return Errorf(EINVALID, "processed file station ID required")
	}
	if f.Path == "" {
		return Errorf(EINVALID, "processed file path required")
	}
	return nil
}

// FileService represents a service for tracking processed data files.
type FileService interface {
	// CreateFile records a processed file, replacing any earlier
	// record with the same path. The file's ID and ProcessedAt are
	// set on return.
	CreateFile(ctx context.Context, file *ProcessedFile) error

	// FindFileByPath retrieves the record for a path.
	// Returns ENOTFOUND if the path has not been processed.
	FindFileByPath(ctx context.Context, path string) (*ProcessedFile, error)

	// FindFiles retrieves processed file records matching the filter,
	// most recently processed first.
	FindFiles(ctx context.Context, filter FileFilter) ([]*ProcessedFile, error)
}

// FileFilter represents a filter for FindFiles.
type FileFilter struct {
	ID        *string `json:"id"`
	StationID *string `json:"stationId"`
	Year      *int    `json:"year"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
