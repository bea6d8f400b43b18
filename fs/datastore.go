// Package fs manages the on-disk layout of a harvest: raw downloads
// split into capability and data directories, plus the database file.
package fs

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukmetdata/midas"
)

// DataStore resolves the directories of a harvest under a single root.
// Directories are created on first use.
type DataStore struct {
	root string
}

// NewDataStore creates a DataStore rooted at root.
func NewDataStore(root string) *DataStore {
	return &DataStore{root: root}
}

// Root returns the store's root directory.
func (s *DataStore) Root() string {
	return s.root
}

// CapabilityDir returns the directory for capability descriptors,
// creating it if needed.
func (s *DataStore) CapabilityDir() (string, error) {
	return s.ensure(filepath.Join(s.root, "raw", "capability"))
}

// DataDir returns the directory for yearly data files, creating it if
// needed.
func (s *DataStore) DataDir() (string, error) {
	return s.ensure(filepath.Join(s.root, "raw", "data"))
}

// DBPath returns the path of the database file, creating its parent
// directory if needed.
func (s *DataStore) DBPath() (string, error) {
	dir, err := s.ensure(filepath.Join(s.root, "db"))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "weather.sqlite"), nil
}

// DataFiles lists the downloaded yearly data files in filename order.
// Entries without a .csv suffix are ignored; a crashed download can
// leave temp files behind.
func (s *DataStore) DataFiles() ([]*FileProperties, error) {
	dir, err := s.DataDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []*FileProperties
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		props, err := ParseFilename(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, props)
	}

	return files, nil
}

// CapabilityFiles lists the downloaded capability descriptors in
// filename order. Capability names end in "capability.csv" where data
// names carry a year, so they do not parse as FileProperties.
func (s *DataStore) CapabilityFiles() ([]string, error) {
	dir, err := s.CapabilityDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}

	return paths, nil
}

func (s *DataStore) ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// FileProperties are the attributes the archive encodes in a data
// file's name, for example:
//
//	midas-open_uk-hourly-weather-obs_dv-202407_antrim_01448_portglenone_qcv-1_1994.csv
type FileProperties struct {
	Path        string
	Collection  string
	Title       string
	Updated     string
	County      string
	StationID   int
	StationName string
	QCVersion   string
	Year        int
}

// ParseFilename extracts file properties from the underscore-delimited
// base name of path. Returns EINVALID if the name does not follow the
// archive's naming convention.
func ParseFilename(path string) (*FileProperties, error) {
	name := filepath.Base(path)
	parts := strings.Split(name, "_")
	if len(parts) != 8 {
		return nil, midas.Errorf(midas.EINVALID, "unrecognized data filename %q", name)
	}

	stationID, err := strconv.Atoi(parts[4])
	if err != nil {
		return nil, midas.Errorf(midas.EINVALID, "bad station id in filename %q", name)
	}

	yearPart, _, _ := strings.Cut(parts[7], ".")
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return nil, midas.Errorf(midas.EINVALID, "bad year in filename %q", name)
	}

	return &FileProperties{
		Path:        path,
		Collection:  parts[0],
		Title:       parts[1],
		Updated:     parts[2],
		County:      parts[3],
		StationID:   stationID,
		StationName: parts[5],
		QCVersion:   parts[6],
		Year:        year,
	}, nil
}
