package main

import (
	"fmt"
	"path/filepath"

	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/fs"
)

// Run executes the process command.
func (c *ProcessCmd) Run(deps *Dependencies) error {
	// Capability descriptors register every station the archive knows,
	// including stations whose data years all failed to download.
	capabilities, err := deps.Store.CapabilityFiles()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(err))
		return err
	}

	registered := 0
	for _, path := range capabilities {
		if err := c.registerStation(deps, path); err != nil {
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", filepath.Base(path), err)
			continue
		}
		registered++
	}
	fmt.Fprintf(deps.Stdout, "Registered %d stations\n", registered)

	files, err := deps.Store.DataFiles()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(err))
		return err
	}

	var loaded, unchanged, failed, observations int
	for i, file := range files {
		fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", i+1, len(files), truncateName(filepath.Base(file.Path), 60))

		n, err := c.loadFile(deps, file)
		switch {
		case err != nil:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", filepath.Base(file.Path), err)
			failed++
		case n < 0:
			unchanged++
		default:
			loaded++
			observations += n
		}
	}
	if len(files) > 0 {
		// Clear progress line
		fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
	}

	fmt.Fprintf(deps.Stdout, "Loaded %d files, %d observations (%d unchanged, %d failed)\n",
		loaded, observations, unchanged, failed)

	return nil
}

// registerStation parses one capability descriptor and upserts its
// station.
func (c *ProcessCmd) registerStation(deps *Dependencies, path string) error {
	parsed, err := deps.Reader.ReadFile(path)
	if err != nil {
		return err
	}

	station := parsed.Station
	return deps.Stations.CreateStation(deps.Ctx, &station)
}

// loadFile parses one yearly data file and stores its observations,
// returning the number stored. Files whose content hash matches their
// stored record have already been loaded; those return -1.
func (c *ProcessCmd) loadFile(deps *Dependencies, file *fs.FileProperties) (int, error) {
	hash, err := fs.HashFile(file.Path)
	if err != nil {
		return 0, err
	}

	record, err := deps.Files.FindFileByPath(deps.Ctx, file.Path)
	if err != nil && midas.ErrorCode(err) != midas.ENOTFOUND {
		return 0, err
	}
	if record != nil && record.ContentHash == hash {
		return -1, nil
	}

	parsed, err := deps.Reader.ReadFile(file.Path)
	if err != nil {
		return 0, err
	}

	station := parsed.Station
	if err := deps.Stations.CreateStation(deps.Ctx, &station); err != nil {
		return 0, err
	}

	for _, ob := range parsed.Observations {
		ob.StationID = station.ID
	}
	if err := deps.Stations.CreateObservations(deps.Ctx, parsed.Observations); err != nil {
		return 0, err
	}

	if err := deps.Files.CreateFile(deps.Ctx, &midas.ProcessedFile{
		StationID:   station.ID,
		Path:        file.Path,
		Year:        file.Year,
		ContentHash: hash,
	}); err != nil {
		return 0, err
	}

	return len(parsed.Observations), nil
}

// truncateName keeps the tail of a long filename; the station and year
// sit at the end.
func truncateName(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	return "..." + name[len(name)-maxLen+3:]
}

