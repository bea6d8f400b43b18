package main

import (
	"context"
	"io"

	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/fs"
	"github.com/ukmetdata/midas/harvest"
	"github.com/ukmetdata/midas/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Store     *fs.DataStore
	Stations  midas.StationService
	Runs      midas.RunService
	Files     midas.FileService
	Reader    midas.FileReader
	Harvester *harvest.Harvester
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DataDir string `help:"Directory holding downloads and the database" env:"MIDAS_DATA_DIR" default:"./data"`
	Verbose bool   `short:"v" help:"Log service activity to stderr"`

	Update   UpdateCmd   `cmd:"" help:"Harvest the catalog and download new files"`
	Process  ProcessCmd  `cmd:"" help:"Load downloaded files into the database"`
	Stations StationsCmd `cmd:"" help:"List stored stations"`
	Runs     RunsCmd     `cmd:"" help:"List harvest run history"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Version            string  `default:"202407" help:"Dataset version to harvest"`
	Concurrency        int     `short:"c" default:"8" help:"Concurrent request limit per stage"`
	Rate               float64 `short:"r" default:"0" help:"Requests per second per host (0 disables rate limiting)"`
	QCVersion0Fallback bool    `name:"qc-version-0-fallback" help:"Accept a station's qc-version-0 folder when it has no qc-version-1 data"`
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	Init bool `help:"Recreate the database before loading"`
}

// StationsCmd is the "stations" subcommand.
type StationsCmd struct {
	County string `help:"Filter by historic county"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}
