package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/badc"
	"github.com/ukmetdata/midas/ceda"
	"github.com/ukmetdata/midas/fs"
	"github.com/ukmetdata/midas/goquery"
	"github.com/ukmetdata/midas/harvest"
	midashttp "github.com/ukmetdata/midas/http"
	midasslog "github.com/ukmetdata/midas/slog"
	"github.com/ukmetdata/midas/sqlite"
)

func main() {
	// SIGINT and SIGTERM cancel the root context so in-flight
	// downloads abandon cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Data directory root. Resolved from the --data-dir flag unless
	// set before calling Run().
	DataDir string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	StationService midas.StationService
	RunService     midas.RunService
	FileService    midas.FileService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("midas"),
		kong.Description("Harvest the MIDAS Open uk-hourly-weather-obs catalog"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'midas --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if m.DataDir == "" {
		m.DataDir = cli.DataDir
	}
	store := fs.NewDataStore(m.DataDir)
	dbPath, err := store.DBPath()
	if err != nil {
		return fmt.Errorf("failed to prepare data directory %q: %w", m.DataDir, err)
	}

	if cmd == "process" && cli.Process.Init {
		if err := removeDatabase(dbPath); err != nil {
			return fmt.Errorf("failed to reset database at %q: %w", dbPath, err)
		}
	}

	// Open database
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set MIDAS_DATA_DIR to use a different data directory\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.StationService = sqlite.NewStationService(m.DB)
	m.RunService = sqlite.NewRunService(m.DB)
	m.FileService = sqlite.NewFileService(m.DB)
	deps.DB = m.DB
	deps.Store = store
	deps.Stations = m.StationService
	deps.Runs = m.RunService
	deps.Files = m.FileService
	deps.Reader = badc.NewReader()

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	// Wire the harvest pipeline only for update; it needs the archive
	// credential and the other commands never touch the network.
	if cmd == "update" {
		token := os.Getenv("CEDA_ACCESS_TOKEN")
		if token == "" {
			fmt.Fprintln(stderr, "CEDA_ACCESS_TOKEN environment variable not set. Create an access token at https://services-beta.ceda.ac.uk/account/token/")
			return fmt.Errorf("CEDA_ACCESS_TOKEN not set")
		}

		capabilityDir, err := store.CapabilityDir()
		if err != nil {
			return fmt.Errorf("failed to prepare capability directory: %w", err)
		}
		dataDir, err := store.DataDir()
		if err != nil {
			return fmt.Errorf("failed to prepare data directory: %w", err)
		}

		var fetcher midas.Fetcher = midashttp.NewFetcher(token)
		defer fetcher.Close()
		if logger != nil {
			fetcher = midasslog.NewLoggingFetcher(fetcher, logger)
		}

		opts := []ceda.Option{ceda.WithDatasetVersion(cli.Update.Version)}
		if cli.Update.QCVersion0Fallback {
			opts = append(opts, ceda.WithQCVersion0Fallback())
		}
		var catalog midas.CatalogService = ceda.NewCatalogService(fetcher, goquery.NewExtractor(), opts...)
		if logger != nil {
			catalog = midasslog.NewLoggingCatalogService(catalog, logger)
		}

		var downloader midas.Downloader = midashttp.NewDownloader(fetcher)
		if logger != nil {
			downloader = midasslog.NewLoggingDownloader(downloader, logger)
		}

		var limiter midas.HostLimiter
		if cli.Update.Rate > 0 {
			limiter = harvest.NewHostLimiter(cli.Update.Rate)
		}

		deps.Harvester = &harvest.Harvester{
			Catalog:       catalog,
			Downloader:    downloader,
			Limiter:       limiter,
			Concurrency:   cli.Update.Concurrency,
			CapabilityDir: capabilityDir,
			DataDir:       dataDir,
		}
	}

	return kongCtx.Run(deps)
}

// removeDatabase deletes the database file along with its WAL sidecars.
func removeDatabase(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}
