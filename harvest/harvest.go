// Package harvest orchestrates the catalog resolution and download
// pipeline. Each stage fans its items out across a bounded pool of
// workers, collects per-item failures without aborting the stage, and
// reports progress as items complete.
package harvest

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/ukmetdata/midas"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds in-flight requests per stage when no limit
// is configured. The archive is a shared academic service; the cap
// keeps a harvest from overwhelming it.
const DefaultConcurrency = 8

// Harvester runs the five-stage pipeline: counties, stations, data
// folders, data files, then downloads. Stages run one after another
// with each stage's output fully materialized before the next starts.
type Harvester struct {
	Catalog     midas.CatalogService
	Downloader  midas.Downloader
	Limiter     midas.HostLimiter // optional
	Concurrency int               // max in-flight items per stage

	CapabilityDir string
	DataDir       string
}

// Stage identifies one step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageCounties Stage = "counties"
	StageStations Stage = "stations"
	StageFolders  Stage = "folders"
	StageFiles    Stage = "files"
	StageDownload Stage = "download"
)

// StageStats counts one stage's item outcomes.
type StageStats struct {
	Resolved int
	Failed   int
}

// DownloadStats counts download outcomes. Skipped files already
// existed locally from an earlier run.
type DownloadStats struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Result holds the outcome of a harvest.
type Result struct {
	Counties  StageStats
	Stations  StageStats
	Folders   StageStats
	Files     StageStats
	Downloads DownloadStats
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Stage     Stage
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// stageResult holds the outcome of resolving a single item.
type stageResult struct {
	position int
	url      string
	links    []midas.Link
	err      error
}

// Run executes the full pipeline. Items that fail resolution are
// reported and excluded from later stages; a stage aborts the run only
// when every one of its items failed.
func (h *Harvester) Run(ctx context.Context, progress ProgressFunc) (*Result, error) {
	res := &Result{}

	counties, stats, err := h.runCounties(ctx, progress)
	res.Counties = stats
	if err != nil {
		return res, err
	}

	stations, stats, err := h.resolveStage(ctx, StageStations, counties, progress, h.Catalog.StationLinks)
	res.Stations = stats
	if err != nil {
		return res, err
	}

	folders, stats, err := h.resolveStage(ctx, StageFolders, stations, progress, func(ctx context.Context, station midas.Link) ([]midas.Link, error) {
		folder, err := h.Catalog.DataFolderLink(ctx, station)
		if err != nil {
			return nil, err
		}
		return []midas.Link{folder}, nil
	})
	res.Folders = stats
	if err != nil {
		return res, err
	}

	links, stats, err := h.resolveStage(ctx, StageFiles, folders, progress, h.Catalog.DataFileLinks)
	res.Files = stats
	if err != nil {
		return res, err
	}

	files := make([]midas.ResolvedFile, len(links))
	for i, link := range links {
		files[i] = midas.ResolvedFile{Href: link.Href}
	}

	res.Downloads, err = h.download(ctx, files, progress)
	return res, err
}

// runCounties resolves the dataset root, the pipeline's single seed item.
func (h *Harvester) runCounties(ctx context.Context, progress ProgressFunc) ([]midas.Link, StageStats, error) {
	emit(progress, ProgressEvent{Stage: StageCounties, Type: ProgressStarted, Total: 1})

	if err := h.wait(ctx); err != nil {
		emit(progress, ProgressEvent{Stage: StageCounties, Type: ProgressFailed, Completed: 1, Total: 1, Error: err})
		return nil, StageStats{Failed: 1}, fmt.Errorf("counties stage failed: %w", err)
	}

	counties, err := h.Catalog.CountyLinks(ctx)
	if err != nil {
		emit(progress, ProgressEvent{Stage: StageCounties, Type: ProgressFailed, Completed: 1, Total: 1, Error: err})
		return nil, StageStats{Failed: 1}, fmt.Errorf("counties stage failed: %w", err)
	}

	emit(progress, ProgressEvent{Stage: StageCounties, Type: ProgressCompleted, Completed: 1, Total: 1})
	emit(progress, ProgressEvent{Stage: StageCounties, Type: ProgressFinished, Completed: 1, Total: 1})

	return counties, StageStats{Resolved: 1}, nil
}

// resolveStage fans resolve out over items with bounded concurrency and
// partitions the outcomes. The flattened successes preserve item input
// order; completion order is not deterministic and not relied on.
func (h *Harvester) resolveStage(ctx context.Context, stage Stage, items []midas.Link, progress ProgressFunc, resolve func(context.Context, midas.Link) ([]midas.Link, error)) ([]midas.Link, StageStats, error) {
	total := len(items)
	emit(progress, ProgressEvent{Stage: stage, Type: ProgressStarted, Total: total})

	resultCh := make(chan stageResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for i, item := range items {
			i, item := i, item
			g.Go(func() error {
				result := stageResult{position: i, url: item.Href}
				if err := h.wait(gctx); err != nil {
					result.err = err
				} else {
					result.links, result.err = resolve(gctx, item)
				}
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]stageResult, total)
	var stats StageStats
	var firstErr error
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			stats.Failed++
			if firstErr == nil {
				firstErr = result.err
			}
			emit(progress, ProgressEvent{
				Stage:     stage,
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
				Error:     result.err,
			})
		} else {
			stats.Resolved++
			emit(progress, ProgressEvent{
				Stage:     stage,
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	emit(progress, ProgressEvent{Stage: stage, Type: ProgressFinished, Completed: total, Total: total})

	if total > 0 && stats.Failed == total {
		return nil, stats, fmt.Errorf("%s stage failed for all %d items: %w", stage, total, firstErr)
	}

	var links []midas.Link
	for _, result := range results {
		if result.err != nil {
			continue
		}
		links = append(links, result.links...)
	}

	return links, stats, nil
}

// download fetches every resolved file, routing capability descriptors
// and data files to their own directories. Files that already exist
// locally are counted as skipped; each file increments the progress
// counter exactly once either way.
func (h *Harvester) download(ctx context.Context, files []midas.ResolvedFile, progress ProgressFunc) (DownloadStats, error) {
	total := len(files)
	emit(progress, ProgressEvent{Stage: StageDownload, Type: ProgressStarted, Total: total})

	type downloadResult struct {
		url     string
		skipped bool
		err     error
	}
	resultCh := make(chan downloadResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency())

	go func() {
		for _, file := range files {
			file := file
			g.Go(func() error {
				dir := h.DataDir
				if file.IsCapability() {
					dir = h.CapabilityDir
				}

				fileURL := h.Catalog.FileURL(file.Href)
				result := downloadResult{url: fileURL}
				if err := h.wait(gctx); err != nil {
					result.err = err
				} else {
					result.skipped, result.err = h.Downloader.Download(gctx, fileURL, dir)
				}
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var stats DownloadStats
	var firstErr error
	for result := range resultCh {
		completed.Add(1)

		event := ProgressEvent{
			Stage:     StageDownload,
			Completed: int(completed.Load()),
			Total:     total,
			URL:       result.url,
		}
		switch {
		case result.err != nil:
			stats.Failed++
			if firstErr == nil {
				firstErr = result.err
			}
			event.Type = ProgressFailed
			event.Error = result.err
		case result.skipped:
			stats.Skipped++
			event.Type = ProgressSkipped
		default:
			stats.Downloaded++
			event.Type = ProgressCompleted
		}
		emit(progress, event)
	}

	emit(progress, ProgressEvent{Stage: StageDownload, Type: ProgressFinished, Completed: total, Total: total})

	if total > 0 && stats.Failed == total {
		return stats, fmt.Errorf("download stage failed for all %d files: %w", total, firstErr)
	}

	return stats, nil
}

// wait blocks on the host rate limiter when one is configured.
func (h *Harvester) wait(ctx context.Context) error {
	if h.Limiter == nil {
		return nil
	}
	return h.Limiter.Wait(ctx, h.host())
}

func (h *Harvester) host() string {
	u, err := url.Parse(h.Catalog.FileURL("/"))
	if err != nil {
		return ""
	}
	return u.Host
}

func (h *Harvester) concurrency() int {
	if h.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return h.Concurrency
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
