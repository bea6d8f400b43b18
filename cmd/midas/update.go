package main

import (
	"fmt"
	"net/url"

	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/harvest"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	run := &midas.Run{DatasetVersion: c.Version}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Harvesting dataset version %s\n", c.Version)

	progress := func(event harvest.ProgressEvent) {
		switch event.Type {
		case harvest.ProgressStarted:
			if event.Stage == harvest.StageDownload {
				fmt.Fprintf(deps.Stdout, "Found %d files\n", event.Total)
			}
		case harvest.ProgressCompleted, harvest.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "\r[%d/%d] %s", event.Completed, event.Total, truncateURL(event.URL, 48))
		case harvest.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "skip %s: %v\n", event.URL, event.Error)
		case harvest.ProgressFinished:
			// Clear progress line
			fmt.Fprintf(deps.Stdout, "\r%80s\r", "")
			if event.Stage != harvest.StageDownload {
				fmt.Fprintf(deps.Stdout, "%s: %d/%d\n", event.Stage, event.Completed, event.Total)
			}
		}
	}

	result, runErr := deps.Harvester.Run(deps.Ctx, progress)

	// Record the outcome even when the pipeline aborted partway; the
	// counts cover whatever completed before the abort.
	if result != nil {
		if _, err := deps.Runs.FinishRun(deps.Ctx, run.ID, midas.RunUpdate{
			Downloaded: result.Downloads.Downloaded,
			Skipped:    result.Downloads.Skipped,
			Failed:     result.Downloads.Failed,
		}); err != nil {
			fmt.Fprintf(deps.Stderr, "error recording run: %s\n", midas.ErrorMessage(err))
		}
	}

	if runErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(runErr))
		return runErr
	}

	fmt.Fprintf(deps.Stdout, "Downloaded %d files (%d skipped, %d failed)\n",
		result.Downloads.Downloaded, result.Downloads.Skipped, result.Downloads.Failed)

	return nil
}

// truncateURL shortens a URL for display by showing only the path.
// Catalog URLs share a long host prefix, so the path carries all the
// useful signal.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback to simple right-truncation
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
