package main

import (
	"fmt"

	"github.com/ukmetdata/midas"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, midas.RunFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'midas update' to harvest the catalog.")
		return nil
	}

	for _, r := range runs {
		finished := "unfinished"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(deps.Stdout, "%s  dv-%s  %s  %s  %d downloaded, %d skipped, %d failed\n",
			r.ID, r.DatasetVersion, r.StartedAt.Format("2006-01-02 15:04"), finished,
			r.Downloaded, r.Skipped, r.Failed)
	}

	return nil
}
