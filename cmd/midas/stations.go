package main

import (
	"fmt"

	"github.com/ukmetdata/midas"
)

// Run executes the stations command.
func (c *StationsCmd) Run(deps *Dependencies) error {
	filter := midas.StationFilter{}
	if c.County != "" {
		filter.HistoricCounty = &c.County
	}

	stations, err := deps.Stations.FindStations(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", midas.ErrorMessage(err))
		return err
	}

	if len(stations) == 0 {
		fmt.Fprintln(deps.Stdout, "No stations found. Use 'midas process' to load downloaded files.")
		return nil
	}

	for _, s := range stations {
		fmt.Fprintf(deps.Stdout, "%5d  %s  %s  (%.3f, %.3f)\n",
			s.MidasID, s.Name, s.HistoricCounty, s.Latitude, s.Longitude)
	}

	return nil
}
