package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukmetdata/midas"
	main "github.com/ukmetdata/midas/cmd/midas"
	"github.com/ukmetdata/midas/mock"
)

func TestStationsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists stations with id, name, and county", func(t *testing.T) {
		t.Parallel()

		stations := &mock.StationService{
			FindStationsFn: func(_ context.Context, _ midas.StationFilter) ([]*midas.Station, error) {
				return []*midas.Station{
					{ID: "st-1", MidasID: 144, Name: "corgarff-castle-lodge", HistoricCounty: "aberdeenshire", Latitude: 57.163, Longitude: -3.247},
					{ID: "st-2", MidasID: 1448, Name: "portglenone", HistoricCounty: "antrim", Latitude: 54.865, Longitude: -6.458},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Stations: stations,
		}

		cmd := &main.StationsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "144")
		assert.Contains(t, output, "corgarff-castle-lodge")
		assert.Contains(t, output, "aberdeenshire")
		assert.Contains(t, output, "1448")
		assert.Contains(t, output, "portglenone")
		assert.Contains(t, output, "antrim")
		assert.Empty(t, stderr.String())
	})

	t.Run("passes county filter", func(t *testing.T) {
		t.Parallel()

		var received midas.StationFilter
		stations := &mock.StationService{
			FindStationsFn: func(_ context.Context, filter midas.StationFilter) ([]*midas.Station, error) {
				received = filter
				return []*midas.Station{{ID: "st-2", MidasID: 1448, Name: "portglenone", HistoricCounty: "antrim"}}, nil
			},
		}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   &bytes.Buffer{},
			Stations: stations,
		}

		cmd := &main.StationsCmd{County: "antrim"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, received.HistoricCounty)
		assert.Equal(t, "antrim", *received.HistoricCounty)
	})

	t.Run("shows helpful message when no stations exist", func(t *testing.T) {
		t.Parallel()

		stations := &mock.StationService{
			FindStationsFn: func(_ context.Context, _ midas.StationFilter) ([]*midas.Station, error) {
				return []*midas.Station{}, nil
			},
		}

		stdout := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Stations: stations,
		}

		cmd := &main.StationsCmd{}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No stations")
	})

	t.Run("returns error when FindStations fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")

		stations := &mock.StationService{
			FindStationsFn: func(_ context.Context, _ midas.StationFilter) ([]*midas.Station, error) {
				return nil, dbErr
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Stations: stations,
		}

		cmd := &main.StationsCmd{}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
