package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.StationService = (*StationService)(nil)

// StationService is a mock implementation of midas.StationService.
type StationService struct {
	CreateStationFn      func(ctx context.Context, station *midas.Station) error
	FindStationByIDFn    func(ctx context.Context, id string) (*midas.Station, error)
	FindStationsFn       func(ctx context.Context, filter midas.StationFilter) ([]*midas.Station, error)
	CreateObservationsFn func(ctx context.Context, obs []*midas.Observation) error
	ObservationCountFn   func(ctx context.Context, stationID string) (int, error)
}

func (s *StationService) CreateStation(ctx context.Context, station *midas.Station) error {
	return s.CreateStationFn(ctx, station)
}

func (s *StationService) FindStationByID(ctx context.Context, id string) (*midas.Station, error) {
	return s.FindStationByIDFn(ctx, id)
}

func (s *StationService) FindStations(ctx context.Context, filter midas.StationFilter) ([]*midas.Station, error) {
	return s.FindStationsFn(ctx, filter)
}

func (s *StationService) CreateObservations(ctx context.Context, obs []*midas.Observation) error {
	return s.CreateObservationsFn(ctx, obs)
}

func (s *StationService) ObservationCount(ctx context.Context, stationID string) (int, error) {
	return s.ObservationCountFn(ctx, stationID)
}
