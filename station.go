package midas

import (
	"context"
	"time"
)

// Station represents a weather observation station described by the
// header block of a downloaded catalog file.
type Station struct {
	ID             string    `json:"id"`
	MidasID        int       `json:"midasId"`
	Name           string    `json:"name"`
	HistoricCounty string    `json:"historicCounty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Height         int       `json:"height"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate returns an error if the station contains invalid fields.
func (s *Station) Validate() error {
	if s.MidasID <= 0 {
		return Errorf(EINVALID, "station MIDAS ID required")
	}
	if s.Name == "" {
		return Errorf(EINVALID, "station name required")
	}
	return nil
}

// Observation is a single timestamped wind observation at a station.
// Fields the source file leaves blank are nil, not zero.
type Observation struct {
	StationID     string    `json:"stationId"`
	ObservedAt    time.Time `json:"observedAt"`
	WindSpeed     *float64  `json:"windSpeed"`
	WindDirection *float64  `json:"windDirection"`
	WindUnitID    *int      `json:"windUnitId"`
	WindOprType   *int      `json:"windOprType"`
}

// Validate returns an error if the observation contains invalid fields.
func (o *Observation) Validate() error {
	if o.StationID == "" {
		return Errorf(EINVALID, "observation station ID required")
	}
	if o.ObservedAt.IsZero() {
		return Errorf(EINVALID, "observation time required")
	}
	return nil
}

// StationService represents a service for managing stations and their
// observations.
type StationService interface {
	// CreateStation creates a station, or loads the stored one when a
	// station with the same MIDAS ID already exists. The station's ID
	// and CreatedAt are set on return.
	CreateStation(ctx context.Context, station *Station) error

	// FindStationByID retrieves a station by ID.
	// Returns ENOTFOUND if station does not exist.
	FindStationByID(ctx context.Context, id string) (*Station, error)

	// FindStations retrieves stations matching the filter, ordered by
	// MIDAS ID.
	FindStations(ctx context.Context, filter StationFilter) ([]*Station, error)

	// CreateObservations inserts observations in a batch. Rows that
	// duplicate a stored (station, time) pair are ignored.
	CreateObservations(ctx context.Context, obs []*Observation) error

	// ObservationCount returns the number of stored observations for a
	// station.
	ObservationCount(ctx context.Context, stationID string) (int, error)
}

// StationFilter represents a filter for FindStations.
type StationFilter struct {
	ID             *string `json:"id"`
	MidasID        *int    `json:"midasId"`
	HistoricCounty *string `json:"historicCounty"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
