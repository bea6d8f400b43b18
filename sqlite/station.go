package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ukmetdata/midas"
)

// Compile-time interface verification.
var _ midas.StationService = (*StationService)(nil)

// StationService implements midas.StationService using SQLite.
type StationService struct {
	db *DB
}

// NewStationService creates a new StationService.
func NewStationService(db *DB) *StationService {
	return &StationService{db: db}
}

// CreateStation creates a new station. Every yearly file repeats the
// station block, so when a station with the same MIDAS ID is already
// stored the insert is a no-op and the stored identity is loaded back
// into station.
func (s *StationService) CreateStation(ctx context.Context, station *midas.Station) error {
	if err := station.Validate(); err != nil {
		return err
	}

	station.ID = uuid.New().String()
	station.CreatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO stations (id, midas_id, name, historic_county, latitude, longitude, height, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(midas_id) DO NOTHING
	`, station.ID, station.MidasID, station.Name, station.HistoricCounty,
		station.Latitude, station.Longitude, station.Height,
		station.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		existing, err := s.findStationByMidasID(ctx, station.MidasID)
		if err != nil {
			return err
		}
		*station = *existing
	}

	return nil
}

// FindStationByID retrieves a station by ID.
func (s *StationService) FindStationByID(ctx context.Context, id string) (*midas.Station, error) {
	return s.findStation(ctx, "id = ?", id)
}

func (s *StationService) findStationByMidasID(ctx context.Context, midasID int) (*midas.Station, error) {
	return s.findStation(ctx, "midas_id = ?", midasID)
}

func (s *StationService) findStation(ctx context.Context, where string, arg any) (*midas.Station, error) {
	var station midas.Station
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, midas_id, name, historic_county, latitude, longitude, height, created_at
		FROM stations
		WHERE `+where,
		arg).Scan(&station.ID, &station.MidasID, &station.Name, &station.HistoricCounty,
		&station.Latitude, &station.Longitude, &station.Height, &createdAt)

	if err == sql.ErrNoRows {
		return nil, midas.Errorf(midas.ENOTFOUND, "station not found")
	}
	if err != nil {
		return nil, err
	}

	station.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &station, nil
}

// FindStations retrieves stations matching the filter, ordered by
// MIDAS ID.
func (s *StationService) FindStations(ctx context.Context, filter midas.StationFilter) ([]*midas.Station, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, midas_id, name, historic_county, latitude, longitude, height, created_at FROM stations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.MidasID != nil {
		query.WriteString(" AND midas_id = ?")
		args = append(args, *filter.MidasID)
	}
	if filter.HistoricCounty != nil {
		query.WriteString(" AND historic_county = ?")
		args = append(args, *filter.HistoricCounty)
	}

	query.WriteString(" ORDER BY midas_id ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []*midas.Station
	for rows.Next() {
		var station midas.Station
		var createdAt string

		if err := rows.Scan(&station.ID, &station.MidasID, &station.Name, &station.HistoricCounty,
			&station.Latitude, &station.Longitude, &station.Height, &createdAt); err != nil {
			return nil, err
		}

		station.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		stations = append(stations, &station)
	}

	return stations, rows.Err()
}

// CreateObservations inserts observations in one transaction. Rows
// that duplicate a stored (station, time) pair are ignored, so
// re-processing a file does not multiply its observations.
func (s *StationService) CreateObservations(ctx context.Context, obs []*midas.Observation) error {
	if len(obs) == 0 {
		return nil
	}
	for _, o := range obs {
		if err := o.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO observations (station_id, observed_at, wind_speed, wind_direction, wind_unit_id, wind_opr_type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(station_id, observed_at) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, o.StationID, o.ObservedAt.Format(time.RFC3339),
			o.WindSpeed, o.WindDirection, o.WindUnitID, o.WindOprType); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ObservationCount returns the number of stored observations for a
// station.
func (s *StationService) ObservationCount(ctx context.Context, stationID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM observations WHERE station_id = ?", stationID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
