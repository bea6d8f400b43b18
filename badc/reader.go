// Package badc reads BADC-CSV files, the container format the archive
// publishes station data in. A file opens with a metadata section of
// tagged rows describing the station, followed by a table bracketed by
// a "data" marker row and an "end data" marker. In yearly data files
// the table holds hourly observations; in capability files it lists
// recording coverage and carries no observations.
package badc

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/ukmetdata/midas"
)

// Ensure Reader implements midas.FileReader at compile time.
var _ midas.FileReader = (*Reader)(nil)

// timeLayout is the timestamp format shared by the date_valid metadata
// row and the ob_time data column.
const timeLayout = "2006-01-02 15:04:05"

// Reader implements midas.FileReader for BADC-CSV data files.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile parses the BADC-CSV file at path. Metadata rows are located
// by their first field rather than by line number, so files with
// reordered or extra metadata still parse. Observation rows keep nil
// for wind fields the archive left blank or unparsable.
func (r *Reader) ReadFile(path string) (*midas.StationFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(path, f)
}

func parse(path string, src io.Reader) (*midas.StationFile, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1 // metadata rows have varying widths

	file := &midas.StationFile{}

	if err := parseMetadata(path, cr, file); err != nil {
		return nil, err
	}
	if err := file.Station.Validate(); err != nil {
		return nil, err
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, midas.Errorf(midas.EINVALID, "no column header in %s", path)
	}
	if err != nil {
		return nil, midas.Errorf(midas.EINVALID, "malformed column header in %s: %s", path, err)
	}

	// A table without an ob_time column holds capability coverage
	// rows, not observations.
	if !hasColumn(header, "ob_time") {
		return file, nil
	}

	if err := parseData(path, cr, header, file); err != nil {
		return nil, err
	}

	return file, nil
}

// parseMetadata consumes rows up to and including the "data" marker,
// filling in station fields as tagged rows are encountered.
func parseMetadata(path string, cr *csv.Reader, file *midas.StationFile) error {
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return midas.Errorf(midas.EINVALID, "no data section in %s", path)
		}
		if err != nil {
			return midas.Errorf(midas.EINVALID, "malformed metadata row in %s: %s", path, err)
		}

		if rec[0] == "data" {
			return nil
		}

		if err := parseStationRow(path, rec, file); err != nil {
			return err
		}
	}
}

// parseStationRow dispatches one metadata row by its tag. Values sit at
// index 2; two-value rows (location, date_valid) also use index 3.
// Untagged rows are column annotations and are skipped.
func parseStationRow(path string, rec []string, file *midas.StationFile) error {
	switch rec[0] {
	case "observation_station":
		if len(rec) > 2 {
			file.Station.Name = rec[2]
		}
	case "historic_county_name":
		if len(rec) > 2 {
			file.Station.HistoricCounty = rec[2]
		}
	case "midas_station_id":
		if len(rec) < 3 {
			return midas.Errorf(midas.EINVALID, "malformed midas_station_id row in %s", path)
		}
		id, err := strconv.Atoi(rec[2])
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad midas_station_id %q in %s", rec[2], path)
		}
		file.Station.MidasID = id
	case "location":
		if len(rec) < 4 {
			return midas.Errorf(midas.EINVALID, "malformed location row in %s", path)
		}
		lat, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad latitude %q in %s", rec[2], path)
		}
		lon, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad longitude %q in %s", rec[3], path)
		}
		file.Station.Latitude = lat
		file.Station.Longitude = lon
	case "height":
		if len(rec) < 3 {
			return midas.Errorf(midas.EINVALID, "malformed height row in %s", path)
		}
		height, err := strconv.Atoi(rec[2])
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad height %q in %s", rec[2], path)
		}
		file.Station.Height = height
	case "date_valid":
		if len(rec) < 4 {
			return midas.Errorf(midas.EINVALID, "malformed date_valid row in %s", path)
		}
		from, err := time.Parse(timeLayout, rec[2])
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad date_valid from %q in %s", rec[2], path)
		}
		to, err := time.Parse(timeLayout, rec[3])
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad date_valid to %q in %s", rec[3], path)
		}
		file.ValidFrom = from
		file.ValidTo = to
	}
	return nil
}

// parseData consumes observation rows until the "end data" marker or
// end of file.
func parseData(path string, cr *csv.Reader, header []string, file *midas.StationFile) error {
	cols, err := mapColumns(path, header)
	if err != nil {
		return err
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return midas.Errorf(midas.EINVALID, "malformed data row in %s: %s", path, err)
		}
		if rec[0] == "end data" {
			return nil
		}
		if cols.obTime >= len(rec) {
			return midas.Errorf(midas.EINVALID, "short data row in %s", path)
		}

		observedAt, err := time.Parse(timeLayout, rec[cols.obTime])
		if err != nil {
			return midas.Errorf(midas.EINVALID, "bad ob_time %q in %s", rec[cols.obTime], path)
		}

		file.Observations = append(file.Observations, &midas.Observation{
			ObservedAt:    observedAt,
			WindSpeed:     floatField(rec, cols.windSpeed),
			WindDirection: floatField(rec, cols.windDirection),
			WindUnitID:    intField(rec, cols.windUnitID),
			WindOprType:   intField(rec, cols.oprType),
		})
	}
}

// columns holds the positions of the observation columns, resolved from
// the header row by name.
type columns struct {
	obTime        int
	windSpeed     int
	windDirection int
	windUnitID    int
	oprType       int
}

func mapColumns(path string, header []string) (columns, error) {
	var c columns
	var err error
	if c.obTime, err = columnIndex(path, header, "ob_time"); err != nil {
		return c, err
	}
	if c.windSpeed, err = columnIndex(path, header, "wind_speed"); err != nil {
		return c, err
	}
	if c.windDirection, err = columnIndex(path, header, "wind_direction"); err != nil {
		return c, err
	}
	if c.windUnitID, err = columnIndex(path, header, "wind_speed_unit_id"); err != nil {
		return c, err
	}
	if c.oprType, err = columnIndex(path, header, "src_opr_type"); err != nil {
		return c, err
	}
	return c, nil
}

func columnIndex(path string, header []string, name string) (int, error) {
	for i, h := range header {
		if h == name {
			return i, nil
		}
	}
	return 0, midas.Errorf(midas.EINVALID, "column %s not found in %s", name, path)
}

func hasColumn(header []string, name string) bool {
	_, err := columnIndex("", header, name)
	return err == nil
}

// floatField parses the column at index i, returning nil when the value
// is blank or unparsable.
func floatField(rec []string, i int) *float64 {
	if i >= len(rec) {
		return nil
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return nil
	}
	return &v
}

// intField parses the column at index i, returning nil when the value
// is blank or unparsable.
func intField(rec []string, i int) *int {
	if i >= len(rec) {
		return nil
	}
	v, err := strconv.Atoi(rec[i])
	if err != nil {
		return nil
	}
	return &v
}
