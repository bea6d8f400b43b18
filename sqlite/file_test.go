package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/sqlite"
)

const testFilePath = "/data/raw/data/midas-open_uk-hourly-weather-obs_dv-202407_antrim_01448_portglenone_qcv-1_1994.csv"

func TestFileService_CreateFile(t *testing.T) {
	t.Parallel()

	t.Run("creates record with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		stations := sqlite.NewStationService(db)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		station := testStation(1448, "portglenone")
		require.NoError(t, stations.CreateStation(ctx, station))

		file := &midas.ProcessedFile{
			StationID:   station.ID,
			Path:        testFilePath,
			Year:        1994,
			ContentHash: "c5fa683e2d9d812c",
		}
		err := svc.CreateFile(ctx, file)
		require.NoError(t, err)

		assert.NotEmpty(t, file.ID, "ID should be generated")
		assert.False(t, file.ProcessedAt.IsZero(), "ProcessedAt should be set")
	})

	t.Run("replaces the record for an existing path", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		stations := sqlite.NewStationService(db)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		station := testStation(1448, "portglenone")
		require.NoError(t, stations.CreateStation(ctx, station))

		first := &midas.ProcessedFile{StationID: station.ID, Path: testFilePath, Year: 1994, ContentHash: "aaaa"}
		require.NoError(t, svc.CreateFile(ctx, first))

		// The archive republished the file; processing it again
		// replaces the stored hash.
		second := &midas.ProcessedFile{StationID: station.ID, Path: testFilePath, Year: 1994, ContentHash: "bbbb"}
		require.NoError(t, svc.CreateFile(ctx, second))

		found, err := svc.FindFileByPath(ctx, testFilePath)
		require.NoError(t, err)
		assert.Equal(t, "bbbb", found.ContentHash)

		files, err := svc.FindFiles(ctx, midas.FileFilter{})
		require.NoError(t, err)
		assert.Len(t, files, 1, "path should be recorded at most once")
	})

	t.Run("returns error for invalid record", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		err := svc.CreateFile(ctx, &midas.ProcessedFile{Path: testFilePath})
		require.Error(t, err)
		assert.Equal(t, midas.EINVALID, midas.ErrorCode(err))
	})
}

func TestFileService_FindFileByPath(t *testing.T) {
	t.Parallel()

	t.Run("returns record when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		stations := sqlite.NewStationService(db)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		station := testStation(1448, "portglenone")
		require.NoError(t, stations.CreateStation(ctx, station))

		file := &midas.ProcessedFile{StationID: station.ID, Path: testFilePath, Year: 1994, ContentHash: "aaaa"}
		require.NoError(t, svc.CreateFile(ctx, file))

		found, err := svc.FindFileByPath(ctx, testFilePath)
		require.NoError(t, err)
		assert.Equal(t, file.ID, found.ID)
		assert.Equal(t, station.ID, found.StationID)
		assert.Equal(t, 1994, found.Year)
		assert.Equal(t, "aaaa", found.ContentHash)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		_, err := svc.FindFileByPath(ctx, "/no/such/file.csv")
		require.Error(t, err)
		assert.Equal(t, midas.ENOTFOUND, midas.ErrorCode(err))
	})
}

func TestFileService_FindFiles(t *testing.T) {
	t.Parallel()

	t.Run("filters by station and year", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		stations := sqlite.NewStationService(db)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		portglenone := testStation(1448, "portglenone")
		require.NoError(t, stations.CreateStation(ctx, portglenone))
		corgarff := testStation(144, "corgarff-castle-lodge")
		require.NoError(t, stations.CreateStation(ctx, corgarff))

		for _, f := range []*midas.ProcessedFile{
			{StationID: portglenone.ID, Path: "/data/a_1994.csv", Year: 1994, ContentHash: "a"},
			{StationID: portglenone.ID, Path: "/data/a_1995.csv", Year: 1995, ContentHash: "b"},
			{StationID: corgarff.ID, Path: "/data/b_1994.csv", Year: 1994, ContentHash: "c"},
		} {
			require.NoError(t, svc.CreateFile(ctx, f))
		}

		files, err := svc.FindFiles(ctx, midas.FileFilter{StationID: &portglenone.ID})
		require.NoError(t, err)
		assert.Len(t, files, 2)

		year := 1994
		files, err = svc.FindFiles(ctx, midas.FileFilter{Year: &year})
		require.NoError(t, err)
		assert.Len(t, files, 2)

		files, err = svc.FindFiles(ctx, midas.FileFilter{StationID: &corgarff.ID, Year: &year})
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "/data/b_1994.csv", files[0].Path)
	})

	t.Run("returns records most recently processed first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		stations := sqlite.NewStationService(db)
		svc := sqlite.NewFileService(db)
		ctx := context.Background()

		station := testStation(1448, "portglenone")
		require.NoError(t, stations.CreateStation(ctx, station))

		// Insert rows directly so the processing times differ by more
		// than the timestamp resolution.
		_, err := db.ExecContext(ctx, `
			INSERT INTO files (id, station_id, path, year, content_hash, processed_at) VALUES
				('file-old', ?, '/data/a_1994.csv', 1994, 'a', '2024-01-01T00:00:00Z'),
				('file-new', ?, '/data/a_1995.csv', 1995, 'b', '2024-06-01T00:00:00Z')
		`, station.ID, station.ID)
		require.NoError(t, err)

		files, err := svc.FindFiles(ctx, midas.FileFilter{})
		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "file-new", files[0].ID)
		assert.Equal(t, "file-old", files[1].ID)
	})
}
