package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukmetdata/midas"
	midashttp "github.com/ukmetdata/midas/http"
	"github.com/ukmetdata/midas/mock"
)

func TestDownloader_Download(t *testing.T) {
	t.Parallel()

	t.Run("streams the file to the derived name", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("csv content"))
		}))
		defer server.Close()

		fetcher := midashttp.NewFetcher("token")
		defer fetcher.Close()
		d := midashttp.NewDownloader(fetcher)
		dir := t.TempDir()

		skipped, err := d.Download(context.Background(), server.URL+"/station_qcv-1_1994.csv?download=1", dir)

		require.NoError(t, err)
		assert.False(t, skipped)

		data, err := os.ReadFile(filepath.Join(dir, "station_qcv-1_1994.csv"))
		require.NoError(t, err)
		assert.Equal(t, "csv content", string(data))
	})

	t.Run("skips an existing file without fetching", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "station_qcv-1_1994.csv"), []byte("existing"), 0644))

		streams := 0
		fetcher := &mock.Fetcher{
			StreamFn: func(_ context.Context, _ string) (io.ReadCloser, error) {
				streams++
				return io.NopCloser(strings.NewReader("fresh")), nil
			},
		}
		d := midashttp.NewDownloader(fetcher)

		skipped, err := d.Download(context.Background(), "https://data.ceda.ac.uk/badc/station_qcv-1_1994.csv", dir)

		require.NoError(t, err)
		assert.True(t, skipped)
		assert.Zero(t, streams)

		// Existing content stays untouched
		data, err := os.ReadFile(filepath.Join(dir, "station_qcv-1_1994.csv"))
		require.NoError(t, err)
		assert.Equal(t, "existing", string(data))
	})

	t.Run("second download of the same URL is a no-op", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fetches++
			_, _ = w.Write([]byte("csv content"))
		}))
		defer server.Close()

		fetcher := midashttp.NewFetcher("token")
		defer fetcher.Close()
		d := midashttp.NewDownloader(fetcher)
		dir := t.TempDir()
		url := server.URL + "/station_qcv-1_1994.csv"

		skipped, err := d.Download(context.Background(), url, dir)
		require.NoError(t, err)
		assert.False(t, skipped)

		skipped, err = d.Download(context.Background(), url, dir)
		require.NoError(t, err)
		assert.True(t, skipped)
		assert.Equal(t, 1, fetches)
	})

	t.Run("creates the destination directory on demand", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			StreamFn: func(_ context.Context, _ string) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader("data")), nil
			},
		}
		d := midashttp.NewDownloader(fetcher)
		dir := filepath.Join(t.TempDir(), "raw", "data")

		_, err := d.Download(context.Background(), "/badc/station_qcv-1_1994.csv", dir)

		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "station_qcv-1_1994.csv"))
	})

	t.Run("leaves no partial file when the stream fails", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			StreamFn: func(_ context.Context, _ string) (io.ReadCloser, error) {
				return io.NopCloser(&failingReader{}), nil
			},
		}
		d := midashttp.NewDownloader(fetcher)
		dir := t.TempDir()

		_, err := d.Download(context.Background(), "/badc/station_qcv-1_1994.csv", dir)
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			StreamFn: func(_ context.Context, _ string) (io.ReadCloser, error) {
				return nil, midas.Errorf(midas.EUNAUTHORIZED, "access denied")
			},
		}
		d := midashttp.NewDownloader(fetcher)

		_, err := d.Download(context.Background(), "/badc/station_qcv-1_1994.csv", t.TempDir())

		require.Error(t, err)
		assert.Equal(t, midas.EUNAUTHORIZED, midas.ErrorCode(err))
	})

	t.Run("rejects URLs without a csv segment", func(t *testing.T) {
		t.Parallel()

		d := midashttp.NewDownloader(&mock.Fetcher{})

		_, err := d.Download(context.Background(), "/badc/antrim/", t.TempDir())

		require.Error(t, err)
		assert.Equal(t, midas.EINVALID, midas.ErrorCode(err))
	})
}

// failingReader errors after a partial read.
type failingReader struct {
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.read {
		return 0, errors.New("connection reset")
	}
	r.read = true
	n := copy(p, []byte("partial"))
	return n, nil
}

// Compile-time verification that Downloader implements midas.Downloader
var _ midas.Downloader = (*midashttp.Downloader)(nil)
