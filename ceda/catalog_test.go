package ceda_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukmetdata/midas"
	"github.com/ukmetdata/midas/ceda"
	"github.com/ukmetdata/midas/goquery"
	"github.com/ukmetdata/midas/mock"
)

// Ensure CatalogService implements midas.CatalogService at compile time.
var _ midas.CatalogService = (*ceda.CatalogService)(nil)

// newCatalog builds a CatalogService backed by canned HTML per URL and
// the real goquery extractor.
func newCatalog(t *testing.T, pages map[string]string, opts ...ceda.Option) *ceda.CatalogService {
	t.Helper()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", midas.Errorf(midas.ENOTFOUND, "HTTP 404 for %s", url)
			}
			return html, nil
		},
	}

	return ceda.NewCatalogService(fetcher, goquery.NewExtractor(), opts...)
}

func TestCatalogService_CountyLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns county links from the dataset root", func(t *testing.T) {
		t.Parallel()

		root := "https://data.ceda.ac.uk/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/"
		pages := map[string]string{
			root: `<div id="results">
				<a href="/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/antrim/">antrim</a>
				<a href="/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/argyll/">argyll</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		links, err := c.CountyLinks(context.Background())

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "antrim", links[0].Text)
		assert.Equal(t, "argyll", links[1].Text)
	})

	t.Run("excludes the change log and off-archive links", func(t *testing.T) {
		t.Parallel()

		root := "https://data.ceda.ac.uk/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/"
		pages := map[string]string{
			root: `<div id="results">
				<a href="/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/antrim/">antrim</a>
				<a href="/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/change_log_station_files">change log</a>
				<a href="/help/">help</a>
				<a href="/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/avon/">avon</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		links, err := c.CountyLinks(context.Background())

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "antrim", links[0].Text)
		assert.Equal(t, "avon", links[1].Text)
	})

	t.Run("fetches the root for the configured dataset version", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return "<div id=\"results\"></div>", nil
			},
		}

		c := ceda.NewCatalogService(fetcher, goquery.NewExtractor(), ceda.WithDatasetVersion("202507"))
		_, err := c.CountyLinks(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "https://data.ceda.ac.uk/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202507/", fetched)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		c := newCatalog(t, nil)
		_, err := c.CountyLinks(context.Background())

		require.Error(t, err)
		assert.Equal(t, midas.ENOTFOUND, midas.ErrorCode(err))
	})
}

func TestCatalogService_StationLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns every station in the county table", func(t *testing.T) {
		t.Parallel()

		county := midas.Link{Href: "/badc/dataset-version-202407/antrim/", Text: "antrim"}
		pages := map[string]string{
			"https://data.ceda.ac.uk" + county.Href: `<div id="content-main">
				<div class="row"><div><table>
					<tr><td><a href="/badc/dataset-version-202407/antrim/01448_portglenone/">01448_portglenone</a></td></tr>
					<tr><td><a href="/badc/dataset-version-202407/antrim/01450_ballymena/">01450_ballymena</a></td></tr>
				</table></div></div>
			</div>`,
		}

		c := newCatalog(t, pages)
		links, err := c.StationLinks(context.Background(), county)

		require.NoError(t, err)
		require.Len(t, links, 2)
		assert.Equal(t, "/badc/dataset-version-202407/antrim/01448_portglenone/", links[0].Href)
		assert.Equal(t, "/badc/dataset-version-202407/antrim/01450_ballymena/", links[1].Href)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		c := newCatalog(t, nil)
		_, err := c.StationLinks(context.Background(), midas.Link{Href: "/badc/antrim/"})

		require.Error(t, err)
	})
}

func TestCatalogService_DataFolderLink(t *testing.T) {
	t.Parallel()

	station := midas.Link{Href: "/badc/antrim/01448_portglenone/", Text: "01448_portglenone"}
	stationURL := "https://data.ceda.ac.uk" + station.Href

	t.Run("selects the qc-version-1 folder by anchor text", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/qc-version-0/">qc-version-0</a>
				<a href="/badc/antrim/01448_portglenone/qc-version-1/">qc-version-1</a>
				<a href="/badc/antrim/01448_portglenone/change_log">change_log</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		link, err := c.DataFolderLink(context.Background(), station)

		require.NoError(t, err)
		assert.Equal(t, "/badc/antrim/01448_portglenone/qc-version-1/", link.Href)
	})

	t.Run("matches on anchor text not href", func(t *testing.T) {
		t.Parallel()

		// The href mentions qc-version-1 but the visible label does not.
		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/qc-version-1/">latest</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		_, err := c.DataFolderLink(context.Background(), station)

		require.Error(t, err)
		assert.Equal(t, midas.ENOTFOUND, midas.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND when qc-version-1 is absent", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/qc-version-0/">qc-version-0</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		_, err := c.DataFolderLink(context.Background(), station)

		require.Error(t, err)
		assert.Equal(t, midas.ENOTFOUND, midas.ErrorCode(err))
	})

	t.Run("falls back to qc-version-0 when enabled", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/qc-version-0/">qc-version-0</a>
			</div>`,
		}

		c := newCatalog(t, pages, ceda.WithQCVersion0Fallback())
		link, err := c.DataFolderLink(context.Background(), station)

		require.NoError(t, err)
		assert.Equal(t, "/badc/antrim/01448_portglenone/qc-version-0/", link.Href)
	})

	t.Run("prefers qc-version-1 even with the fallback enabled", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/qc-version-0/">qc-version-0</a>
				<a href="/badc/antrim/01448_portglenone/qc-version-1/">qc-version-1</a>
			</div>`,
		}

		c := newCatalog(t, pages, ceda.WithQCVersion0Fallback())
		link, err := c.DataFolderLink(context.Background(), station)

		require.NoError(t, err)
		assert.Equal(t, "/badc/antrim/01448_portglenone/qc-version-1/", link.Href)
	})

	t.Run("returns ENOTFOUND when no QC folder exists at all", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			stationURL: `<div id="results">
				<a href="/badc/antrim/01448_portglenone/change_log">change_log</a>
			</div>`,
		}

		c := newCatalog(t, pages, ceda.WithQCVersion0Fallback())
		_, err := c.DataFolderLink(context.Background(), station)

		require.Error(t, err)
		assert.Equal(t, midas.ENOTFOUND, midas.ErrorCode(err))
	})
}

func TestCatalogService_DataFileLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns every file including the capability descriptor", func(t *testing.T) {
		t.Parallel()

		folder := midas.Link{Href: "/badc/antrim/01448_portglenone/qc-version-1/", Text: "qc-version-1"}
		pages := map[string]string{
			"https://data.ceda.ac.uk" + folder.Href: `<div id="results">
				<a href="/badc/.../qcv-1_capability.csv">capability</a>
				<a href="/badc/.../qcv-1_1994.csv">1994</a>
				<a href="/badc/.../qcv-1_1995.csv">1995</a>
			</div>`,
		}

		c := newCatalog(t, pages)
		links, err := c.DataFileLinks(context.Background(), folder)

		require.NoError(t, err)
		require.Len(t, links, 3)
		assert.Equal(t, "/badc/.../qcv-1_capability.csv", links[0].Href)
	})
}

func TestCatalogService_FileURL(t *testing.T) {
	t.Parallel()

	c := ceda.NewCatalogService(&mock.Fetcher{}, goquery.NewExtractor())

	assert.Equal(t,
		"https://data.ceda.ac.uk/badc/antrim/01448_portglenone/qc-version-1/file.csv",
		c.FileURL("/badc/antrim/01448_portglenone/qc-version-1/file.csv"))
}

func TestCatalogService_DatasetPath(t *testing.T) {
	t.Parallel()

	c := ceda.NewCatalogService(&mock.Fetcher{}, goquery.NewExtractor(), ceda.WithDatasetVersion("202407"))

	assert.Equal(t, "/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-202407/", c.DatasetPath())
}
