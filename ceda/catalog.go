// Package ceda resolves the MIDAS Open catalog hierarchy on the CEDA
// archive: counties, stations, quality-controlled data folders, and the
// data files inside them.
package ceda

import (
	"context"
	"fmt"
	"strings"

	"github.com/ukmetdata/midas"
)

// DefaultRootURL is the public host serving the catalog.
const DefaultRootURL = "https://data.ceda.ac.uk"

// DefaultDatasetVersion is the catalog release harvested when no
// version is configured.
const DefaultDatasetVersion = "202407"

const (
	// datasetPathFormat locates a dataset release under the archive root.
	datasetPathFormat = "/badc/ukmo-midas-open/data/uk-hourly-weather-obs/dataset-version-%s/"

	// basePathPrefix anchors every valid catalog link. The dataset root
	// also lists navigation links outside the archive tree; those are
	// not counties.
	basePathPrefix = "/badc"

	// changeLogSuffix marks the change-log listing that sits among the
	// county links at the dataset root.
	changeLogSuffix = "change_log_station_files"

	// resultsSelector matches the link table on root, station and data
	// folder pages. countySelector matches the station table on county
	// pages, which use a different layout.
	resultsSelector = "#results a"
	countySelector  = "#content-main > div.row > div > table a"

	// Anchor text of the QC folder links on a station page.
	qcVersion1 = "qc-version-1"
	qcVersion0 = "qc-version-0"
)

// Ensure CatalogService implements midas.CatalogService at compile time.
var _ midas.CatalogService = (*CatalogService)(nil)

// CatalogService resolves catalog pages into the links the next
// resolution stage consumes. It holds no mutable state after
// construction and is safe for concurrent use.
type CatalogService struct {
	fetcher   midas.Fetcher
	extractor midas.LinkExtractor

	rootURL        string
	datasetVersion string
	qcv0Fallback   bool
}

// Option configures a CatalogService.
type Option func(*CatalogService)

// WithRootURL overrides the archive host. Used by tests to point the
// service at a local server.
func WithRootURL(url string) Option {
	return func(s *CatalogService) {
		s.rootURL = strings.TrimSuffix(url, "/")
	}
}

// WithDatasetVersion selects the catalog release to harvest.
// Defaults to DefaultDatasetVersion.
func WithDatasetVersion(version string) Option {
	return func(s *CatalogService) {
		s.datasetVersion = version
	}
}

// WithQCVersion0Fallback accepts a station's qc-version-0 folder when it
// has no qc-version-1 data. Without the fallback such stations fail
// resolution instead.
func WithQCVersion0Fallback() Option {
	return func(s *CatalogService) {
		s.qcv0Fallback = true
	}
}

// NewCatalogService creates a CatalogService resolving pages fetched by
// fetcher through extractor.
func NewCatalogService(fetcher midas.Fetcher, extractor midas.LinkExtractor, opts ...Option) *CatalogService {
	s := &CatalogService{
		fetcher:        fetcher,
		extractor:      extractor,
		rootURL:        DefaultRootURL,
		datasetVersion: DefaultDatasetVersion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DatasetPath returns the catalog path of the configured dataset release.
func (s *CatalogService) DatasetPath() string {
	return fmt.Sprintf(datasetPathFormat, s.datasetVersion)
}

// FileURL resolves a catalog href against the archive host.
func (s *CatalogService) FileURL(href string) string {
	return s.rootURL + href
}

// CountyLinks fetches the dataset root page and returns one link per
// county. The change-log listing, a structural sibling of the county
// rows, is excluded.
func (s *CatalogService) CountyLinks(ctx context.Context) ([]midas.Link, error) {
	links, err := s.selectLinks(ctx, s.DatasetPath(), resultsSelector)
	if err != nil {
		return nil, err
	}

	counties := make([]midas.Link, 0, len(links))
	for _, link := range links {
		if !strings.HasPrefix(link.Href, basePathPrefix) {
			continue
		}
		if strings.HasSuffix(link.Href, changeLogSuffix) {
			continue
		}
		counties = append(counties, link)
	}

	return counties, nil
}

// StationLinks fetches a county page and returns one link per station.
func (s *CatalogService) StationLinks(ctx context.Context, county midas.Link) ([]midas.Link, error) {
	return s.selectLinks(ctx, county.Href, countySelector)
}

// DataFolderLink fetches a station page and returns the folder holding
// the preferred quality-control version of its data. The folder is
// identified by anchor text, not href; station pages list QC variants
// side by side. Returns ENOTFOUND if no accepted QC version is present.
func (s *CatalogService) DataFolderLink(ctx context.Context, station midas.Link) (midas.Link, error) {
	links, err := s.selectLinks(ctx, station.Href, resultsSelector)
	if err != nil {
		return midas.Link{}, err
	}

	for _, link := range links {
		if link.Text == qcVersion1 {
			return link, nil
		}
	}

	if s.qcv0Fallback {
		for _, link := range links {
			if link.Text == qcVersion0 {
				return link, nil
			}
		}
		return midas.Link{}, midas.Errorf(midas.ENOTFOUND, "no %s or %s folder for station %s", qcVersion1, qcVersion0, station.Href)
	}

	return midas.Link{}, midas.Errorf(midas.ENOTFOUND, "no %s folder for station %s", qcVersion1, station.Href)
}

// DataFileLinks fetches a data folder page and returns one link per
// downloadable file, including the capability descriptor. No filtering
// or deduplication is applied.
func (s *CatalogService) DataFileLinks(ctx context.Context, folder midas.Link) ([]midas.Link, error) {
	return s.selectLinks(ctx, folder.Href, resultsSelector)
}

func (s *CatalogService) selectLinks(ctx context.Context, path string, selector string) ([]midas.Link, error) {
	html, err := s.fetcher.Fetch(ctx, s.rootURL+path)
	if err != nil {
		return nil, err
	}

	return s.extractor.ExtractLinks(html, selector)
}
