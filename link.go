package midas

import (
	"context"
	"strings"
)

// Link is a hyperlink discovered on a catalog index page: a relative
// href and the text of the anchor that carried it. Links are opaque to
// the pipeline; the stage that produced a link determines how it is
// interpreted downstream.
type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

// Validate returns an error if the link cannot identify a catalog node.
func (l Link) Validate() error {
	if l.Href == "" {
		return Errorf(EINVALID, "link href required")
	}
	return nil
}

// ResolvedFile is a link known to reference a downloadable artifact.
// Immutable once produced.
type ResolvedFile struct {
	Href string `json:"href"`
}

// IsCapability reports whether the file is a per-station capability
// descriptor rather than a year of observation data.
func (f ResolvedFile) IsCapability() bool {
	return strings.Contains(f.Href, "capability.csv")
}

// CatalogService resolves the catalog hierarchy one level at a time.
// Implementations fetch catalog index pages and extract the links that
// the next stage consumes. Safe for concurrent use.
type CatalogService interface {
	// CountyLinks fetches the dataset root page and returns one link per
	// county. Structural siblings that are not counties (the change-log
	// listing) are filtered out.
	CountyLinks(ctx context.Context) ([]Link, error)

	// StationLinks fetches a county page and returns one link per station.
	StationLinks(ctx context.Context, county Link) ([]Link, error)

	// DataFolderLink fetches a station page and returns the single
	// quality-controlled data folder for that station.
	// Returns ENOTFOUND if no folder at an accepted QC version exists.
	DataFolderLink(ctx context.Context, station Link) (Link, error)

	// DataFileLinks fetches a data folder page and returns one link per
	// downloadable file, including the capability descriptor.
	DataFileLinks(ctx context.Context, folder Link) ([]Link, error)

	// FileURL resolves a catalog href against the archive host.
	FileURL(href string) string
}
