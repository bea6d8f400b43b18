package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ukmetdata/midas"
)

// Ensure LoggingCatalogService implements midas.CatalogService.
var _ midas.CatalogService = (*LoggingCatalogService)(nil)

// LoggingCatalogService wraps a CatalogService with debug logging.
type LoggingCatalogService struct {
	next   midas.CatalogService
	logger *slog.Logger
}

// NewLoggingCatalogService creates a new LoggingCatalogService.
func NewLoggingCatalogService(next midas.CatalogService, logger *slog.Logger) *LoggingCatalogService {
	return &LoggingCatalogService{next: next, logger: logger}
}

// CountyLinks delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) CountyLinks(ctx context.Context) (links []midas.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("county resolution",
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CountyLinks(ctx)
}

// StationLinks delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) StationLinks(ctx context.Context, county midas.Link) (links []midas.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("station resolution",
			"county", county.Href,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.StationLinks(ctx, county)
}

// DataFolderLink delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) DataFolderLink(ctx context.Context, station midas.Link) (folder midas.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("folder resolution",
			"station", station.Href,
			"folder", folder.Href,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DataFolderLink(ctx, station)
}

// DataFileLinks delegates to the wrapped service and logs the operation.
func (s *LoggingCatalogService) DataFileLinks(ctx context.Context, folder midas.Link) (links []midas.Link, err error) {
	defer func(begin time.Time) {
		s.logger.Info("file resolution",
			"folder", folder.Href,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DataFileLinks(ctx, folder)
}

// FileURL delegates to the wrapped service.
func (s *LoggingCatalogService) FileURL(href string) string {
	return s.next.FileURL(href)
}
