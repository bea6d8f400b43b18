package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/ukmetdata/midas"
)

// Ensure LoggingDownloader implements midas.Downloader.
var _ midas.Downloader = (*LoggingDownloader)(nil)

// LoggingDownloader wraps a Downloader with debug logging.
type LoggingDownloader struct {
	next   midas.Downloader
	logger *slog.Logger
}

// NewLoggingDownloader creates a new LoggingDownloader.
func NewLoggingDownloader(next midas.Downloader, logger *slog.Logger) *LoggingDownloader {
	return &LoggingDownloader{next: next, logger: logger}
}

// Download delegates to the wrapped downloader and logs the outcome.
func (d *LoggingDownloader) Download(ctx context.Context, url string, dir string) (skipped bool, err error) {
	defer func(begin time.Time) {
		d.logger.Info("download",
			"url", url,
			"dir", dir,
			"skipped", skipped,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Download(ctx, url, dir)
}
