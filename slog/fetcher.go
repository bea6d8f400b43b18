// Package slog provides logging decorators for midas services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/ukmetdata/midas"
)

// Ensure LoggingFetcher implements midas.Fetcher.
var _ midas.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   midas.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next midas.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Stream logs the URL being streamed and delegates to the wrapped
// fetcher. The duration covers opening the stream, not reading it.
func (f *LoggingFetcher) Stream(ctx context.Context, url string) (body io.ReadCloser, err error) {
	defer func(begin time.Time) {
		f.logger.Info("stream",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Stream(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
