package midas

import (
	"context"
	"io"
)

// Fetcher retrieves catalog resources over HTTP.
// Implementations attach the archive credential to every request and
// hold no mutable state after construction, so a single Fetcher is
// safe to share across concurrent resolution tasks.
type Fetcher interface {
	// Fetch retrieves the index page at the URL and returns its body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Stream retrieves the resource at the URL without buffering the
	// body in memory. The caller must close the returned reader.
	Stream(ctx context.Context, url string) (io.ReadCloser, error)

	// Close releases transport resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
