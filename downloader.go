package midas

import "context"

// Downloader streams remote files into a local directory.
type Downloader interface {
	// Download fetches the file at the URL into dir, deriving the
	// filename from the URL's final path segment. If a file of that
	// name already exists the call is a no-op and skipped is true.
	// Writes are atomic: a partial download never leaves a file that
	// could be mistaken for a complete one.
	Download(ctx context.Context, url string, dir string) (skipped bool, err error)
}
