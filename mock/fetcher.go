package mock

import (
	"context"
	"io"

	"github.com/ukmetdata/midas"
)

var _ midas.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of midas.Fetcher.
type Fetcher struct {
	FetchFn  func(ctx context.Context, url string) (string, error)
	StreamFn func(ctx context.Context, url string) (io.ReadCloser, error)
	CloseFn  func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Stream(ctx context.Context, url string) (io.ReadCloser, error) {
	return f.StreamFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
