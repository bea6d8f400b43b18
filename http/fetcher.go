// Package http provides HTTP implementations of midas.Fetcher and
// midas.Downloader for the CEDA archive.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ukmetdata/midas"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Archive responses can be slow; 30s bounds a stalled request without
// cutting off healthy transfers.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements midas.Fetcher at compile time.
var _ midas.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves catalog resources over HTTP, attaching the archive
// bearer token to every request. It holds no mutable state after
// construction and is safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	token   string
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new Fetcher authenticating with the given
// bearer token.
func NewFetcher(token string, opts ...Option) *Fetcher {
	f := &Fetcher{
		token:   token,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the index page at the given URL and returns its body.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.do(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Stream retrieves the resource at the given URL without buffering the
// body. The caller must close the returned reader.
func (f *Fetcher) Stream(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := f.do(ctx, url)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (f *Fetcher) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, midas.Errorf(midas.EUNAUTHORIZED, "access denied (HTTP %d) for %s", resp.StatusCode, url)
		case http.StatusNotFound:
			return nil, midas.Errorf(midas.ENOTFOUND, "HTTP 404 for %s", url)
		default:
			return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
		}
	}

	return resp, nil
}

// Close releases idle transport connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
