package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of midas.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url string, dir string) (bool, error)
}

func (d *Downloader) Download(ctx context.Context, url string, dir string) (bool, error) {
	return d.DownloadFn(ctx, url, dir)
}
