package http

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ukmetdata/midas"
)

// Ensure Downloader implements midas.Downloader at compile time.
var _ midas.Downloader = (*Downloader)(nil)

// Downloader streams catalog files to a local directory. Writes go to a
// temporary file that is renamed into place on success, so an
// interrupted download never leaves a partial file that could pass for
// a complete one.
type Downloader struct {
	fetcher midas.Fetcher
}

// NewDownloader creates a new Downloader streaming bodies from fetcher.
func NewDownloader(fetcher midas.Fetcher) *Downloader {
	return &Downloader{fetcher: fetcher}
}

// Download fetches the file at the URL into dir. If the derived
// filename already exists the call is a no-op and skipped is true.
func (d *Downloader) Download(ctx context.Context, url string, dir string) (bool, error) {
	name, err := midas.FileName(url)
	if err != nil {
		return false, err
	}

	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		return true, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}

	body, err := d.fetcher.Stream(ctx, url)
	if err != nil {
		return false, err
	}
	defer body.Close()

	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return false, err
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}

	return false, os.Rename(tmp.Name(), dest)
}
