package mock

import (
	"context"

	"github.com/ukmetdata/midas"
)

var _ midas.CatalogService = (*CatalogService)(nil)

// CatalogService is a mock implementation of midas.CatalogService.
type CatalogService struct {
	CountyLinksFn    func(ctx context.Context) ([]midas.Link, error)
	StationLinksFn   func(ctx context.Context, county midas.Link) ([]midas.Link, error)
	DataFolderLinkFn func(ctx context.Context, station midas.Link) (midas.Link, error)
	DataFileLinksFn  func(ctx context.Context, folder midas.Link) ([]midas.Link, error)
	FileURLFn        func(href string) string
}

func (s *CatalogService) CountyLinks(ctx context.Context) ([]midas.Link, error) {
	return s.CountyLinksFn(ctx)
}

func (s *CatalogService) StationLinks(ctx context.Context, county midas.Link) ([]midas.Link, error) {
	return s.StationLinksFn(ctx, county)
}

func (s *CatalogService) DataFolderLink(ctx context.Context, station midas.Link) (midas.Link, error) {
	return s.DataFolderLinkFn(ctx, station)
}

func (s *CatalogService) DataFileLinks(ctx context.Context, folder midas.Link) ([]midas.Link, error) {
	return s.DataFileLinksFn(ctx, folder)
}

func (s *CatalogService) FileURL(href string) string {
	return s.FileURLFn(href)
}
