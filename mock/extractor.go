package mock

import "github.com/ukmetdata/midas"

var _ midas.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of midas.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, selector string) ([]midas.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html string, selector string) ([]midas.Link, error) {
	return e.ExtractLinksFn(html, selector)
}
