// Package goquery provides a CSS selector based implementation of
// midas.LinkExtractor for the catalog's static index pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ukmetdata/midas"
)

// Ensure Extractor implements midas.LinkExtractor at compile time.
var _ midas.LinkExtractor = (*Extractor)(nil)

// Extractor extracts anchor links from HTML using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses the HTML and returns the anchors matched by the
// selector, in document order. Anchors with a missing or empty href
// attribute are skipped. Duplicate hrefs are preserved; the catalog may
// list the same node under more than one entry and downstream stages
// rely on seeing all of them.
func (e *Extractor) ExtractLinks(html string, selector string) ([]midas.Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, midas.Errorf(midas.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []midas.Link
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}

		links = append(links, midas.Link{
			Href: href,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}
