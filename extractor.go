package midas

// LinkExtractor extracts anchor links from catalog index pages.
// It is the single primitive shared by every resolution stage; stages
// differ only in the URL they fetch, the selector they apply, and the
// rule applied to the extracted links.
type LinkExtractor interface {
	// ExtractLinks parses the HTML and returns the anchors matched by
	// the CSS selector, in document order. Anchors with a missing or
	// empty href attribute are skipped.
	ExtractLinks(html string, selector string) ([]Link, error)
}
