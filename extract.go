package postrewriter

import "context"

// ExtractResult holds the article content extracted from a web page.
type ExtractResult struct {
	// URL is the address the page was fetched from.
	URL string

	// Title is the article title, or "Untitled" when none was found.
	Title string

	// Domain is the host portion of URL.
	Domain string

	// ContentHTML is the normalized article body. It is always
	// well-formed: every opened tag is closed and the fragment can be
	// re-parsed standalone.
	ContentHTML string
}

// Extractor locates the main article body inside raw HTML and
// normalizes it into clean semantic markup.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// Returns ENOTFOUND only when the page has no body at all;
	// any other page degrades gracefully to the best candidate region.
	Extract(html string) (*ExtractResult, error)
}

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url. The context controls timeout
	// and cancellation.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases fetcher resources.
	Close() error
}

// Slicer narrows content to everything from a marker keyword onward.
type Slicer interface {
	// SliceFrom returns the content starting at the first element whose
	// text contains keyword, preserving element boundaries.
	// Returns ENOTFOUND when the keyword does not occur; callers fall
	// back to the unsliced content.
	SliceFrom(html, keyword string) (string, error)
}

// Truncator removes trailing boilerplate sections from content.
type Truncator interface {
	// Truncate cuts the content before the first configured boilerplate
	// marker and repairs any tags left open by the cut. Content without
	// markers is returned unchanged.
	Truncate(html string) (string, error)
}

// Converter transforms HTML content into Markdown for previews.
type Converter interface {
	Convert(html string) (string, error)
}
