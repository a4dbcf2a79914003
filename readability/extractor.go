// Package readability provides a postrewriter.Extractor backed by the
// go-readability port of Mozilla's Readability. It is an alternative to
// the selector-heuristic extractor for pages where Readability's
// scoring works better.
package readability

import (
	"strings"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements postrewriter.Extractor at compile time.
var _ postrewriter.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*postrewriter.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	title := article.Title
	if title == "" {
		title = "Untitled"
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "no content region found")
	}

	return &postrewriter.ExtractResult{
		Title:       title,
		ContentHTML: strings.TrimSpace(article.Content),
	}, nil
}
