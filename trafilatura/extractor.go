// Package trafilatura provides a postrewriter.Extractor backed by
// go-trafilatura, an alternative to the selector-heuristic extractor
// for news-style pages.
package trafilatura

import (
	"bytes"
	"strings"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements postrewriter.Extractor at compile time.
var _ postrewriter.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "no content region found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINTERNAL, "failed to serialize content: %v", err)
	}

	title := result.Metadata.Title
	if title == "" {
		title = "Untitled"
	}

	return &postrewriter.ExtractResult{
		Title:       title,
		ContentHTML: buf.String(),
	}, nil
}
