package goquery

import (
	"log/slog"
	"strings"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Ensure Extractor implements postrewriter.Extractor at compile time.
var _ postrewriter.Extractor = (*Extractor)(nil)

// Extractor finds and normalizes article content using selector lookup
// and heuristic scoring over a goquery document tree.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates a new Extractor. A nil logger discards output.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{logger: logger}
}

// Extract processes raw HTML and returns the normalized main content.
func (e *Extractor) Extract(rawHTML string) (*postrewriter.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "empty HTML input")
	}

	doc, err := parseFragment(rawHTML)
	if err != nil {
		return nil, err
	}

	title := extractTitle(doc)

	region, err := locateContent(doc)
	if err != nil {
		return nil, err
	}

	content, err := e.normalize(region)
	if err != nil {
		return nil, err
	}
	if content == "" {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "no content extracted")
	}

	e.logger.Debug("content extracted", "title", title, "length", len(content))

	return &postrewriter.ExtractResult{
		Title:       title,
		ContentHTML: content,
	}, nil
}
