package goquery

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Ensure Truncator implements postrewriter.Truncator at compile time.
var _ postrewriter.Truncator = (*Truncator)(nil)

// Truncator removes trailing boilerplate sections by cutting content
// before the first configured marker phrase.
type Truncator struct {
	markers []string
	logger  *slog.Logger
}

// NewTruncator creates a Truncator for the given marker phrases.
// Nil markers use postrewriter.DefaultBoilerplateMarkers; a nil logger
// discards output.
func NewTruncator(markers []string, logger *slog.Logger) *Truncator {
	if markers == nil {
		markers = postrewriter.DefaultBoilerplateMarkers()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Truncator{markers: markers, logger: logger}
}

// Truncate scans the content case-insensitively for the markers in
// configuration order and cuts immediately before the first hit, then
// re-parses the remainder to close any tags left open by the cut.
// Content without markers is returned unchanged.
func (t *Truncator) Truncate(htmlContent string) (string, error) {
	cut := -1
	var matched string
	for _, marker := range t.markers {
		if idx := indexFold(htmlContent, marker); idx >= 0 {
			cut = idx
			matched = marker
			break
		}
	}
	if cut < 0 {
		return htmlContent, nil
	}

	t.logger.Debug("truncating at boilerplate marker", "marker", matched, "offset", cut)

	doc, err := parseFragment(htmlContent[:cut])
	if err != nil {
		// Keep the raw cut rather than failing the operation.
		return strings.TrimSpace(htmlContent[:cut]), postrewriter.Errorf(postrewriter.EINTERNAL, "failed to repair truncated content: %v", err)
	}
	out, err := renderBody(doc)
	if err != nil {
		return strings.TrimSpace(htmlContent[:cut]), err
	}

	out = stripEmptyTagPairs(out)
	out = collapseBlankLines(out)
	return strings.TrimSpace(out), nil
}

// indexFold returns the byte offset in s of the first case-insensitive
// occurrence of substr, or -1. Offsets are computed on s itself, so case
// folds that change byte length cannot shift the cut point.
func indexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	runes := utf8.RuneCountInString(substr)
	for i := range s {
		j, remaining := i, runes
		for remaining > 0 && j < len(s) {
			_, size := utf8.DecodeRuneInString(s[j:])
			j += size
			remaining--
		}
		if remaining > 0 {
			return -1
		}
		if strings.EqualFold(s[i:j], substr) {
			return i
		}
	}
	return -1
}
