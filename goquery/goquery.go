// Package goquery implements the content extraction and processing
// core on top of goquery document trees: locating article bodies,
// normalizing them into semantic HTML, slicing from keywords,
// truncating boilerplate, stripping text while preserving images, and
// merging content fragments.
//
// Every operation parses its own isolated tree; no document is shared
// across calls.
package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// parseFragment parses an HTML fragment into a fresh document.
// The fragment ends up wrapped in html/body elements; callers serialize
// back through renderBody to drop the wrappers again.
func parseFragment(fragment string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// renderBody serializes the children of the document body, i.e. the
// original fragment after any mutations.
func renderBody(doc *goquery.Document) (string, error) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", nil
	}
	out, err := body.Html()
	if err != nil {
		return "", postrewriter.Errorf(postrewriter.EINTERNAL, "failed to serialize content: %v", err)
	}
	return strings.TrimSpace(out), nil
}

// textLen returns the length in runes of an element's trimmed text.
func textLen(s *goquery.Selection) int {
	return utf8.RuneCountInString(strings.TrimSpace(s.Text()))
}

// isWrapperTag reports whether name is one of the html/head/body
// elements the parser adds around fragments.
func isWrapperTag(name string) bool {
	return name == "html" || name == "head" || name == "body"
}
