package goquery

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"golang.org/x/net/html"
)

// minBareTextLen is the minimum length for a bare text node to be kept
// as a paragraph when collecting slice remainders.
const minBareTextLen = 10

// inlineWrapperTags are walked through when resolving the block that
// contains a keyword match.
var inlineWrapperTags = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true,
}

// Ensure Slicer implements postrewriter.Slicer at compile time.
var _ postrewriter.Slicer = (*Slicer)(nil)

// Slicer returns content from a caller-supplied marker keyword onward,
// preserving element boundaries.
type Slicer struct {
	logger *slog.Logger
}

// NewSlicer creates a new Slicer. A nil logger discards output.
func NewSlicer(logger *slog.Logger) *Slicer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Slicer{logger: logger}
}

// SliceFrom returns the content starting at the first element whose
// text contains keyword. The keyword is matched as a case-sensitive
// substring; when multiple elements contain it only the first
// depth-first match is used. Returns ENOTFOUND when the keyword is
// absent so callers can fall back to the unsliced content.
func (s *Slicer) SliceFrom(htmlContent, keyword string) (string, error) {
	if keyword == "" {
		return "", postrewriter.Errorf(postrewriter.EINVALID, "keyword required")
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	if isStructuredRecordText(doc.Text()) {
		if out, ok, err := s.sliceStructured(doc, keyword); err != nil {
			return "", err
		} else if ok {
			return out, nil
		}
		// Fall through to the generic walk when no record heading
		// matches the keyword exactly.
	}

	return s.sliceGeneric(doc, keyword)
}

// sliceStructured handles record-formatted documents: it finds the
// top-level element whose nested emphasis text equals the keyword and
// returns everything from that element onward, serialized verbatim.
func (s *Slicer) sliceStructured(doc *goquery.Document, keyword string) (string, bool, error) {
	children := doc.Find("body").First().Children()

	start := -1
	children.EachWithBreak(func(i int, child *goquery.Selection) bool {
		nested := strings.TrimSpace(child.Find("strong, em, b").First().Text())
		own := strings.TrimSpace(child.Text())
		if nested == keyword || own == keyword {
			start = i
			return false
		}
		return true
	})
	if start < 0 {
		return "", false, nil
	}

	var parts []string
	children.Slice(start, children.Length()).Each(func(_ int, child *goquery.Selection) {
		if out, err := goquery.OuterHtml(child); err == nil {
			parts = append(parts, out)
		}
	})

	s.logger.Debug("sliced structured content", "keyword", keyword, "blocks", len(parts))
	return strings.Join(parts, "\n\n"), true, nil
}

// sliceGeneric finds the first element containing the keyword, resolves
// its containing block through inline wrappers, and emits the remainder
// of that block plus every subsequent sibling.
func (s *Slicer) sliceGeneric(doc *goquery.Document, keyword string) (string, error) {
	var match *goquery.Selection
	doc.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		if isWrapperTag(goquery.NodeName(el)) {
			return true
		}
		if strings.Contains(el.Text(), keyword) {
			match = el
			return false
		}
		return true
	})
	if match == nil {
		return "", postrewriter.Errorf(postrewriter.ENOTFOUND, "keyword %q not found", keyword)
	}

	container := match.Parent()
	for container.Length() > 0 && inlineWrapperTags[goquery.NodeName(container)] {
		container = container.Parent()
	}
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}

	containerNode := container.Nodes[0]
	siblings := collectChildNodes(containerNode)

	keywordIdx := -1
	for i, n := range siblings {
		if strings.Contains(nodeText(n), keyword) {
			keywordIdx = i
			break
		}
	}
	if keywordIdx < 0 {
		return "", postrewriter.Errorf(postrewriter.ENOTFOUND, "keyword %q not found in containing block", keyword)
	}

	var parts []string

	text := nodeText(siblings[keywordIdx])
	if pos := strings.Index(text, keyword); pos >= 0 {
		parts = append(parts, smartParagraphSplit(text[pos:]))
	} else if out := renderNode(siblings[keywordIdx]); out != "" {
		parts = append(parts, out)
	}

	for _, n := range siblings[keywordIdx+1:] {
		switch n.Type {
		case html.ElementNode:
			if out := renderNode(n); out != "" {
				parts = append(parts, out)
			}
		case html.TextNode:
			trimmed := strings.TrimSpace(n.Data)
			if utf8.RuneCountInString(trimmed) > minBareTextLen {
				parts = append(parts, "<p>"+html.EscapeString(trimmed)+"</p>")
			}
		}
	}

	out := strings.Join(parts, "\n\n")
	out = stripEmptyTagPairs(out)
	out = collapseBlankLines(out)

	s.logger.Debug("sliced content", "keyword", keyword, "length", len(out))
	return strings.TrimSpace(out), nil
}

// collectChildNodes snapshots the direct children of a node, including
// text nodes.
func collectChildNodes(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// nodeText returns the concatenated text of a node subtree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// renderNode serializes a single node subtree.
func renderNode(n *html.Node) string {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}
