package goquery

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// minFallbackTextLen is the minimum text length for a block to
	// survive the depth re-scan fallback.
	minFallbackTextLen = 20

	// minNameEntryLen is the minimum length for a capitalized run to be
	// treated as a name-list entry during smart splitting.
	minNameEntryLen = 10

	// minNameEntries is the number of name-list entries required before
	// long text is rendered as heading+paragraph pairs.
	minNameEntries = 3

	// sentencesPerParagraph groups sentences during smart splitting.
	sentencesPerParagraph = 2

	// minSentencesForSplit is the sentence count above which long text
	// is re-segmented instead of kept as a single paragraph.
	minSentencesForSplit = 3
)

// removeSelectors match boilerplate elements stripped before any other
// normalization step.
var removeSelectors = []string{
	"script",
	"style",
	"nav",
	"header",
	"footer",
	".advertisement",
	".ads",
	".social-share",
	".comments",
	".related-posts",
	".sidebar",
	".navigation",
	".menu",
}

// allowedTags survive the generic cleaning walk. Anything else is
// unwrapped: the tag is discarded but its cleaned children stay inline.
var allowedTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "br": true, "strong": true, "b": true,
	"em": true, "i": true, "u": true, "ul": true, "ol": true,
	"li": true, "blockquote": true, "div": true, "span": true,
}

var (
	blankLinesRE   = regexp.MustCompile(`\n\s*\n\s*\n+`)
	sentenceEndRE  = regexp.MustCompile(`[.!?]+\s+`)
	nameRunRE      = regexp.MustCompile(`[A-Z][a-z]+[A-Z]`)
	nameEntryRE    = regexp.MustCompile(`^[A-Z][a-z]+[A-Z]`)
	entryHeadRE    = regexp.MustCompile(`(?s)^([A-Z][a-z]+)(.*)$`)
	emptyTagPairRE map[string]*regexp.Regexp
)

func init() {
	emptyTagPairRE = make(map[string]*regexp.Regexp, len(allowedTags))
	for tag := range allowedTags {
		if tag == "br" {
			continue
		}
		emptyTagPairRE[tag] = regexp.MustCompile(fmt.Sprintf(`<%s>\s*</%s>`, tag, tag))
	}
}

// normalize cleans and restructures a content region into well-formed
// semantic HTML. It operates on an isolated re-parse of the region so
// the caller's document is never mutated.
func (e *Extractor) normalize(region *goquery.Selection) (string, error) {
	regionHTML, err := goquery.OuterHtml(region)
	if err != nil {
		return "", err
	}
	doc, err := parseFragment(regionHTML)
	if err != nil {
		return "", err
	}

	for _, selector := range removeSelectors {
		doc.Find(selector).Remove()
	}

	text := strings.TrimSpace(doc.Text())
	if isStructuredRecordText(text) {
		e.logger.Debug("structured record format detected")
		return formatStructuredRecords(text), nil
	}

	var parts []string
	doc.Find("body").Contents().Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if cleaned := strings.TrimSpace(cleanNode(n)); cleaned != "" {
				parts = append(parts, cleaned)
			}
		}
	})

	if len(parts) == 0 {
		e.logger.Debug("generic cleaning produced no output, re-scanning at depth")
		parts = fallbackBlocks(doc)
	}

	out := strings.Join(parts, "\n\n")
	out = stripEmptyTagPairs(out)
	out = collapseBlankLines(out)
	return strings.TrimSpace(out), nil
}

// cleanNode recursively rebuilds a node keeping only allowed tags.
// Disallowed elements are unwrapped, elements left without content are
// dropped, and text is re-escaped on the way out.
func cleanNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return html.EscapeString(n.Data)
	case html.ElementNode:
	default:
		return ""
	}

	var children []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cleaned := cleanNode(c); strings.TrimSpace(cleaned) != "" {
			children = append(children, cleaned)
		}
	}

	tag := n.Data
	if isWrapperTag(tag) || !allowedTags[tag] {
		return strings.Join(children, "")
	}
	if tag == "br" {
		return "<br/>"
	}

	inner := strings.Join(children, "")
	if strings.TrimSpace(inner) == "" {
		return ""
	}
	return "<" + tag + ">" + inner + "</" + tag + ">"
}

// fallbackBlocks re-scans the tree at depth for text-bearing blocks when
// the generic walk produced nothing. Headings keep their level; other
// blocks go through smart paragraph splitting.
func fallbackBlocks(doc *goquery.Document) []string {
	var parts []string
	doc.Find("p, div, h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) <= minFallbackTextLen {
			return
		}
		tag := goquery.NodeName(s)
		if strings.HasPrefix(tag, "h") {
			parts = append(parts, "<"+tag+">"+html.EscapeString(text)+"</"+tag+">")
			return
		}
		parts = append(parts, smartParagraphSplit(text))
	})
	return parts
}

// smartParagraphSplit re-segments freeform text. A name-list shape is
// rendered as heading+paragraph pairs; anything else is split on
// sentence boundaries with two sentences per paragraph.
func smartParagraphSplit(text string) string {
	if entries := nameListEntries(text); len(entries) > minNameEntries {
		var parts []string
		for _, entry := range entries {
			m := entryHeadRE.FindStringSubmatch(entry)
			if m == nil {
				continue
			}
			name, description := m[1], strings.TrimSpace(m[2])
			if description != "" {
				parts = append(parts, "<h3>"+html.EscapeString(name)+"</h3>\n<p>"+html.EscapeString(description)+"</p>")
			} else {
				parts = append(parts, "<h3>"+html.EscapeString(name)+"</h3>")
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "\n\n")
		}
	}

	sentences := sentenceEndRE.Split(text, -1)
	if len(sentences) <= minSentencesForSplit {
		return "<p>" + html.EscapeString(text) + "</p>"
	}

	var paragraphs []string
	var group []string
	flush := func() {
		joined := strings.TrimSpace(strings.Join(group, ". "))
		if joined != "" {
			if !strings.HasSuffix(joined, ".") {
				joined += "."
			}
			paragraphs = append(paragraphs, "<p>"+html.EscapeString(joined)+"</p>")
		}
		group = group[:0]
	}
	for _, sentence := range sentences {
		group = append(group, strings.TrimSpace(sentence))
		if len(group) >= sentencesPerParagraph {
			flush()
		}
	}
	if len(group) > 0 {
		flush()
	}
	return strings.Join(paragraphs, "\n\n")
}

// nameListEntries splits text before each capitalized run and keeps the
// segments that look like name entries.
func nameListEntries(text string) []string {
	var entries []string
	for _, part := range splitBeforeMatches(text, nameRunRE) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) > minNameEntryLen && nameEntryRE.MatchString(part) {
			entries = append(entries, part)
		}
	}
	return entries
}

// splitBeforeMatches splits s immediately before every match of re,
// keeping the matches at the head of each segment. RE2 has no
// lookahead, so the split positions are computed from match indices.
func splitBeforeMatches(s string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return []string{s}
	}
	var parts []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			parts = append(parts, s[prev:loc[0]])
		}
		prev = loc[0]
	}
	parts = append(parts, s[prev:])
	return parts
}

// stripEmptyTagPairs removes tag pairs left without content by the
// cleaning or truncation passes.
func stripEmptyTagPairs(s string) string {
	for _, re := range emptyTagPairRE {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

// collapseBlankLines reduces runs of three or more blank lines to one.
func collapseBlankLines(s string) string {
	return blankLinesRE.ReplaceAllString(s, "\n\n")
}
