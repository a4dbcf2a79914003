package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Tuning constants for the locator heuristics. The values are part of
// the extraction behavior; change them only together with the tests.
const (
	// minContentTextLen is the minimum text length for a selector match
	// or heuristic candidate to count as article content.
	minContentTextLen = 100

	// minTextDensity is the minimum text-to-markup ratio for a
	// heuristic candidate.
	minTextDensity = 0.05

	// minHeuristicParagraphs is the paragraph count above which a low
	// density candidate is still accepted.
	minHeuristicParagraphs = 3

	// paragraphScoreWeight scales the per-paragraph score bonus.
	paragraphScoreWeight = 0.1

	// minTitleLen is the minimum length for a candidate title to be
	// considered meaningful.
	minTitleLen = 5
)

// contentSelectors are common article container patterns, tried in
// order before falling back to heuristic scanning.
var contentSelectors = []string{
	"article",
	".post-content",
	".entry-content",
	".content",
	".article-content",
	".post-body",
	".story-body",
	".main-content",
	"#content",
	"#main-content",
	".text-content",
	".article-text",
	".post",
	".single-post",
	".blog-post",
	".page-content",
	"main",
	"[role=\"main\"]",
	".container .content",
	".wrapper .content",
}

// titleSelectors are tried in order when extracting the page title.
var titleSelectors = []string{
	"h1",
	".post-title",
	".entry-title",
	".article-title",
	".headline",
	"title",
}

// locateContent finds the element most likely to contain the article
// body. It degrades gracefully: known selectors first, then heuristic
// scoring, then the document body wholesale. Only a page without a body
// element returns ENOTFOUND.
func locateContent(doc *goquery.Document) (*goquery.Selection, error) {
	for _, selector := range contentSelectors {
		s := doc.Find(selector).First()
		if s.Length() > 0 && textLen(s) > minContentTextLen {
			return s, nil
		}
	}

	if best := bestHeuristicCandidate(doc); best != nil {
		return best, nil
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "no content region found")
	}
	return body, nil
}

// bestHeuristicCandidate scores container elements by text length and
// paragraph count and returns the highest scoring one, or nil when no
// element qualifies.
func bestHeuristicCandidate(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	var bestScore float64

	doc.Find("div, section, main, article, aside").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		textLength := utf8.RuneCountInString(text)
		if textLength <= minContentTextLen {
			return
		}

		markup, err := goquery.OuterHtml(s)
		if err != nil || len(markup) == 0 {
			return
		}
		density := float64(textLength) / float64(utf8.RuneCountInString(markup))
		paragraphs := s.Find("p").Length()

		if density <= minTextDensity && paragraphs <= minHeuristicParagraphs {
			return
		}

		score := float64(textLength) + paragraphScoreWeight*float64(paragraphs)*100
		if best == nil || score > bestScore {
			best = s
			bestScore = score
		}
	})

	return best
}

// extractTitle returns the page title, preferring article headings over
// the document title, or "Untitled" when nothing meaningful is found.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		s := doc.Find(selector).First()
		if s.Length() == 0 {
			continue
		}
		title := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(title) > minTitleLen {
			return title
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return "Untitled"
}
