package goquery

import (
	"regexp"
	"strings"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"golang.org/x/net/html"
)

// Field markers for structured name records. The markers are matched
// case-sensitively and in this order within each record.
const (
	markerOrigin     = "Origin:"
	markerMeaning    = "Meaning:"
	markerPopularity = "Popularity:"
)

const (
	// structuredMarkerMinCount is how often every marker must occur in
	// the aggregate text before the structured path is taken.
	structuredMarkerMinCount = 3

	// structuredMarkerMaxSpread is the allowed difference between the
	// most and least frequent marker.
	structuredMarkerMaxSpread = 2
)

var (
	recordNameRE      = regexp.MustCompile(`^[A-Z][A-Za-z'-]*$`)
	originCleanRE     = regexp.MustCompile(`[^\w ,.\-]+`)
	meaningCleanRE    = regexp.MustCompile(`[*_]+`)
	popularityCleanRE = regexp.MustCompile(`[^\w #>]+`)
)

// isStructuredRecordText reports whether the aggregate text looks like
// a sequence of name records: every field marker occurs at least three
// times and the marker counts stay close together.
func isStructuredRecordText(text string) bool {
	counts := []int{
		strings.Count(text, markerOrigin),
		strings.Count(text, markerMeaning),
		strings.Count(text, markerPopularity),
	}
	minCount, maxCount := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}
	return minCount >= structuredMarkerMinCount && maxCount-minCount <= structuredMarkerMaxSpread
}

// ExtractStructuredRecords scans freeform text for name records of the
// shape "Name Origin: ... Meaning: ... Popularity: ...". Records
// missing any field are dropped rather than emitted as partials.
func ExtractStructuredRecords(text string) []postrewriter.StructuredRecord {
	locs := indexAll(text, markerOrigin)

	var records []postrewriter.StructuredRecord
	for i, loc := range locs {
		name, _ := trailingName(text[:loc])
		if name == "" {
			continue
		}

		segEnd := len(text)
		if i+1 < len(locs) {
			segEnd = locs[i+1]
			if _, nameStart := trailingName(text[:locs[i+1]]); nameStart >= 0 {
				segEnd = nameStart
			}
		}
		if segEnd < loc+len(markerOrigin) {
			continue
		}

		origin, meaning, popularity := splitRecordFields(text[loc+len(markerOrigin) : segEnd])
		record := postrewriter.StructuredRecord{
			Name:       name,
			Origin:     cleanOrigin(origin),
			Meaning:    cleanMeaning(meaning),
			Popularity: cleanPopularity(popularity),
		}
		if record.Validate() == nil {
			records = append(records, record)
		}
	}
	return records
}

// looseStructuredRecords is the lossy fallback: split on the literal
// origin marker and attempt per-segment field extraction with looser
// rules. Field values containing capitalized words can bleed between
// records here; that is an accepted quality risk of this path.
func looseStructuredRecords(text string) []postrewriter.StructuredRecord {
	segments := strings.Split(text, markerOrigin)
	if len(segments) < 2 {
		return nil
	}

	var records []postrewriter.StructuredRecord
	for i := 1; i < len(segments); i++ {
		name := lastToken(segments[i-1])
		if name == "" {
			continue
		}

		origin, meaning, popularity := splitRecordFields(segments[i])
		record := postrewriter.StructuredRecord{
			Name:       name,
			Origin:     cleanOrigin(origin),
			Meaning:    cleanMeaning(meaning),
			Popularity: cleanPopularity(popularity),
		}
		if record.Validate() == nil {
			records = append(records, record)
		}
	}
	return records
}

// formatStructuredRecords renders the detected records as heading plus
// attribute-list markup. The fallback chain is deliberate: strict
// extraction, then the loose origin-split pass, then the raw text as a
// single paragraph.
func formatStructuredRecords(text string) string {
	records := ExtractStructuredRecords(text)
	if len(records) == 0 {
		records = looseStructuredRecords(text)
	}
	if len(records) == 0 {
		return "<p>" + html.EscapeString(text) + "</p>"
	}

	parts := make([]string, 0, len(records))
	for _, r := range records {
		var b strings.Builder
		b.WriteString("<h3>" + html.EscapeString(r.Name) + "</h3>\n<ul>\n")
		b.WriteString("<li><strong>" + markerOrigin + "</strong> " + html.EscapeString(r.Origin) + "</li>\n")
		b.WriteString("<li><strong>" + markerMeaning + "</strong> <em>" + html.EscapeString(r.Meaning) + "</em></li>\n")
		b.WriteString("<li><strong>" + markerPopularity + "</strong> " + html.EscapeString(r.Popularity) + "</li>\n")
		b.WriteString("</ul>")
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "\n\n")
}

// splitRecordFields cuts a record segment into its origin, meaning and
// popularity values using the first occurrence of each marker in order.
func splitRecordFields(segment string) (origin, meaning, popularity string) {
	m := strings.Index(segment, markerMeaning)
	if m < 0 {
		return strings.TrimSpace(segment), "", ""
	}
	origin = strings.TrimSpace(segment[:m])

	rest := segment[m+len(markerMeaning):]
	p := strings.Index(rest, markerPopularity)
	if p < 0 {
		return origin, strings.TrimSpace(rest), ""
	}
	return origin, strings.TrimSpace(rest[:p]), strings.TrimSpace(rest[p+len(markerPopularity):])
}

// trailingName returns the capitalized word immediately preceding the
// given prefix end, with its byte offset, or ("", -1) when the prefix
// does not end in one. Names are taken as single words; the regular
// expression boundaries here are fragile against multi-word names and
// intentionally minimal.
func trailingName(prefix string) (string, int) {
	trimmed := strings.TrimRight(prefix, " \t\n\r")
	if trimmed == "" {
		return "", -1
	}
	start := strings.LastIndexAny(trimmed, " \t\n\r") + 1
	word := trimmed[start:]
	if !recordNameRE.MatchString(word) {
		return "", -1
	}
	return word, start
}

// lastToken returns the final whitespace-delimited token of s.
func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// indexAll returns the byte offsets of every occurrence of sub in s.
func indexAll(s, sub string) []int {
	var locs []int
	offset := 0
	for {
		i := strings.Index(s[offset:], sub)
		if i < 0 {
			return locs
		}
		locs = append(locs, offset+i)
		offset += i + len(sub)
	}
}

func cleanOrigin(s string) string {
	return strings.TrimSpace(originCleanRE.ReplaceAllString(s, ""))
}

func cleanMeaning(s string) string {
	return strings.TrimSpace(meaningCleanRE.ReplaceAllString(s, ""))
}

func cleanPopularity(s string) string {
	return strings.TrimSpace(popularityCleanRE.ReplaceAllString(s, ""))
}
