package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"golang.org/x/net/html"
)

const (
	// minImageInterval is the smallest number of content blocks between
	// interleaved images.
	minImageInterval = 3

	// minListChunkSize is the smallest list chunk produced when long
	// lists are split into separate content blocks.
	minListChunkSize = 5

	// maxListChunks caps how many blocks one list is split into.
	maxListChunks = 3

	// relatedImagesHeading labels the trailing image section.
	relatedImagesHeading = "Related Images"

	// blockSeparator visually separates merged document sections.
	blockSeparator = "<hr/>"
)

// Ensure Merger implements postrewriter.Merger at compile time.
var _ postrewriter.Merger = (*Merger)(nil)

// Merger combines a target post's retained description and images with
// a source article body.
type Merger struct {
	logger     *slog.Logger
	interleave bool
}

// MergerOption configures a Merger.
type MergerOption func(*Merger)

// WithInterleave distributes the target's images through the source
// body at computed intervals instead of appending them at the end.
func WithInterleave() MergerOption {
	return func(m *Merger) {
		m.interleave = true
	}
}

// NewMerger creates a new Merger. A nil logger discards output.
func NewMerger(logger *slog.Logger, opts ...MergerOption) *Merger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := &Merger{logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge concatenates description, body and images into one document.
// The result contains exactly the images supplied in imagesHTML, each
// exactly once. On internal failure the naive concatenation is returned
// together with an EINTERNAL error; the returned value stays usable.
func (m *Merger) Merge(description, body, imagesHTML string) (string, error) {
	merged, err := m.merge(description, body, imagesHTML)
	if err != nil {
		m.logger.Warn("merge degraded to naive concatenation", "err", err)
		naive := strings.TrimSpace(description + "\n\n" + body + "\n\n" + imagesHTML)
		return naive, postrewriter.Errorf(postrewriter.EINTERNAL, "merge failed: %v", err)
	}
	return merged, nil
}

func (m *Merger) merge(description, body, imagesHTML string) (string, error) {
	images, err := imageFragments(imagesHTML)
	if err != nil {
		return "", err
	}
	blocks, err := contentBlocks(body)
	if err != nil {
		return "", err
	}

	var parts []string

	description = strings.TrimSpace(description)
	if description != "" {
		parts = append(parts, description, blockSeparator)
	}

	placed := 0
	if m.interleave && len(images) > 0 && len(blocks) > 0 {
		interval := imageInterval(len(blocks), len(images))
		for i, block := range blocks {
			parts = append(parts, block)
			if placed < len(images) && (i+1)%interval == 0 && i != len(blocks)-1 {
				parts = append(parts, images[placed])
				placed++
			}
		}
	} else {
		parts = append(parts, blocks...)
	}

	if leftover := images[placed:]; len(leftover) > 0 {
		parts = append(parts, blockSeparator, "<h3>"+relatedImagesHeading+"</h3>")
		parts = append(parts, leftover...)
	}

	m.logger.Debug("content merged",
		"blocks", len(blocks),
		"images", len(images),
		"interleaved", placed,
	)
	return strings.TrimSpace(strings.Join(parts, "\n\n")), nil
}

// imageInterval computes how many content blocks to emit between
// interleaved images.
func imageInterval(blockCount, imageCount int) int {
	interval := minImageInterval
	if v := blockCount / (imageCount + 1); v > interval {
		interval = v
	}
	if v := blockCount / imageCount; v > interval {
		interval = v
	}
	return interval
}

// imageFragments extracts every img element from the fragment as its
// own serialized block, in document order.
func imageFragments(imagesHTML string) ([]string, error) {
	if strings.TrimSpace(imagesHTML) == "" {
		return nil, nil
	}
	doc, err := parseFragment(imagesHTML)
	if err != nil {
		return nil, err
	}

	var images []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if out, err := goquery.OuterHtml(s); err == nil {
			images = append(images, out)
		}
	})
	return images, nil
}

// contentBlocks splits a body fragment into top-level content blocks.
// Long lists are split into chunks so images can be interleaved between
// them; bare text nodes become paragraphs.
func contentBlocks(body string) ([]string, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	doc, err := parseFragment(body)
	if err != nil {
		return nil, err
	}

	var blocks []string
	doc.Find("body").First().Contents().Each(func(_ int, s *goquery.Selection) {
		n := s.Nodes[0]
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" {
				blocks = append(blocks, "<p>"+html.EscapeString(text)+"</p>")
			}
		case html.ElementNode:
			name := goquery.NodeName(s)
			if name == "ul" || name == "ol" {
				blocks = append(blocks, listChunks(s, name)...)
				return
			}
			if out, err := goquery.OuterHtml(s); err == nil {
				blocks = append(blocks, out)
			}
		}
	})
	return blocks, nil
}

// listChunks splits a long list into up to maxListChunks lists of at
// least minListChunkSize items each. Short lists stay whole.
func listChunks(list *goquery.Selection, tag string) []string {
	items := list.ChildrenFiltered("li")
	n := items.Length()
	if n < 2*minListChunkSize {
		if out, err := goquery.OuterHtml(list); err == nil {
			return []string{out}
		}
		return nil
	}

	chunkCount := n / minListChunkSize
	if chunkCount > maxListChunks {
		chunkCount = maxListChunks
	}
	chunkSize := (n + chunkCount - 1) / chunkCount

	var chunks []string
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		var b strings.Builder
		b.WriteString("<" + tag + ">")
		items.Slice(start, end).Each(func(_ int, item *goquery.Selection) {
			if out, err := goquery.OuterHtml(item); err == nil {
				b.WriteString(out)
			}
		})
		b.WriteString("</" + tag + ">")
		chunks = append(chunks, b.String())
	}
	return chunks
}
