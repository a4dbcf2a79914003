package goquery

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"golang.org/x/net/html"
)

// preservedTags are never stripped: images and their caption structure.
var preservedTags = map[string]bool{
	"img": true, "figure": true, "figcaption": true,
	"picture": true, "source": true,
}

// emptyContainerSelector matches elements swept away once they hold
// neither text nor an image.
const emptyContainerSelector = "div, p, span, section, article, header, footer"

// Ensure Processor implements postrewriter.ContentProcessor at compile time.
var _ postrewriter.ContentProcessor = (*Processor)(nil)

// Processor transforms existing post bodies: stripping text while
// preserving images, splitting descriptions, and reporting on images.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a new Processor. A nil logger discards output.
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Processor{logger: logger}
}

// StripText deletes every element without an image descendant and
// collapses the rest down to their image descendants. The img nodes
// themselves are moved, not rebuilt, so every image present before
// stripping is present after it.
//
// On internal failure the original content is returned together with an
// EINTERNAL error; the returned value stays usable.
func (p *Processor) StripText(htmlContent string) (string, error) {
	doc, err := parseFragment(htmlContent)
	if err != nil {
		return htmlContent, postrewriter.Errorf(postrewriter.EINTERNAL, "text strip failed: %v", err)
	}

	before := doc.Find("img").Length()

	stripTextKeepImages(doc)
	sweepEmptyContainers(doc)

	out, err := renderBody(doc)
	if err != nil {
		return htmlContent, err
	}

	p.logger.Debug("text stripped",
		"images_before", before,
		"images_after", doc.Find("img").Length(),
	)
	return out, nil
}

// stripTextKeepImages walks every element in document order. Preserved
// tags are skipped; image-bearing elements have their children replaced
// by just their image descendants; imageless elements are removed.
func stripTextKeepImages(doc *goquery.Document) {
	var elements []*goquery.Selection
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, s)
	})

	for _, s := range elements {
		name := goquery.NodeName(s)
		if isWrapperTag(name) || preservedTags[name] {
			continue
		}

		imgs := s.Find("img")
		if imgs.Length() == 0 {
			s.Remove()
			continue
		}

		// Detach the element's subtree and re-attach only the images,
		// keeping the img nodes themselves intact.
		node := s.Nodes[0]
		imgNodes := make([]*html.Node, 0, imgs.Length())
		imgs.Each(func(_ int, img *goquery.Selection) {
			imgNodes = append(imgNodes, img.Nodes[0])
		})
		for node.FirstChild != nil {
			node.RemoveChild(node.FirstChild)
		}
		for _, img := range imgNodes {
			if img.Parent != nil {
				img.Parent.RemoveChild(img)
			}
			node.AppendChild(img)
		}
	}

	// Preserved elements were skipped wholesale, so loose text directly
	// under a figure or picture survives the walk. Only figcaption may
	// keep text.
	doc.Find("figure, picture").Each(func(_ int, s *goquery.Selection) {
		removeLooseText(s.Nodes[0])
	})

	// Bare text nodes at the top level are not elements and escape the
	// walk above; drop them so no orphan text survives.
	if body := doc.Find("body").First(); body.Length() > 0 {
		n := body.Nodes[0]
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type == html.TextNode {
				n.RemoveChild(c)
			}
			c = next
		}
	}
}

// removeLooseText drops text nodes in n's subtree, leaving figcaption
// subtrees untouched.
func removeLooseText(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.TextNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && c.Data == "figcaption":
		default:
			removeLooseText(c)
		}
		c = next
	}
}

// sweepEmptyContainers repeatedly removes container elements holding
// neither text nor an image, until the document is stable.
func sweepEmptyContainers(doc *goquery.Document) {
	for {
		removed := false
		doc.Find(emptyContainerSelector).Each(func(_ int, s *goquery.Selection) {
			if strings.TrimSpace(s.Text()) == "" && s.Find("img").Length() == 0 {
				s.Remove()
				removed = true
			}
		})
		if !removed {
			return
		}
	}
}

// Images returns a reference for every img element in document order.
func (p *Processor) Images(htmlContent string) ([]postrewriter.ImageReference, error) {
	doc, err := parseFragment(htmlContent)
	if err != nil {
		return nil, err
	}

	var refs []postrewriter.ImageReference
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		ref := postrewriter.ImageReference{
			Src:    s.AttrOr("src", ""),
			Alt:    s.AttrOr("alt", ""),
			Title:  s.AttrOr("title", ""),
			Width:  s.AttrOr("width", ""),
			Height: s.AttrOr("height", ""),
		}
		if class := s.AttrOr("class", ""); class != "" {
			ref.Classes = strings.Fields(class)
		}
		refs = append(refs, ref)
	})
	return refs, nil
}

// ValidateImages counts total, valid and invalid images in the content.
func (p *Processor) ValidateImages(htmlContent string) (postrewriter.ImageValidation, error) {
	refs, err := p.Images(htmlContent)
	if err != nil {
		return postrewriter.ImageValidation{}, err
	}

	v := postrewriter.ImageValidation{Total: len(refs)}
	for _, ref := range refs {
		if ref.Valid() {
			v.Valid++
		} else {
			v.Invalid++
		}
	}
	return v, nil
}

// SplitDescriptionAndImages keeps the first maxParagraphs substantive
// paragraphs (text longer than the fallback threshold) as the
// description, and every image as a separate fragment.
func (p *Processor) SplitDescriptionAndImages(htmlContent string, maxParagraphs int) (*postrewriter.SplitContent, error) {
	doc, err := parseFragment(htmlContent)
	if err != nil {
		return nil, err
	}

	var description []string
	doc.Find("p").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if utf8.RuneCountInString(text) > minFallbackTextLen {
			description = append(description, "<p>"+html.EscapeString(text)+"</p>")
		}
		return len(description) < maxParagraphs
	})

	var images []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if out, err := goquery.OuterHtml(s); err == nil {
			images = append(images, out)
		}
	})

	return &postrewriter.SplitContent{
		Description: strings.Join(description, "\n\n"),
		Images:      strings.Join(images, "\n"),
	}, nil
}

// Text extracts the plain text of the content.
func (p *Processor) Text(htmlContent string) (string, error) {
	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}
