package postrewriter

import "strings"

// ImageReference describes a single img element. Images are identified
// structurally by their attributes and are never deduplicated: every
// occurrence in a document is a distinct reference.
type ImageReference struct {
	Src     string   `json:"src"`
	Alt     string   `json:"alt"`
	Title   string   `json:"title"`
	Width   string   `json:"width"`
	Height  string   `json:"height"`
	Classes []string `json:"classes"`
}

// Valid reports whether the reference points at a usable image: a
// non-empty src that is either absolute (http) or site-relative (/).
func (r ImageReference) Valid() bool {
	return strings.HasPrefix(r.Src, "http") || strings.HasPrefix(r.Src, "/")
}

// ImageValidation summarizes the images found in a piece of content.
type ImageValidation struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// SplitContent is the result of separating a post body into its leading
// description paragraphs and its images.
type SplitContent struct {
	// Description holds the first substantive paragraphs as HTML.
	Description string

	// Images holds every img element from the body as HTML.
	Images string
}

// ContentProcessor transforms existing post bodies.
type ContentProcessor interface {
	// StripText deletes every element carrying no image descendant and
	// collapses wrapper elements down to their image descendants. Every
	// img present before stripping is present after it.
	// On internal failure the original content is returned together
	// with an EINTERNAL error; the returned value stays usable.
	StripText(html string) (string, error)

	// Images returns a reference for every img element in document order.
	Images(html string) ([]ImageReference, error)

	// ValidateImages counts total, valid and invalid images.
	ValidateImages(html string) (ImageValidation, error)

	// SplitDescriptionAndImages keeps the first maxParagraphs
	// substantive paragraphs plus all images.
	SplitDescriptionAndImages(html string, maxParagraphs int) (*SplitContent, error)

	// Text extracts the plain text of the content.
	Text(html string) (string, error)
}

// Merger combines a target post's retained description and images with
// a source article body.
type Merger interface {
	// Merge concatenates description, body and the images from
	// imagesHTML into one document. The result contains exactly the
	// images supplied in imagesHTML, each exactly once.
	// On internal failure the naive concatenation is returned together
	// with an EINTERNAL error; the returned value stays usable.
	Merge(description, body, imagesHTML string) (string, error)
}
