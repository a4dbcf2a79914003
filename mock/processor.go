package mock

import postrewriter "github.com/dazhiyu0235/post-rewriter"

var _ postrewriter.ContentProcessor = (*ContentProcessor)(nil)

// ContentProcessor is a mock implementation of postrewriter.ContentProcessor.
type ContentProcessor struct {
	StripTextFn                 func(html string) (string, error)
	ImagesFn                    func(html string) ([]postrewriter.ImageReference, error)
	ValidateImagesFn            func(html string) (postrewriter.ImageValidation, error)
	SplitDescriptionAndImagesFn func(html string, maxParagraphs int) (*postrewriter.SplitContent, error)
	TextFn                      func(html string) (string, error)
}

func (p *ContentProcessor) StripText(html string) (string, error) {
	return p.StripTextFn(html)
}

func (p *ContentProcessor) Images(html string) ([]postrewriter.ImageReference, error) {
	return p.ImagesFn(html)
}

func (p *ContentProcessor) ValidateImages(html string) (postrewriter.ImageValidation, error) {
	return p.ValidateImagesFn(html)
}

func (p *ContentProcessor) SplitDescriptionAndImages(html string, maxParagraphs int) (*postrewriter.SplitContent, error) {
	return p.SplitDescriptionAndImagesFn(html, maxParagraphs)
}

func (p *ContentProcessor) Text(html string) (string, error) {
	return p.TextFn(html)
}

var _ postrewriter.Merger = (*Merger)(nil)

// Merger is a mock implementation of postrewriter.Merger.
type Merger struct {
	MergeFn func(description, body, imagesHTML string) (string, error)
}

func (m *Merger) Merge(description, body, imagesHTML string) (string, error) {
	return m.MergeFn(description, body, imagesHTML)
}
