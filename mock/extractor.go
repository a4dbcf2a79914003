package mock

import postrewriter "github.com/dazhiyu0235/post-rewriter"

var _ postrewriter.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of postrewriter.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*postrewriter.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*postrewriter.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ postrewriter.Slicer = (*Slicer)(nil)

// Slicer is a mock implementation of postrewriter.Slicer.
type Slicer struct {
	SliceFromFn func(html, keyword string) (string, error)
}

func (s *Slicer) SliceFrom(html, keyword string) (string, error) {
	return s.SliceFromFn(html, keyword)
}

var _ postrewriter.Truncator = (*Truncator)(nil)

// Truncator is a mock implementation of postrewriter.Truncator.
type Truncator struct {
	TruncateFn func(html string) (string, error)
}

func (t *Truncator) Truncate(html string) (string, error) {
	return t.TruncateFn(html)
}

var _ postrewriter.Converter = (*Converter)(nil)

// Converter is a mock implementation of postrewriter.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
