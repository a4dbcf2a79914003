package htmltomarkdown_test

import (
	"testing"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts record markup", func(t *testing.T) {
		t.Parallel()

		html := `<h3>Alice</h3><ul><li><strong>Origin:</strong> Greek</li><li><strong>Meaning:</strong> <em>pure</em></li></ul>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "### Alice")
		assert.Contains(t, md, "**Origin:**")
		assert.Contains(t, md, "*pure*")
	})

	t.Run("converts images", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<img src="https://x/a.jpg" alt="A photo">`)

		require.NoError(t, err)
		assert.Contains(t, md, "![A photo](https://x/a.jpg)")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
	})
}
