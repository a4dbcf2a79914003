package trafilatura_test

import (
	"testing"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Popular Names - Example Site</title>
<meta property="og:title" content="Popular Names This Year">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Popular Names</h1>
<p>This article covers the most popular names of the year in detail.</p>
<p>Each name is listed with its origin and meaning for easy reference.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "most popular names")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
	})
}
