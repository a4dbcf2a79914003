package goquery_test

import (
	"strings"
	"testing"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlicer_SliceFrom(t *testing.T) {
	t.Parallel()

	t.Run("slices from the keyword onward", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom("<p>Intro</p><p>Start here: body</p><p>More</p>", "Start here")

		require.NoError(t, err)
		assert.NotContains(t, out, "Intro")
		assert.Contains(t, out, "Start here: body")
		assert.Contains(t, out, "<p>More</p>")
		assert.Less(t, strings.Index(out, "Start here"), strings.Index(out, "More"))
	})

	t.Run("keyword mid-text drops the preceding text", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom("<p>Before the marker. The Names: Anna, Bella</p>", "The Names")

		require.NoError(t, err)
		assert.NotContains(t, out, "Before the marker")
		assert.Contains(t, out, "The Names")
	})

	t.Run("missing keyword returns ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		_, err := s.SliceFrom("<p>Some content</p>", "absent")

		assert.Equal(t, postrewriter.ENOTFOUND, postrewriter.ErrorCode(err))
	})

	t.Run("empty keyword is invalid", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		_, err := s.SliceFrom("<p>Some content</p>", "")

		assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
	})

	t.Run("keyword match is case-sensitive", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		_, err := s.SliceFrom("<p>start here</p>", "Start here")

		assert.Equal(t, postrewriter.ENOTFOUND, postrewriter.ErrorCode(err))
	})

	t.Run("subsequent bare text becomes a paragraph", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom("<p>Marker paragraph</p>some trailing bare text", "Marker")

		require.NoError(t, err)
		assert.Contains(t, out, "<p>some trailing bare text</p>")
	})
}

func TestSlicer_StructuredContent(t *testing.T) {
	t.Parallel()

	const structured = `<p><strong>Alice</strong> Origin: Greek Meaning: pure Popularity: #1</p>` +
		`<p><strong>Bob</strong> Origin: Latin Meaning: strong Popularity: #5</p>` +
		`<p><strong>Cora</strong> Origin: Greek Meaning: maiden Popularity: #9</p>`

	t.Run("slices from the matching record heading", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom(structured, "Bob")

		require.NoError(t, err)
		assert.NotContains(t, out, "Alice")
		assert.Contains(t, out, "Bob")
		assert.Contains(t, out, "Cora")
	})

	t.Run("blocks are kept verbatim", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom(structured, "Cora")

		require.NoError(t, err)
		assert.Contains(t, out, "<p><strong>Cora</strong> Origin: Greek Meaning: maiden Popularity: #9</p>")
	})

	t.Run("non-heading keyword falls through to the generic walk", func(t *testing.T) {
		t.Parallel()

		s := goquery.NewSlicer(nil)
		out, err := s.SliceFrom(structured, "Latin")

		require.NoError(t, err)
		assert.NotContains(t, out, "Alice")
		assert.Contains(t, out, "Latin")
	})
}
