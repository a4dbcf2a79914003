package goquery_test

import (
	"testing"

	"github.com/dazhiyu0235/post-rewriter/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStructuredRecords(t *testing.T) {
	t.Parallel()

	t.Run("extracts complete records", func(t *testing.T) {
		t.Parallel()

		text := "Alice Origin: Greek Meaning: *pure* Popularity: #1 in 2020 " +
			"Bob Origin: Latin Meaning: strong Popularity: #5"

		records := goquery.ExtractStructuredRecords(text)

		require.Len(t, records, 2)
		assert.Equal(t, "Alice", records[0].Name)
		assert.Equal(t, "Greek", records[0].Origin)
		assert.Equal(t, "pure", records[0].Meaning)
		assert.Equal(t, "#1 in 2020", records[0].Popularity)
		assert.Equal(t, "Bob", records[1].Name)
		assert.Equal(t, "Latin", records[1].Origin)
		assert.Equal(t, "strong", records[1].Meaning)
		assert.Equal(t, "#5", records[1].Popularity)
	})

	t.Run("drops records missing a field", func(t *testing.T) {
		t.Parallel()

		text := "Alice Origin: Greek Popularity: #1 " +
			"Bob Origin: Latin Meaning: strong Popularity: #5"

		records := goquery.ExtractStructuredRecords(text)

		require.Len(t, records, 1)
		assert.Equal(t, "Bob", records[0].Name)
	})

	t.Run("skips markers without a preceding name", func(t *testing.T) {
		t.Parallel()

		records := goquery.ExtractStructuredRecords("Origin: Greek Meaning: pure Popularity: #1")

		assert.Empty(t, records)
	})

	t.Run("text without markers yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.ExtractStructuredRecords("Just an ordinary paragraph of text."))
	})

	t.Run("cleans field values", func(t *testing.T) {
		t.Parallel()

		text := "Mara Origin: Heb[rew] Meaning: __bitter__ Popularity: #12 (rising)"

		records := goquery.ExtractStructuredRecords(text)

		require.Len(t, records, 1)
		assert.Equal(t, "Hebrew", records[0].Origin)
		assert.Equal(t, "bitter", records[0].Meaning)
		assert.Equal(t, "#12 rising", records[0].Popularity)
	})
}
