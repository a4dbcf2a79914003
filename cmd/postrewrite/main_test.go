package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMain(store *mock.PostStore, fetcher *mock.Fetcher) *Main {
	m := NewMain()
	m.Store = store
	if fetcher != nil {
		m.Fetcher = fetcher
	} else {
		m.Fetcher = &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", postrewriter.Errorf(postrewriter.EUNAVAILABLE, "no fetcher configured")
			},
		}
	}
	return m
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()

	err := m.Run(context.Background(), nil, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "update")
	assert.Contains(t, stdout.String(), "copy")
}

func TestMain_Run_UnknownCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	m := NewMain()

	err := m.Run(context.Background(), []string{"bogus"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates the post", func(t *testing.T) {
		t.Parallel()

		var updated string
		store := &mock.PostStore{
			GetPostFn: func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
				return &postrewriter.Post{ID: 1, Content: `<p>Text</p><div><img src="/a.jpg"></div>`}, nil
			},
			UpdatePostFn: func(ctx context.Context, id int64, content string) error {
				updated = content
				return nil
			},
		}

		var stdout, stderr bytes.Buffer
		m := newTestMain(store, nil)

		err := m.Run(context.Background(), []string{"update", "https://site.test/archives/1"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, updated, `<img src="/a.jpg"/>`)
		assert.NotContains(t, updated, "Text")
		assert.Contains(t, stdout.String(), "Updated")
	})

	t.Run("dry run leaves the post untouched", func(t *testing.T) {
		t.Parallel()

		store := &mock.PostStore{
			GetPostFn: func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
				return &postrewriter.Post{ID: 1, Content: `<p>Text</p><img src="/a.jpg">`}, nil
			},
			UpdatePostFn: func(ctx context.Context, id int64, content string) error {
				t.Fatal("update must not be called in dry run")
				return nil
			},
		}

		var stdout, stderr bytes.Buffer
		m := newTestMain(store, nil)

		err := m.Run(context.Background(), []string{"update", "https://site.test/archives/1", "--dry-run"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Dry run")
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		t.Parallel()

		store := &mock.PostStore{
			GetPostFn: func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
				return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "post 1 not found")
			},
		}

		var stdout, stderr bytes.Buffer
		m := newTestMain(store, nil)

		err := m.Run(context.Background(), []string{"update", "https://site.test/archives/1"}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "post 1 not found")
	})
}

func TestMain_Run_Copy(t *testing.T) {
	t.Parallel()

	page := `<html><head><title>Source Title</title></head><body><article><p>` +
		strings.Repeat("Source article text. ", 10) +
		`</p></article></body></html>`

	t.Run("copies extracted content into the post", func(t *testing.T) {
		t.Parallel()

		var updated string
		store := &mock.PostStore{
			GetPostFn: func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
				return &postrewriter.Post{ID: 2, Content: `<p>A description paragraph that is long enough to keep.</p><img src="/keep.jpg">`}, nil
			},
			UpdatePostFn: func(ctx context.Context, id int64, content string) error {
				updated = content
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return page, nil
			},
		}

		var stdout, stderr bytes.Buffer
		m := newTestMain(store, fetcher)

		err := m.Run(context.Background(), []string{"copy", "https://site.test/archives/2", "https://src.test/article"}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, updated, "Source article text.")
		assert.Contains(t, updated, "description paragraph")
		assert.Contains(t, updated, `src="/keep.jpg"`)
		assert.Contains(t, updated, "<em>Source: ")
		assert.Contains(t, stdout.String(), "Copied")
	})
}

func TestMain_Run_Info(t *testing.T) {
	t.Parallel()

	store := &mock.PostStore{
		GetPostFn: func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
			return &postrewriter.Post{ID: 5, Slug: "five", Title: "Five", Content: `<p>Hi</p><img src="/a.jpg">`}, nil
		},
	}

	var stdout, stderr bytes.Buffer
	m := newTestMain(store, nil)

	err := m.Run(context.Background(), []string{"info", "https://site.test/archives/5"}, &stdout, &stderr)

	require.NoError(t, err)
	out := stdout.String()
	assert.Contains(t, out, "Five")
	assert.Contains(t, out, "Images:  1")
	assert.Contains(t, out, "/a.jpg")
}
