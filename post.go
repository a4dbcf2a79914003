package postrewriter

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Post represents a post held by a remote content store.
type Post struct {
	ID      int64  `json:"id"`
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate returns an error if the post contains invalid fields.
func (p *Post) Validate() error {
	if p.ID == 0 && p.Slug == "" {
		return Errorf(EINVALID, "post ID or slug required")
	}
	return nil
}

// PostRef identifies a post either by numeric ID or by slug.
// Exactly one of the two fields is set.
type PostRef struct {
	ID   int64
	Slug string
}

// ParsePostRef derives a post reference from a post URL. A trailing
// numeric path segment is treated as a post ID, any other trailing
// segment as a slug.
func ParsePostRef(rawURL string) (PostRef, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return PostRef{}, Errorf(EINVALID, "invalid post URL %q: %v", rawURL, err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		return PostRef{}, Errorf(EINVALID, "post URL %q has no path", rawURL)
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	if id, err := strconv.ParseInt(last, 10, 64); err == nil {
		return PostRef{ID: id}, nil
	}
	return PostRef{Slug: last}, nil
}

// PostStore retrieves and updates posts in a remote content store.
type PostStore interface {
	// GetPost retrieves a post by reference.
	// Returns ENOTFOUND if no post matches the reference.
	GetPost(ctx context.Context, ref PostRef) (*Post, error)

	// UpdatePost replaces the content of the post with the given ID.
	UpdatePost(ctx context.Context, id int64, content string) error
}
