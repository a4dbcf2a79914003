package mock

import (
	"context"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

var _ postrewriter.PostStore = (*PostStore)(nil)

// PostStore is a mock implementation of postrewriter.PostStore.
type PostStore struct {
	GetPostFn    func(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error)
	UpdatePostFn func(ctx context.Context, id int64, content string) error
}

func (s *PostStore) GetPost(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
	return s.GetPostFn(ctx, ref)
}

func (s *PostStore) UpdatePost(ctx context.Context, id int64, content string) error {
	return s.UpdatePostFn(ctx, id, content)
}
