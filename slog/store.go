// Package slog provides logging decorators for domain services.
package slog

import (
	"context"
	"log/slog"
	"time"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// Ensure LoggingPostStore implements postrewriter.PostStore.
var _ postrewriter.PostStore = (*LoggingPostStore)(nil)

// LoggingPostStore wraps a PostStore with operation logging.
type LoggingPostStore struct {
	next   postrewriter.PostStore
	logger *slog.Logger
}

// NewLoggingPostStore creates a new LoggingPostStore.
func NewLoggingPostStore(next postrewriter.PostStore, logger *slog.Logger) *LoggingPostStore {
	return &LoggingPostStore{next: next, logger: logger}
}

// GetPost delegates to the wrapped store and logs the operation.
func (s *LoggingPostStore) GetPost(ctx context.Context, ref postrewriter.PostRef) (post *postrewriter.Post, err error) {
	defer func(begin time.Time) {
		var id int64
		if post != nil {
			id = post.ID
		}
		s.logger.Info("get post",
			"ref_id", ref.ID,
			"ref_slug", ref.Slug,
			"post_id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetPost(ctx, ref)
}

// UpdatePost delegates to the wrapped store and logs the operation.
func (s *LoggingPostStore) UpdatePost(ctx context.Context, id int64, content string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("update post",
			"post_id", id,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdatePost(ctx, id, content)
}
