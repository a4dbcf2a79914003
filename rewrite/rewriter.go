// Package rewrite orchestrates the post rewriting flows: stripping a
// post down to its images, and copying extracted article content from
// a source URL into a target post. It depends only on the domain
// interfaces; concrete implementations are injected.
package rewrite

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// DefaultDescriptionParagraphs is how many substantive paragraphs of
// the target post are retained as its description during a copy.
const DefaultDescriptionParagraphs = 2

// Rewriter wires the extraction core to a remote post store.
type Rewriter struct {
	Store     postrewriter.PostStore
	Fetcher   postrewriter.Fetcher
	Extractor postrewriter.Extractor
	Processor postrewriter.ContentProcessor
	Slicer    postrewriter.Slicer
	Truncator postrewriter.Truncator
	Merger    postrewriter.Merger

	// Converter renders dry-run previews as Markdown when set.
	Converter postrewriter.Converter

	// Logger receives progress and diagnostics. Required.
	Logger *slog.Logger

	// BatchDelay spaces out consecutive batch operations.
	// Zero means DefaultBatchDelay.
	BatchDelay time.Duration
}

// ExtractFormatted runs the full extraction pipeline for a source URL:
// fetch, locate and normalize, optionally slice from keyword, truncate
// trailing boilerplate, and append a source attribution footer.
//
// An absent keyword is not an error: the full content is used and a
// warning is logged.
func (r *Rewriter) ExtractFormatted(ctx context.Context, sourceURL, keyword string) (string, error) {
	raw, err := r.Fetcher.Fetch(ctx, sourceURL)
	if err != nil {
		return "", err
	}

	result, err := r.Extractor.Extract(raw)
	if err != nil {
		return "", err
	}
	result.URL = sourceURL
	result.Domain = hostOf(sourceURL)

	content := result.ContentHTML

	if keyword != "" {
		sliced, err := r.Slicer.SliceFrom(content, keyword)
		switch {
		case err == nil:
			content = sliced
		case postrewriter.ErrorCode(err) == postrewriter.ENOTFOUND:
			r.Logger.Warn("keyword not found, using full content", "keyword", keyword, "url", sourceURL)
		default:
			return "", err
		}
	}

	truncated, err := r.Truncator.Truncate(content)
	if err != nil {
		// A truncation repair failure still yields usable content.
		r.Logger.Warn("truncation degraded", "url", sourceURL, "err", err)
	}
	content = truncated

	content += fmt.Sprintf("\n\n<p><em>Source: <a href=%q target=\"_blank\">%s</a></em></p>", sourceURL, result.Domain)

	r.Logger.Info("content extracted",
		"url", sourceURL,
		"title", result.Title,
		"length", len(content),
	)
	return content, nil
}

// UpdateArticle strips the text from the referenced post while
// preserving its images, then submits the result back to the store.
// With dryRun set the post is left untouched and a preview is logged.
func (r *Rewriter) UpdateArticle(ctx context.Context, targetURL string, dryRun bool) error {
	ref, err := postrewriter.ParsePostRef(targetURL)
	if err != nil {
		return err
	}

	post, err := r.Store.GetPost(ctx, ref)
	if err != nil {
		return err
	}
	if post.Content == "" {
		return postrewriter.Errorf(postrewriter.EINVALID, "post %q has no content", targetURL)
	}

	processed, err := r.Processor.StripText(post.Content)
	if err != nil {
		// The stripper returns the best available fallback value.
		r.Logger.Warn("text strip degraded", "url", targetURL, "err", err)
	}

	if err := r.logValidation(processed); err != nil {
		return err
	}

	if xxhash.Sum64String(processed) == xxhash.Sum64String(post.Content) {
		r.Logger.Info("content unchanged, skipping update", "url", targetURL)
		return nil
	}

	if dryRun {
		r.preview(post.Content, processed)
		return nil
	}

	return r.Store.UpdatePost(ctx, post.ID, processed)
}

// CopyContent replaces the body of the target post with content
// extracted from sourceURL, keeping the target's leading description
// and all of its images. With dryRun set the post is left untouched.
func (r *Rewriter) CopyContent(ctx context.Context, targetURL, sourceURL, keyword string, dryRun bool) error {
	ref, err := postrewriter.ParsePostRef(targetURL)
	if err != nil {
		return err
	}

	post, err := r.Store.GetPost(ctx, ref)
	if err != nil {
		return err
	}
	if post.Content == "" {
		// An empty target still receives the source content.
		r.Logger.Warn("target post has no content", "url", targetURL)
	}

	split, err := r.Processor.SplitDescriptionAndImages(post.Content, DefaultDescriptionParagraphs)
	if err != nil {
		return err
	}

	source, err := r.ExtractFormatted(ctx, sourceURL, keyword)
	if err != nil {
		return err
	}

	final, err := r.Merger.Merge(split.Description, source, split.Images)
	if err != nil {
		// The merger returns the naive concatenation as fallback.
		r.Logger.Warn("merge degraded", "target", targetURL, "err", err)
	}

	if err := r.logValidation(final); err != nil {
		return err
	}

	if dryRun {
		r.preview(post.Content, final)
		return nil
	}

	return r.Store.UpdatePost(ctx, post.ID, final)
}

// Info describes a post for reporting purposes.
type Info struct {
	Post          *postrewriter.Post
	ContentLength int
	Images        []postrewriter.ImageReference
}

// ArticleInfo reports on the referenced post without modifying it.
func (r *Rewriter) ArticleInfo(ctx context.Context, targetURL string) (*Info, error) {
	ref, err := postrewriter.ParsePostRef(targetURL)
	if err != nil {
		return nil, err
	}

	post, err := r.Store.GetPost(ctx, ref)
	if err != nil {
		return nil, err
	}

	images, err := r.Processor.Images(post.Content)
	if err != nil {
		return nil, err
	}

	return &Info{
		Post:          post,
		ContentLength: len(post.Content),
		Images:        images,
	}, nil
}

// logValidation reports how many images in the content are usable.
func (r *Rewriter) logValidation(content string) error {
	v, err := r.Processor.ValidateImages(content)
	if err != nil {
		return err
	}
	r.Logger.Info("image validation", "valid", v.Valid, "total", v.Total)
	return nil
}

// preview logs a dry-run comparison of the original and processed
// content, optionally rendering the result as Markdown.
func (r *Rewriter) preview(original, processed string) {
	origText, _ := r.Processor.Text(original)
	procText, _ := r.Processor.Text(processed)
	origImages, _ := r.Processor.Images(original)
	procImages, _ := r.Processor.Images(processed)

	r.Logger.Info("dry run, post not updated",
		"text_before", len(origText),
		"text_after", len(procText),
		"images_before", len(origImages),
		"images_after", len(procImages),
	)
	for _, img := range procImages {
		r.Logger.Info("retained image", "src", img.Src, "alt", img.Alt)
	}

	if r.Converter != nil {
		if md, err := r.Converter.Convert(processed); err == nil {
			r.Logger.Info("preview", "markdown", md)
		}
	}
}

// hostOf returns the host portion of a URL, or the raw string when it
// cannot be parsed.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
