// Package wordpress implements postrewriter.PostStore against a
// WordPress site. Slug lookups go through the REST API; id lookups and
// updates go through XML-RPC, which older installations expose more
// reliably for writes.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	postrewriter "github.com/dazhiyu0235/post-rewriter"
)

// DefaultTimeout is the default timeout for store requests.
const DefaultTimeout = 30 * time.Second

// blogID is the XML-RPC blog identifier; single-site installs use 1.
const blogID = 1

// Config holds the connection settings for a WordPress site.
// All three fields are required.
type Config struct {
	BaseURL     string
	Username    string
	AppPassword string

	// Timeout for store requests. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Validate returns an EINVALID error naming the missing fields, if any.
func (c Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "WORDPRESS_URL")
	}
	if c.Username == "" {
		missing = append(missing, "WORDPRESS_USERNAME")
	}
	if c.AppPassword == "" {
		missing = append(missing, "WORDPRESS_APP_PASSWORD")
	}
	if len(missing) > 0 {
		return postrewriter.Errorf(postrewriter.EINVALID, "missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Ensure Client implements postrewriter.PostStore at compile time.
var _ postrewriter.PostStore = (*Client)(nil)

// Client talks to a single WordPress site.
type Client struct {
	baseURL  string
	username string
	password string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient creates a client for the configured site. Missing
// credentials are a configuration error; callers treat that as fatal
// at startup.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		password: cfg.AppPassword,
		client:   &http.Client{Timeout: cfg.Timeout},
		logger:   logger,
	}, nil
}

// TestConnection verifies credentials by reading the blog title.
func (c *Client) TestConnection(ctx context.Context) error {
	value, err := c.call(ctx, "wp.getOptions", blogID, c.username, c.password, "blog_title")
	if err != nil {
		return err
	}
	c.logger.Info("connected to WordPress", "options", len(decodeStruct(value)))
	return nil
}

// GetPost retrieves a post by reference.
func (c *Client) GetPost(ctx context.Context, ref postrewriter.PostRef) (*postrewriter.Post, error) {
	if ref.ID != 0 {
		return c.getPostByID(ctx, ref.ID)
	}
	if ref.Slug != "" {
		return c.getPostBySlug(ctx, ref.Slug)
	}
	return nil, postrewriter.Errorf(postrewriter.EINVALID, "post reference requires an ID or slug")
}

// UpdatePost replaces the post content via XML-RPC.
func (c *Client) UpdatePost(ctx context.Context, id int64, content string) error {
	value, err := c.call(ctx, "wp.editPost", blogID, c.username, c.password, id,
		map[string]string{"post_content": content})
	if err != nil {
		return err
	}
	if !decodeBool(value) {
		return postrewriter.Errorf(postrewriter.EUNAVAILABLE, "update of post %d was rejected", id)
	}
	c.logger.Info("post updated", "id", id, "length", len(content))
	return nil
}

func (c *Client) getPostByID(ctx context.Context, id int64) (*postrewriter.Post, error) {
	value, err := c.call(ctx, "wp.getPost", blogID, c.username, c.password, id)
	if err != nil {
		return nil, err
	}

	members := decodeStruct(value)
	if len(members) == 0 {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "post %d not found", id)
	}

	postID := id
	if raw, ok := members["post_id"]; ok {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			postID = parsed
		}
	}

	return &postrewriter.Post{
		ID:      postID,
		Slug:    members["post_name"],
		Title:   members["post_title"],
		Content: members["post_content"],
	}, nil
}

// restPost mirrors the fields we need from the REST posts endpoint.
type restPost struct {
	ID    int64  `json:"id"`
	Slug  string `json:"slug"`
	Title struct {
		Rendered string `json:"rendered"`
	} `json:"title"`
	Content struct {
		Rendered string `json:"rendered"`
	} `json:"content"`
}

func (c *Client) getPostBySlug(ctx context.Context, slug string) (*postrewriter.Post, error) {
	endpoint := c.baseURL + "/wp-json/wp/v2/posts?slug=" + url.QueryEscape(slug)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "invalid store URL: %v", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("User-Agent", "post-rewriter/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "slug lookup: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "slug lookup: HTTP %d", resp.StatusCode)
	}

	var posts []restPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINTERNAL, "slug lookup: %v", err)
	}
	if len(posts) == 0 {
		return nil, postrewriter.Errorf(postrewriter.ENOTFOUND, "post with slug %q not found", slug)
	}

	p := posts[0]
	return &postrewriter.Post{
		ID:      p.ID,
		Slug:    p.Slug,
		Title:   p.Title.Rendered,
		Content: p.Content.Rendered,
	}, nil
}

// call performs a single XML-RPC method call against the site.
func (c *Client) call(ctx context.Context, method string, params ...any) (*etree.Element, error) {
	payload, err := buildMethodCall(method, params...)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/xmlrpc.php", bytes.NewReader(payload))
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EINVALID, "invalid store URL: %v", err)
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("User-Agent", "post-rewriter/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "%s: %v", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "%s: HTTP %d", method, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, postrewriter.Errorf(postrewriter.EUNAVAILABLE, "%s: %v", method, err)
	}

	result, err := parseMethodResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	return result, nil
}
