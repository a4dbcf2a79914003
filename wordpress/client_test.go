package wordpress_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	postrewriter "github.com/dazhiyu0235/post-rewriter"
	"github.com/dazhiyu0235/post-rewriter/wordpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const getPostResponse = `<?xml version="1.0"?>
<methodResponse><params><param><value><struct>
<member><name>post_id</name><value><string>42</string></value></member>
<member><name>post_name</name><value><string>my-post</string></value></member>
<member><name>post_title</name><value><string>My Post</string></value></member>
<member><name>post_content</name><value><string>&lt;p&gt;Hello&lt;/p&gt;</string></value></member>
</struct></value></param></params></methodResponse>`

const faultResponse = `<?xml version="1.0"?>
<methodResponse><fault><value><struct>
<member><name>faultCode</name><value><int>403</int></value></member>
<member><name>faultString</name><value><string>Incorrect username or password.</string></value></member>
</struct></value></fault></methodResponse>`

func newClient(t *testing.T, baseURL string) *wordpress.Client {
	t.Helper()
	client, err := wordpress.NewClient(wordpress.Config{
		BaseURL:     baseURL,
		Username:    "admin",
		AppPassword: "secret",
	}, nil)
	require.NoError(t, err)
	return client
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("complete config is valid", func(t *testing.T) {
		t.Parallel()

		cfg := wordpress.Config{BaseURL: "https://example.com", Username: "a", AppPassword: "b"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing fields are named", func(t *testing.T) {
		t.Parallel()

		err := wordpress.Config{BaseURL: "https://example.com"}.Validate()

		assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
		assert.Contains(t, postrewriter.ErrorMessage(err), "WORDPRESS_USERNAME")
		assert.Contains(t, postrewriter.ErrorMessage(err), "WORDPRESS_APP_PASSWORD")
		assert.NotContains(t, postrewriter.ErrorMessage(err), "WORDPRESS_URL")
	})
}

func TestClient_GetPost_ByID(t *testing.T) {
	t.Parallel()

	t.Run("decodes the post struct", func(t *testing.T) {
		t.Parallel()

		var gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/xmlrpc.php", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			_, _ = w.Write([]byte(getPostResponse))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		post, err := client.GetPost(context.Background(), postrewriter.PostRef{ID: 42})

		require.NoError(t, err)
		assert.Equal(t, int64(42), post.ID)
		assert.Equal(t, "my-post", post.Slug)
		assert.Equal(t, "My Post", post.Title)
		assert.Equal(t, "<p>Hello</p>", post.Content)
		assert.Contains(t, gotBody, "<methodName>wp.getPost</methodName>")
		assert.Contains(t, gotBody, "<string>admin</string>")
	})

	t.Run("empty struct is not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><methodResponse><params><param><value><struct></struct></value></param></params></methodResponse>`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		_, err := client.GetPost(context.Background(), postrewriter.PostRef{ID: 7})

		assert.Equal(t, postrewriter.ENOTFOUND, postrewriter.ErrorCode(err))
	})

	t.Run("fault carries the fault string", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(faultResponse))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		_, err := client.GetPost(context.Background(), postrewriter.PostRef{ID: 7})

		assert.Equal(t, postrewriter.EUNAVAILABLE, postrewriter.ErrorCode(err))
		assert.Contains(t, err.Error(), "Incorrect username or password.")
	})

	t.Run("empty reference is invalid", func(t *testing.T) {
		t.Parallel()

		client := newClient(t, "https://example.com")
		_, err := client.GetPost(context.Background(), postrewriter.PostRef{})

		assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
	})
}

func TestClient_GetPost_BySlug(t *testing.T) {
	t.Parallel()

	t.Run("decodes the REST response", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/wp-json/wp/v2/posts", r.URL.Path)
			require.Equal(t, "my-post", r.URL.Query().Get("slug"))
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "admin", user)
			require.Equal(t, "secret", pass)
			_, _ = w.Write([]byte(`[{"id":42,"slug":"my-post","title":{"rendered":"My Post"},"content":{"rendered":"<p>Hello</p>"}}]`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		post, err := client.GetPost(context.Background(), postrewriter.PostRef{Slug: "my-post"})

		require.NoError(t, err)
		assert.Equal(t, int64(42), post.ID)
		assert.Equal(t, "My Post", post.Title)
		assert.Equal(t, "<p>Hello</p>", post.Content)
	})

	t.Run("empty result is not found", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		_, err := client.GetPost(context.Background(), postrewriter.PostRef{Slug: "missing"})

		assert.Equal(t, postrewriter.ENOTFOUND, postrewriter.ErrorCode(err))
	})

	t.Run("HTTP error is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		_, err := client.GetPost(context.Background(), postrewriter.PostRef{Slug: "my-post"})

		assert.Equal(t, postrewriter.EUNAVAILABLE, postrewriter.ErrorCode(err))
	})
}

func TestClient_UpdatePost(t *testing.T) {
	t.Parallel()

	t.Run("sends the content and accepts true", func(t *testing.T) {
		t.Parallel()

		var gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			_, _ = w.Write([]byte(`<?xml version="1.0"?><methodResponse><params><param><value><boolean>1</boolean></value></param></params></methodResponse>`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		err := client.UpdatePost(context.Background(), 42, "<p>New</p>")

		require.NoError(t, err)
		assert.Contains(t, gotBody, "<methodName>wp.editPost</methodName>")
		assert.Contains(t, gotBody, "post_content")
	})

	t.Run("rejected update is unavailable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><methodResponse><params><param><value><boolean>0</boolean></value></param></params></methodResponse>`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		err := client.UpdatePost(context.Background(), 42, "<p>New</p>")

		assert.Equal(t, postrewriter.EUNAVAILABLE, postrewriter.ErrorCode(err))
	})
}

func TestClient_TestConnection(t *testing.T) {
	t.Parallel()

	t.Run("succeeds against a healthy site", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<?xml version="1.0"?><methodResponse><params><param><value><struct><member><name>blog_title</name><value><string>Site</string></value></member></struct></value></param></params></methodResponse>`))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		assert.NoError(t, client.TestConnection(context.Background()))
	})

	t.Run("bad credentials fail", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(faultResponse))
		}))
		defer srv.Close()

		client := newClient(t, srv.URL)
		err := client.TestConnection(context.Background())

		assert.Equal(t, postrewriter.EUNAVAILABLE, postrewriter.ErrorCode(err))
	})
}

func TestNewClient_MissingConfig(t *testing.T) {
	t.Parallel()

	_, err := wordpress.NewClient(wordpress.Config{}, nil)

	assert.Equal(t, postrewriter.EINVALID, postrewriter.ErrorCode(err))
}
