package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/sync/singleflight"

	"github.com/go-drift/postboard/pkg/errors"
	"github.com/go-drift/postboard/pkg/log"
)

// DefaultTimeout bounds each request.
const DefaultTimeout = 15 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// Client talks to the posts resource. It is safe for concurrent use.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	lists     singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client's transport
// is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient returns a client for baseURL. The default transport accepts
// gzip-encoded responses.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.New("posts.NewClient", errors.KindConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, errors.New("posts.NewClient", errors.KindConfig,
			fmt.Errorf("base url %q: scheme must be http or https", baseURL))
	}
	c := &Client{
		base: u,
		http: &http.Client{
			Transport: gzhttp.Transport(http.DefaultTransport),
			Timeout:   DefaultTimeout,
		},
		userAgent: "postboard",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the resource root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()
	return u.String()
}

// List fetches up to limit posts in server order. A limit of zero or less
// omits the _limit parameter. Concurrent calls with the same limit share one
// request. The shared request ignores caller cancellation and is bounded by
// the client timeout; each caller still returns as soon as its own ctx ends.
func (c *Client) List(ctx context.Context, limit int) ([]Post, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("_limit", strconv.Itoa(limit))
	}
	target := c.endpoint("/posts", query)

	ch := c.lists.DoChan(target, func() (any, error) {
		var list []Post
		err := c.do(context.WithoutCancel(ctx), "posts.List", http.MethodGet, target, nil, postListSchema, &list)
		return list, err
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		list := res.Val.([]Post)
		// Shared results must not alias between callers.
		return append([]Post(nil), list...), nil
	case <-ctx.Done():
		return nil, errors.New("posts.List", errors.KindNetwork, ctx.Err())
	}
}

// Get fetches a single post.
func (c *Client) Get(ctx context.Context, id int) (Post, error) {
	var p Post
	target := c.endpoint("/posts/"+strconv.Itoa(id), nil)
	err := c.do(ctx, "posts.Get", http.MethodGet, target, nil, postSchema, &p)
	return p, err
}

// Create submits draft as a new post by DefaultUserID and returns the post
// the server created.
func (c *Client) Create(ctx context.Context, draft Draft) (Post, error) {
	body, err := json.Marshal(createRequest{Title: draft.Title, Body: draft.Body, UserID: DefaultUserID})
	if err != nil {
		return Post{}, errors.New("posts.Create", errors.KindUnknown, err)
	}
	var p Post
	target := c.endpoint("/posts", nil)
	err = c.do(ctx, "posts.Create", http.MethodPost, target, body, postSchema, &p)
	return p, err
}

func (c *Client) do(ctx context.Context, op, method, target string, body []byte, schema *jsonschema.Schema, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return withURL(errors.New(op, errors.KindConfig, err), target)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return withURL(errors.New(op, errors.KindNetwork, err), target)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return withURL(errors.New(op, errors.KindNetwork, err), target)
	}
	log.D.F("%s %s -> %d (%d bytes, %s)", method, target, resp.StatusCode, len(data), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := errors.New(op, errors.KindServer, fmt.Errorf("%s", statusText(resp.StatusCode, data)))
		e.Status = resp.StatusCode
		return withURL(e, target)
	}
	if err := decodeValidated(data, schema, out); err != nil {
		return withURL(errors.New(op, errors.KindDecode, err), target)
	}
	return nil
}

func withURL(e *errors.Error, target string) *errors.Error {
	e.URL = target
	return e
}

func statusText(code int, body []byte) string {
	text := http.StatusText(code)
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 120 {
		snippet = snippet[:120] + "..."
	}
	if snippet == "" || snippet == "{}" {
		return text
	}
	return text + ": " + snippet
}
