package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Client talks to the content store's REST API:
//
//	GET {base}/posts         -> {"posts":[...]}
//	GET {base}/posts/{slug}  -> {"post":{...}}
type Client struct {
	base    string
	apiKey  string
	hc      *http.Client
	limiter *rate.Limiter
	maxWait time.Duration
}

// ErrRateLimited is returned instead of queueing when the next request slot
// is further away than MaxWait.
var ErrRateLimited = errors.New("content store rate limit reached")

type ClientOptions struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// RequestsPerSecond caps outbound calls; 0 means 5/s.
	RequestsPerSecond float64
	Burst             int
	// MaxWait is how long a call may wait for a slot; 0 means 500ms.
	MaxWait time.Duration
}

func NewClient(opts ClientOptions) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = 500 * time.Millisecond
	}
	return &Client{
		base:    strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		hc:      &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		maxWait: opts.MaxWait,
	}
}

type listResponse struct {
	Posts []Post `json:"posts"`
}

type getResponse struct {
	Post Post `json:"post"`
}

func (c *Client) List(ctx context.Context) ([]Post, error) {
	var out listResponse
	if err := c.get(ctx, "/posts", &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) Get(ctx context.Context, slug string) (Post, error) {
	var out getResponse
	if err := c.get(ctx, "/posts/"+url.PathEscape(slug), &out); err != nil {
		return Post{}, err
	}
	if out.Post.Slug == "" {
		out.Post.Slug = slug
	}
	return out.Post, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "portfolio/1.0")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("content store %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("content store %s: %w", path, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content store %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// wait takes a limiter slot, giving up with ErrRateLimited rather than
// holding a page render behind a queue.
func (c *Client) wait(ctx context.Context) error {
	r := c.limiter.Reserve()
	if !r.OK() {
		return ErrRateLimited
	}
	d := r.Delay()
	if d == 0 {
		return nil
	}
	if d > c.maxWait {
		r.Cancel()
		return ErrRateLimited
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
