// Package posts fetches and accumulates pages of posts from a JSON REST API.
package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is the public API the browser reads from.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com"

	// PageSize is the number of posts per page.
	PageSize = 10

	// APITimeout is the timeout for a single request.
	APITimeout = 5 * time.Second

	// DefaultTotal is assumed when the response carries no total count.
	DefaultTotal = 100

	// TotalCountHeader carries the number of matching posts.
	TotalCountHeader = "X-Total-Count"

	userAgent = "plptask"
)

// Post is a single remote post.
type Post struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Page is one response: the posts plus the total number of matches.
type Page struct {
	Posts []Post
	Total int
}

// Fetcher retrieves one page of posts. An empty query lists all posts.
type Fetcher interface {
	Fetch(ctx context.Context, query string, page, limit int) (Page, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d", e.Op, e.Code)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout overrides APITimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for request debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client implements Fetcher over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *log.Logger
}

// New creates a client for the API rooted at baseURL.
// An empty baseURL selects DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		timeout: APITimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Fetch implements Fetcher.
func (c *Client) Fetch(ctx context.Context, query string, page, limit int) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	op := "failed to fetch posts"
	params := url.Values{}
	if query != "" {
		op = "failed to search posts"
		params.Set("q", query)
	}
	params.Set("_page", strconv.Itoa(page))
	params.Set("_limit", strconv.Itoa(limit))
	endpoint := c.baseURL + "/posts?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("fetching posts", "url", endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, wrapError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, &StatusError{Op: op, Code: resp.StatusCode}
	}

	var posts []Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return Page{}, wrapError(op, fmt.Errorf("decode response: %w", err))
	}

	total := parseTotal(resp.Header.Get(TotalCountHeader))
	c.logger.Debug("fetched posts", "count", len(posts), "total", total)
	return Page{Posts: posts, Total: total}, nil
}

// parseTotal reads the total-count header, defaulting to DefaultTotal.
func parseTotal(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return DefaultTotal
	}
	return n
}

// wrapError wraps transport errors with user-friendly messages.
func wrapError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: request timed out", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}
