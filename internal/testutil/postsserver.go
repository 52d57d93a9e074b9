// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"plptask/internal/posts"
)

// PostsServer is an in-memory stand-in for the remote posts API.
// It answers GET /posts with q, _page and _limit the way the real API does.
type PostsServer struct {
	*httptest.Server

	mu       sync.Mutex
	posts    []posts.Post
	requests []url.Values

	// FailStatus, when non-zero, is returned for every request.
	FailStatus int

	// OmitTotal drops the X-Total-Count header from responses.
	OmitTotal bool
}

// NewPostsServer starts a server over the given posts. It is closed when the
// test finishes.
func NewPostsServer(t *testing.T, list []posts.Post) *PostsServer {
	t.Helper()
	ps := &PostsServer{posts: list}
	ps.Server = httptest.NewServer(http.HandlerFunc(ps.handle))
	t.Cleanup(ps.Close)
	return ps
}

// SamplePosts builds n posts whose titles are "post <id>".
func SamplePosts(n int) []posts.Post {
	list := make([]posts.Post, n)
	for i := range list {
		id := i + 1
		list[i] = posts.Post{
			ID:     id,
			Title:  fmt.Sprintf("post %d", id),
			Body:   fmt.Sprintf("body of post %d", id),
			UserID: (i / 10) + 1,
		}
	}
	return list
}

// SetFailStatus changes FailStatus while the server is running.
func (ps *PostsServer) SetFailStatus(code int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.FailStatus = code
}

// Requests returns the query parameters of every request received.
func (ps *PostsServer) Requests() []url.Values {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]url.Values(nil), ps.requests...)
}

func (ps *PostsServer) handle(w http.ResponseWriter, r *http.Request) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	q := r.URL.Query()
	ps.requests = append(ps.requests, q)

	if r.URL.Path != "/posts" {
		http.NotFound(w, r)
		return
	}
	if ps.FailStatus != 0 {
		http.Error(w, http.StatusText(ps.FailStatus), ps.FailStatus)
		return
	}

	matches := ps.posts
	if query := strings.ToLower(q.Get("q")); query != "" {
		matches = nil
		for _, p := range ps.posts {
			if strings.Contains(strings.ToLower(p.Title), query) || strings.Contains(strings.ToLower(p.Body), query) {
				matches = append(matches, p)
			}
		}
	}

	page, limit := atoiOr(q.Get("_page"), 1), atoiOr(q.Get("_limit"), len(matches))
	start := (page - 1) * limit
	if start > len(matches) {
		start = len(matches)
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}

	w.Header().Set("Content-Type", "application/json")
	if !ps.OmitTotal {
		w.Header().Set(posts.TotalCountHeader, strconv.Itoa(len(matches)))
	}
	body := matches[start:end]
	if body == nil {
		body = []posts.Post{}
	}
	json.NewEncoder(w).Encode(body)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
