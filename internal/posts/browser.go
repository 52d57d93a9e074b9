package posts

import (
	"context"
	"sync"
)

// Request is one fetch the browser intends to make.
type Request struct {
	Query string
	Page  int
}

// Browser accumulates pages of posts for the current query.
//
// Requests can be issued with Do and their results applied later with
// Apply, which lets an event loop keep fetching off the UI path. Superseded
// requests are not cancelled: whichever result is applied last wins.
type Browser struct {
	mu      sync.Mutex
	fetcher Fetcher
	limit   int

	query   string
	page    int
	total   int
	hasMore bool
	posts   []Post
	err     error
}

// NewBrowser creates an empty browser over f with PageSize pages.
func NewBrowser(f Fetcher) *Browser {
	return &Browser{fetcher: f, limit: PageSize}
}

// SearchRequest returns the request for the first page of query.
func (b *Browser) SearchRequest(query string) Request {
	return Request{Query: query, Page: 1}
}

// NextRequest returns the request for the page after the last one loaded.
// ok is false when no more pages exist.
func (b *Browser) NextRequest() (req Request, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasMore {
		return Request{}, false
	}
	return Request{Query: b.query, Page: b.page + 1}, true
}

// RefreshRequest returns the request that reloads the current query from page 1.
func (b *Browser) RefreshRequest() Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Request{Query: b.query, Page: 1}
}

// Do performs req without changing the browser's state.
func (b *Browser) Do(ctx context.Context, req Request) (Page, error) {
	return b.fetcher.Fetch(ctx, req.Query, req.Page, b.limit)
}

// Apply records the outcome of req. A first page replaces the accumulated
// posts, later pages are appended. On error only the error is recorded and
// the accumulated posts are left as they were.
func (b *Browser) Apply(req Request, page Page, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.err = err
		return
	}

	if req.Page <= 1 {
		b.posts = append([]Post(nil), page.Posts...)
	} else {
		b.posts = append(b.posts, page.Posts...)
	}
	b.query = req.Query
	b.page = req.Page
	b.total = page.Total
	b.hasMore = req.Page*b.limit < page.Total
	b.err = nil
}

// Search loads the first page of query, replacing the accumulated posts.
func (b *Browser) Search(ctx context.Context, query string) error {
	return b.run(ctx, b.SearchRequest(query))
}

// LoadMore appends the next page. It does nothing once HasMore is false.
func (b *Browser) LoadMore(ctx context.Context) error {
	req, ok := b.NextRequest()
	if !ok {
		return nil
	}
	return b.run(ctx, req)
}

// Refresh reloads the current query from page 1.
func (b *Browser) Refresh(ctx context.Context) error {
	return b.run(ctx, b.RefreshRequest())
}

func (b *Browser) run(ctx context.Context, req Request) error {
	page, err := b.Do(ctx, req)
	b.Apply(req, page, err)
	return err
}

// Posts returns a copy of the accumulated posts.
func (b *Browser) Posts() []Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Post(nil), b.posts...)
}

// Query returns the query of the last successful fetch.
func (b *Browser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Page returns the last page loaded, 0 before any fetch succeeded.
func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Total returns the total reported by the last successful fetch.
func (b *Browser) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// HasMore reports whether another page exists.
func (b *Browser) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMore
}

// Err returns the error of the last fetch, nil after a success.
func (b *Browser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}
