package discover

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/domain"
	"github.com/utafrali/BlogGo/internal/query"
)

// BlogAPI is the remote discovery collaborator: the four listing
// operations, all sharing the same paginated response shape.
type BlogAPI interface {
	ListBlogs(ctx context.Context, page, limit int, sort string) (*api.BlogPage, error)
	SearchBlogsByTitle(ctx context.Context, title string, page, limit int) (*api.BlogPage, error)
	SearchBlogsByAuthor(ctx context.Context, author string, page, limit int) (*api.BlogPage, error)
	FilterBlogsByTags(ctx context.Context, tags []string, page, limit int) (*api.BlogPage, error)
}

// Page is one normalized page of discovery results.
type Page struct {
	Query      query.DiscoveryQuery
	Blogs      []domain.Blog
	Total      int
	TotalPages int

	// Failed marks a recoverable remote failure: the item set is empty and
	// the caller owns the user-visible messaging and retry affordance.
	Failed bool
}

// ErrSuperseded is returned for a fetch whose result arrived after a newer
// query was issued. The result is discarded; the caller must not render it.
var ErrSuperseded = errors.New("discovery fetch superseded by a newer query")

// Fetcher dispatches a DiscoveryQuery to the matching remote operation and
// enforces that the last-issued request wins: responses are ordered by
// issue order, not completion order.
type Fetcher struct {
	api    BlogAPI
	logger *slog.Logger

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64
}

// NewFetcher creates a Fetcher over the given discovery API.
func NewFetcher(blogAPI BlogAPI, logger *slog.Logger) *Fetcher {
	return &Fetcher{api: blogAPI, logger: logger}
}

// Fetch retrieves the page selected by q. A remote failure yields an empty
// page with the Failed flag set and a nil error. If a newer query was
// issued while this one was in flight, ErrSuperseded is returned instead
// of the stale page.
func (f *Fetcher) Fetch(ctx context.Context, q query.DiscoveryQuery) (*Page, error) {
	seq := f.seq.Add(1)

	res, err := f.dispatch(ctx, q)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq.Load() != seq || seq <= f.applied {
		return nil, ErrSuperseded
	}
	f.applied = seq

	if err != nil {
		f.logger.WarnContext(ctx, "discovery fetch failed",
			slog.String("mode", q.Mode.String()),
			slog.Int("page", q.Page),
			slog.String("error", err.Error()),
		)
		return &Page{Query: q, Blogs: []domain.Blog{}, Failed: true}, nil
	}

	blogs := res.Data
	if blogs == nil {
		blogs = []domain.Blog{}
	}
	return &Page{
		Query:      q,
		Blogs:      blogs,
		Total:      res.Total,
		TotalPages: res.TotalPages,
	}, nil
}

// dispatch selects the remote operation by mode.
func (f *Fetcher) dispatch(ctx context.Context, q query.DiscoveryQuery) (*api.BlogPage, error) {
	switch q.Mode {
	case query.ModeSearch:
		return f.api.SearchBlogsByTitle(ctx, q.Search, q.Page, q.Limit)
	case query.ModeAuthor:
		return f.api.SearchBlogsByAuthor(ctx, q.Author, q.Page, q.Limit)
	case query.ModeTags:
		return f.api.FilterBlogsByTags(ctx, q.Tags, q.Page, q.Limit)
	default:
		return f.api.ListBlogs(ctx, q.Page, q.Limit, string(q.Sort))
	}
}
