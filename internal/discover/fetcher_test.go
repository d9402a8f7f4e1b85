package discover

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/domain"
	"github.com/utafrali/BlogGo/internal/query"
)

// fakeBlogAPI records which operation served a fetch and lets a test hold a
// call open to simulate slow responses.
type fakeBlogAPI struct {
	mu      sync.Mutex
	calls   []string
	pages   map[string]*api.BlogPage
	err     error
	release chan struct{}
}

func newFakeBlogAPI() *fakeBlogAPI {
	return &fakeBlogAPI{pages: make(map[string]*api.BlogPage)}
}

func (f *fakeBlogAPI) record(op string) {
	f.mu.Lock()
	f.calls = append(f.calls, op)
	f.mu.Unlock()
}

func (f *fakeBlogAPI) serve(op string) (*api.BlogPage, error) {
	f.record(op)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	if page, ok := f.pages[op]; ok {
		return page, nil
	}
	return &api.BlogPage{Data: []domain.Blog{}, Page: 1, TotalPages: 1}, nil
}

func (f *fakeBlogAPI) ListBlogs(ctx context.Context, page, limit int, sort string) (*api.BlogPage, error) {
	return f.serve("list")
}

func (f *fakeBlogAPI) SearchBlogsByTitle(ctx context.Context, title string, page, limit int) (*api.BlogPage, error) {
	return f.serve("search")
}

func (f *fakeBlogAPI) SearchBlogsByAuthor(ctx context.Context, author string, page, limit int) (*api.BlogPage, error) {
	return f.serve("author")
}

func (f *fakeBlogAPI) FilterBlogsByTags(ctx context.Context, tags []string, page, limit int) (*api.BlogPage, error) {
	return f.serve("tags")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	testWait = 2 * time.Second
	testTick = 5 * time.Millisecond
)

func TestFetch_DispatchByMode(t *testing.T) {
	tests := []struct {
		name string
		q    query.DiscoveryQuery
		want string
	}{
		{"default listing", query.Default(), "list"},
		{"search", query.DiscoveryQuery{Mode: query.ModeSearch, Search: "go", Page: 1, Limit: 6}, "search"},
		{"author", query.DiscoveryQuery{Mode: query.ModeAuthor, Author: "alice", Page: 1, Limit: 6}, "author"},
		{"tags", query.DiscoveryQuery{Mode: query.ModeTags, Tags: []string{"go"}, Page: 1, Limit: 6}, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeBlogAPI()
			f := NewFetcher(fake, testLogger())

			page, err := f.Fetch(context.Background(), tt.q)

			require.NoError(t, err)
			require.NotNil(t, page)
			assert.Equal(t, []string{tt.want}, fake.calls)
			assert.Equal(t, tt.q, page.Query)
		})
	}
}

func TestFetch_NormalizesResult(t *testing.T) {
	fake := newFakeBlogAPI()
	fake.pages["list"] = &api.BlogPage{
		Data:       []domain.Blog{{ID: "b1", Title: "Hello"}},
		Page:       2,
		Total:      13,
		TotalPages: 3,
	}
	f := NewFetcher(fake, testLogger())

	page, err := f.Fetch(context.Background(), query.Default())

	require.NoError(t, err)
	assert.Len(t, page.Blogs, 1)
	assert.Equal(t, 13, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Failed)
}

func TestFetch_NilDataBecomesEmptySlice(t *testing.T) {
	fake := newFakeBlogAPI()
	fake.pages["list"] = &api.BlogPage{Data: nil, TotalPages: 1}
	f := NewFetcher(fake, testLogger())

	page, err := f.Fetch(context.Background(), query.Default())

	require.NoError(t, err)
	assert.NotNil(t, page.Blogs)
	assert.Empty(t, page.Blogs)
}

func TestFetch_RemoteFailureYieldsFailedPage(t *testing.T) {
	fake := newFakeBlogAPI()
	fake.err = errors.New("connection refused")
	f := NewFetcher(fake, testLogger())

	page, err := f.Fetch(context.Background(), query.Default())

	require.NoError(t, err)
	assert.True(t, page.Failed)
	assert.Empty(t, page.Blogs)
	assert.Zero(t, page.TotalPages)
}

func TestFetch_LastIssuedWins(t *testing.T) {
	slow := newFakeBlogAPI()
	slow.release = make(chan struct{})
	slow.pages["search"] = &api.BlogPage{Data: []domain.Blog{{ID: "stale"}}, TotalPages: 1}
	f := NewFetcher(slow, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.Fetch(context.Background(), query.DiscoveryQuery{Mode: query.ModeSearch, Search: "old", Page: 1, Limit: 6})
		firstDone <- err
	}()

	// Wait for the slow fetch to be in flight.
	assert.Eventually(t, func() bool {
		slow.mu.Lock()
		defer slow.mu.Unlock()
		return len(slow.calls) == 1
	}, testWait, testTick)

	// A second query issued while the first is still in flight.
	fast := query.DiscoveryQuery{Mode: query.ModeTags, Tags: []string{"go"}, Page: 1, Limit: 6}
	fastDone := make(chan struct{})
	go func() {
		defer close(fastDone)
		page, err := f.Fetch(context.Background(), fast)
		assert.NoError(t, err)
		if page != nil {
			assert.Equal(t, fast, page.Query)
		}
	}()

	assert.Eventually(t, func() bool {
		slow.mu.Lock()
		defer slow.mu.Unlock()
		return len(slow.calls) == 2
	}, testWait, testTick)

	// Release both in-flight calls. The fast one applies; the slow one is
	// discarded as stale no matter which order they drain in.
	close(slow.release)
	<-fastDone
	err := <-firstDone
	assert.ErrorIs(t, err, ErrSuperseded)
}

func TestFetch_SequentialFetchesAllApply(t *testing.T) {
	fake := newFakeBlogAPI()
	f := NewFetcher(fake, testLogger())

	for i := 1; i <= 3; i++ {
		page, err := f.Fetch(context.Background(), query.Default())
		require.NoError(t, err)
		require.NotNil(t, page)
	}
	assert.Len(t, fake.calls, 3)
}
