package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/BlogGo/internal/domain"
	"github.com/utafrali/BlogGo/pkg/pagination"
)

// BlogPage is the paginated listing shape shared by all four discovery
// operations.
type BlogPage = pagination.Result[domain.Blog]

// CreateBlogRequest is the payload for POST /blogs.
type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required,min=5,max=255"`
	Content string   `json:"content" validate:"required,min=20"`
	Tags    []string `json:"tags" validate:"omitempty,dive,alphanum,min=2,max=20"`
}

// UpdateBlogRequest is the payload for PUT /blogs/{id}.
type UpdateBlogRequest struct {
	Title   *string   `json:"title,omitempty" validate:"omitempty,min=5,max=255"`
	Content *string   `json:"content,omitempty" validate:"omitempty,min=20"`
	Tags    *[]string `json:"tags,omitempty" validate:"omitempty,dive,alphanum,min=2,max=20"`
}

// CommentRequest is the payload for creating or updating a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// ListBlogs fetches the default listing, ordered by sort
// (newest, oldest, or popular).
func (c *Client) ListBlogs(ctx context.Context, page, limit int, sort string) (*BlogPage, error) {
	q := pageQuery(page, limit)
	q.Set("sort", sort)
	var res BlogPage
	if err := c.get(ctx, "list_blogs", "/blogs", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchBlogsByTitle fetches posts whose title matches the search text.
func (c *Client) SearchBlogsByTitle(ctx context.Context, title string, page, limit int) (*BlogPage, error) {
	q := pageQuery(page, limit)
	q.Set("title", title)
	var res BlogPage
	if err := c.get(ctx, "search_title", "/blogs/search/title", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchBlogsByAuthor fetches posts written by the named author.
func (c *Client) SearchBlogsByAuthor(ctx context.Context, author string, page, limit int) (*BlogPage, error) {
	q := pageQuery(page, limit)
	q.Set("author", author)
	var res BlogPage
	if err := c.get(ctx, "search_author", "/blogs/search/author", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FilterBlogsByTags fetches posts carrying any of the given tags. Tags are
// passed comma-joined, preserving order.
func (c *Client) FilterBlogsByTags(ctx context.Context, tags []string, page, limit int) (*BlogPage, error) {
	q := pageQuery(page, limit)
	q.Set("tags", strings.Join(tags, ","))
	var res BlogPage
	if err := c.get(ctx, "filter_tags", "/blogs/filter/tags", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PopularBlogs fetches the most-viewed posts, unpaginated.
func (c *Client) PopularBlogs(ctx context.Context, limit int) ([]domain.Blog, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	var blogs []domain.Blog
	if err := c.get(ctx, "popular_blogs", "/blogs/popular", q, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

// GetBlog fetches one post by ID, comments included.
func (c *Client) GetBlog(ctx context.Context, id string) (*domain.Blog, error) {
	var blog domain.Blog
	if err := c.get(ctx, "get_blog", "/blogs/"+url.PathEscape(id), nil, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// CreateBlog publishes a new post.
func (c *Client) CreateBlog(ctx context.Context, req CreateBlogRequest) (*domain.Blog, error) {
	var blog domain.Blog
	if err := c.post(ctx, "create_blog", "/blogs", req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog edits an existing post.
func (c *Client) UpdateBlog(ctx context.Context, id string, req UpdateBlogRequest) (*domain.Blog, error) {
	var blog domain.Blog
	if err := c.put(ctx, "update_blog", "/blogs/"+url.PathEscape(id), req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog removes a post.
func (c *Client) DeleteBlog(ctx context.Context, id string) error {
	return c.delete(ctx, "delete_blog", "/blogs/"+url.PathEscape(id))
}

// AddComment posts a comment on a blog.
func (c *Client) AddComment(ctx context.Context, blogID string, req CommentRequest) error {
	return c.post(ctx, "add_comment", "/blogs/"+url.PathEscape(blogID)+"/comments", req, nil)
}

// UpdateComment edits an existing comment.
func (c *Client) UpdateComment(ctx context.Context, blogID, commentID string, req CommentRequest) error {
	return c.put(ctx, "update_comment", "/blogs/"+url.PathEscape(blogID)+"/comments/"+url.PathEscape(commentID), req, nil)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, blogID, commentID string) error {
	return c.delete(ctx, "delete_comment", "/blogs/"+url.PathEscape(blogID)+"/comments/"+url.PathEscape(commentID))
}

// React records a like or dislike on a blog.
func (c *Client) React(ctx context.Context, blogID, reaction string) error {
	return c.post(ctx, "react", "/blogs/"+url.PathEscape(blogID)+"/"+reaction, nil, nil)
}
