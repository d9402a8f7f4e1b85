package web

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/discover"
	"github.com/utafrali/BlogGo/internal/domain"
	"github.com/utafrali/BlogGo/internal/query"
	"github.com/utafrali/BlogGo/pkg/pagination"
	"github.com/utafrali/BlogGo/pkg/validator"
)

const sortCookie = "blog_sort"

// pageLink is one paginator button.
type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// filterChip is one active-filter badge with its clear link.
type filterChip struct {
	Label    string
	Value    string
	ClearURL string
}

type blogsPage struct {
	basePage
	Blogs      []domain.Blog
	Query      query.DiscoveryQuery
	Failed     bool
	TotalPages int

	Window    pagination.Window
	PageLinks []pageLink
	FirstURL  string
	LastURL   string
	PrevURL   string
	NextURL   string

	Chips       []filterChip
	ClearAllURL string
}

func blogsURL(values url.Values) string {
	if len(values) == 0 {
		return "/blogs"
	}
	return "/blogs?" + values.Encode()
}

// Blogs renders the discovery page. The URL is the single source of truth:
// the active query is decoded from it on every request, and every
// interaction link on the page is an encoded variation of it.
func (h *Handler) Blogs(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := query.Decode(values)
	q.Sort = h.sortPreference(r)

	page, err := h.fetcher.Fetch(r.Context(), q)
	if err != nil {
		if errors.Is(err, discover.ErrSuperseded) {
			// A newer navigation owns the screen; send this one back around.
			http.Redirect(w, r, blogsURL(values), http.StatusSeeOther)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	view := blogsPage{
		basePage:   h.base(r, "Explore Blogs"),
		Blogs:      page.Blogs,
		Query:      q,
		Failed:     page.Failed,
		TotalPages: page.TotalPages,
	}
	if page.Failed {
		view.Error = "Failed to load blogs. Please try again."
	}

	if page.TotalPages > 1 {
		view.Window = pagination.ComputeWindow(q.Page, page.TotalPages)
		for _, n := range view.Window.Pages() {
			view.PageLinks = append(view.PageLinks, pageLink{
				Number:  n,
				URL:     blogsURL(query.EncodePage(values, n)),
				Current: n == q.Page,
			})
		}
		view.FirstURL = blogsURL(query.EncodePage(values, 1))
		view.LastURL = blogsURL(query.EncodePage(values, page.TotalPages))
		if q.Page > 1 {
			view.PrevURL = blogsURL(query.EncodePage(values, q.Page-1))
		}
		if q.Page < page.TotalPages {
			view.NextURL = blogsURL(query.EncodePage(values, q.Page+1))
		}
	}

	for _, key := range []string{query.ParamSearch, query.ParamAuthor, query.ParamTags} {
		if v := values.Get(key); v != "" {
			view.Chips = append(view.Chips, filterChip{
				Label:    key,
				Value:    v,
				ClearURL: blogsURL(query.ClearKey(values, key)),
			})
		}
	}
	if len(view.Chips) > 0 {
		view.ClearAllURL = blogsURL(query.ClearAll())
	}

	h.render.Render(w, http.StatusOK, "blogs.html", view)
}

// sortPreference reads the UI-local sort order. It lives in a cookie, not
// the URL: sharing a listing link never carries the sort along.
func (h *Handler) sortPreference(r *http.Request) query.Sort {
	c, err := r.Cookie(sortCookie)
	if err != nil {
		return query.SortNewest
	}
	s := query.Sort(c.Value)
	if !query.ValidSort(s) {
		return query.SortNewest
	}
	return s
}

// BlogsSearch handles the search form: a fresh URL with only the search
// key, page reset to 1.
func (h *Handler) BlogsSearch(w http.ResponseWriter, r *http.Request) {
	term := r.FormValue("search")
	http.Redirect(w, r, blogsURL(query.EncodeSearch(term)), http.StatusSeeOther)
}

// BlogsFilter handles the author/tags filter form: a fresh URL with only
// the filter keys, page reset to 1. Previously active unrelated filters
// are dropped, not combined.
func (h *Handler) BlogsFilter(w http.ResponseWriter, r *http.Request) {
	author := r.FormValue("author")
	tags := query.ParseTags(r.FormValue("tags"))
	http.Redirect(w, r, blogsURL(query.EncodeFilter(author, tags)), http.StatusSeeOther)
}

// BlogsSort stores the sort preference and returns to the first page of
// the default listing.
func (h *Handler) BlogsSort(w http.ResponseWriter, r *http.Request) {
	s := query.Sort(r.FormValue("sort"))
	if !query.ValidSort(s) {
		s = query.SortNewest
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sortCookie,
		Value:    string(s),
		Path:     "/blogs",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

type blogDetailPage struct {
	basePage
	Blog    *domain.Blog
	IsOwner bool
}

// BlogDetail renders one post with its comments.
func (h *Handler) BlogDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.api.GetBlog(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	view := blogDetailPage{
		basePage: h.base(r, blog.Title),
		Blog:     blog,
	}
	if u := view.Session.User; u != nil {
		view.IsOwner = u.ID == blog.AuthorID || u.IsAdmin()
	}
	h.render.Render(w, http.StatusOK, "blog_detail.html", view)
}

type composePage struct {
	basePage
	Blog   *domain.Blog
	Fields map[string]string
}

// ComposeForm renders the new-post editor.
func (h *Handler) ComposeForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "compose.html", composePage{basePage: h.base(r, "Write a Blog")})
}

// ComposeSubmit validates and publishes a new post.
func (h *Handler) ComposeSubmit(w http.ResponseWriter, r *http.Request) {
	req := api.CreateBlogRequest{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
		Tags:    query.ParseTags(r.FormValue("tags")),
	}
	if err := validator.Validate(req); err != nil {
		view := composePage{basePage: h.base(r, "Write a Blog")}
		view.Error = err.Error()
		view.Fields = validationFields(err)
		h.render.Render(w, http.StatusBadRequest, "compose.html", view)
		return
	}

	blog, err := h.api.CreateBlog(r.Context(), req)
	if err != nil {
		view := composePage{basePage: h.base(r, "Write a Blog")}
		view.Error = userMessage(err)
		h.render.Render(w, http.StatusBadGateway, "compose.html", view)
		return
	}
	http.Redirect(w, r, "/blogs/"+url.PathEscape(blog.ID), http.StatusSeeOther)
}

// EditForm renders the editor preloaded with an existing post.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	blog, err := h.api.GetBlog(r.Context(), id)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	snap := h.store.Snapshot()
	if snap.User == nil || (snap.User.ID != blog.AuthorID && !snap.User.IsAdmin()) {
		http.Redirect(w, r, "/blogs/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}
	h.render.Render(w, http.StatusOK, "compose.html", composePage{
		basePage: h.base(r, "Edit Blog"),
		Blog:     blog,
	})
}

// EditSubmit validates and saves an edited post.
func (h *Handler) EditSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title := r.FormValue("title")
	content := r.FormValue("content")
	tags := query.ParseTags(r.FormValue("tags"))

	req := api.UpdateBlogRequest{Title: &title, Content: &content, Tags: &tags}
	if err := validator.Validate(req); err != nil {
		view := composePage{basePage: h.base(r, "Edit Blog")}
		view.Error = err.Error()
		view.Fields = validationFields(err)
		h.render.Render(w, http.StatusBadRequest, "compose.html", view)
		return
	}

	if _, err := h.api.UpdateBlog(r.Context(), id, req); err != nil {
		view := composePage{basePage: h.base(r, "Edit Blog")}
		view.Error = userMessage(err)
		h.render.Render(w, http.StatusBadGateway, "compose.html", view)
		return
	}
	http.Redirect(w, r, "/blogs/"+url.PathEscape(id), http.StatusSeeOther)
}

// DeleteBlog removes a post and returns to the listing.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DeleteBlog(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/blogs", http.StatusSeeOther)
}

// AddComment posts a comment and returns to the post.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := api.CommentRequest{Content: r.FormValue("content")}
	if err := validator.Validate(req); err == nil {
		if err := h.api.AddComment(r.Context(), id, req); err != nil {
			h.logger.WarnContext(r.Context(), "add comment failed", "error", err.Error())
		}
	}
	http.Redirect(w, r, "/blogs/"+url.PathEscape(id), http.StatusSeeOther)
}

// DeleteComment removes a comment and returns to the post.
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	commentID := chi.URLParam(r, "commentID")
	if err := h.api.DeleteComment(r.Context(), id, commentID); err != nil {
		h.logger.WarnContext(r.Context(), "delete comment failed", "error", err.Error())
	}
	http.Redirect(w, r, "/blogs/"+url.PathEscape(id), http.StatusSeeOther)
}

// React records a like or dislike and returns to the post.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reaction := r.FormValue("reaction")
	if reaction == domain.ReactionLike || reaction == domain.ReactionDislike {
		if err := h.api.React(r.Context(), id, reaction); err != nil {
			h.logger.WarnContext(r.Context(), "reaction failed", "error", err.Error())
		}
	}
	http.Redirect(w, r, "/blogs/"+url.PathEscape(id), http.StatusSeeOther)
}

type homePage struct {
	basePage
	Popular []domain.Blog
}

// Home renders the landing page with the popular sidebar.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	view := homePage{basePage: h.base(r, "Home")}

	popular, err := h.api.PopularBlogs(r.Context(), h.cfg.PopularLimit)
	if err != nil {
		// The landing page still renders without the sidebar.
		h.logger.WarnContext(r.Context(), "popular blogs unavailable", "error", err.Error())
	} else {
		view.Popular = popular
	}
	h.render.Render(w, http.StatusOK, "home.html", view)
}
