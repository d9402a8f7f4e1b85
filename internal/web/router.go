package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/BlogGo/internal/guard"
	"github.com/utafrali/BlogGo/pkg/health"
	"github.com/utafrali/BlogGo/pkg/middleware"
)

// NewRouter builds the chi router for the whole client: HTML pages, JSON
// helper endpoints, health, and metrics. Every page group passes through
// the session guard, which holds the navigation until the initial restore
// resolves and then admits or redirects.
func NewRouter(h *Handler, healthHandler *health.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bloggo"))
	r.Use(middleware.RequestLogger(logger, h.SessionUserID))

	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/session", h.SessionStatus)

	// Public pages. The guard still suspends them until the session
	// resolves so the shared navigation never renders a half-known state.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.store, guard.Public, logger))

		r.Get("/", h.Home)
		r.Get("/blogs", h.Blogs)
		r.Post("/blogs/search", h.BlogsSearch)
		r.Post("/blogs/filter", h.BlogsFilter)
		r.Post("/blogs/sort", h.BlogsSort)
		r.Get("/blogs/{id}", h.BlogDetail)

		r.Get("/login", h.LoginForm)
		r.Post("/login", h.LoginSubmit)
		r.Get("/register", h.RegisterForm)
		r.Post("/register", h.RegisterSubmit)
	})

	// Authenticated pages.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.store, guard.Authenticated, logger))

		r.Get("/compose", h.ComposeForm)
		r.Post("/compose", h.ComposeSubmit)
		r.Get("/blogs/{id}/edit", h.EditForm)
		r.Post("/blogs/{id}/edit", h.EditSubmit)
		r.Post("/blogs/{id}/delete", h.DeleteBlog)
		r.Post("/blogs/{id}/comments", h.AddComment)
		r.Post("/blogs/{id}/comments/{commentID}/delete", h.DeleteComment)
		r.Post("/blogs/{id}/react", h.React)

		r.Get("/profile", h.ProfileForm)
		r.Post("/profile", h.ProfileSubmit)
		r.Post("/profile/picture", h.ProfilePicture)
		r.Post("/logout", h.Logout)

		r.Get("/ai-tools", h.AIToolsPage)
		r.Post("/api/ai/generate", h.AIGenerate)
		r.Post("/api/ai/enhance", h.AIEnhance)
		r.Post("/api/ai/suggest", h.AISuggest)
	})

	// Admin pages.
	r.Group(func(r chi.Router) {
		r.Use(guard.Require(h.store, guard.Admin, logger))

		r.Get("/admin", h.AdminUsers)
		r.Post("/admin/users/{id}/promote", h.AdminPromote)
		r.Post("/admin/users/{id}/demote", h.AdminDemote)
	})

	// Unknown paths land on the home page rather than a dead end.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	return r
}
