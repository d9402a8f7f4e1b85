package web

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/config"
	"github.com/utafrali/BlogGo/internal/discover"
	"github.com/utafrali/BlogGo/internal/session"
)

// Handler serves all HTML views and the JSON helper endpoints.
type Handler struct {
	cfg     *config.Config
	store   *session.Store
	fetcher *discover.Fetcher
	api     *api.Client
	render  *Renderer
	logger  *slog.Logger
}

// NewHandler wires the view layer to the session store, the discovery
// fetcher, and the remote API client.
func NewHandler(
	cfg *config.Config,
	store *session.Store,
	fetcher *discover.Fetcher,
	apiClient *api.Client,
	renderer *Renderer,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		api:     apiClient,
		render:  renderer,
		logger:  logger,
	}
}

// basePage carries fields every view shares.
type basePage struct {
	Title   string
	Session session.Snapshot
	Error   string
}

func (h *Handler) base(r *http.Request, title string) basePage {
	return basePage{
		Title:   title,
		Session: h.store.Snapshot(),
	}
}

// SessionUserID resolves the acting user for request-scoped logging.
func (h *Handler) SessionUserID(r *http.Request) string {
	snap := h.store.Snapshot()
	if snap.User != nil {
		return snap.User.ID
	}
	return ""
}
