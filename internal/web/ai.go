package web

import (
	"net/http"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/pkg/httputil"
	"github.com/utafrali/BlogGo/pkg/validator"
)

// AIToolsPage renders the writing-assistant page. The page's buttons call
// the JSON endpoints below.
func (h *Handler) AIToolsPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "ai_tools.html", h.base(r, "Writing Assistant"))
}

// AIGenerate drafts post content for a topic.
func (h *Handler) AIGenerate(w http.ResponseWriter, r *http.Request) {
	var req api.AIGenerateRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	resp, err := h.api.GenerateBlog(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// AIEnhance improves existing post content.
func (h *Handler) AIEnhance(w http.ResponseWriter, r *http.Request) {
	var req api.AIEnhanceRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	resp, err := h.api.EnhanceBlog(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// AISuggest proposes post ideas for a keyword set.
func (h *Handler) AISuggest(w http.ResponseWriter, r *http.Request) {
	var req api.AISuggestIdeasRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	resp, err := h.api.SuggestIdeas(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// SessionStatus reports the resolved session as JSON, for the page scripts
// that poll while the initial restore is in flight.
func (h *Handler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	payload := map[string]any{
		"state": snap.State.String(),
	}
	if snap.User != nil {
		payload["user"] = snap.User
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}
