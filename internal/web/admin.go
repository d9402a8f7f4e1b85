package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/BlogGo/internal/domain"
)

type adminPage struct {
	basePage
	Users []domain.User
}

// AdminUsers renders the user-management dashboard.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.api.ListUsers(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.render.Render(w, http.StatusOK, "admin.html", adminPage{
		basePage: h.base(r, "User Management"),
		Users:    users,
	})
}

// AdminPromote grants the admin role to a user.
func (h *Handler) AdminPromote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.PromoteUser(r.Context(), id, domain.RoleAdmin); err != nil {
		h.logger.WarnContext(r.Context(), "promote user failed", "error", err.Error())
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AdminDemote revokes the admin role from a user.
func (h *Handler) AdminDemote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.api.DemoteUser(r.Context(), id, domain.RoleUser); err != nil {
		h.logger.WarnContext(r.Context(), "demote user failed", "error", err.Error())
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
