package web

import (
	"errors"
	"net/http"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
	"github.com/utafrali/BlogGo/pkg/logger"
	"github.com/utafrali/BlogGo/pkg/validator"
)

// userMessage maps an error to the sentence shown on the page.
func userMessage(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "That page does not exist."
	case errors.Is(err, apperrors.ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, apperrors.ErrAuthExpired):
		return "Your session has expired. Please log in again."
	case errors.Is(err, apperrors.ErrConflict):
		return "That name is already taken."
	case errors.Is(err, apperrors.ErrInvalidInput):
		return "Some fields are invalid. Please check and try again."
	default:
		return "Something went wrong. Please try again."
	}
}

func validationFields(err error) map[string]string {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields()
	}
	return nil
}

type errorPage struct {
	basePage
	Status int
}

// renderError shows the standalone error page for a failed navigation.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	log := logger.WithContext(r.Context(), h.logger)
	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed", "error", err.Error(), "status", status)
	} else {
		log.WarnContext(r.Context(), "request failed", "error", err.Error(), "status", status)
	}

	view := errorPage{
		basePage: h.base(r, "Error"),
		Status:   status,
	}
	view.Error = userMessage(err)
	h.render.Render(w, status, "error.html", view)
}
