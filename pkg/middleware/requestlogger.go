package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/BlogGo/pkg/logger"
)

// UserIDFunc resolves the acting user's ID for a request, or "" when
// anonymous. The web layer supplies a session-backed implementation.
type UserIDFunc func(r *http.Request) string

// RequestLogger returns middleware that builds a request-scoped logger
// enriched with correlation_id and user_id, then stores it in context via
// logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// Mount this AFTER RequestLogging, which sets the correlation ID.
func RequestLogger(base *slog.Logger, userID UserIDFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID != nil {
				if id := userID(r); id != "" {
					ctx = logger.WithUserID(ctx, id)
				}
			}

			enriched := logger.WithContext(ctx, base)
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
