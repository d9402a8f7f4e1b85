package guard

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/utafrali/BlogGo/internal/session"
)

// Requirement is the access level a navigable view declares.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

func (r Requirement) String() string {
	switch r {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Decision is the admission outcome for one navigation.
type Decision int

const (
	Admit Decision = iota
	RedirectToLogin
	RedirectToHome
)

func (d Decision) String() string {
	switch d {
	case Admit:
		return "admit"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToHome:
		return "redirect_to_home"
	default:
		return "unknown"
	}
}

// Evaluate decides admission for a resolved session. Pure and total: no
// side effects, every (snapshot, requirement) pair yields a decision.
//
// The snapshot must be resolved; callers are responsible for suspending
// the navigation while the session is still loading.
func Evaluate(snap session.Snapshot, req Requirement) Decision {
	switch req {
	case Authenticated:
		if snap.Authenticated() {
			return Admit
		}
		return RedirectToLogin
	case Admin:
		if !snap.Authenticated() {
			return RedirectToLogin
		}
		if snap.User.IsAdmin() {
			return Admit
		}
		return RedirectToHome
	default:
		return Admit
	}
}

// Require returns chi middleware enforcing the given requirement. It
// suspends the route render until the session store resolves; only then is
// a decision made, so protected content is never flashed to an anonymous
// visitor and a logged-in user is never bounced to login mid-restore.
func Require(store *session.Store, req Requirement, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := store.WaitResolved(r.Context()); err != nil {
				http.Error(w, "session not ready", http.StatusServiceUnavailable)
				return
			}

			snap := store.Snapshot()
			decision := Evaluate(snap, req)
			switch decision {
			case Admit:
				next.ServeHTTP(w, r)
			case RedirectToLogin:
				http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
			case RedirectToHome:
				logger.InfoContext(r.Context(), "navigation denied",
					slog.String("path", r.URL.Path),
					slog.String("requirement", req.String()),
					slog.String("decision", decision.String()),
				)
				http.Redirect(w, r, "/", http.StatusSeeOther)
			}
		})
	}
}
