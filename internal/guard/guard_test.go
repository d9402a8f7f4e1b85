package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utafrali/BlogGo/internal/domain"
	"github.com/utafrali/BlogGo/internal/session"
)

func anonymous() session.Snapshot {
	return session.Snapshot{State: session.StateAnonymous}
}

func authenticated(role string) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		User:  &domain.User{ID: "u1", Username: "alice", Role: role},
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		req  Requirement
		want Decision
	}{
		{"public admits anonymous", anonymous(), Public, Admit},
		{"public admits user", authenticated(domain.RoleUser), Public, Admit},
		{"public admits admin", authenticated(domain.RoleAdmin), Public, Admit},

		{"authenticated rejects anonymous", anonymous(), Authenticated, RedirectToLogin},
		{"authenticated admits user", authenticated(domain.RoleUser), Authenticated, Admit},
		{"authenticated admits admin", authenticated(domain.RoleAdmin), Authenticated, Admit},

		{"admin rejects anonymous to login", anonymous(), Admin, RedirectToLogin},
		{"admin rejects user to home", authenticated(domain.RoleUser), Admin, RedirectToHome},
		{"admin admits admin", authenticated(domain.RoleAdmin), Admin, Admit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.snap, tt.req))
		})
	}
}

func TestEvaluate_AuthenticatedStateWithoutUser(t *testing.T) {
	// An authenticated state missing its identity must never be admitted
	// past an auth requirement.
	snap := session.Snapshot{State: session.StateAuthenticated}

	assert.Equal(t, RedirectToLogin, Evaluate(snap, Authenticated))
	assert.Equal(t, RedirectToLogin, Evaluate(snap, Admin))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "admit", Admit.String())
	assert.Equal(t, "redirect_to_login", RedirectToLogin.String())
	assert.Equal(t, "redirect_to_home", RedirectToHome.String())
}
