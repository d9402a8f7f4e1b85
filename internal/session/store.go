package session

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/BlogGo/internal/api"
	"github.com/utafrali/BlogGo/internal/domain"
)

// State is the session lifecycle state.
type State int

const (
	// StateLoading means the asynchronous restore has not resolved yet.
	// No admission decision may be made against a loading session.
	StateLoading State = iota
	// StateAuthenticated means a user identity and token pair are held.
	StateAuthenticated
	// StateAnonymous means no identity and no tokens are held.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of the session at one point in time.
type Snapshot struct {
	State State
	User  *domain.User
}

// Authenticated reports whether the snapshot carries a user identity.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// AuthAPI is the remote authentication collaborator consumed by the store.
type AuthAPI interface {
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	Refresh(ctx context.Context, refreshToken string) (*api.AuthResponse, error)
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*domain.User, error)
	UploadProfilePicture(ctx context.Context, filename string, picture io.Reader) (*domain.User, error)
}

const logoutNotifyTimeout = 5 * time.Second

// Store owns the authenticated-user identity and its credential pair. It is
// the sole mutator of the persisted credential storage; every other
// component observes the session only through Snapshot.
//
// Lifecycle: created in the loading state, resolved exactly once by
// Restore to authenticated or anonymous. WaitResolved blocks until then.
type Store struct {
	api    AuthAPI
	creds  CredentialStore
	logger *slog.Logger

	mu     sync.RWMutex
	state  State
	user   *domain.User
	tokens domain.TokenPair

	resolveOnce sync.Once
	resolved    chan struct{}
}

// NewStore creates a session store in the loading state.
func NewStore(authAPI AuthAPI, creds CredentialStore, logger *slog.Logger) *Store {
	return &Store{
		api:      authAPI,
		creds:    creds,
		logger:   logger,
		state:    StateLoading,
		resolved: make(chan struct{}),
	}
}

// Snapshot returns the current session view.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{State: s.state, User: s.user}
}

// AccessToken implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

// WaitResolved blocks until the initial restore has resolved or the context
// is done. Route admission must not happen before this returns nil.
func (s *Store) WaitResolved(ctx context.Context) error {
	select {
	case <-s.resolved:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) markResolved() {
	s.resolveOnce.Do(func() { close(s.resolved) })
}

// Restore resolves the session from persisted credentials. No tokens means
// anonymous without a profile fetch; tokens present mean the identity is
// re-fetched, and any failure clears both persisted tokens. The session is
// marked resolved on every path.
func (s *Store) Restore(ctx context.Context) Snapshot {
	defer s.markResolved()

	creds, err := s.creds.Load()
	if err != nil {
		// Unparseable persisted state is an empty session, never fatal.
		s.logger.Warn("discarding malformed persisted session",
			slog.String("error", err.Error()),
		)
		_ = s.creds.Clear()
		s.become(StateAnonymous, nil, domain.TokenPair{})
		return s.Snapshot()
	}

	tokens := creds.Tokens()
	if tokens.Empty() {
		s.become(StateAnonymous, nil, domain.TokenPair{})
		return s.Snapshot()
	}

	// Install the tokens so the profile fetch carries them. State stays
	// loading until the fetch resolves.
	s.mu.Lock()
	s.tokens = tokens
	s.mu.Unlock()

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.logger.Warn("session restore failed, clearing credentials",
			slog.String("error", err.Error()),
		)
		_ = s.creds.Clear()
		s.become(StateAnonymous, nil, domain.TokenPair{})
		return s.Snapshot()
	}

	s.become(StateAuthenticated, user, tokens)
	s.persist(user, tokens)
	s.logger.Info("session restored",
		slog.String("username", user.Username),
		slog.String("role", user.Role),
	)
	return s.Snapshot()
}

// Login authenticates with the remote API. On failure the existing session
// state is left untouched.
func (s *Store) Login(ctx context.Context, email, password string) (Snapshot, error) {
	resp, err := s.api.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.Snapshot(), err
	}
	s.installSession(resp)
	return s.Snapshot(), nil
}

// Register creates an account and starts its first session. Same contract
// as Login.
func (s *Store) Register(ctx context.Context, username, email, password string) (Snapshot, error) {
	resp, err := s.api.Register(ctx, api.RegisterRequest{Username: username, Email: email, Password: password})
	if err != nil {
		return s.Snapshot(), err
	}
	s.installSession(resp)
	return s.Snapshot(), nil
}

func (s *Store) installSession(resp *api.AuthResponse) {
	user := resp.User
	tokens := domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.become(StateAuthenticated, &user, tokens)
	s.persist(&user, tokens)
	s.markResolved()
}

// Logout clears the local session synchronously and notifies the server in
// the background. Local state never waits on the network.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	token := s.tokens.AccessToken
	s.mu.Unlock()

	s.become(StateAnonymous, nil, domain.TokenPair{})
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted credentials", slog.String("error", err.Error()))
	}

	if token == "" {
		return
	}
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutNotifyTimeout)
		defer cancel()
		if err := s.api.Logout(notifyCtx, token); err != nil {
			s.logger.Debug("logout notification failed", slog.String("error", err.Error()))
		}
	}()
}

// Refresh exchanges the held refresh token for a fresh pair. All-or-nothing:
// a failed refresh leaves the session untouched.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	refresh := s.tokens.RefreshToken
	s.mu.RUnlock()
	if refresh == "" {
		return nil
	}

	resp, err := s.api.Refresh(ctx, refresh)
	if err != nil {
		return err
	}

	user := resp.User
	tokens := domain.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.become(StateAuthenticated, &user, tokens)
	s.persist(&user, tokens)
	return nil
}

// UpdateProfile forwards a profile edit to the remote API and, on success,
// swaps the held identity in one step. The session store owns identity
// mutation; callers never patch the user themselves.
func (s *Store) UpdateProfile(ctx context.Context, req api.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	tokens := s.tokens
	s.mu.Unlock()

	s.persist(user, tokens)
	return user, nil
}

// UploadProfilePicture forwards a new profile picture to the remote API
// and swaps the held identity the same way UpdateProfile does.
func (s *Store) UploadProfilePicture(ctx context.Context, filename string, picture io.Reader) (*domain.User, error) {
	user, err := s.api.UploadProfilePicture(ctx, filename, picture)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	tokens := s.tokens
	s.mu.Unlock()

	s.persist(user, tokens)
	return user, nil
}

// Invalidate destroys the session after an authenticated call reported an
// invalid or expired credential. No-op for an already-anonymous session.
func (s *Store) Invalidate() {
	s.mu.RLock()
	hadTokens := !s.tokens.Empty()
	s.mu.RUnlock()
	if !hadTokens {
		return
	}

	s.logger.Info("credential rejected by API, clearing session")
	s.become(StateAnonymous, nil, domain.TokenPair{})
	if err := s.creds.Clear(); err != nil {
		s.logger.Warn("failed to clear persisted credentials", slog.String("error", err.Error()))
	}
}

func (s *Store) become(state State, user *domain.User, tokens domain.TokenPair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
	s.tokens = tokens
}

func (s *Store) persist(user *domain.User, tokens domain.TokenPair) {
	err := s.creds.Save(Credentials{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	})
	if err != nil {
		// The in-memory session stays valid; it just won't survive a restart.
		s.logger.Warn("failed to persist credentials", slog.String("error", err.Error()))
	}
}
