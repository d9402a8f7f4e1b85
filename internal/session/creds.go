package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/utafrali/BlogGo/internal/domain"
	apperrors "github.com/utafrali/BlogGo/pkg/errors"
)

// Credentials is the persisted session blob: the token pair under its fixed
// keys plus the cached identity of the user owning it.
type Credentials struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user,omitempty"`
}

// Tokens returns the credential pair.
func (c Credentials) Tokens() domain.TokenPair {
	return domain.TokenPair{AccessToken: c.AccessToken, RefreshToken: c.RefreshToken}
}

// CredentialStore is the persisted credential storage. The session store is
// its sole authorized mutator; no other component touches it.
type CredentialStore interface {
	// Load reads the persisted credentials. A missing file yields empty
	// credentials and no error; an unparseable or inconsistent blob yields
	// ErrMalformedState.
	Load() (Credentials, error)
	// Save persists the credentials atomically.
	Save(Credentials) error
	// Clear removes the persisted credentials.
	Clear() error
}

// FileStore persists credentials as a JSON file with 0600 permissions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a credential store backed by the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and validates the credential file.
func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, fmt.Errorf("read credential file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return Credentials{}, apperrors.MalformedState("credential file is not valid JSON", err)
	}
	if err := validateCredentials(creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// validateCredentials enforces the session invariants on a decoded blob.
// Fail-closed: anything inconsistent is malformed, never "logged in with
// unknown identity".
func validateCredentials(creds Credentials) error {
	tokens := creds.Tokens()
	if !tokens.Empty() && !tokens.Valid() {
		return apperrors.MalformedState("credential file holds a partial token pair", nil)
	}
	if u := creds.User; u != nil {
		if u.ID == "" || u.Username == "" {
			return apperrors.MalformedState("cached identity is missing required fields", nil)
		}
		if !domain.IsValidRole(u.Role) {
			return apperrors.MalformedState("cached identity has unknown role "+u.Role, nil)
		}
	}
	return nil
}

// Save writes the credentials via a temp file and rename so a crash never
// leaves a half-written blob.
func (s *FileStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".credentials-*")
	if err != nil {
		return fmt.Errorf("create temp credential file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod credential file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write credential file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credential file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}
	return nil
}

// Clear removes the credential file. Missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}
