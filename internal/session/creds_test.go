package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/BlogGo/pkg/errors"
)

func tempStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	return NewFileStore(path), path
}

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	store, _ := tempStore(t)

	creds, err := store.Load()

	require.NoError(t, err)
	assert.True(t, creds.Tokens().Empty())
	assert.Nil(t, creds.User)
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	store, path := tempStore(t)

	saved := Credentials{
		AccessToken:  "access",
		RefreshToken: "refresh",
		User:         testUser(),
	}
	require.NoError(t, store.Save(saved))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.AccessToken, loaded.AccessToken)
	assert.Equal(t, saved.RefreshToken, loaded.RefreshToken)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "alice", loaded.User.Username)
}

func TestFileStore_InvalidJSONIsMalformed(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("}}junk"), 0o600))

	_, err := store.Load()

	assert.ErrorIs(t, err, apperrors.ErrMalformedState)
}

func TestFileStore_PartialTokenPairIsMalformed(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(`{"access_token":"only-one"}`), 0o600))

	_, err := store.Load()

	assert.ErrorIs(t, err, apperrors.ErrMalformedState)
}

func TestFileStore_BadCachedIdentityIsMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"missing id", `{"access_token":"a","refresh_token":"r","user":{"username":"alice","role":"user"}}`},
		{"missing username", `{"access_token":"a","refresh_token":"r","user":{"id":"u1","role":"user"}}`},
		{"unknown role", `{"access_token":"a","refresh_token":"r","user":{"id":"u1","username":"alice","role":"root"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, path := tempStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
			require.NoError(t, os.WriteFile(path, []byte(tt.blob), 0o600))

			_, err := store.Load()
			assert.ErrorIs(t, err, apperrors.ErrMalformedState)
		})
	}
}

func TestFileStore_Clear(t *testing.T) {
	store, path := tempStore(t)
	require.NoError(t, store.Save(Credentials{AccessToken: "a", RefreshToken: "r"}))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing again is not an error.
	require.NoError(t, store.Clear())
}

func TestFileStore_SaveOverwritesAtomically(t *testing.T) {
	store, _ := tempStore(t)
	require.NoError(t, store.Save(Credentials{AccessToken: "a1", RefreshToken: "r1"}))
	require.NoError(t, store.Save(Credentials{AccessToken: "a2", RefreshToken: "r2"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "a2", loaded.AccessToken)

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(store.path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
