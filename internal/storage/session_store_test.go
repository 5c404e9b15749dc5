package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

func newTestStore(t *testing.T) (*FileStore, domain.SessionStore) {
	t.Helper()
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return fs, NewSessionStore(fs)
}

func testSession() *domain.Session {
	return &domain.Session{
		User:         &domain.User{ID: "user_123", PhoneNumber: "+919999999999", Name: "Ravi"},
		AccessToken:  "access-abc",
		RefreshToken: "refresh-abc",
	}
}

func TestSessionStorePersistAndCurrent(t *testing.T) {
	_, store := newTestStore(t)

	require.NoError(t, store.Persist(testSession()))
	assert.True(t, store.IsAuthenticated())

	got, err := store.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user_123", got.User.ID)
	assert.Equal(t, "access-abc", got.AccessToken)
	assert.Equal(t, "refresh-abc", got.RefreshToken)
}

func TestSessionStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	store := NewSessionStore(fs)
	require.NoError(t, store.Persist(testSession()))

	fs2, err := NewFileStore(path)
	require.NoError(t, err)
	store2 := NewSessionStore(fs2)

	got, err := store2.Current()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user_123", got.User.ID)
}

func TestSessionStoreClear(t *testing.T) {
	_, store := newTestStore(t)
	require.NoError(t, store.Persist(testSession()))

	require.NoError(t, store.Clear())

	assert.False(t, store.IsAuthenticated())
	got, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStoreTokenWithoutUserIsCleared(t *testing.T) {
	fs, store := newTestStore(t)

	// Simulate a half-written session: token present, user record missing.
	require.NoError(t, fs.Set(keyAccessToken, `"orphan-token"`))

	got, err := store.Current()
	assert.ErrorIs(t, err, domain.ErrSessionCorrupted)
	assert.Nil(t, got)

	// The corrupted pair must be gone afterwards, not trusted on re-read.
	got, err = store.Current()
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStoreUserWithoutTokenIsCleared(t *testing.T) {
	fs, store := newTestStore(t)
	require.NoError(t, fs.Set(keyUser, `{"id":"user_9"}`))

	_, err := store.Current()
	assert.ErrorIs(t, err, domain.ErrSessionCorrupted)
	assert.False(t, store.IsAuthenticated())
}

func TestSessionStoreDefensiveParsing(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "literal undefined", value: "undefined"},
		{name: "literal null", value: "null"},
		{name: "invalid json", value: "{not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, store := newTestStore(t)
			require.NoError(t, fs.Set(keyAccessToken, tt.value))
			require.NoError(t, fs.Set(keyUser, tt.value))

			got, err := store.Current()
			require.NoError(t, err)
			assert.Nil(t, got)
			assert.False(t, store.IsAuthenticated())
		})
	}
}

func TestSessionStoreRejectsPartialSession(t *testing.T) {
	_, store := newTestStore(t)

	err := store.Persist(&domain.Session{AccessToken: "tok"})
	assert.ErrorIs(t, err, domain.ErrSessionCorrupted)

	err = store.Persist(&domain.Session{User: &domain.User{ID: "u1"}})
	assert.ErrorIs(t, err, domain.ErrSessionCorrupted)
}

func TestAdminSessionIsIndependent(t *testing.T) {
	_, store := newTestStore(t)
	require.NoError(t, store.Persist(testSession()))

	admin := &domain.Session{
		User:        &domain.User{ID: "admin_1", Email: "admin@bharatautobazaar.com"},
		AccessToken: "admin-access",
	}
	require.NoError(t, store.PersistAdmin(admin))

	require.NoError(t, store.Clear())

	got, err := store.AdminSession()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "admin_1", got.User.ID)

	require.NoError(t, store.ClearAdmin())
	got, err = store.AdminSession()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestThemePersistence(t *testing.T) {
	_, store := newTestStore(t)
	assert.Equal(t, "dark", store.Theme())

	require.NoError(t, store.SetTheme("light"))
	assert.Equal(t, "light", store.Theme())
}

func TestFileStoreDamagedFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("not a json document"), 0o600))

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	assert.Equal(t, "", fs.Get(keyAccessToken))
}
