package storage

import (
	"encoding/json"
	"fmt"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// Durable storage keys. The user and admin pairs are independent sessions.
const (
	keyAccessToken       = "access_token"
	keyRefreshToken      = "refresh_token"
	keyUser              = "user"
	keyAdminAccessToken  = "admin_access_token"
	keyAdminRefreshToken = "admin_refresh_token"
	keyAdminUser         = "admin_user"
	keyTheme             = "theme"
)

// SessionStoreImpl implements domain.SessionStore on top of a FileStore
type SessionStoreImpl struct {
	store *FileStore
}

// NewSessionStore creates a session store backed by the given file store
func NewSessionStore(store *FileStore) domain.SessionStore {
	return &SessionStoreImpl{store: store}
}

// Current implements domain.SessionStore. A token without a user record (or
// vice versa) is corrupted state: it is cleared, never trusted.
func (s *SessionStoreImpl) Current() (*domain.Session, error) {
	return s.load(keyAccessToken, keyRefreshToken, keyUser, s.Clear)
}

// IsAuthenticated implements domain.SessionStore
func (s *SessionStoreImpl) IsAuthenticated() bool {
	session, err := s.Current()
	return err == nil && session != nil
}

// Persist implements domain.SessionStore; token and user land in one write
func (s *SessionStoreImpl) Persist(session *domain.Session) error {
	return s.save(session, keyAccessToken, keyRefreshToken, keyUser)
}

// Clear implements domain.SessionStore
func (s *SessionStoreImpl) Clear() error {
	return s.store.Delete(keyAccessToken, keyRefreshToken, keyUser)
}

// AdminSession implements domain.SessionStore
func (s *SessionStoreImpl) AdminSession() (*domain.Session, error) {
	return s.load(keyAdminAccessToken, keyAdminRefreshToken, keyAdminUser, s.ClearAdmin)
}

// PersistAdmin implements domain.SessionStore
func (s *SessionStoreImpl) PersistAdmin(session *domain.Session) error {
	return s.save(session, keyAdminAccessToken, keyAdminRefreshToken, keyAdminUser)
}

// ClearAdmin implements domain.SessionStore
func (s *SessionStoreImpl) ClearAdmin() error {
	return s.store.Delete(keyAdminAccessToken, keyAdminRefreshToken, keyAdminUser)
}

// Theme implements domain.SessionStore
func (s *SessionStoreImpl) Theme() string {
	var theme string
	if s.store.GetJSON(keyTheme, &theme) {
		return theme
	}
	return "dark"
}

// SetTheme implements domain.SessionStore
func (s *SessionStoreImpl) SetTheme(theme string) error {
	return s.store.SetJSON(keyTheme, theme)
}

func (s *SessionStoreImpl) load(tokenKey, refreshKey, userKey string, clear func() error) (*domain.Session, error) {
	var token, refresh string
	hasToken := s.store.GetJSON(tokenKey, &token) && token != ""

	var user domain.User
	hasUser := s.store.GetJSON(userKey, &user) && user.ID != ""

	if !hasToken && !hasUser {
		return nil, nil
	}
	if hasToken != hasUser {
		if err := clear(); err != nil {
			return nil, fmt.Errorf("failed to clear corrupted session: %w", err)
		}
		return nil, domain.ErrSessionCorrupted
	}

	s.store.GetJSON(refreshKey, &refresh)
	return &domain.Session{
		User:         &user,
		AccessToken:  token,
		RefreshToken: refresh,
	}, nil
}

func (s *SessionStoreImpl) save(session *domain.Session, tokenKey, refreshKey, userKey string) error {
	if session == nil || session.User == nil || session.AccessToken == "" {
		return domain.ErrSessionCorrupted
	}
	token, err := encode(session.AccessToken)
	if err != nil {
		return err
	}
	refresh, err := encode(session.RefreshToken)
	if err != nil {
		return err
	}
	user, err := encode(session.User)
	if err != nil {
		return err
	}
	return s.store.SetAll(map[string]string{
		tokenKey:   token,
		refreshKey: refresh,
		userKey:    user,
	})
}

func encode(v interface{}) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode session field: %w", err)
	}
	return string(raw), nil
}
