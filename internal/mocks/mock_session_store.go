package mocks

import (
	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockSessionStore implements domain.SessionStore for testing
type MockSessionStore struct {
	CurrentFunc         func() (*domain.Session, error)
	IsAuthenticatedFunc func() bool
	PersistFunc         func(session *domain.Session) error
	ClearFunc           func() error
	AdminSessionFunc    func() (*domain.Session, error)
	PersistAdminFunc    func(session *domain.Session) error
	ClearAdminFunc      func() error
	ThemeFunc           func() string
	SetThemeFunc        func(theme string) error

	// Persisted and Cleared record calls when the Func fields are unset
	Persisted      []*domain.Session
	AdminPersisted []*domain.Session
	Cleared        int
	AdminCleared   int
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

var _ domain.SessionStore = (*MockSessionStore)(nil)

// Current returns the persisted session
func (m *MockSessionStore) Current() (*domain.Session, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	if len(m.Persisted) > 0 {
		return m.Persisted[len(m.Persisted)-1], nil
	}
	return nil, nil
}

// IsAuthenticated reports whether a session exists
func (m *MockSessionStore) IsAuthenticated() bool {
	if m.IsAuthenticatedFunc != nil {
		return m.IsAuthenticatedFunc()
	}
	session, err := m.Current()
	return err == nil && session != nil
}

// Persist stores a session
func (m *MockSessionStore) Persist(session *domain.Session) error {
	if m.PersistFunc != nil {
		return m.PersistFunc(session)
	}
	m.Persisted = append(m.Persisted, session)
	return nil
}

// Clear removes the session
func (m *MockSessionStore) Clear() error {
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	m.Cleared++
	m.Persisted = nil
	return nil
}

// AdminSession returns the persisted admin session
func (m *MockSessionStore) AdminSession() (*domain.Session, error) {
	if m.AdminSessionFunc != nil {
		return m.AdminSessionFunc()
	}
	if len(m.AdminPersisted) > 0 {
		return m.AdminPersisted[len(m.AdminPersisted)-1], nil
	}
	return nil, nil
}

// PersistAdmin stores an admin session
func (m *MockSessionStore) PersistAdmin(session *domain.Session) error {
	if m.PersistAdminFunc != nil {
		return m.PersistAdminFunc(session)
	}
	m.AdminPersisted = append(m.AdminPersisted, session)
	return nil
}

// ClearAdmin removes the admin session
func (m *MockSessionStore) ClearAdmin() error {
	if m.ClearAdminFunc != nil {
		return m.ClearAdminFunc()
	}
	m.AdminCleared++
	m.AdminPersisted = nil
	return nil
}

// Theme returns the persisted theme
func (m *MockSessionStore) Theme() string {
	if m.ThemeFunc != nil {
		return m.ThemeFunc()
	}
	return "dark"
}

// SetTheme stores the theme
func (m *MockSessionStore) SetTheme(theme string) error {
	if m.SetThemeFunc != nil {
		return m.SetThemeFunc(theme)
	}
	return nil
}
