package mocks

import (
	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	ExpiredFunc func(token string) (bool, error)
}

// NewMockTokenInspector creates a new MockTokenInspector
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

var _ domain.TokenInspector = (*MockTokenInspector)(nil)

// Expired reports token expiry
func (m *MockTokenInspector) Expired(token string) (bool, error) {
	if m.ExpiredFunc != nil {
		return m.ExpiredFunc(token)
	}
	return false, nil
}
