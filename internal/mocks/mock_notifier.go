package mocks

import (
	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockNotifier implements domain.Notifier for testing. Messages are recorded
// per level so tests can assert on user-visible feedback.
type MockNotifier struct {
	SuccessFunc func(message string)
	ErrorFunc   func(message string)
	InfoFunc    func(message string)

	Successes []string
	Errors    []string
	Infos     []string
}

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

var _ domain.Notifier = (*MockNotifier)(nil)

// Success records a success message
func (m *MockNotifier) Success(message string) {
	if m.SuccessFunc != nil {
		m.SuccessFunc(message)
		return
	}
	m.Successes = append(m.Successes, message)
}

// Error records an error message
func (m *MockNotifier) Error(message string) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(message)
		return
	}
	m.Errors = append(m.Errors, message)
}

// Info records an informational message
func (m *MockNotifier) Info(message string) {
	if m.InfoFunc != nil {
		m.InfoFunc(message)
		return
	}
	m.Infos = append(m.Infos, message)
}
