package mocks

import (
	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockEventLog implements domain.EventLog for testing
type MockEventLog struct {
	RecordFunc func(event *domain.FlowEvent)

	Events []*domain.FlowEvent
}

// NewMockEventLog creates a new MockEventLog
func NewMockEventLog() *MockEventLog {
	return &MockEventLog{}
}

var _ domain.EventLog = (*MockEventLog)(nil)

// Record stores the event
func (m *MockEventLog) Record(event *domain.FlowEvent) {
	if m.RecordFunc != nil {
		m.RecordFunc(event)
		return
	}
	m.Events = append(m.Events, event)
}

// Types returns the recorded event types in order
func (m *MockEventLog) Types() []string {
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, string(e.EventType))
	}
	return types
}
