package app

import (
	"github.com/rs/zerolog"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// EventLogger implements domain.EventLog on top of the structured logger
type EventLogger struct {
	log zerolog.Logger
}

// NewEventLogger creates the logging event sink
func NewEventLogger(log zerolog.Logger) *EventLogger {
	return &EventLogger{log: log}
}

var _ domain.EventLog = (*EventLogger)(nil)

// Record writes the event as one structured line. Events are side-channel
// only, so Record never returns an error.
func (l *EventLogger) Record(event *domain.FlowEvent) {
	entry := l.log.Info()
	if !event.Success {
		entry = l.log.Warn()
	}
	entry = entry.
		Str("event", string(event.EventType)).
		Time("at", event.Timestamp).
		Bool("success", event.Success)
	if event.Target != "" {
		entry = entry.Str("target", event.Target)
	}
	if event.ListingID != "" {
		entry = entry.Str("listing_id", event.ListingID)
	}
	if event.ErrorMsg != "" {
		entry = entry.Str("error", event.ErrorMsg)
	}
	for key, value := range event.Metadata {
		entry = entry.Interface(key, value)
	}
	entry.Msg("flow event")
}
