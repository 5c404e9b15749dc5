package domain

import "time"

// FlowEventType defines the type of client flow event
type FlowEventType string

const (
	// Authentication flow events
	OTPRequestedEvent     FlowEventType = "OTP_REQUESTED"
	OTPResentEvent        FlowEventType = "OTP_RESENT"
	OTPVerifiedEvent      FlowEventType = "OTP_VERIFIED"
	OTPVerifyFailedEvent  FlowEventType = "OTP_VERIFY_FAILED"
	SessionClearedEvent   FlowEventType = "SESSION_CLEARED"
	SessionRefreshedEvent FlowEventType = "SESSION_REFRESHED"

	// Listing wizard events
	ListingSubmittedEvent    FlowEventType = "LISTING_SUBMITTED"
	ListingSubmitFailedEvent FlowEventType = "LISTING_SUBMIT_FAILED"
	ListingDeletedEvent      FlowEventType = "LISTING_DELETED"
	ImageUploadedEvent       FlowEventType = "IMAGE_UPLOADED"
	ImageUploadFailedEvent   FlowEventType = "IMAGE_UPLOAD_FAILED"
	ImageDeleteFailedEvent   FlowEventType = "IMAGE_DELETE_FAILED"

	// Moderation events
	AdminReviewEvent FlowEventType = "ADMIN_REVIEW"
)

// FlowEvent represents a client-side business event worth recording
type FlowEvent struct {
	EventType FlowEventType          `json:"event_type"`
	Target    string                 `json:"target,omitempty"`
	ListingID string                 `json:"listing_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// EventLog records flow events. Recording is side-channel only: flows must
// behave identically if the log drops every event.
type EventLog interface {
	Record(event *FlowEvent)
}

// NewFlowEvent creates a new flow event with common fields populated
func NewFlowEvent(eventType FlowEventType) *FlowEvent {
	return &FlowEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError marks the event failed and captures the error message
func (e *FlowEvent) WithError(err error) *FlowEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithTarget sets the identifier or target the event concerns
func (e *FlowEvent) WithTarget(target string) *FlowEvent {
	e.Target = target
	return e
}

// WithListing sets the listing the event concerns
func (e *FlowEvent) WithListing(id string) *FlowEvent {
	e.ListingID = id
	return e
}

// WithMetadata adds metadata to the event
func (e *FlowEvent) WithMetadata(key string, value interface{}) *FlowEvent {
	e.Metadata[key] = value
	return e
}
