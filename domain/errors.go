package domain

import "errors"

// Authentication flow errors
var (
	ErrIdentifierEmpty   = errors.New("identifier must not be empty")
	ErrIdentifierInvalid = errors.New("identifier is not a valid phone number or email")
	ErrCodeInvalid       = errors.New("otp code has the wrong number of digits")
	ErrChallengeMissing  = errors.New("no otp challenge in progress")
	ErrMalformedResponse = errors.New("server response missing user or tokens")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSessionCorrupted  = errors.New("stored session is corrupted")
)

// Token errors
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Wizard errors
var (
	ErrStepBlocked     = errors.New("current step has validation errors")
	ErrSubmitInFlight  = errors.New("a submission is already in flight")
	ErrWizardCompleted = errors.New("wizard already submitted")
	ErrMediaNotFound   = errors.New("media not found in draft")
)

// ErrFlowClosed is returned when an operation resolves after its owning flow
// was abandoned; the result must be discarded, not applied.
var ErrFlowClosed = errors.New("flow is no longer active")

// ErrorKind classifies a remote-call failure, independent of transport status codes
type ErrorKind int

const (
	// KindValidation is a local validation failure; nothing was sent to the network
	KindValidation ErrorKind = iota
	// KindServerValidation means the server rejected the payload with field detail
	KindServerValidation
	// KindAuthRejected means credentials are missing, invalid or expired
	KindAuthRejected
	// KindRateLimited means the request was throttled; advise waiting
	KindRateLimited
	// KindNetworkUnavailable is a transport failure with no server response
	KindNetworkUnavailable
	// KindServerError is a 5xx-class failure
	KindServerError
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServerValidation:
		return "server_validation"
	case KindAuthRejected:
		return "auth_rejected"
	case KindRateLimited:
		return "rate_limited"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// APIError is the uniform failure shape returned by every remote-call wrapper.
// Fields maps payload field names to messages when the server provides them.
type APIError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.String()
}

// KindOf extracts the error kind, defaulting to KindServerError for
// non-API errors so callers always have something to branch on.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindServerError
}

// FieldsOf returns server-provided field errors, or nil
func FieldsOf(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}

// IsRateLimited reports whether err is a throttling rejection
func IsRateLimited(err error) bool { return KindOf(err) == KindRateLimited }

// IsAuthRejected reports whether err means the session is no longer valid
func IsAuthRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindAuthRejected
}

// IsNetworkUnavailable reports whether err is a transport-level failure
func IsNetworkUnavailable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindNetworkUnavailable
}

// FieldErrors holds local per-field validation messages keyed by payload field name
type FieldErrors map[string]string

// Empty reports whether validation passed
func (f FieldErrors) Empty() bool { return len(f) == 0 }
