package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// AuthFlowState is the login flow's current phase
type AuthFlowState int

const (
	EnteringIdentifier AuthFlowState = iota
	OtpSent
	Verified
)

// String returns the state name
func (s AuthFlowState) String() string {
	switch s {
	case OtpSent:
		return "otp_sent"
	case Verified:
		return "verified"
	default:
		return "entering_identifier"
	}
}

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`\D`)
)

// NormalizeIdentifier canonicalizes a raw login input. Phone numbers are
// reduced to digits and prefixed with the country code; emails are
// lower-cased. Anything else is rejected.
func NormalizeIdentifier(raw, countryCode string) (domain.Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Identifier{}, domain.ErrIdentifierEmpty
	}

	if strings.Contains(trimmed, "@") {
		lowered := strings.ToLower(trimmed)
		if !emailPattern.MatchString(lowered) {
			return domain.Identifier{}, domain.ErrIdentifierInvalid
		}
		return domain.Identifier{Value: lowered, ByEmail: true}, nil
	}

	digits := digitsPattern.ReplaceAllString(trimmed, "")
	codeDigits := strings.TrimPrefix(countryCode, "+")
	digits = strings.TrimPrefix(digits, codeDigits)
	if len(digits) != 10 {
		return domain.Identifier{}, domain.ErrIdentifierInvalid
	}
	return domain.Identifier{Value: countryCode + digits}, nil
}

// AuthFlowImpl drives the OTP login flow: identifier entry, code entry and
// session persistence. One flow instance serves one login attempt chain.
type AuthFlowImpl struct {
	mu          sync.Mutex
	state       AuthFlowState
	challenge   *domain.OtpChallenge
	returnTo    string
	countryCode string
	defaultDest string
	codePattern *regexp.Regexp
	closed      bool

	authAPI  domain.AuthAPI
	sessions domain.SessionStore
	notifier domain.Notifier
	events   domain.EventLog
}

// NewAuthFlow creates a login flow. returnTo is where the user lands after
// verification; empty means defaultDest. otpLength is the number of digits a
// valid code carries; values below one fall back to six.
func NewAuthFlow(
	authAPI domain.AuthAPI,
	sessions domain.SessionStore,
	notifier domain.Notifier,
	events domain.EventLog,
	countryCode string,
	defaultDest string,
	returnTo string,
	otpLength int,
) *AuthFlowImpl {
	if otpLength < 1 {
		otpLength = 6
	}
	return &AuthFlowImpl{
		state:       EnteringIdentifier,
		countryCode: countryCode,
		defaultDest: defaultDest,
		returnTo:    returnTo,
		codePattern: regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, otpLength)),
		authAPI:     authAPI,
		sessions:    sessions,
		notifier:    notifier,
		events:      events,
	}
}

// State returns the flow's current phase
func (f *AuthFlowImpl) State() AuthFlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Challenge returns the outstanding OTP challenge, if any
func (f *AuthFlowImpl) Challenge() *domain.OtpChallenge {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.challenge
}

// SubmitIdentifier normalizes the raw input and requests an OTP for it
func (f *AuthFlowImpl) SubmitIdentifier(ctx context.Context, raw string) (*domain.OtpChallenge, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, domain.ErrFlowClosed
	}
	countryCode := f.countryCode
	f.mu.Unlock()

	id, err := NormalizeIdentifier(raw, countryCode)
	if err != nil {
		return nil, err
	}

	challenge, err := f.authAPI.SendOTP(ctx, id)
	if err != nil {
		f.events.Record(domain.NewFlowEvent(domain.OTPRequestedEvent).WithTarget(id.Value).WithError(err))
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, domain.ErrFlowClosed
	}
	f.challenge = challenge
	f.state = OtpSent

	f.events.Record(domain.NewFlowEvent(domain.OTPRequestedEvent).WithTarget(id.Value))
	f.notifier.Success("OTP sent to " + displayTarget(challenge))
	return challenge, nil
}

// SubmitCode verifies the entered code against the outstanding challenge.
// On success the session is persisted and the destination screen returned.
func (f *AuthFlowImpl) SubmitCode(ctx context.Context, code string) (string, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return "", domain.ErrFlowClosed
	}
	challenge := f.challenge
	f.mu.Unlock()

	if challenge == nil {
		return "", domain.ErrChallengeMissing
	}
	if !f.codePattern.MatchString(code) {
		return "", domain.ErrCodeInvalid
	}

	result, err := f.authAPI.VerifyOTP(ctx, challenge.ID, code, challenge.Target)
	if err != nil {
		f.events.Record(domain.NewFlowEvent(domain.OTPVerifyFailedEvent).WithTarget(challenge.Target.Value).WithError(err))
		return "", err
	}

	session := &domain.Session{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
	if err := f.sessions.Persist(session); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// Session is already durable; a closed flow just stops navigating.
		return "", domain.ErrFlowClosed
	}
	f.state = Verified
	f.challenge = nil

	f.events.Record(domain.NewFlowEvent(domain.OTPVerifiedEvent).
		WithTarget(challenge.Target.Value).
		WithMetadata("is_new_user", result.IsNewUser))
	f.notifier.Success("Logged in successfully")

	if f.returnTo != "" {
		return f.returnTo, nil
	}
	return f.defaultDest, nil
}

// ResendOTP requests a fresh challenge for the same identifier. The previous
// challenge is discarded whether or not the resend succeeds locally; any code
// the user had typed no longer applies.
func (f *AuthFlowImpl) ResendOTP(ctx context.Context) (*domain.OtpChallenge, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, domain.ErrFlowClosed
	}
	previous := f.challenge
	f.mu.Unlock()

	if previous == nil {
		return nil, domain.ErrChallengeMissing
	}

	challenge, err := f.authAPI.SendOTP(ctx, previous.Target)
	if err != nil {
		f.events.Record(domain.NewFlowEvent(domain.OTPResentEvent).WithTarget(previous.Target.Value).WithError(err))
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, domain.ErrFlowClosed
	}
	f.challenge = challenge

	f.events.Record(domain.NewFlowEvent(domain.OTPResentEvent).WithTarget(challenge.Target.Value))
	f.notifier.Info("A new OTP has been sent")
	return challenge, nil
}

// ChangeIdentifier abandons the outstanding challenge and returns the flow
// to identifier entry
func (f *AuthFlowImpl) ChangeIdentifier() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.challenge = nil
	f.state = EnteringIdentifier
}

// Close ends the flow. Responses arriving after Close are discarded.
func (f *AuthFlowImpl) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func displayTarget(c *domain.OtpChallenge) string {
	if c.MaskedTarget != "" {
		return c.MaskedTarget
	}
	return c.Target.Value
}
