package services

import (
	"context"
	"fmt"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// SessionRefresherImpl keeps the persisted session usable: it refreshes
// expired access tokens proactively and tears the session down when the
// backend rejects the refresh token itself.
type SessionRefresherImpl struct {
	authAPI   domain.AuthAPI
	sessions  domain.SessionStore
	inspector domain.TokenInspector
	events    domain.EventLog
}

// NewSessionRefresher creates the refresher
func NewSessionRefresher(
	authAPI domain.AuthAPI,
	sessions domain.SessionStore,
	inspector domain.TokenInspector,
	events domain.EventLog,
) *SessionRefresherImpl {
	return &SessionRefresherImpl{
		authAPI:   authAPI,
		sessions:  sessions,
		inspector: inspector,
		events:    events,
	}
}

// EnsureFresh returns a session whose access token has not expired,
// refreshing it first if needed. A missing session returns
// ErrNotAuthenticated; an unusable one is cleared and reported the same way.
func (r *SessionRefresherImpl) EnsureFresh(ctx context.Context) (*domain.Session, error) {
	session, err := r.sessions.Current()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNotAuthenticated
	}

	expired, err := r.inspector.Expired(session.AccessToken)
	if err != nil {
		// An undecodable token cannot be trusted either way; refresh it.
		expired = true
	}
	if !expired {
		return session, nil
	}

	accessToken, err := r.authAPI.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if domain.IsAuthRejected(err) {
			// The refresh token itself is dead; the session is over.
			if clearErr := r.sessions.Clear(); clearErr != nil {
				return nil, fmt.Errorf("clear rejected session: %w", clearErr)
			}
			r.events.Record(domain.NewFlowEvent(domain.SessionClearedEvent).WithError(err))
			return nil, domain.ErrNotAuthenticated
		}
		return nil, err
	}

	session.AccessToken = accessToken
	if err := r.sessions.Persist(session); err != nil {
		return nil, fmt.Errorf("persist refreshed session: %w", err)
	}
	r.events.Record(domain.NewFlowEvent(domain.SessionRefreshedEvent))
	return session, nil
}

// Logout invalidates the server session and clears local state. Local state
// goes regardless of whether the server call succeeds.
func (r *SessionRefresherImpl) Logout(ctx context.Context) error {
	serverErr := r.authAPI.Logout(ctx)
	if err := r.sessions.Clear(); err != nil {
		return err
	}
	r.events.Record(domain.NewFlowEvent(domain.SessionClearedEvent))
	return serverErr
}
