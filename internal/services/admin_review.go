package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// AdminReviewImpl drives the moderation queue: admin login, the pending list
// and per-listing verdicts
type AdminReviewImpl struct {
	mu      sync.Mutex
	pending []domain.ListingSummary

	authAPI  domain.AuthAPI
	adminAPI domain.AdminAPI
	sessions domain.SessionStore
	notifier domain.Notifier
	events   domain.EventLog
}

// NewAdminReview creates the moderation service
func NewAdminReview(
	authAPI domain.AuthAPI,
	adminAPI domain.AdminAPI,
	sessions domain.SessionStore,
	notifier domain.Notifier,
	events domain.EventLog,
) *AdminReviewImpl {
	return &AdminReviewImpl{
		authAPI:  authAPI,
		adminAPI: adminAPI,
		sessions: sessions,
		notifier: notifier,
		events:   events,
	}
}

// Login authenticates the administrator and persists the admin session pair,
// kept separate from any seller session.
func (a *AdminReviewImpl) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.ErrIdentifierEmpty
	}

	result, err := a.authAPI.AdminLogin(ctx, email, password)
	if err != nil {
		return err
	}

	session := &domain.Session{
		User:         result.User,
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
	if err := a.sessions.PersistAdmin(session); err != nil {
		return fmt.Errorf("persist admin session: %w", err)
	}
	a.notifier.Success("Signed in as administrator")
	return nil
}

// LoadPending fetches the moderation queue
func (a *AdminReviewImpl) LoadPending(ctx context.Context) ([]domain.ListingSummary, error) {
	pending, err := a.adminAPI.PendingListings(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.pending = pending
	a.mu.Unlock()
	return pending, nil
}

// Pending returns the last loaded queue
func (a *AdminReviewImpl) Pending() []domain.ListingSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	snapshot := make([]domain.ListingSummary, len(a.pending))
	copy(snapshot, a.pending)
	return snapshot
}

// Review submits a verdict and drops the listing from the local queue on
// success. Rejections require a reason.
func (a *AdminReviewImpl) Review(ctx context.Context, listingID string, decision domain.ReviewDecision) error {
	if !decision.Approve && strings.TrimSpace(decision.Reason) == "" {
		return fmt.Errorf("a rejection needs a reason")
	}

	if err := a.adminAPI.Review(ctx, listingID, decision); err != nil {
		a.events.Record(domain.NewFlowEvent(domain.AdminReviewEvent).WithListing(listingID).WithError(err))
		a.notifier.Error(userMessage(err))
		return err
	}

	a.mu.Lock()
	kept := a.pending[:0]
	for _, listing := range a.pending {
		if listing.ID != listingID {
			kept = append(kept, listing)
		}
	}
	a.pending = kept
	a.mu.Unlock()

	verdict := "rejected"
	if decision.Approve {
		verdict = "approved"
	}
	a.events.Record(domain.NewFlowEvent(domain.AdminReviewEvent).
		WithListing(listingID).
		WithMetadata("verdict", verdict))
	a.notifier.Success("Listing " + verdict)
	return nil
}

// Logout clears the persisted admin session
func (a *AdminReviewImpl) Logout() error {
	return a.sessions.ClearAdmin()
}
