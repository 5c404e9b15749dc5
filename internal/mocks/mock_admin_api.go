package mocks

import (
	"context"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockAdminAPI implements domain.AdminAPI for testing
type MockAdminAPI struct {
	PendingListingsFunc func(ctx context.Context) ([]domain.ListingSummary, error)
	ReviewFunc          func(ctx context.Context, listingID string, decision domain.ReviewDecision) error
}

// NewMockAdminAPI creates a new MockAdminAPI with default behaviors
func NewMockAdminAPI() *MockAdminAPI {
	return &MockAdminAPI{}
}

var _ domain.AdminAPI = (*MockAdminAPI)(nil)

// PendingListings returns listings awaiting review
func (m *MockAdminAPI) PendingListings(ctx context.Context) ([]domain.ListingSummary, error) {
	if m.PendingListingsFunc != nil {
		return m.PendingListingsFunc(ctx)
	}
	return nil, nil
}

// Review submits a moderation verdict
func (m *MockAdminAPI) Review(ctx context.Context, listingID string, decision domain.ReviewDecision) error {
	if m.ReviewFunc != nil {
		return m.ReviewFunc(ctx, listingID, decision)
	}
	return nil
}
