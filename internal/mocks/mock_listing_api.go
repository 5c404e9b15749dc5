package mocks

import (
	"context"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockListingAPI implements domain.ListingAPI for testing
type MockListingAPI struct {
	SearchFunc         func(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingSummary, int, error)
	GetFunc            func(ctx context.Context, id string) (*domain.ListingSummary, error)
	CreateFunc         func(ctx context.Context, draft *domain.ListingDraft) (string, error)
	DeleteFunc         func(ctx context.Context, id string) error
	SellerListingsFunc func(ctx context.Context) ([]domain.ListingSummary, error)
	SellerStatsFunc    func(ctx context.Context) (*domain.SellerStats, error)
	SetFavoriteFunc    func(ctx context.Context, id string, favorite bool) error
}

// NewMockListingAPI creates a new MockListingAPI with default behaviors
func NewMockListingAPI() *MockListingAPI {
	return &MockListingAPI{}
}

var _ domain.ListingAPI = (*MockListingAPI)(nil)

// Search queries public listings
func (m *MockListingAPI) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingSummary, int, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return nil, 0, nil
}

// Get fetches one listing
func (m *MockListingAPI) Get(ctx context.Context, id string) (*domain.ListingSummary, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &domain.ListingSummary{ID: id, Title: "Mock Listing"}, nil
}

// Create submits a draft
func (m *MockListingAPI) Create(ctx context.Context, draft *domain.ListingDraft) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft)
	}
	return "mock_listing_id", nil
}

// Delete removes a listing
func (m *MockListingAPI) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// SellerListings returns the seller's listings
func (m *MockListingAPI) SellerListings(ctx context.Context) ([]domain.ListingSummary, error) {
	if m.SellerListingsFunc != nil {
		return m.SellerListingsFunc(ctx)
	}
	return nil, nil
}

// SellerStats returns dashboard aggregates
func (m *MockListingAPI) SellerStats(ctx context.Context) (*domain.SellerStats, error) {
	if m.SellerStatsFunc != nil {
		return m.SellerStatsFunc(ctx)
	}
	return &domain.SellerStats{}, nil
}

// SetFavorite toggles a favorite
func (m *MockListingAPI) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if m.SetFavoriteFunc != nil {
		return m.SetFavoriteFunc(ctx, id, favorite)
	}
	return nil
}
