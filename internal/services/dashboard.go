package services

import (
	"context"
	"sync"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// DashboardData is the seller dashboard's loaded state
type DashboardData struct {
	Stats    *domain.SellerStats
	Listings []domain.ListingSummary
}

// DashboardImpl loads and mutates the seller's own listings
type DashboardImpl struct {
	mu       sync.Mutex
	deleting map[string]bool

	listings domain.ListingAPI
	notifier domain.Notifier
	events   domain.EventLog
}

// NewDashboard creates the seller dashboard service
func NewDashboard(listings domain.ListingAPI, notifier domain.Notifier, events domain.EventLog) *DashboardImpl {
	return &DashboardImpl{
		deleting: make(map[string]bool),
		listings: listings,
		notifier: notifier,
		events:   events,
	}
}

// Load fetches stats and listings together. Both requests run concurrently;
// either failing fails the load as a whole.
func (d *DashboardImpl) Load(ctx context.Context) (*DashboardData, error) {
	var (
		wg          sync.WaitGroup
		stats       *domain.SellerStats
		statsErr    error
		listings    []domain.ListingSummary
		listingsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		stats, statsErr = d.listings.SellerStats(ctx)
	}()
	go func() {
		defer wg.Done()
		listings, listingsErr = d.listings.SellerListings(ctx)
	}()
	wg.Wait()

	if statsErr != nil {
		return nil, statsErr
	}
	if listingsErr != nil {
		return nil, listingsErr
	}
	return &DashboardData{Stats: stats, Listings: listings}, nil
}

// DeleteListing removes one of the seller's listings. Repeat calls for the
// same ID while a delete is in flight are ignored.
func (d *DashboardImpl) DeleteListing(ctx context.Context, id string) error {
	d.mu.Lock()
	if d.deleting[id] {
		d.mu.Unlock()
		return nil
	}
	d.deleting[id] = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		delete(d.deleting, id)
		d.mu.Unlock()
	}()

	if err := d.listings.Delete(ctx, id); err != nil {
		d.events.Record(domain.NewFlowEvent(domain.ListingDeletedEvent).WithListing(id).WithError(err))
		d.notifier.Error(userMessage(err))
		return err
	}

	d.events.Record(domain.NewFlowEvent(domain.ListingDeletedEvent).WithListing(id))
	d.notifier.Success("Listing deleted")
	return nil
}

// ToggleFavorite marks or unmarks a listing for the buyer side
func (d *DashboardImpl) ToggleFavorite(ctx context.Context, id string, favorite bool) error {
	if err := d.listings.SetFavorite(ctx, id, favorite); err != nil {
		d.notifier.Error(userMessage(err))
		return err
	}
	if favorite {
		d.notifier.Success("Added to favorites")
	} else {
		d.notifier.Info("Removed from favorites")
	}
	return nil
}
