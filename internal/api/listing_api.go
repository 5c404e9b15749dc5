package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// ListingClient implements domain.ListingAPI against the car endpoints
type ListingClient struct {
	client *Client
}

// NewListingClient creates the listing sub-client
func NewListingClient(client *Client) *ListingClient {
	return &ListingClient{client: client}
}

var _ domain.ListingAPI = (*ListingClient)(nil)

type searchResponse struct {
	Cars  []domain.ListingSummary `json:"cars"`
	Total int                     `json:"total"`
}

// Search queries public listings with the given filter
func (l *ListingClient) Search(ctx context.Context, filter domain.ListingFilter) ([]domain.ListingSummary, int, error) {
	q := url.Values{}
	if filter.Query != "" {
		q.Set("search", filter.Query)
	}
	if filter.Brand != "" {
		q.Set("brand", filter.Brand)
	}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.FuelType != "" {
		q.Set("fuel_type", filter.FuelType)
	}
	if filter.MinPrice > 0 {
		q.Set("min_price", strconv.Itoa(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		q.Set("max_price", strconv.Itoa(filter.MaxPrice))
	}
	if filter.SortBy != "" {
		q.Set("sort_by", filter.SortBy)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/cars/"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var resp searchResponse
	if err := l.client.get(ctx, path, &resp, reqOptions{}); err != nil {
		return nil, 0, err
	}
	return resp.Cars, resp.Total, nil
}

// Get fetches a single listing's detail
func (l *ListingClient) Get(ctx context.Context, id string) (*domain.ListingSummary, error) {
	var listing domain.ListingSummary
	if err := l.client.get(ctx, "/cars/"+url.PathEscape(id)+"/", &listing, reqOptions{}); err != nil {
		return nil, err
	}
	if listing.ID == "" {
		return nil, fmt.Errorf("get listing: %w", domain.ErrMalformedResponse)
	}
	return &listing, nil
}

type createResponse struct {
	ID string `json:"id"`
}

// Create submits a completed draft and returns the new listing's ID
func (l *ListingClient) Create(ctx context.Context, draft *domain.ListingDraft) (string, error) {
	payload, err := buildCreatePayload(draft)
	if err != nil {
		return "", err
	}

	var resp createResponse
	if err := l.client.post(ctx, "/cars/seller/create/", payload, &resp, reqOptions{auth: true}); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create listing: %w", domain.ErrMalformedResponse)
	}
	return resp.ID, nil
}

// Delete removes one of the seller's own listings
func (l *ListingClient) Delete(ctx context.Context, id string) error {
	return l.client.delete(ctx, "/cars/seller/"+url.PathEscape(id)+"/delete/", nil, reqOptions{auth: true})
}

type sellerListingsResponse struct {
	Cars []domain.ListingSummary `json:"cars"`
}

// SellerListings returns every listing owned by the authenticated seller
func (l *ListingClient) SellerListings(ctx context.Context) ([]domain.ListingSummary, error) {
	var resp sellerListingsResponse
	if err := l.client.get(ctx, "/cars/seller/listings/", &resp, reqOptions{auth: true}); err != nil {
		return nil, err
	}
	return resp.Cars, nil
}

type sellerStatsResponse struct {
	Cars           domain.SellerStats `json:"cars"`
	TotalViews     int                `json:"total_views"`
	TotalInquiries int                `json:"total_inquiries"`
}

// SellerStats returns the seller dashboard aggregates
func (l *ListingClient) SellerStats(ctx context.Context) (*domain.SellerStats, error) {
	var resp sellerStatsResponse
	if err := l.client.get(ctx, "/cars/seller/stats/", &resp, reqOptions{auth: true}); err != nil {
		return nil, err
	}
	stats := resp.Cars
	stats.TotalViews = resp.TotalViews
	stats.TotalInquiries = resp.TotalInquiries
	return &stats, nil
}

// SetFavorite marks or unmarks a listing as a favorite
func (l *ListingClient) SetFavorite(ctx context.Context, id string, favorite bool) error {
	path := "/cars/" + url.PathEscape(id) + "/favorite/"
	if favorite {
		return l.client.post(ctx, path, struct{}{}, nil, reqOptions{auth: true})
	}
	return l.client.delete(ctx, path, nil, reqOptions{auth: true})
}

type contactPayload struct {
	SellerName  string `json:"sellerName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
}

type createPayload struct {
	BrandName         string         `json:"brand_name"`
	ModelName         string         `json:"model_name"`
	VariantName       string         `json:"variant_name"`
	Year              int            `json:"year"`
	FuelType          string         `json:"fuel_type"`
	Transmission      string         `json:"transmission"`
	KmDriven          int            `json:"km_driven"`
	OwnerNumber       string         `json:"owner_number,omitempty"`
	Price             int            `json:"price"`
	Urgency           string         `json:"urgency,omitempty"`
	ExteriorCondition string         `json:"exterior_condition,omitempty"`
	InteriorCondition string         `json:"interior_condition,omitempty"`
	EngineCondition   string         `json:"engine_condition,omitempty"`
	AccidentHistory   string         `json:"accident_history,omitempty"`
	Features          []string       `json:"features"`
	CityName          string         `json:"city_name"`
	StateName         string         `json:"state_name,omitempty"`
	Area              string         `json:"area,omitempty"`
	Address           string         `json:"address,omitempty"`
	Description       string         `json:"description,omitempty"`
	Contact           contactPayload `json:"contact"`
	ImageIDs          []string       `json:"image_ids"`
}

// buildCreatePayload assembles the wire payload, coercing the numeric strings
// the wizard kept verbatim. Coercion failures are caller bugs: the draft is
// validated before it reaches here.
func buildCreatePayload(draft *domain.ListingDraft) (*createPayload, error) {
	year, err := strconv.Atoi(draft.Vehicle.Year)
	if err != nil {
		return nil, fmt.Errorf("draft year %q is not numeric", draft.Vehicle.Year)
	}
	kmDriven, err := strconv.Atoi(draft.Vehicle.KmDriven)
	if err != nil {
		return nil, fmt.Errorf("draft km driven %q is not numeric", draft.Vehicle.KmDriven)
	}
	price, err := strconv.Atoi(draft.Pricing.Price)
	if err != nil {
		return nil, fmt.Errorf("draft price %q is not numeric", draft.Pricing.Price)
	}

	features := draft.Features
	if features == nil {
		features = []string{}
	}

	return &createPayload{
		BrandName:         draft.Vehicle.Brand,
		ModelName:         draft.Vehicle.Model,
		VariantName:       draft.Vehicle.Variant,
		Year:              year,
		FuelType:          draft.Vehicle.FuelType,
		Transmission:      draft.Vehicle.Transmission,
		KmDriven:          kmDriven,
		OwnerNumber:       draft.Vehicle.OwnerNumber,
		Price:             price,
		Urgency:           draft.Pricing.Urgency,
		ExteriorCondition: draft.Condition.Exterior,
		InteriorCondition: draft.Condition.Interior,
		EngineCondition:   draft.Condition.Engine,
		AccidentHistory:   draft.Condition.AccidentHistory,
		Features:          features,
		CityName:          draft.Location.City,
		StateName:         draft.Location.State,
		Area:              draft.Location.Area,
		Address:           draft.Location.Address,
		Description:       draft.Description,
		Contact: contactPayload{
			SellerName:  draft.Contact.SellerName,
			PhoneNumber: draft.Contact.PhoneNumber,
			Email:       draft.Contact.Email,
		},
		ImageIDs: draft.ImageIDs(),
	}, nil
}
