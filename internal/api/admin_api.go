package api

import (
	"context"
	"net/url"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// AdminClient implements domain.AdminAPI against the moderation endpoints.
// All requests carry the admin token pair, never the seller's.
type AdminClient struct {
	client *Client
}

// NewAdminClient creates the admin sub-client
func NewAdminClient(client *Client) *AdminClient {
	return &AdminClient{client: client}
}

var _ domain.AdminAPI = (*AdminClient)(nil)

type pendingResponse struct {
	Cars []domain.ListingSummary `json:"cars"`
}

// PendingListings returns listings awaiting moderation
func (a *AdminClient) PendingListings(ctx context.Context) ([]domain.ListingSummary, error) {
	var resp pendingResponse
	if err := a.client.get(ctx, "/admin/cars/?status=pending", &resp, reqOptions{auth: true, admin: true}); err != nil {
		return nil, err
	}
	return resp.Cars, nil
}

type reviewRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// Review approves or rejects a pending listing
func (a *AdminClient) Review(ctx context.Context, listingID string, decision domain.ReviewDecision) error {
	req := reviewRequest{Action: "reject", Reason: decision.Reason}
	if decision.Approve {
		req.Action = "approve"
		req.Reason = ""
	}
	return a.client.post(ctx, "/admin/cars/"+url.PathEscape(listingID)+"/review/", req, nil, reqOptions{auth: true, admin: true})
}
