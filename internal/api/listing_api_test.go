package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

func completeDraft() *domain.ListingDraft {
	return &domain.ListingDraft{
		Vehicle: domain.VehicleDetails{
			Brand:        "Maruti Suzuki",
			Model:        "Swift",
			Variant:      "VXI",
			Year:         "2019",
			FuelType:     "petrol",
			Transmission: "manual",
			KmDriven:     "45000",
			OwnerNumber:  "1",
		},
		Pricing: domain.PricingInfo{Price: "550000", Urgency: "within_month"},
		Condition: domain.ConditionInfo{
			Exterior: "good", Interior: "good", Engine: "excellent", AccidentHistory: "none",
		},
		Location: domain.LocationInfo{City: "Pune", State: "Maharashtra", Area: "Baner"},
		Contact:  domain.ContactInfo{SellerName: "Asha", PhoneNumber: "+919876543210"},
		Features: []string{"sunroof"},
		Media: []domain.UploadedMedia{
			{LocalID: "l1", RemoteID: "img-1", FileName: "front.jpg"},
			{LocalID: "l2", RemoteID: "img-2", FileName: "rear.jpg"},
		},
	}
}

func TestSearchBuildsQuery(t *testing.T) {
	var query map[string][]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cars/", r.URL.Path)
		query = r.URL.Query()
		w.Write([]byte(`{"success":true,"data":{"cars":[{"id":"c1","title":"Swift VXI"}],"total":1}}`))
	})
	listings := NewListingClient(client)

	results, total, err := listings.Search(context.Background(), domain.ListingFilter{
		Query:    "swift",
		City:     "Pune",
		MinPrice: 200000,
		Page:     2,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ID)
	assert.Equal(t, []string{"swift"}, query["search"])
	assert.Equal(t, []string{"Pune"}, query["city"])
	assert.Equal(t, []string{"200000"}, query["min_price"])
	assert.Equal(t, []string{"2"}, query["page"])
	assert.NotContains(t, query, "max_price")
}

func TestGetListing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cars/c1/", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"id":"c1","title":"Swift VXI","price":550000}}`))
	})
	listings := NewListingClient(client)

	listing, err := listings.Get(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, 550000, listing.Price)
}

func TestCreateCoercesNumericFields(t *testing.T) {
	var payload map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cars/seller/create/", r.URL.Path)
		require.Equal(t, "Bearer seller-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"success":true,"data":{"id":"c9"}}`))
	})
	listings := NewListingClient(client)

	id, err := listings.Create(context.Background(), completeDraft())

	require.NoError(t, err)
	assert.Equal(t, "c9", id)
	assert.Equal(t, float64(2019), payload["year"])
	assert.Equal(t, float64(45000), payload["km_driven"])
	assert.Equal(t, float64(550000), payload["price"])
	assert.Equal(t, []interface{}{"img-1", "img-2"}, payload["image_ids"])
	contact, ok := payload["contact"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha", contact["sellerName"])
}

func TestCreateRejectsNonNumericDraft(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	listings := NewListingClient(client)

	draft := completeDraft()
	draft.Pricing.Price = "five lakh"

	_, err := listings.Create(context.Background(), draft)

	assert.Error(t, err)
}

func TestCreateSkipsPendingUploads(t *testing.T) {
	var payload map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"success":true,"data":{"id":"c9"}}`))
	})
	listings := NewListingClient(client)

	draft := completeDraft()
	draft.Media = append(draft.Media, domain.UploadedMedia{LocalID: "l3", FileName: "pending.jpg"})

	_, err := listings.Create(context.Background(), draft)

	require.NoError(t, err)
	assert.Equal(t, []interface{}{"img-1", "img-2"}, payload["image_ids"])
}

func TestDeleteListing(t *testing.T) {
	var gotPath, gotMethod string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.Write([]byte(`{"success":true,"message":"deleted"}`))
	})
	listings := NewListingClient(client)

	err := listings.Delete(context.Background(), "c1")

	require.NoError(t, err)
	assert.Equal(t, "/cars/seller/c1/delete/", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestSellerStatsFlattensNestedCars(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cars/seller/stats/", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"cars":{"total":5,"active":3,"sold":1,"pending":1},"total_views":240,"total_inquiries":12}}`))
	})
	listings := NewListingClient(client)

	stats, err := listings.SellerStats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalCars)
	assert.Equal(t, 3, stats.ActiveCars)
	assert.Equal(t, 240, stats.TotalViews)
	assert.Equal(t, 12, stats.TotalInquiries)
}

func TestSetFavorite(t *testing.T) {
	var methods []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cars/c1/favorite/", r.URL.Path)
		methods = append(methods, r.Method)
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})
	listings := NewListingClient(client)

	require.NoError(t, listings.SetFavorite(context.Background(), "c1", true))
	require.NoError(t, listings.SetFavorite(context.Background(), "c1", false))

	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}
