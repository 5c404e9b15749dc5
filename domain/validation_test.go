package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() *ListingDraft {
	return &ListingDraft{
		Vehicle: VehicleDetails{
			Brand:        "Maruti Suzuki",
			Model:        "Swift",
			Variant:      "VXI",
			Year:         "2019",
			FuelType:     "petrol",
			Transmission: "manual",
			KmDriven:     "42000",
			OwnerNumber:  "1st",
		},
		Pricing:  PricingInfo{Price: "450000", Urgency: "normal"},
		Location: LocationInfo{City: "Pune", State: "Maharashtra"},
		Contact:  ContactInfo{SellerName: "Ravi", PhoneNumber: "+919876543210"},
		Media: []UploadedMedia{
			{LocalID: "l1", RemoteID: "r1", FileName: "front.jpg"},
		},
	}
}

func TestValidateDetails(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(d *ListingDraft)
		wantFields []string
	}{
		{
			name:   "complete details pass",
			mutate: func(d *ListingDraft) {},
		},
		{
			name:       "missing brand",
			mutate:     func(d *ListingDraft) { d.Vehicle.Brand = "" },
			wantFields: []string{"brand_name"},
		},
		{
			name:       "whitespace-only model",
			mutate:     func(d *ListingDraft) { d.Vehicle.Model = "   " },
			wantFields: []string{"model_name"},
		},
		{
			name: "multiple missing fields all reported",
			mutate: func(d *ListingDraft) {
				d.Vehicle.Year = ""
				d.Vehicle.FuelType = ""
				d.Vehicle.KmDriven = ""
			},
			wantFields: []string{"year", "fuel_type", "km_driven"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			tt.mutate(draft)

			errs := ValidateDetails(draft)

			if len(tt.wantFields) == 0 {
				assert.True(t, errs.Empty())
				return
			}
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidatePricing(t *testing.T) {
	bounds := PriceBounds{Min: 50000, Max: 10000000}

	tests := []struct {
		name    string
		price   string
		wantErr string
	}{
		{name: "in range", price: "450000"},
		{name: "exactly at minimum", price: "50000"},
		{name: "exactly at maximum", price: "10000000"},
		{name: "one below minimum", price: "49999", wantErr: "price must be at least ₹50000"},
		{name: "one above maximum", price: "10000001", wantErr: "price must not exceed ₹10000000"},
		{name: "missing", price: "", wantErr: "price is required"},
		{name: "non-numeric", price: "four lakh", wantErr: "price must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.Pricing.Price = tt.price

			errs := ValidatePricing(draft, bounds)

			if tt.wantErr == "" {
				assert.True(t, errs.Empty())
				return
			}
			require.Contains(t, errs, "price")
			assert.Equal(t, tt.wantErr, errs["price"])
		})
	}
}

func TestValidateContactLocation(t *testing.T) {
	draft := validDraft()
	assert.True(t, ValidateContactLocation(draft).Empty())

	draft.Location.City = ""
	draft.Contact.PhoneNumber = ""
	errs := ValidateContactLocation(draft)
	assert.Contains(t, errs, "city_name")
	assert.Contains(t, errs, "phoneNumber")
	assert.NotContains(t, errs, "sellerName")
}

func TestValidateMedia(t *testing.T) {
	t.Run("uploaded image passes", func(t *testing.T) {
		assert.True(t, ValidateMedia(validDraft()).Empty())
	})

	t.Run("no media blocks with images field", func(t *testing.T) {
		draft := validDraft()
		draft.Media = nil
		errs := ValidateMedia(draft)
		assert.Contains(t, errs, "images")
	})

	t.Run("pending upload does not count", func(t *testing.T) {
		draft := validDraft()
		draft.Media = []UploadedMedia{{LocalID: "l1", FileName: "front.jpg"}}
		errs := ValidateMedia(draft)
		assert.Contains(t, errs, "images")
	})
}

func TestStepForField(t *testing.T) {
	tests := []struct {
		field string
		want  WizardStep
	}{
		{"brand_name", StepDetails},
		{"km_driven", StepDetails},
		{"price", StepPricing},
		{"urgency", StepPricing},
		{"city_name", StepContactLocation},
		{"sellerName", StepContactLocation},
		{"images", StepMedia},
		{"something_unknown", StepMedia},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, StepForField(tt.field))
		})
	}
}

func TestEarliestStep(t *testing.T) {
	fields := map[string]string{
		"price":      "too low",
		"images":     "bad format",
		"brand_name": "unknown brand",
	}
	assert.Equal(t, StepDetails, EarliestStep(fields))

	fields = map[string]string{"price": "too low", "images": "bad format"}
	assert.Equal(t, StepPricing, EarliestStep(fields))

	assert.Equal(t, StepMedia, EarliestStep(map[string]string{}))
}

func TestListingDraftImageIDs(t *testing.T) {
	draft := &ListingDraft{
		Media: []UploadedMedia{
			{LocalID: "a", RemoteID: "r1"},
			{LocalID: "b"}, // upload still pending
			{LocalID: "c", RemoteID: "r3"},
		},
	}
	assert.Equal(t, []string{"r1", "r3"}, draft.ImageIDs())
	assert.Equal(t, 2, draft.UploadedCount())
}
