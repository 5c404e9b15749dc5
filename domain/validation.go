package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// WizardStep identifies a step of the listing submission wizard
type WizardStep int

const (
	StepDetails WizardStep = iota
	StepPricing
	StepContactLocation
	StepMedia
	StepSubmitted
)

func (s WizardStep) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepPricing:
		return "pricing"
	case StepContactLocation:
		return "contact_location"
	case StepMedia:
		return "media"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// ValidateDetails gates advancement past the vehicle-details step
func ValidateDetails(d *ListingDraft) FieldErrors {
	errs := FieldErrors{}
	requireField(errs, "brand_name", d.Vehicle.Brand, "brand is required")
	requireField(errs, "model_name", d.Vehicle.Model, "model is required")
	requireField(errs, "variant_name", d.Vehicle.Variant, "variant is required")
	requireField(errs, "year", d.Vehicle.Year, "year is required")
	requireField(errs, "fuel_type", d.Vehicle.FuelType, "fuel type is required")
	requireField(errs, "transmission", d.Vehicle.Transmission, "transmission is required")
	requireField(errs, "km_driven", d.Vehicle.KmDriven, "odometer reading is required")
	return errs
}

// ValidatePricing gates advancement past the pricing step. Bounds are
// inclusive: a price exactly at either bound is accepted.
func ValidatePricing(d *ListingDraft, bounds PriceBounds) FieldErrors {
	errs := FieldErrors{}
	raw := strings.TrimSpace(d.Pricing.Price)
	if raw == "" {
		errs["price"] = "price is required"
		return errs
	}
	price, err := strconv.Atoi(raw)
	if err != nil {
		errs["price"] = "price must be a number"
		return errs
	}
	if price < bounds.Min {
		errs["price"] = fmt.Sprintf("price must be at least ₹%d", bounds.Min)
	} else if price > bounds.Max {
		errs["price"] = fmt.Sprintf("price must not exceed ₹%d", bounds.Max)
	}
	return errs
}

// ValidateContactLocation gates advancement past the contact/location step
func ValidateContactLocation(d *ListingDraft) FieldErrors {
	errs := FieldErrors{}
	requireField(errs, "city_name", d.Location.City, "city is required")
	requireField(errs, "sellerName", d.Contact.SellerName, "seller name is required")
	requireField(errs, "phoneNumber", d.Contact.PhoneNumber, "seller phone number is required")
	return errs
}

// ValidateMedia gates final submission: at least one image must have a
// resolved remote reference.
func ValidateMedia(d *ListingDraft) FieldErrors {
	errs := FieldErrors{}
	if d.UploadedCount() == 0 {
		errs["images"] = "at least one uploaded image is required"
	}
	return errs
}

func requireField(errs FieldErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

// stepFields maps payload field names to the wizard step that owns them, so a
// server-side rejection can send the user back to the right step.
var stepFields = map[string]WizardStep{
	"brand_name":         StepDetails,
	"model_name":         StepDetails,
	"variant_name":       StepDetails,
	"year":               StepDetails,
	"fuel_type":          StepDetails,
	"transmission":       StepDetails,
	"km_driven":          StepDetails,
	"owner_number":       StepDetails,
	"exterior_condition": StepDetails,
	"interior_condition": StepDetails,
	"engine_condition":   StepDetails,
	"accident_history":   StepDetails,
	"price":              StepPricing,
	"urgency":            StepPricing,
	"city_name":          StepContactLocation,
	"state_name":         StepContactLocation,
	"area":               StepContactLocation,
	"address":            StepContactLocation,
	"contact":            StepContactLocation,
	"sellerName":         StepContactLocation,
	"phoneNumber":        StepContactLocation,
	"description":        StepContactLocation,
	"features":           StepDetails,
	"images":             StepMedia,
	"image_ids":          StepMedia,
}

// StepForField returns the step owning a payload field, defaulting to Media
// for fields the client does not recognize.
func StepForField(field string) WizardStep {
	if step, ok := stepFields[field]; ok {
		return step
	}
	return StepMedia
}

// EarliestStep returns the first wizard step owning any of the given fields.
// Used to route server-side field rejections back to the user.
func EarliestStep(fields map[string]string) WizardStep {
	earliest := StepMedia
	for field := range fields {
		if step := StepForField(field); step < earliest {
			earliest = step
		}
	}
	return earliest
}
