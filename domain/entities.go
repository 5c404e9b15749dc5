package domain

import "time"

// User represents the authenticated marketplace user as returned by the API
type User struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	IsVerified  bool   `json:"is_verified"`
	IsSeller    bool   `json:"is_seller"`
	City        string `json:"city,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// Identifier is a normalized login identifier (canonical phone or lower-cased email)
type Identifier struct {
	Value   string
	ByEmail bool
}

// Session holds the credentials and user record owned by the client.
// AccessToken and User are persisted and cleared together, never separately.
type Session struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// OtpChallenge references a server-issued OTP awaiting verification
type OtpChallenge struct {
	ID           string
	Target       Identifier
	IssuedAt     time.Time
	ExpiresAt    time.Time
	MaskedTarget string
	DevHint      string
}

// TokenPair is the access/refresh token pair issued on verification
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult represents a successful OTP verification outcome
type AuthResult struct {
	User      *User
	Tokens    TokenPair
	IsNewUser bool
}

// UploadedMedia is one image in a draft. It starts as a local preview and is
// promoted to a remote reference once the upload resolves.
type UploadedMedia struct {
	LocalID      string
	RemoteID     string
	FileName     string
	PreviewURL   string
	URL          string
	ThumbnailURL string
}

// Uploaded reports whether the media has been reconciled with a remote reference
func (m UploadedMedia) Uploaded() bool { return m.RemoteID != "" }

// VehicleDetails carries the wizard's first-step fields. Numeric-looking
// values stay strings until final payload assembly.
type VehicleDetails struct {
	Brand        string
	Model        string
	Variant      string
	Year         string
	FuelType     string
	Transmission string
	KmDriven     string
	OwnerNumber  string
}

// PricingInfo carries the asking price and sale urgency
type PricingInfo struct {
	Price   string
	Urgency string
}

// ConditionInfo describes the vehicle's stated condition
type ConditionInfo struct {
	Exterior        string
	Interior        string
	Engine          string
	AccidentHistory string
}

// LocationInfo is where the car is listed
type LocationInfo struct {
	City    string
	State   string
	Area    string
	Address string
}

// ContactInfo is how buyers reach the seller
type ContactInfo struct {
	SellerName  string
	PhoneNumber string
	Email       string
}

// ListingDraft accumulates the wizard's input. It is exclusively owned by the
// wizard for the duration of the flow and discarded after submission.
type ListingDraft struct {
	Vehicle     VehicleDetails
	Pricing     PricingInfo
	Condition   ConditionInfo
	Location    LocationInfo
	Contact     ContactInfo
	Features    []string
	Description string
	Media       []UploadedMedia
}

// UploadedCount returns how many media entries have resolved remote references
func (d *ListingDraft) UploadedCount() int {
	n := 0
	for _, m := range d.Media {
		if m.Uploaded() {
			n++
		}
	}
	return n
}

// ImageIDs returns the remote IDs of all uploaded media, in draft order
func (d *ListingDraft) ImageIDs() []string {
	ids := make([]string, 0, len(d.Media))
	for _, m := range d.Media {
		if m.Uploaded() {
			ids = append(ids, m.RemoteID)
		}
	}
	return ids
}

// ListingSummary is a listing as shown in search results and dashboards
type ListingSummary struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	Year           int       `json:"year"`
	Price          int       `json:"price"`
	Status         string    `json:"status"`
	City           string    `json:"city"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	ViewsCount     int       `json:"views_count"`
	InquiriesCount int       `json:"inquiries_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// SellerStats is the aggregate view for the seller dashboard
type SellerStats struct {
	TotalCars      int `json:"total"`
	ActiveCars     int `json:"active"`
	SoldCars       int `json:"sold"`
	PendingCars    int `json:"pending"`
	TotalViews     int `json:"total_views"`
	TotalInquiries int `json:"total_inquiries"`
}

// ListingFilter narrows public browse/search queries
type ListingFilter struct {
	Query    string
	Brand    string
	City     string
	FuelType string
	MinPrice int
	MaxPrice int
	SortBy   string
	Page     int
	Limit    int
}

// ReviewDecision is an admin moderation verdict for a pending listing
type ReviewDecision struct {
	Approve bool
	Reason  string
}

// MediaFile is a file handed to the uploader
type MediaFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// UploadOutcome is the per-file result of a batch upload. Failed files carry
// Err; successful ones carry the remote reference.
type UploadOutcome struct {
	Name         string
	RemoteID     string
	URL          string
	ThumbnailURL string
	Err          error
}

// PriceBounds is the configured acceptable listing price range, inclusive
type PriceBounds struct {
	Min int
	Max int
}
