package domain

import "context"

// SessionStore owns the durable client-side session state. There is one
// logical writer at a time; Persist and Clear update token and user together
// so readers never observe a half-updated session.
type SessionStore interface {
	Current() (*Session, error)
	IsAuthenticated() bool
	Persist(session *Session) error
	Clear() error

	// Admin sessions are a separate persisted pair with the same invariant
	AdminSession() (*Session, error)
	PersistAdmin(session *Session) error
	ClearAdmin() error

	Theme() string
	SetTheme(theme string) error
}

// AuthAPI covers the remote authentication operations
type AuthAPI interface {
	SendOTP(ctx context.Context, id Identifier) (*OtpChallenge, error)
	VerifyOTP(ctx context.Context, challengeID, code string, id Identifier) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context) error
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
}

// ListingAPI covers listing CRUD, seller queries and favorites
type ListingAPI interface {
	Search(ctx context.Context, filter ListingFilter) ([]ListingSummary, int, error)
	Get(ctx context.Context, id string) (*ListingSummary, error)
	Create(ctx context.Context, draft *ListingDraft) (string, error)
	Delete(ctx context.Context, id string) error
	SellerListings(ctx context.Context) ([]ListingSummary, error)
	SellerStats(ctx context.Context) (*SellerStats, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
}

// MediaAPI covers the image upload side-channel
type MediaAPI interface {
	// UploadImages uploads a batch and reports per-file outcomes so partial
	// failures name the failed subset individually.
	UploadImages(ctx context.Context, files []MediaFile) ([]UploadOutcome, error)
	DeleteFile(ctx context.Context, remoteID string) error
}

// AdminAPI covers moderation actions, consumed by the admin dashboard
type AdminAPI interface {
	PendingListings(ctx context.Context) ([]ListingSummary, error)
	Review(ctx context.Context, listingID string, decision ReviewDecision) error
}

// Notifier surfaces side-channel notifications (toasts). Flow correctness
// must never depend on it.
type Notifier interface {
	Success(message string)
	Error(message string)
	Info(message string)
}

// TokenInspector reads claims from a stored token without verifying the
// signature; the backend is the authority, the client only needs expiry.
type TokenInspector interface {
	Expired(token string) (bool, error)
}
