package mocks

import (
	"context"
	"time"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// MockAuthAPI implements domain.AuthAPI for testing
type MockAuthAPI struct {
	SendOTPFunc    func(ctx context.Context, id domain.Identifier) (*domain.OtpChallenge, error)
	VerifyOTPFunc  func(ctx context.Context, challengeID, code string, id domain.Identifier) (*domain.AuthResult, error)
	RefreshFunc    func(ctx context.Context, refreshToken string) (string, error)
	LogoutFunc     func(ctx context.Context) error
	AdminLoginFunc func(ctx context.Context, email, password string) (*domain.AuthResult, error)
}

// NewMockAuthAPI creates a new MockAuthAPI with default behaviors
func NewMockAuthAPI() *MockAuthAPI {
	return &MockAuthAPI{}
}

var _ domain.AuthAPI = (*MockAuthAPI)(nil)

// SendOTP requests a code
func (m *MockAuthAPI) SendOTP(ctx context.Context, id domain.Identifier) (*domain.OtpChallenge, error) {
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(ctx, id)
	}
	now := time.Now()
	return &domain.OtpChallenge{
		ID:           "mock_otp_id",
		Target:       id,
		IssuedAt:     now,
		ExpiresAt:    now.Add(5 * time.Minute),
		MaskedTarget: "+91 98*** ***10",
	}, nil
}

// VerifyOTP submits a code
func (m *MockAuthAPI) VerifyOTP(ctx context.Context, challengeID, code string, id domain.Identifier) (*domain.AuthResult, error) {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, challengeID, code, id)
	}
	return &domain.AuthResult{
		User: &domain.User{ID: "mock_user_id", PhoneNumber: id.Value, IsVerified: true},
		Tokens: domain.TokenPair{
			AccessToken:  "mock_access_token",
			RefreshToken: "mock_refresh_token",
		},
	}, nil
}

// Refresh exchanges a refresh token
func (m *MockAuthAPI) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "mock_new_access_token", nil
}

// Logout invalidates the server session
func (m *MockAuthAPI) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

// AdminLogin authenticates an administrator
func (m *MockAuthAPI) AdminLogin(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User: &domain.User{ID: "mock_admin_id", Email: email},
		Tokens: domain.TokenPair{
			AccessToken:  "mock_admin_access_token",
			RefreshToken: "mock_admin_refresh_token",
		},
	}, nil
}
