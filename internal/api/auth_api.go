package api

import (
	"context"
	"fmt"
	"time"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// AuthClient implements domain.AuthAPI against the marketplace auth endpoints
type AuthClient struct {
	client *Client
}

// NewAuthClient creates the auth sub-client
func NewAuthClient(client *Client) *AuthClient {
	return &AuthClient{client: client}
}

var _ domain.AuthAPI = (*AuthClient)(nil)

type sendOTPRequest struct {
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

type sendOTPResponse struct {
	OtpID       string `json:"otp_id"`
	ExpiresAt   string `json:"expires_at"`
	MaskedPhone string `json:"masked_phone"`
	DevHint     string `json:"dev_hint,omitempty"`
}

// SendOTP requests a one-time code for the given identifier
func (a *AuthClient) SendOTP(ctx context.Context, id domain.Identifier) (*domain.OtpChallenge, error) {
	req := sendOTPRequest{}
	if id.ByEmail {
		req.Email = id.Value
	} else {
		req.PhoneNumber = id.Value
	}

	var resp sendOTPResponse
	if err := a.client.post(ctx, "/auth/send-otp/", req, &resp, reqOptions{}); err != nil {
		return nil, err
	}
	if resp.OtpID == "" {
		return nil, fmt.Errorf("send otp: %w", domain.ErrMalformedResponse)
	}

	now := time.Now()
	expiresAt, err := time.Parse(time.RFC3339, resp.ExpiresAt)
	if err != nil || !expiresAt.After(now) {
		expiresAt = now.Add(5 * time.Minute)
	}
	return &domain.OtpChallenge{
		ID:           resp.OtpID,
		Target:       id,
		IssuedAt:     now,
		ExpiresAt:    expiresAt,
		MaskedTarget: resp.MaskedPhone,
		DevHint:      resp.DevHint,
	}, nil
}

type verifyOTPRequest struct {
	OtpID       string `json:"otp_id"`
	Otp         string `json:"otp"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Email       string `json:"email,omitempty"`
}

// verifyUser carries the is_new_user flag some deployments nest inside the
// user object instead of at the top level.
type verifyUser struct {
	domain.User
	IsNewUser bool `json:"is_new_user"`
}

type tokenPayload struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type verifyOTPResponse struct {
	User      *verifyUser  `json:"user"`
	Tokens    tokenPayload `json:"tokens"`
	IsNewUser bool         `json:"is_new_user"`
}

// VerifyOTP submits the entered code against an outstanding challenge
func (a *AuthClient) VerifyOTP(ctx context.Context, challengeID, code string, id domain.Identifier) (*domain.AuthResult, error) {
	req := verifyOTPRequest{OtpID: challengeID, Otp: code}
	if id.ByEmail {
		req.Email = id.Value
	} else {
		req.PhoneNumber = id.Value
	}

	var resp verifyOTPResponse
	if err := a.client.post(ctx, "/auth/verify-otp/", req, &resp, reqOptions{}); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.User.ID == "" || resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		return nil, fmt.Errorf("verify otp: %w", domain.ErrMalformedResponse)
	}

	user := resp.User.User
	return &domain.AuthResult{
		User: &user,
		Tokens: domain.TokenPair{
			AccessToken:  resp.Tokens.AccessToken,
			RefreshToken: resp.Tokens.RefreshToken,
		},
		IsNewUser: resp.IsNewUser || resp.User.IsNewUser,
	}, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
}

// Refresh exchanges a refresh token for a new access token
func (a *AuthClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp refreshResponse
	if err := a.client.post(ctx, "/auth/refresh/", refreshRequest{RefreshToken: refreshToken}, &resp, reqOptions{}); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("refresh: %w", domain.ErrMalformedResponse)
	}
	return resp.AccessToken, nil
}

// Logout invalidates the session server-side. Local state is the caller's
// responsibility and is cleared regardless of this call's outcome.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.client.post(ctx, "/auth/logout/", struct{}{}, nil, reqOptions{auth: true})
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginResponse struct {
	User   *domain.User `json:"user"`
	Tokens tokenPayload `json:"tokens"`
	// Older deployments return one flat token instead of a pair.
	Token string `json:"token"`
}

// AdminLogin authenticates an administrator with email and password
func (a *AuthClient) AdminLogin(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var resp adminLoginResponse
	if err := a.client.post(ctx, "/auth/admin/login/", adminLoginRequest{Email: email, Password: password}, &resp, reqOptions{}); err != nil {
		return nil, err
	}

	access := resp.Tokens.AccessToken
	refresh := resp.Tokens.RefreshToken
	if access == "" {
		access = resp.Token
	}
	if refresh == "" {
		refresh = resp.Token
	}
	if resp.User == nil || resp.User.ID == "" || access == "" || refresh == "" {
		return nil, fmt.Errorf("admin login: %w", domain.ErrMalformedResponse)
	}

	return &domain.AuthResult{
		User: resp.User,
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}
