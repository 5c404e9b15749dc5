package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// JWTInspector implements domain.TokenInspector by decoding claims without
// verifying the signature. The backend validates every token it receives;
// the client only needs the expiry claim to decide when to refresh.
type JWTInspector struct {
	parser *jwt.Parser
	now    func() time.Time
}

// NewJWTInspector creates a claim inspector
func NewJWTInspector() *JWTInspector {
	return &JWTInspector{
		parser: jwt.NewParser(),
		now:    time.Now,
	}
}

var _ domain.TokenInspector = (*JWTInspector)(nil)

// Expired reports whether the token's exp claim has passed. A token without
// an exp claim is treated as not expired; a token that cannot be decoded at
// all returns ErrTokenMalformed.
func (j *JWTInspector) Expired(token string) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := j.parser.ParseUnverified(token, claims); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	if exp == nil {
		return false, nil
	}
	return j.now().After(exp.Time), nil
}
