package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "message preferred",
			err:  &APIError{Kind: KindRateLimited, Message: "too many requests"},
			want: "too many requests",
		},
		{
			name: "kind when message empty",
			err:  &APIError{Kind: KindNetworkUnavailable},
			want: "network_unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestKindOf(t *testing.T) {
	apiErr := &APIError{Kind: KindRateLimited}
	assert.Equal(t, KindRateLimited, KindOf(apiErr))

	wrapped := fmt.Errorf("send otp: %w", apiErr)
	assert.Equal(t, KindRateLimited, KindOf(wrapped))

	assert.Equal(t, KindServerError, KindOf(errors.New("plain")))
}

func TestErrorPredicates(t *testing.T) {
	assert.True(t, IsRateLimited(&APIError{Kind: KindRateLimited}))
	assert.False(t, IsRateLimited(&APIError{Kind: KindServerError}))
	assert.False(t, IsRateLimited(errors.New("plain")))

	assert.True(t, IsAuthRejected(fmt.Errorf("wrap: %w", &APIError{Kind: KindAuthRejected})))
	assert.False(t, IsAuthRejected(errors.New("plain")))

	assert.True(t, IsNetworkUnavailable(&APIError{Kind: KindNetworkUnavailable}))
	assert.False(t, IsNetworkUnavailable(nil))
}

func TestFieldsOf(t *testing.T) {
	fields := map[string]string{"price": "out of range"}
	err := fmt.Errorf("create listing: %w", &APIError{Kind: KindServerValidation, Fields: fields})
	assert.Equal(t, fields, FieldsOf(err))
	assert.Nil(t, FieldsOf(errors.New("plain")))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "server_validation", KindServerValidation.String())
	assert.Equal(t, "auth_rejected", KindAuthRejected.String())
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "network_unavailable", KindNetworkUnavailable.String())
	assert.Equal(t, "server_error", KindServerError.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
