package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

type staticTokens struct {
	access string
	admin  string
}

func (s staticTokens) AccessToken() string      { return s.access }
func (s staticTokens) AdminAccessToken() string { return s.admin }

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, 5*time.Second, staticTokens{access: "seller-token", admin: "admin-token"}, zerolog.Nop(), opts...)
	return client, server
}

func TestClientSuccessEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"ok","data":{"value":"hello"}}`))
	})

	var out struct {
		Value string `json:"value"`
	}
	err := client.get(context.Background(), "/thing/", &out, reqOptions{})

	require.NoError(t, err)
	assert.Equal(t, "hello", out.Value)
}

func TestClientSuccessWithoutBodyExpected(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"deleted"}`))
	})

	err := client.delete(context.Background(), "/thing/1/", nil, reqOptions{auth: true})

	assert.NoError(t, err)
}

func TestClientMissingDataIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	var out struct{}
	err := client.get(context.Background(), "/thing/", &out, reqOptions{})

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestClientAttachesBearerToken(t *testing.T) {
	var sellerAuth, adminAuth, anonAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/seller/":
			sellerAuth = r.Header.Get("Authorization")
		case "/admin/":
			adminAuth = r.Header.Get("Authorization")
		default:
			anonAuth = r.Header.Get("Authorization")
		}
		w.Write([]byte(`{"success":true,"data":{}}`))
	})

	require.NoError(t, client.get(context.Background(), "/seller/", nil, reqOptions{auth: true}))
	require.NoError(t, client.get(context.Background(), "/admin/", nil, reqOptions{auth: true, admin: true}))
	require.NoError(t, client.get(context.Background(), "/public/", nil, reqOptions{}))

	assert.Equal(t, "Bearer seller-token", sellerAuth)
	assert.Equal(t, "Bearer admin-token", adminAuth)
	assert.Empty(t, anonAuth)
}

func TestClientNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, time.Second, staticTokens{}, zerolog.Nop())

	err := client.get(context.Background(), "/thing/", nil, reqOptions{})

	assert.Equal(t, domain.KindNetworkUnavailable, domain.KindOf(err))
}

func TestClientUnauthorizedInvokesHook(t *testing.T) {
	var hookCalls []bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"token expired"}}`))
	}, WithUnauthorizedHook(func(admin bool) {
		hookCalls = append(hookCalls, admin)
	}))

	err := client.get(context.Background(), "/cars/seller/listings/", nil, reqOptions{auth: true})
	require.Error(t, err)
	assert.Equal(t, domain.KindAuthRejected, domain.KindOf(err))

	err = client.get(context.Background(), "/admin/cars/", nil, reqOptions{auth: true, admin: true})
	require.Error(t, err)

	assert.Equal(t, []bool{false, true}, hookCalls)
}

func TestClientRateLimited(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"success":false,"error":{"code":"OTP_SEND_FAILED","message":"Please wait before requesting another OTP"}}`))
	})

	err := client.post(context.Background(), "/auth/send-otp/", struct{}{}, nil, reqOptions{})

	assert.Equal(t, domain.KindRateLimited, domain.KindOf(err))
	assert.True(t, domain.IsRateLimited(err))
}

func TestClientServerErrorHidesDetail(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":{"code":"DB_DOWN","message":"pq: connection refused at 10.0.3.7"}}`))
	})

	err := client.get(context.Background(), "/cars/", nil, reqOptions{})

	assert.Equal(t, domain.KindServerError, domain.KindOf(err))
	assert.NotContains(t, err.Error(), "10.0.3.7")
}

func TestClientValidationDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Invalid listing data","details":{"price":["Price is below the minimum"],"year":"Year is required"}}}`))
	})

	err := client.post(context.Background(), "/cars/seller/create/", struct{}{}, nil, reqOptions{auth: true})

	require.Error(t, err)
	assert.Equal(t, domain.KindServerValidation, domain.KindOf(err))
	fields := domain.FieldsOf(err)
	assert.Equal(t, "Price is below the minimum", fields["price"])
	assert.Equal(t, "Year is required", fields["year"])
}

func TestFlattenDetails(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "plain strings",
			raw:  `{"price":"too low"}`,
			want: map[string]string{"price": "too low"},
		},
		{
			name: "list takes first entry",
			raw:  `{"price":["too low","second"]}`,
			want: map[string]string{"price": "too low"},
		},
		{
			name: "nested object flattens one level",
			raw:  `{"contact":{"phoneNumber":"invalid phone"}}`,
			want: map[string]string{"contact": "invalid phone"},
		},
		{
			name: "empty details",
			raw:  ``,
			want: nil,
		},
		{
			name: "non-object details",
			raw:  `"oops"`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := flattenDetails([]byte(tt.raw))
			assert.Equal(t, tt.want, got)
		})
	}
}
