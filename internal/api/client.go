package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ankurdhir/BharatAutoBazaar-sub000/domain"
)

// TokenSource supplies bearer tokens for outgoing requests
type TokenSource interface {
	AccessToken() string
	AdminAccessToken() string
}

// sessionTokenSource adapts a domain.SessionStore into a TokenSource
type sessionTokenSource struct {
	store domain.SessionStore
}

// NewSessionTokenSource reads tokens from the durable session store
func NewSessionTokenSource(store domain.SessionStore) TokenSource {
	return &sessionTokenSource{store: store}
}

func (s *sessionTokenSource) AccessToken() string {
	session, err := s.store.Current()
	if err != nil || session == nil {
		return ""
	}
	return session.AccessToken
}

func (s *sessionTokenSource) AdminAccessToken() string {
	session, err := s.store.AdminSession()
	if err != nil || session == nil {
		return ""
	}
	return session.AccessToken
}

// Client wraps the marketplace HTTP API: it builds requests, attaches bearer
// tokens and normalizes every response into one canonical shape so flow logic
// never sees transport detail.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func(admin bool)
	log            zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHook is invoked on any 401 so the session store can clear
// itself; admin reports which persisted pair was rejected.
func WithUnauthorizedHook(hook func(admin bool)) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// NewClient creates an API client rooted at baseURL
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, log zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type reqOptions struct {
	auth  bool
	admin bool
}

// envelope is the API's uniform response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *errorBody      `json:"error"`
}

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

func (c *Client) get(ctx context.Context, path string, out interface{}, opt reqOptions) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opt)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}, opt reqOptions) error {
	return c.do(ctx, http.MethodPost, path, body, out, opt)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}, opt reqOptions) error {
	return c.do(ctx, http.MethodPut, path, body, out, opt)
}

func (c *Client) delete(ctx context.Context, path string, out interface{}, opt reqOptions) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opt)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opt reqOptions) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req, opt)

	return c.send(req, out, opt)
}

// upload posts a prebuilt multipart body
func (c *Client) upload(ctx context.Context, path, contentType string, body io.Reader, out interface{}, opt reqOptions) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	c.authorize(req, opt)

	return c.send(req, out, opt)
}

func (c *Client) authorize(req *http.Request, opt reqOptions) {
	if !opt.auth {
		return
	}
	token := c.tokens.AccessToken()
	if opt.admin {
		token = c.tokens.AdminAccessToken()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) send(req *http.Request, out interface{}, opt reqOptions) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("path", req.URL.Path).Msg("request transport failure")
		return &domain.APIError{
			Kind:    domain.KindNetworkUnavailable,
			Message: "could not reach the server, check your connection",
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{
			Kind:    domain.KindNetworkUnavailable,
			Message: "could not read the server response",
		}
	}

	var env envelope
	envOK := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && (!envOK || env.Success) {
		if out == nil {
			return nil
		}
		if !envOK || len(env.Data) == 0 {
			return fmt.Errorf("decode response: %w", domain.ErrMalformedResponse)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", domain.ErrMalformedResponse)
		}
		return nil
	}

	return c.mapError(resp.StatusCode, &env, envOK, opt)
}

// mapError turns a failed response into the client error taxonomy. This is
// the single place where transport detail becomes an error kind.
func (c *Client) mapError(status int, env *envelope, envOK bool, opt reqOptions) error {
	var code, message string
	var details json.RawMessage
	if envOK && env.Error != nil {
		code = env.Error.Code
		message = env.Error.Message
		details = env.Error.Details
	}

	apiErr := &domain.APIError{Code: code, Message: message}
	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = domain.KindAuthRejected
		if apiErr.Message == "" {
			apiErr.Message = "session expired, please log in again"
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized(opt.admin)
		}
	case status == http.StatusTooManyRequests || code == "RATE_LIMITED":
		apiErr.Kind = domain.KindRateLimited
		if apiErr.Message == "" {
			apiErr.Message = "too many requests, please wait before retrying"
		}
	case status >= 500:
		apiErr.Kind = domain.KindServerError
		// Internal detail stays internal.
		apiErr.Message = "something went wrong, please try again later"
	case len(details) > 0 || code == "VALIDATION_ERROR":
		apiErr.Kind = domain.KindServerValidation
		apiErr.Fields = flattenDetails(details)
		if apiErr.Message == "" {
			apiErr.Message = "the server rejected the request"
		}
	default:
		apiErr.Kind = domain.KindServerError
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", status)
		}
	}

	c.log.Debug().
		Int("status", status).
		Str("code", code).
		Str("kind", apiErr.Kind.String()).
		Msg("request rejected")
	return apiErr
}

// flattenDetails reduces the server's field detail (string, list-of-string or
// one nested object level) to one message per field.
func flattenDetails(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil
	}
	fields := make(map[string]string, len(generic))
	for key, value := range generic {
		if msg := firstMessage(value); msg != "" {
			fields[key] = msg
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func firstMessage(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			return firstMessage(v[0])
		}
	case map[string]interface{}:
		for _, nested := range v {
			if msg := firstMessage(nested); msg != "" {
				return msg
			}
		}
	}
	return ""
}
