package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "storefront/pkg/errors"
	"storefront/pkg/logger"
	"storefront/pkg/pagination"
)

// Envelope is the decoded form of every API response.
type Envelope[T any] struct {
	Success    bool                   `json:"success"`
	Data       T                      `json:"data"`
	Message    string                 `json:"message,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Details    []apperrors.FieldError `json:"details,omitempty"`
	Pagination *pagination.Info       `json:"pagination,omitempty"`
}

// APIError is returned for any non-2xx response. Error() folds the field
// details into the message; Details keeps them for callers that render
// per-field feedback.
type APIError struct {
	Status  int
	Message string
	Details []apperrors.FieldError
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return e.Message + ": " + strings.Join(parts, ", ")
}

type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
	Query   Params
}

// HttpClient talks to the catalog API. It never retries and sets no timeout
// of its own; callers bound requests through the context.
type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
	tokens     TokenStore
	log        *logger.Logger
}

type Option func(*HttpClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HttpClient) {
		c.HTTPClient = hc
	}
}

func WithTokenStore(store TokenStore) Option {
	return func(c *HttpClient) {
		c.tokens = store
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *HttpClient) {
		c.log = log
	}
}

func NewHttpClient(baseURL string, opts ...Option) *HttpClient {
	c := &HttpClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		tokens:     NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HttpClient) Tokens() TokenStore {
	return c.tokens
}

// Request performs an unauthenticated call and decodes the response body
// into out when out is non-nil.
func (c *HttpClient) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	return c.do(ctx, endpoint, opts, "", out)
}

// AuthRequest is Request with the stored bearer token attached. A missing
// token is not an error; the server decides whether the call needs one.
func (c *HttpClient) AuthRequest(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("failed to read auth token: %w", err)
	}
	return c.do(ctx, endpoint, opts, token, out)
}

func Do[T any](ctx context.Context, c *HttpClient, endpoint string, opts RequestOptions) (*Envelope[T], error) {
	env := &Envelope[T]{Success: true}
	if err := c.Request(ctx, endpoint, opts, env); err != nil {
		return nil, err
	}
	return env, nil
}

func DoAuth[T any](ctx context.Context, c *HttpClient, endpoint string, opts RequestOptions) (*Envelope[T], error) {
	env := &Envelope[T]{Success: true}
	if err := c.AuthRequest(ctx, endpoint, opts, env); err != nil {
		return nil, err
	}
	return env, nil
}

func (c *HttpClient) do(ctx context.Context, endpoint string, opts RequestOptions, token string, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint, opts.Query), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		if c.log != nil {
			c.log.Debug("API request failed",
				"method", method,
				"endpoint", endpoint,
				"status", resp.StatusCode,
				"error", apiErr.Message,
			)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HttpClient) url(endpoint string, query Params) string {
	u := c.BaseURL + endpoint
	encoded := query.Encode()
	if encoded == "" {
		return u
	}
	if strings.Contains(endpoint, "?") {
		return u + "&" + encoded
	}
	return u + "?" + encoded
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case io.Reader:
		return b, nil
	case []byte:
		return bytes.NewReader(b), nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// parseAPIError never fails: an unreadable body degrades to the HTTP status
// text, and malformed details are dropped.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error   string          `json:"error"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	_ = json.Unmarshal(body, &payload)

	var details []apperrors.FieldError
	if len(payload.Details) > 0 {
		if err := json.Unmarshal(payload.Details, &details); err != nil {
			details = nil
		}
	}

	message := payload.Error
	if message == "" {
		message = payload.Message
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}

	return &APIError{
		Status:  status,
		Message: message,
		Details: details,
	}
}
