// Package api is the HTTP/JSON client for the rental store API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Text codes attached to transport level errors
const (
	ErrCodeTransport = "API_TRANSPORT"
	ErrCodeDecode    = "API_DECODE"
	ErrCodeEncode    = "API_ENCODE"
)

const maxErrorBody = 4 << 10

// Client talks to the rental store API
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client rooted at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: 10 * time.Second},
		userAgent: "rentaldesk/1",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string // optional "message" or "error" field of the response body
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends the request and decodes a 2xx JSON body into out (if non-nil).
// A non-2xx response yields *StatusError; its body is also decoded into out when
// possible so callers can read structured failure payloads.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(err, apperrors.CategoryInternal, "encode request body").
				WithTextCode(ErrCodeEncode).
				WithMetadata(map[string]any{"method": method, "path": path})
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryInternal, "build request").
			WithTextCode(ErrCodeEncode).
			WithMetadata(map[string]any{"method": method, "path": path})
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		zap.S().Warnw("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return apperrors.Wrap(err, apperrors.CategoryExternal, fmt.Sprintf("%s %s", method, path)).
			WithTextCode(ErrCodeTransport).
			WithMetadata(map[string]any{"method": method, "path": path, "request_id": requestID})
	}
	defer resp.Body.Close()

	zap.S().Debugw("api request", "method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CategoryExternal, "read response body").
			WithTextCode(ErrCodeTransport).
			WithMetadata(map[string]any{"method": method, "path": path, "request_id": requestID})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var eb errorBody
		if len(data) > 0 && len(data) <= maxErrorBody && json.Unmarshal(data, &eb) == nil {
			statusErr.Message = eb.Message
			if statusErr.Message == "" {
				statusErr.Message = eb.Error
			}
		}
		if out != nil && len(data) > 0 {
			_ = json.Unmarshal(data, out)
		}
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryExternal, fmt.Sprintf("decode %s %s response", method, path)).
			WithTextCode(ErrCodeDecode).
			WithMetadata(map[string]any{"method": method, "path": path, "request_id": requestID})
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}
