// Package api wraps the ProjectNest REST backend. It owns bearer-header
// injection, request correlation and the mapping from backend error
// envelopes to typed errors; everything above it reacts to errors plus an
// optional display message.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/projectnest/nestctl/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// TokenSource supplies the current bearer token, "" when logged out.
type TokenSource func() string

// Client is the REST collaborator wrapper shared by all endpoint groups.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	token          TokenSource
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTokenSource attaches the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithOnUnauthorized registers a hook fired when the backend answers 401,
// so the host can drop the stored token and route back to login.
func WithOnUnauthorized(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New builds a client for the given base URL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.send(ctx, method, path, query, body, out, true)
}

// doPublic issues a request without the bearer header and without the 401
// hook. Credential exchange answers 401 for bad credentials, not for a
// dead session, so a rejected login must never purge the stored token.
func (c *Client) doPublic(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	return c.send(ctx, method, path, query, body, out, false)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out interface{}, authenticated bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	if authenticated && c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, appErrors.ErrNetwork.Message)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "failed to read response")
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode >= 400 {
		if authenticated && resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return appErrors.FromStatus(resp.StatusCode, errorMessage(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode response")
		}
	}
	return nil
}

// errorMessage extracts a display message from the backend's error
// envelope. The backend answers either {"error": "..."} or, for
// validation failures, {"error": {"field": ["problem"]}}.
func errorMessage(data []byte) string {
	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return ""
	}
	if len(envelope.Error) > 0 {
		var text string
		if json.Unmarshal(envelope.Error, &text) == nil {
			return text
		}
		var fields map[string][]string
		if json.Unmarshal(envelope.Error, &fields) == nil && len(fields) > 0 {
			parts := make([]string, 0, len(fields))
			for field, problems := range fields {
				parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(problems, "; ")))
			}
			sort.Strings(parts)
			return strings.Join(parts, ", ")
		}
		return string(envelope.Error)
	}
	return envelope.Message
}
