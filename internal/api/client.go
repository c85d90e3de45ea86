// Package api is a typed client for the tutor backend's HTTP API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/tutor/internal/errors"
	"github.com/zhubert/tutor/internal/logger"
)

const (
	JSONContentType = "application/json"
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of a failed response is kept in the error.
	maxErrorBody = 512
)

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero, the default, means none.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger.WithComponent("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// backendError is the error envelope some endpoints return with status 200.
type backendError struct {
	Error string `json:"error"`
}

// do sends a JSON request and decodes the JSON response into out.
// body may be nil, a json.RawMessage, or any value encoding/json accepts.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, op errors.Op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.E(op, errors.KindInvalid, "failed to encode request body", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.E(op, errors.KindInvalid, "failed to build request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", JSONContentType)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", JSONContentType)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "requestID", requestID, "error", err)
		if isTimeout(err) {
			return errors.RequestTimeout(op, path, err)
		}
		return errors.RequestFailed(op, method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.RequestFailed(op, method, path, err)
	}
	c.log.Debug("response received", "method", method, "path", path, "status", res.StatusCode,
		"requestID", requestID, "elapsed", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		return errors.BadStatus(op, method, path, res.StatusCode, snippet)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var envelope backendError
	if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
		return errors.BackendError(op, envelope.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.DecodeFailed(op, path, err)
	}
	return nil
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
