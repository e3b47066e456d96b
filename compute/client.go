package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gnomonworks/yantra/iox"
	"github.com/gnomonworks/yantra/types"
)

// DefaultTimeout is the default per-request timeout. Generation involves
// geometry synthesis and ephemeris lookups server-side, so it is generous.
const DefaultTimeout = 60 * time.Second

// maxErrorBody bounds how much of a failure response body is read when
// extracting the error payload.
const maxErrorBody = 64 << 10

// Config configures the HTTP client.
type Config struct {
	// BaseURL is the service root, e.g. "https://compute.example.net" (required).
	BaseURL string
	// Timeout is the per-request timeout (default 60s).
	Timeout time.Duration
	// Headers are custom HTTP headers added to each request.
	Headers map[string]string
}

// Client is the HTTP implementation of Service.
//
// Requests are sent exactly once: a failed generation requires an explicit
// new user-triggered call, so no retry loop exists here.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates an HTTP compute client from the given config.
// Returns an error if the base URL is empty.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("compute client requires a base URL")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Generate implements Service.
func (c *Client) Generate(ctx context.Context, req *GenerationRequest) (*types.GenerationResult, error) {
	var result types.GenerationResult
	if err := c.post(ctx, "generate", "/api/v1/generate/", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SunPath implements Service.
func (c *Client) SunPath(ctx context.Context, req *SunPathRequest) (*types.SunPath, error) {
	// Default on a copy; the caller's request stays untouched.
	send := *req
	if send.NumPoints == 0 {
		send.NumPoints = DefaultSunPathPoints
	}
	var path types.SunPath
	if err := c.post(ctx, "sun_path", "/api/v1/astronomy/sun-path", &send, &path); err != nil {
		return nil, err
	}
	return &path, nil
}

// errorPayload is the service's failure response body.
type errorPayload struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// post sends one JSON POST and decodes the response into out.
// Non-2xx responses become *RemoteError; everything else becomes
// *TransportError.
func (c *Client) post(ctx context.Context, op, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "yantra/"+types.Version)
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer iox.DiscardClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.remoteError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// remoteError builds a *RemoteError from a failure response, tolerating
// bodies that are not the structured error payload.
func (c *Client) remoteError(resp *http.Response) error {
	remote := &RemoteError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return remote
	}
	var payload errorPayload
	if err := json.Unmarshal(raw, &payload); err == nil {
		remote.Message = payload.Message
		remote.Detail = payload.Detail
	}
	return remote
}

// Close releases client resources.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// Verify Client implements the service boundary.
var _ Service = (*Client)(nil)
