package topic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// maxResponseBytes bounds how much of a response body is read. Topic ID
	// responses are tiny; anything larger is malformed.
	maxResponseBytes = 4096
)

// Generator produces Topic IDs. The creation form depends on this interface
// rather than on the HTTP client so tests can substitute a fake.
type Generator interface {
	// Generate requests a new Topic ID. It takes no parameters beyond the
	// context; any failure is reported as an error and the caller falls
	// back to a locally synthesized identifier.
	Generate(ctx context.Context) (string, error)
}

// Client is an HTTP client for the Topic ID service (topicd).
type Client struct {
	// BaseURL is the base URL for the service (e.g., "http://192.168.1.50:8240")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a new Topic ID service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// topicIDResponse is the wire shape of a generation response.
type topicIDResponse struct {
	TopicID string `json:"topicId"`
}

// Generate requests a new Topic ID from the service. The request carries no
// parameters. Transport failures, non-200 statuses, and malformed bodies are
// all returned as *ServiceError; callers treat every failure the same way
// and synthesize a fallback identifier.
func (c *Client) Generate(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/topic-id", nil)
	if err != nil {
		return "", NewNetworkError("failed to create generation request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", NewNetworkError("topic service unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", NewNetworkError("failed to read response body", err)
	}

	var parsed topicIDResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", NewParseError("malformed generation response", err)
	}

	if parsed.TopicID == "" {
		return "", NewParseError("generation response carried no topicId", nil)
	}
	if len(parsed.TopicID) > 64 {
		return "", NewParseError(fmt.Sprintf("topicId implausibly long (%d chars)", len(parsed.TopicID)), nil)
	}

	return parsed.TopicID, nil
}

// Ping performs a health check against the service.
// Returns nil if the service is reachable and responding.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return NewNetworkError("failed to create health check request", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError("topic service unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return NewHTTPError(resp.StatusCode, fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	return nil
}
