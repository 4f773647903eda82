// Package api implements the HTTP client for the cartscout pricing backend.
// The backend is consumed as a fixed three-endpoint contract: item
// clarification, cart submission, and job status.
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

	"cartscout/internal/logging"

	"github.com/tidwall/gjson"
)

// Config holds client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for a locally running backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000",
		Timeout: 30 * time.Second,
	}
}

// Client talks to the pricing backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client against the given base URL. An empty baseURL falls
// back to the default local backend.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Clarify asks the backend to normalize one raw item text. contextNames are
// the already-confirmed cart item names, sent for disambiguation. A response
// without a suggested name is a valid result with Suggested == nil, not an
// error.
func (c *Client) Clarify(ctx context.Context, item string, contextNames []string) (*ClarifyResult, error) {
	timer := logging.StartTimer(logging.CategoryAPI, "clarify")
	defer timer.Stop()

	if contextNames == nil {
		contextNames = []string{}
	}
	body, err := c.postJSON(ctx, "/api/clarify", clarifyRequest{Item: item, Context: contextNames})
	if err != nil {
		logging.APIError("clarify %q: %v", item, err)
		return nil, err
	}

	// The no-suggestion shape is not fixed, so probe the fields instead of
	// unmarshalling into a strict struct.
	result := &ClarifyResult{}
	if name := gjson.GetBytes(body, "suggested.name"); name.Exists() && name.String() != "" {
		result.Suggested = &Suggestion{Name: name.String()}
	}
	for _, alt := range gjson.GetBytes(body, "alternatives.#.name").Array() {
		if alt.String() != "" {
			result.Alternatives = append(result.Alternatives, Suggestion{Name: alt.String()})
		}
	}

	if result.Suggested == nil {
		logging.API("clarify %q: no suggestion offered", item)
	} else {
		logging.APIDebug("clarify %q -> %q (+%d alternatives)", item, result.Suggested.Name, len(result.Alternatives))
	}
	return result, nil
}

// SubmitCart submits the finalized item list and location, returning the
// backend job id.
func (c *Client) SubmitCart(ctx context.Context, items []string, zipcode string, prioritizeNearby bool) (string, error) {
	body, err := c.postJSON(ctx, "/api/cart", cartRequest{
		Items:            items,
		Zipcode:          zipcode,
		PrioritizeNearby: prioritizeNearby,
	})
	if err != nil {
		logging.APIError("submit cart: %v", err)
		return "", err
	}

	var resp cartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode cart response: %w", err)
	}
	if resp.JobID == "" {
		return "", fmt.Errorf("cart response missing job_id")
	}
	logging.API("submitted cart (%d items, zip %s) -> job %s", len(items), zipcode, resp.JobID)
	return resp.JobID, nil
}

// JobStatus fetches the current status of a pricing job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/results/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.APIError("job %s status: %v", jobID, err)
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read status response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logging.APIError("job %s status: HTTP %d", jobID, resp.StatusCode)
		return nil, fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
	}

	var status JobStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	logging.APIDebug("job %s status=%s", jobID, status.Status)
	return &status, nil
}

// postJSON issues a POST and returns the raw body on any 2xx status.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend returned HTTP %d", resp.StatusCode)
	}
	return body, nil
}
