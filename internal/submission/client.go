package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// IntakeClient delivers a payload to the lead intake endpoint.
type IntakeClient interface {
	Submit(ctx context.Context, p Payload) (Receipt, error)
}

// HTTPIntakeClient posts payloads as JSON to a configured intake URL.
type HTTPIntakeClient struct {
	url        string
	httpClient *http.Client
}

// NewHTTPIntakeClient creates an intake client. A zero timeout falls back
// to the default.
func NewHTTPIntakeClient(url string, timeout time.Duration) *HTTPIntakeClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPIntakeClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit posts the payload and decodes the receipt. Any non-2xx status or
// an unsuccessful receipt body is an error.
func (c *HTTPIntakeClient) Submit(ctx context.Context, p Payload) (Receipt, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Receipt{}, fmt.Errorf("submission: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("submission: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("submission: post lead: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Receipt{}, fmt.Errorf("submission: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Receipt{}, fmt.Errorf("submission: intake returned status %d", resp.StatusCode)
	}

	var receipt Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		return Receipt{}, fmt.Errorf("submission: decode receipt: %w", err)
	}
	if !receipt.Success {
		return Receipt{}, fmt.Errorf("submission: intake rejected lead: %s", receipt.Message)
	}
	return receipt, nil
}
