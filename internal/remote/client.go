// Package remote is the HTTP client for the remote ledger service. The
// engine only ever issues one mutating call — the bulk mutation — plus a
// read to materialize an editing session.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerdesk-dev/ledgerdesk/internal/payload"
)

// APIError is a non-2xx answer from the remote ledger.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote ledger returned status %d", e.Status)
	}
	return fmt.Sprintf("remote ledger returned status %d: %s", e.Status, e.Message)
}

// Client talks to the remote ledger over HTTP. Timeouts are the injected
// http.Client's concern, not the engine's.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Client. A nil httpClient gets a default with a
// 30 second timeout.
func NewClient(baseURL string, httpClient *http.Client, logger zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient, logger: logger}
}

// SubmitBulk sends one bulk mutation. The whole batch is accepted or
// rejected as a unit; per-row anomalies ride back in the response's errors.
func (c *Client) SubmitBulk(ctx context.Context, req payload.BulkRequest) (*payload.BulkResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding bulk request: %w", err)
	}

	start := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/activities/bulk", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building bulk request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting bulk mutation: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return nil, err
	}

	var resp payload.BulkResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decoding bulk response: %w", err)
	}

	c.logger.Info().
		Int("created", len(resp.Created)).
		Int("updated", len(resp.Updated)).
		Int("deleted", len(resp.Deleted)).
		Dur("elapsed", time.Since(start)).
		Msg("bulk mutation accepted")

	return &resp, nil
}

// ListActivities fetches the persisted activities for an account, used to
// materialize an editing session. An empty accountID lists everything.
func (c *Client) ListActivities(ctx context.Context, accountID string) ([]payload.RemoteActivity, error) {
	endpoint := c.baseURL + "/api/v1/activities"
	if accountID != "" {
		endpoint += "?accountId=" + url.QueryEscape(accountID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer httpResp.Body.Close()

	if err := checkStatus(httpResp); err != nil {
		return nil, err
	}

	var activities []payload.RemoteActivity
	if err := json.NewDecoder(httpResp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities: %w", err)
	}
	return activities, nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := ""
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		var apiBody struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiBody) == nil && apiBody.Error != "" {
			msg = apiBody.Error
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
