// Package backup implements the client side of snapshot export and restore
// against a running trainlog server.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the trainlog server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given server. The API key is only needed
// for Restore; Export is unauthenticated.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: serverURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Export downloads the server's backup snapshot as raw JSON.
func (c *Client) Export() ([]byte, error) {
	resp, err := c.httpClient.Get(c.serverURL + "/api/v1/export")
	if err != nil {
		return nil, fmt.Errorf("fetching export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("export request failed (status %d): %s", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading export body: %w", err)
	}
	return data, nil
}

// RestoreResult is the server's response to a snapshot restore.
type RestoreResult struct {
	SessionsImported int `json:"sessions_imported"`
}

// Restore POSTs a backup snapshot to the server's import endpoint, replacing
// its catalog and session store. Retries up to 3 times with exponential
// backoff on transport failure; a 4xx rejection is returned immediately.
func (c *Client) Restore(snapshot []byte) (*RestoreResult, error) {
	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		req, err := http.NewRequest(http.MethodPost, c.serverURL+"/api/v1/import", bytes.NewReader(snapshot))
		if err != nil {
			return nil, fmt.Errorf("creating restore request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			var result RestoreResult
			if err := json.Unmarshal(body, &result); err != nil {
				return nil, fmt.Errorf("decoding restore response: %w", err)
			}
			return &result, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			// Bad snapshot or bad key. Retrying won't change the answer.
			return nil, fmt.Errorf("restore rejected (status %d): %s", resp.StatusCode, body)
		default:
			lastErr = fmt.Errorf("restore failed (status %d): %s", resp.StatusCode, body)
		}
	}

	return nil, fmt.Errorf("after 3 attempts: %w", lastErr)
}
