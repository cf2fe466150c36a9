// Package client is an HTTP implementation of the labs collection
// contract, for admin views running apart from the server process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lab-admin-backend/internal/model"
	"lab-admin-backend/internal/store"
)

// Client talks to the labs API over HTTP. It satisfies admin.Service.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListLabs fetches all labs, ordered by building then name.
func (c *Client) ListLabs(ctx context.Context) ([]model.Lab, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/labs", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list labs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list labs: unexpected status %d", resp.StatusCode)
	}

	labs := make([]model.Lab, 0)
	if err := json.NewDecoder(resp.Body).Decode(&labs); err != nil {
		return nil, fmt.Errorf("failed to decode labs response: %w", err)
	}
	return labs, nil
}

// CreateLab inserts a new lab and fills in its store-assigned ID.
func (c *Client) CreateLab(ctx context.Context, lab *model.Lab) error {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/labs", lab)
	if err != nil {
		return err
	}

	var created model.Lab
	if err := json.Unmarshal(body, &created); err != nil {
		return fmt.Errorf("failed to decode created lab: %w", err)
	}
	*lab = created
	return nil
}

// UpdateLab applies a partial update. An availability-only update goes
// through the dedicated toggle endpoint; anything else uses the full
// update endpoint.
func (c *Client) UpdateLab(ctx context.Context, id int64, update store.LabUpdate) error {
	assignments := update.Assignments()
	if len(assignments) == 0 {
		return nil
	}

	method := http.MethodPut
	path := fmt.Sprintf("/api/labs/%d", id)
	if _, ok := assignments["is_available"]; ok && len(assignments) == 1 {
		method = http.MethodPatch
		path = fmt.Sprintf("/api/labs/%d/availability", id)
	}

	_, err := c.doJSON(ctx, method, path, assignments)
	return err
}

// DeleteLab removes a lab by ID.
func (c *Client) DeleteLab(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/labs/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete lab request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("delete lab: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// doJSON sends a JSON body and returns the raw response body for 2xx
// responses; any other status collapses into a single generic error.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	return body, nil
}
