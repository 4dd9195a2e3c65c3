package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// doRequest performs a JSON request against one of the out-of-band REST
// endpoints and decodes the response.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if err := c.authorize(ctx, req); err != nil {
		return fmt.Errorf("obtain credentials: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

// CreateSession creates a new chat session for the tenant user.
func (c *Client) CreateSession(ctx context.Context, tenantID, userID string) (*SessionInfo, error) {
	req := map[string]string{
		"tenant_id": tenantID,
		"user_id":   userID,
	}
	var result SessionInfo
	if err := c.doRequest(ctx, http.MethodPost, "/api/sessions", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchChecklist retrieves the current document checklist for a session
// from the out-of-band status endpoint.
func (c *Client) FetchChecklist(ctx context.Context, tc TenantContext) ([]ChecklistItem, error) {
	q := url.Values{}
	q.Set("tenant_id", tc.TenantID)
	q.Set("user_id", tc.UserID)

	path := "/api/sessions/" + url.PathEscape(tc.SessionID) + "/checklist?" + q.Encode()
	var result ChecklistResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

// FetchTools retrieves the tool catalog available to the given tier.
func (c *Client) FetchTools(ctx context.Context, tier string) ([]ToolDescriptor, error) {
	path := "/api/tools"
	if tier != "" {
		path += "?tier=" + url.QueryEscape(tier)
	}
	var result ToolsResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// Health checks whether the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	var result HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/health", nil, &result); err != nil {
		return err
	}
	if result.Status != "ok" {
		return fmt.Errorf("backend unhealthy: %s", result.Status)
	}
	return nil
}
