package mem0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ydovzhyk/insight-agent/internal/memory"
)

const defaultBaseURL = "https://api.mem0.ai"

// Client implements memory.Client against the mem0 hosted API.
type Client struct {
	apiKey    string
	orgID     string
	projectID string
	baseURL   string
	http      *http.Client
}

func NewClient(apiKey, orgID, projectID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		apiKey:    apiKey,
		orgID:     orgID,
		projectID: projectID,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API host, used in tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

func (c *Client) Search(ctx context.Context, query, userID string, limit int) ([]memory.Record, error) {
	// https://docs.mem0.ai/api-reference/memory/v2-search-memories
	payload := map[string]any{
		"query": query,
		"filters": map[string]any{
			"AND": []map[string]any{{"user_id": userID}},
		},
		"limit": limit,
	}

	var records []memory.Record
	if err := c.post(ctx, "/v2/memories/search/", payload, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Add(ctx context.Context, userID string, turns []memory.Turn, metadata map[string]any) error {
	payload := map[string]any{
		"messages":   turns,
		"user_id":    userID,
		"org_id":     c.orgID,
		"project_id": c.projectID,
		"metadata":   metadata,
	}
	return c.post(ctx, "/v1/memories/", payload, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.New("mem0: " + resp.Status + ": " + string(msg))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
