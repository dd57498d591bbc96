package firecrawl

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ydovzhyk/insight-agent/tools/web_fetch/models"
)

const defaultEndpoint = "https://api.firecrawl.dev/v1/scrape"

type Fetch struct {
	ApiKey   string
	Timeout  time.Duration
	MaxChars int
	Endpoint string // overridable for tests
}

func (f *Fetch) Exec(ctx context.Context, url string) (models.Result, error) {
	// https://docs.firecrawl.dev/api-reference/endpoint/scrape
	if strings.TrimSpace(url) == "" {
		return models.Result{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	payload := map[string]any{
		"url":     url,
		"formats": []string{"markdown"},
	}
	body, _ := json.Marshal(payload)

	endpoint := f.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(string(body)))
	if err != nil {
		return models.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Result{URL: url, Status: 599, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}
	defer resp.Body.Close()

	var raw struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Data    struct {
			Markdown string `json:"markdown"`
			Metadata struct {
				Title string `json:"title"`
			} `json:"metadata"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Result{URL: url, Status: resp.StatusCode, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}
	if !raw.Success {
		msg := raw.Error
		if msg == "" {
			msg = resp.Status
		}
		return models.Result{URL: url, Status: resp.StatusCode, FetchMS: int(time.Since(t0) / time.Millisecond)}, errors.New("firecrawl: " + msg)
	}

	text := models.Truncate(strings.TrimSpace(raw.Data.Markdown), f.MaxChars)
	return models.Result{
		URL:     url,
		Title:   strings.TrimSpace(raw.Data.Metadata.Title),
		Text:    text,
		Status:  resp.StatusCode,
		FetchMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}
