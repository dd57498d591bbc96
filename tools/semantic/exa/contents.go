package exa

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ydovzhyk/insight-agent/tools/semantic/models"
)

const defaultEndpoint = "https://api.exa.ai/contents"

type Contents struct {
	ApiKey   string
	Endpoint string // overridable for tests
}

func (c Contents) Contents(ctx context.Context, urls []string) (models.Response, error) {
	// https://docs.exa.ai/reference/get-contents
	payload := map[string]any{
		"urls":      urls,
		"text":      true,
		"summary":   true,
		"livecrawl": "always",
	}
	body, _ := json.Marshal(payload)

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(string(body)))
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Response{}, errors.New("exa: " + resp.Status + ": " + string(b))
	}

	var raw struct {
		Results []struct {
			URL           string `json:"url"`
			Title         string `json:"title"`
			Text          string `json:"text"`
			Summary       string `json:"summary"`
			Author        string `json:"author"`
			PublishedDate string `json:"publishedDate"`
			Image         string `json:"image"`
			Favicon       string `json:"favicon"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	var out models.Response
	for _, r := range raw.Results {
		out.Results = append(out.Results, models.Result{
			URL:           r.URL,
			Title:         r.Title,
			Text:          r.Text,
			Summary:       r.Summary,
			Author:        r.Author,
			PublishedDate: r.PublishedDate,
			Image:         r.Image,
			Favicon:       r.Favicon,
		})
	}
	return out, nil
}
