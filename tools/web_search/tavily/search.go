package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/ydovzhyk/insight-agent/tools/web_search/models"
)

const defaultEndpoint = "https://api.tavily.com/search"

type Search struct {
	ApiKey     string
	MaxResults int
	Endpoint   string // overridable for tests
}

func (s Search) Search(ctx context.Context, q string) (models.Response, error) {
	// https://docs.tavily.com/documentation/api-reference/endpoint/search
	payload := map[string]any{
		"query":               q,
		"topic":               "general",
		"search_depth":        "advanced",
		"include_answer":      true,
		"include_raw_content": true,
		"chunks_per_source":   3,
		"max_results":         s.MaxResults,
		"days":                7,
	}
	body, _ := json.Marshal(payload)

	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(string(body)))
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.Response{}, errors.New("tavily: " + resp.Status + ": " + string(b))
	}

	var raw struct {
		Answer  string `json:"answer"`
		Results []struct {
			Title      string `json:"title"`
			URL        string `json:"url"`
			Content    string `json:"content"`
			RawContent string `json:"raw_content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	out := models.Response{Answer: raw.Answer}
	for i, r := range raw.Results {
		if i >= s.MaxResults {
			break
		}
		out.Results = append(out.Results, models.Result{
			Title: r.Title, URL: r.URL, Content: r.Content, RawContent: r.RawContent,
		})
	}
	return out, nil
}
