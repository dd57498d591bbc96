package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ydovzhyk/insight-agent/tools/web_search/models"
)

type Search struct {
	ApiKey     string
	MaxResults int
	Endpoint   string // overridable for tests
}

// Search queries Brave web search. Brave has no synthesized answer, so
// Response.Answer is always empty here.
func (s Search) Search(ctx context.Context, q string) (models.Response, error) {
	// https://api.search.brave.com/app/documentation/web-search
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = "https://api.search.brave.com/res/v1/web/search"
	}
	url := fmt.Sprintf("%s?q=%s&count=%d", endpoint, strings.ReplaceAll(q, " ", "+"), s.MaxResults)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return models.Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Response{}, err
	}
	defer resp.Body.Close()

	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.Response{}, err
	}

	var out models.Response
	for i, r := range raw.Web.Results {
		if i >= s.MaxResults {
			break
		}
		out.Results = append(out.Results, models.Result{Title: r.Title, URL: r.URL, Content: r.Snippet})
	}
	return out, nil
}
