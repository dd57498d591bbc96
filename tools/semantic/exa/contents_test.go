package exa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestContentsDecodesResponse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "exa-key" {
			t.Errorf("api key header = %q", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload["livecrawl"] != "always" {
			t.Errorf("livecrawl = %v", payload["livecrawl"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{
				"url":     "https://example.com",
				"title":   "Example",
				"text":    "body",
				"summary": "a summary",
				"image":   "https://example.com/og.png",
				"favicon": "https://example.com/favicon.ico",
			}},
		})
	}))
	defer srv.Close()

	c := Contents{ApiKey: "exa-key", Endpoint: srv.URL}
	resp, err := c.Contents(context.Background(), []string{"https://example.com"})
	if err != nil {
		t.Fatalf("Contents: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("results = %+v", resp.Results)
	}
	r := resp.Results[0]
	if r.Summary != "a summary" || r.Favicon != "https://example.com/favicon.ico" {
		t.Fatalf("result = %+v", r)
	}
}
