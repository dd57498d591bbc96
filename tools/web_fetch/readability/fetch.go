package readability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch/models"
)

// Fetch retrieves a page with a plain GET and extracts its article text
// locally. Keyless fallback for when no extraction API is configured; does
// not render JavaScript.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
}

func (f *Fetch) Exec(ctx context.Context, rawURL string) (models.Result, error) {
	if strings.TrimSpace(rawURL) == "" {
		return models.Result{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return models.Result{}, err
	}
	req.Header.Set("User-Agent", "InsightAgent/1.0 (+https://github.com/ydovzhyk/insight-agent)")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Result{URL: rawURL, Status: 599, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Result{URL: rawURL, Status: resp.StatusCode, FetchMS: int(time.Since(t0) / time.Millisecond)}, errors.New("readability: " + resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return models.Result{URL: rawURL, Status: resp.StatusCode, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}

	article, err := readability.FromReader(strings.NewReader(string(body)), mustParseURL(rawURL))
	if err != nil {
		return models.Result{URL: rawURL, Status: resp.StatusCode, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}

	text := models.Truncate(strings.TrimSpace(article.TextContent), f.MaxChars)
	return models.Result{
		URL:     rawURL,
		Title:   strings.TrimSpace(article.Title),
		Text:    text,
		Status:  resp.StatusCode,
		FetchMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
