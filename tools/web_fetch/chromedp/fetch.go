package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	readability "github.com/go-shiori/go-readability"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch/models"
)

// Fetch renders a page in headless Chrome before extracting its article
// text. Use for JavaScript-heavy sites the plain readability fetcher cannot
// read; requires a Chrome binary on the host.
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

	html, err := fetchHTML(ctx, rawURL)
	if err != nil {
		return models.Result{URL: rawURL, Status: 599, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}

	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(rawURL))
	if err != nil {
		return models.Result{URL: rawURL, Status: 200, FetchMS: int(time.Since(t0) / time.Millisecond)}, err
	}
	text := models.Truncate(strings.TrimSpace(article.TextContent), f.MaxChars)

	return models.Result{
		URL:     rawURL,
		Title:   strings.TrimSpace(article.Title),
		Text:    text,
		Status:  200,
		FetchMS: int(time.Since(t0) / time.Millisecond),
	}, nil
}

func fetchHTML(ctx context.Context, url string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("InsightAgent/1.0 (+https://github.com/ydovzhyk/insight-agent)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}
