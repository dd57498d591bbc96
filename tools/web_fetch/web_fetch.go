package web_fetch

import (
	"context"
	"time"

	"github.com/ydovzhyk/insight-agent/tools/web_fetch/chromedp"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch/firecrawl"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch/models"
	"github.com/ydovzhyk/insight-agent/tools/web_fetch/readability"
)

const (
	DefaultTimeout  = 15 * time.Second
	MaxCharsDefault = 3000
)

type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	FirecrawlFetcherType   FetcherType = "firecrawl"
	ReadabilityFetcherType FetcherType = "readability"
	ChromedpFetcherType    FetcherType = "chromedp"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

func NewWebFetcher(fetcherType FetcherType, apiKey string, timeout time.Duration, maxChars int) (WebFetcher, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case FirecrawlFetcherType:
		return &firecrawl.Fetch{ApiKey: apiKey, Timeout: timeout, MaxChars: maxChars}, nil
	case ReadabilityFetcherType:
		return &readability.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpFetcherType:
		return &chromedp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, &Error{"unsupported fetcher type"}
	}
}
