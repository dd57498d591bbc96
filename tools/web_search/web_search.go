package web_search

import (
	"context"

	"github.com/ydovzhyk/insight-agent/tools/web_search/brave"
	"github.com/ydovzhyk/insight-agent/tools/web_search/models"
	"github.com/ydovzhyk/insight-agent/tools/web_search/tavily"
)

type WebSearcher interface {
	Search(ctx context.Context, q string) (models.Response, error)
}

type Provider string

const (
	TavilyProvider Provider = "tavily"
	BraveProvider  Provider = "brave"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

func NewWebSearcher(provider Provider, apiKey string, maxResults int) (WebSearcher, error) {
	if maxResults <= 0 {
		maxResults = 5
	}
	switch provider {
	case TavilyProvider:
		return tavily.Search{ApiKey: apiKey, MaxResults: maxResults}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey, MaxResults: maxResults}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
