package semantic

import (
	"context"

	"github.com/ydovzhyk/insight-agent/tools/semantic/exa"
	"github.com/ydovzhyk/insight-agent/tools/semantic/models"
)

// ContentProvider retrieves full text and a model-written summary for a set
// of URLs in one call.
type ContentProvider interface {
	Contents(ctx context.Context, urls []string) (models.Response, error)
}

type Provider string

const (
	ExaProvider Provider = "exa"
)

type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

func NewContentProvider(provider Provider, apiKey string) (ContentProvider, error) {
	switch provider {
	case ExaProvider:
		return exa.Contents{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
