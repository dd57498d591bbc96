package provider

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ydovzhyk/insight-agent/provider/models"
	openai_provider "github.com/ydovzhyk/insight-agent/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	// Complete returns a full assistant reply in one call.
	Complete(ctx context.Context, system string, messages []models.Message, opts models.Options) (string, error)

	// CompleteObject constrains the reply to a JSON schema and unmarshals
	// it into out.
	CompleteObject(ctx context.Context, system string, messages []models.Message, schema json.RawMessage, out any, opts models.Options) error

	// CompleteStream returns a live token stream; the caller drains it
	// with Recv until io.EOF.
	CompleteStream(ctx context.Context, system string, messages []models.Message, opts models.Options) (models.Stream, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, apiKey string, timeout time.Duration) (Provider, error) {
	switch client {
	case OpenAI:
		if apiKey == "" {
			return nil, errors.New("openai api key not set")
		}
		return openai_provider.NewClient(apiKey, timeout), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
