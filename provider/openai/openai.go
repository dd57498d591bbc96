package openai_provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ydovzhyk/insight-agent/provider/models"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// client implements the provider interface using OpenAI's API
type client struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// NewClient creates a new OpenAI client
func NewClient(apiKey string, timeout time.Duration) *client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &client{
		apiKey:     apiKey,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithAPIURL overrides the endpoint, used in tests.
func (c *client) WithAPIURL(u string) *client {
	c.apiURL = u
	return c
}

// request represents a request to the OpenAI API
type request struct {
	Model          string           `json:"model"`
	Messages       []models.Message `json:"messages"`
	Temperature    float64          `json:"temperature"`
	TopP           float64          `json:"top_p,omitempty"`
	MaxTokens      int              `json:"max_tokens,omitempty"`
	Stream         bool             `json:"stream,omitempty"`
	ResponseFormat *responseFormat  `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

// response represents a response from the OpenAI API
type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func buildMessages(system string, messages []models.Message) []models.Message {
	if system == "" {
		return messages
	}
	out := make([]models.Message, 0, len(messages)+1)
	out = append(out, models.Message{Role: "system", Content: system})
	return append(out, messages...)
}

// Complete implements the provider interface
func (c *client) Complete(ctx context.Context, system string, messages []models.Message, opts models.Options) (string, error) {
	reqBody := request{
		Model:       opts.Model,
		Messages:    buildMessages(system, messages),
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
	}
	var resp response
	if err := c.post(ctx, reqBody, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteObject requests a schema-constrained reply and unmarshals it.
func (c *client) CompleteObject(ctx context.Context, system string, messages []models.Message, schema json.RawMessage, out any, opts models.Options) error {
	reqBody := request{
		Model:       opts.Model,
		Messages:    buildMessages(system, messages),
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		ResponseFormat: &responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: "result", Strict: true, Schema: schema},
		},
	}
	var resp response
	if err := c.post(ctx, reqBody, &resp); err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return errors.New("no choices in response")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("failed to parse structured output: %w", err)
	}
	return nil
}

// CompleteStream starts a streaming completion and returns a token stream.
func (c *client) CompleteStream(ctx context.Context, system string, messages []models.Message, opts models.Options) (models.Stream, error) {
	reqBody := request{
		Model:       opts.Model,
		Messages:    buildMessages(system, messages),
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		MaxTokens:   opts.MaxTokens,
		Stream:      true,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	// The client timeout would cut long generations short; rely on ctx.
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}

	return &sseStream{body: resp.Body, scanner: bufio.NewScanner(resp.Body)}, nil
}

func (c *client) post(ctx context.Context, body request, out *response) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// sseStream reads "data:" lines off a chat-completions event stream and
// yields the content deltas.
type sseStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
	done    bool
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (s *sseStream) Recv() (string, error) {
	if s.done {
		return "", io.EOF
	}
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "[DONE]" {
			s.done = true
			return "", io.EOF
		}
		var chunk streamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", fmt.Errorf("failed to parse stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if chunk.Choices[0].Delta.Content == "" {
			if chunk.Choices[0].FinishReason != "" {
				s.done = true
				return "", io.EOF
			}
			continue
		}
		return chunk.Choices[0].Delta.Content, nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	s.done = true
	return "", io.EOF
}

func (s *sseStream) Close() error { return s.body.Close() }
