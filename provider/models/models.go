package models

// Message is one turn of a chat conversation sent to the LLM.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options control sampling for a single generation call. Zero values mean
// "let the provider default apply", except Temperature which is always sent.
type Options struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// Stream delivers tokens of an in-flight generation. Recv blocks for the
// next token and returns io.EOF once the model is done.
type Stream interface {
	Recv() (string, error)
	Close() error
}
