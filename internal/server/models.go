package server

// AgentRequest is the blocking chat request body.
type AgentRequest struct {
	Prompt string `json:"prompt"`
	UserID string `json:"userId"`
}

// AgentResponse is the blocking chat reply.
type AgentResponse struct {
	Reply string `json:"reply"`
}

// ChatMessage is one entry of a streaming conversation payload.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamRequest is the streaming chat request body. The prompt is the
// content of the last user message.
type StreamRequest struct {
	Messages []ChatMessage `json:"messages"`
	UserID   string        `json:"user_id"`
}

// SuggestionsRequest asks for follow-up questions for a user.
type SuggestionsRequest struct {
	UserID string `json:"userId"`
}

// QuestionsRequest asks for follow-up questions with a client-supplied
// avoid list instead of the server-side session store.
type QuestionsRequest struct {
	UserID        string   `json:"userId"`
	UsedQuestions []string `json:"usedQuestions"`
}

// SuggestionsResponse carries generated follow-up questions.
type SuggestionsResponse struct {
	Questions []string `json:"questions"`
}

// streamToken is one SSE data payload of the streaming endpoint.
type streamToken struct {
	Token string `json:"token,omitempty"`
	Error string `json:"error,omitempty"`
}
