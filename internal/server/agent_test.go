package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ydovzhyk/insight-agent/internal/agent/core"
)

type fakeAgent struct {
	mu sync.Mutex

	reply     string
	answerErr error

	tokens    []string
	streamErr error

	suggestions []string
	lastAvoid   []string
	lastUserID  string
	lastPrompt  string
}

func (f *fakeAgent) Answer(ctx context.Context, userID, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUserID = userID
	f.lastPrompt = prompt
	return f.reply, f.answerErr
}

func (f *fakeAgent) AnswerStream(ctx context.Context, userID, prompt string) (<-chan core.StreamEvent, error) {
	f.mu.Lock()
	f.lastUserID = userID
	f.lastPrompt = prompt
	f.mu.Unlock()
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	events := make(chan core.StreamEvent)
	go func() {
		defer close(events)
		for _, tok := range f.tokens {
			events <- core.StreamEvent{Token: tok}
		}
	}()
	return events, nil
}

func (f *fakeAgent) Suggest(ctx context.Context, userID string, avoid []string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUserID = userID
	f.lastAvoid = avoid
	return f.suggestions
}

type fakeSessionStore struct {
	mu     sync.Mutex
	seen   []string
	marked []string
	err    error
}

func (f *fakeSessionStore) Seen(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen, f.err
}

func (f *fakeSessionStore) Mark(ctx context.Context, userID string, questions []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, questions...)
	return f.err
}

func newTestServer(agent Agent, sessions *fakeSessionStore) *echo.Echo {
	logger := log.New(io.Discard, "", 0)
	e := newEcho(logger, nil)
	g := e.Group("/api/agent")
	(&AgentHandler{Agent: agent, Logger: logger}).Register(g)
	if sessions != nil {
		(&SuggestionsHandler{Agent: agent, Sessions: sessions, Logger: logger}).Register(g)
	}
	return e
}

func postJSON(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAnswerEndpoint(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{reply: "hello there"}
	e := newTestServer(agent, nil)

	rec := postJSON(t, e, "/api/agent", `{"prompt":"hi","userId":"u1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp AgentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Reply != "hello there" {
		t.Fatalf("reply = %q", resp.Reply)
	}
	if agent.lastUserID != "u1" || agent.lastPrompt != "hi" {
		t.Fatalf("agent called with user=%q prompt=%q", agent.lastUserID, agent.lastPrompt)
	}
}

func TestAnswerEndpointValidation(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing prompt", `{"userId":"u1"}`},
		{"blank prompt", `{"prompt":"   ","userId":"u1"}`},
		{"missing user", `{"prompt":"hi"}`},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := postJSON(t, e, "/api/agent", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] == "" {
				t.Fatalf("error body = %s", rec.Body.String())
			}
		})
	}
}

func TestAnswerEndpointAgentFailure(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{answerErr: errors.New("synthesis: model down")}, nil)

	rec := postJSON(t, e, "/api/agent", `{"prompt":"hi","userId":"u1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "model down") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestStreamEndpoint(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{tokens: []string{"Hel", "lo"}}
	e := newTestServer(agent, nil)

	body := `{"user_id":"u1","messages":[{"role":"assistant","content":"hi"},{"role":"user","content":"say hello"}]}`
	rec := postJSON(t, e, "/api/agent/stream", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	out := rec.Body.String()
	if !strings.Contains(out, `data: {"token":"Hel"}`) || !strings.Contains(out, `data: {"token":"lo"}`) {
		t.Fatalf("token events missing:\n%s", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "data: [DONE]") {
		t.Fatalf("terminator missing:\n%s", out)
	}
	if agent.lastPrompt != "say hello" {
		t.Fatalf("prompt = %q, want last user message", agent.lastPrompt)
	}
}

func TestStreamEndpointValidation(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, nil)

	rec := postJSON(t, e, "/api/agent/stream", `{"user_id":"u1","messages":[{"role":"assistant","content":"hi"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for payload without user message", rec.Code)
	}
	rec = postJSON(t, e, "/api/agent/stream", `{"messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for payload without user_id", rec.Code)
	}
}

func TestStreamEndpointRelaysErrors(t *testing.T) {
	t.Parallel()
	agent := &fakeAgent{streamErr: errors.New("synthesis: model down")}
	e := newTestServer(agent, nil)

	rec := postJSON(t, e, "/api/agent/stream", `{"user_id":"u1","messages":[{"role":"user","content":"hi"}]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

// noFlushWriter hides the recorder's Flush method so the handler sees a
// writer without streaming support.
type noFlushWriter struct {
	http.ResponseWriter
}

func TestStreamEndpointRejectsNonFlushingWriter(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/agent/stream", strings.NewReader(`{"user_id":"u1","messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(&noFlushWriter{rec}, req)

	// The refusal must arrive before any 200 is committed.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(rec.Body.String(), "streaming unsupported") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()
	e := newTestServer(&fakeAgent{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
	}
}
