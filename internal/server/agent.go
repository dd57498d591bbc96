package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ydovzhyk/insight-agent/internal/agent/core"
)

// Agent is the orchestrator surface the HTTP layer depends on.
type Agent interface {
	Answer(ctx context.Context, userID, prompt string) (string, error)
	AnswerStream(ctx context.Context, userID, prompt string) (<-chan core.StreamEvent, error)
	Suggest(ctx context.Context, userID string, avoid []string) []string
}

// AgentHandler serves the chat endpoints.
type AgentHandler struct {
	Agent  Agent
	Logger *log.Logger
}

func (h *AgentHandler) Register(g *echo.Group) {
	g.POST("", h.answer)
	g.POST("/stream", h.stream)
}

// answer handles the blocking chat exchange: one request, one full reply.
func (h *AgentHandler) answer(c echo.Context) error {
	var req AgentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "prompt required")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId required")
	}

	reply, err := h.Agent.Answer(c.Request().Context(), req.UserID, req.Prompt)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, AgentResponse{Reply: reply})
}

// stream handles the streaming chat exchange over Server-Sent Events.
// Each token arrives as a JSON data event; the stream ends with [DONE].
func (h *AgentHandler) stream(c echo.Context) error {
	var req StreamRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id required")
	}
	prompt := lastUserMessage(req.Messages)
	if prompt == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "messages must contain a user message")
	}

	events, err := h.Agent.AnswerStream(c.Request().Context(), req.UserID, prompt)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := c.Response()
	flusher, ok := resp.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "streaming unsupported")
	}
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	for ev := range events {
		payload := streamToken{Token: ev.Token}
		if ev.Err != nil {
			payload = streamToken{Error: ev.Err.Error()}
		}
		data, err := json.Marshal(payload)
		if err != nil {
			continue
		}
		if _, err := resp.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
			// Client gone. The orchestrator keeps draining on its own;
			// nothing left to deliver here.
			h.Logger.Printf("stream write aborted for user %s: %v", req.UserID, err)
			return nil
		}
		flusher.Flush()
	}

	if _, err := resp.Write([]byte("data: [DONE]\n\n")); err == nil {
		flusher.Flush()
	}
	return nil
}

func lastUserMessage(msgs []ChatMessage) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == "user" && strings.TrimSpace(msgs[i].Content) != "" {
			return msgs[i].Content
		}
	}
	return ""
}
