package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ydovzhyk/insight-agent/internal/session"
)

// SuggestionsHandler serves follow-up question generation. The suggestions
// endpoint tracks repeats in the server-side session store; the questions
// endpoint leaves that bookkeeping to the client.
type SuggestionsHandler struct {
	Agent    Agent
	Sessions session.Store
	Logger   *log.Logger
}

func (h *SuggestionsHandler) Register(g *echo.Group) {
	g.POST("/suggestions", h.suggestions)
	g.POST("/questions", h.questions)
}

func (h *SuggestionsHandler) suggestions(c echo.Context) error {
	var req SuggestionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId required")
	}

	ctx := c.Request().Context()
	seen, err := h.Sessions.Seen(ctx, req.UserID)
	if err != nil {
		// A broken session store must not block suggestions; repeats are
		// the lesser failure.
		h.Logger.Printf("session lookup error for user %s: %v", req.UserID, err)
	}

	questions := h.Agent.Suggest(ctx, req.UserID, seen)
	if len(questions) > 0 {
		if err := h.Sessions.Mark(ctx, req.UserID, questions); err != nil {
			h.Logger.Printf("session mark error for user %s: %v", req.UserID, err)
		}
	}
	return c.JSON(http.StatusOK, SuggestionsResponse{Questions: nonNil(questions)})
}

func (h *SuggestionsHandler) questions(c echo.Context) error {
	var req QuestionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.UserID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId required")
	}

	questions := h.Agent.Suggest(c.Request().Context(), req.UserID, req.UsedQuestions)
	return c.JSON(http.StatusOK, SuggestionsResponse{Questions: nonNil(questions)})
}

// nonNil keeps the wire shape a JSON array: clients iterate the questions
// field and must never see null.
func nonNil(qs []string) []string {
	if qs == nil {
		return []string{}
	}
	return qs
}
