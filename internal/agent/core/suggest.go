package core

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/ydovzhyk/insight-agent/provider/models"
)

var questionsSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"questions": {
			"type": "array",
			"items": {"type": "string"},
			"description": "The generated questions based on the message history."
		}
	},
	"required": ["questions"],
	"additionalProperties": false
}`)

// Suggest mines the user's memory history for follow-up questions. Users
// with no history get an empty list without a generation call; generation
// failures are logged and also yield an empty list - suggestions are
// cosmetic and never break the chat flow. avoid lists questions already
// shown that must not be repeated.
func (o *Orchestrator) Suggest(ctx context.Context, userID string, avoid []string) []string {
	history := o.gate.History(ctx, userID)
	if len(history) == 0 {
		return nil
	}

	// Group fragments by originating question, in arrival order.
	var order []string
	grouped := make(map[string][]string)
	for _, r := range history {
		q := r.Question()
		if q == "" {
			continue
		}
		if _, ok := grouped[q]; !ok {
			order = append(order, q)
		}
		grouped[q] = append(grouped[q], r.Memory)
	}
	if len(order) == 0 {
		return nil
	}

	msgs := make([]models.Message, 0, 2*len(order))
	for _, q := range order {
		msgs = append(msgs,
			models.Message{Role: "user", Content: q},
			models.Message{Role: "assistant", Content: strings.Join(grouped[q], "\n")},
		)
	}

	var out struct {
		Questions []string `json:"questions"`
	}
	err := o.llm.CompleteObject(ctx, askQuestionsPrompt(avoid), msgs, questionsSchema, &out, models.Options{
		Model:       o.auxModel,
		Temperature: 0,
		TopP:        0.3,
		MaxTokens:   300,
	})
	o.telemetry.RecordProviderCall("llm", err)
	if err != nil {
		o.logger.Printf("suggestion generation error for user %s: %v", userID, err)
		return nil
	}
	if len(out.Questions) > 2 {
		out.Questions = out.Questions[:2]
	}
	return out.Questions
}
