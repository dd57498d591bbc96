package core

import (
	"context"
	"encoding/json"

	"github.com/ydovzhyk/insight-agent/provider/models"
)

var relevantSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"relevant": {"type": "string", "description": "Only the relevant memory entries."}
	},
	"required": ["relevant"],
	"additionalProperties": false
}`)

// filterMemory asks the auxiliary model to keep only memory passages that
// bear on the current question. Deterministic settings keep invention to a
// minimum.
func (o *Orchestrator) filterMemory(ctx context.Context, prompt, memoryText string) (string, error) {
	msgs := []models.Message{
		{Role: "user", Content: "USER QUESTION:\n" + prompt},
		{Role: "assistant", Content: "MEMORY NOTES:\n" + memoryText},
	}

	var out struct {
		Relevant string `json:"relevant"`
	}
	err := o.llm.CompleteObject(ctx, memoryFilterPrompt, msgs, relevantSchema, &out, models.Options{
		Model:       o.auxModel,
		Temperature: 0,
		TopP:        0.3,
		MaxTokens:   300,
	})
	o.telemetry.RecordProviderCall("llm", err)
	if err != nil {
		return "", err
	}
	return out.Relevant, nil
}
