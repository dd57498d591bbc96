package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ydovzhyk/insight-agent/internal/memory"
)

func historyRecords() []memory.Record {
	return []memory.Record{
		{Memory: "User asked about solar panels", Metadata: map[string]any{"question": "How do solar panels work?"}},
		{Memory: "User is budgeting an installation", Metadata: map[string]any{"question": "How do solar panels work?"}},
		{Memory: "User compared inverter brands", Metadata: map[string]any{"question": "Which inverter should I buy?"}},
	}
}

func TestSuggestEmptyHistorySkipsGeneration(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{}
	o := newTestOrchestrator(llm, &fakeSearcher{}, &fakeContents{}, &fakeMemClient{})

	got := o.Suggest(context.Background(), "fresh-user", nil)
	if len(got) != 0 {
		t.Fatalf("suggestions for empty history = %v", got)
	}
	if llm.objectCalls != 0 {
		t.Fatalf("generation called %d times for empty history", llm.objectCalls)
	}
}

func TestSuggestReturnsTwoQuestions(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{objectOut: map[string]any{"questions": []string{
		"What maintenance do solar panels need?",
		"Is a hybrid inverter worth it?",
		"How long do panels last?",
	}}}
	mem := &fakeMemClient{records: historyRecords()}
	o := newTestOrchestrator(llm, &fakeSearcher{}, &fakeContents{}, mem)

	got := o.Suggest(context.Background(), "u1", nil)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2: %v", len(got), got)
	}
}

func TestSuggestEmbedsAvoidList(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{objectOut: map[string]any{"questions": []string{"fresh one", "fresh two"}}}
	mem := &fakeMemClient{records: historyRecords()}
	o := newTestOrchestrator(llm, &fakeSearcher{}, &fakeContents{}, mem)

	avoid := []string{"How do solar panels work?", "Which inverter should I buy?"}
	o.Suggest(context.Background(), "u1", avoid)

	for _, q := range avoid {
		if !strings.Contains(llm.lastSystem, q) {
			t.Fatalf("avoid entry %q missing from instructions:\n%s", q, llm.lastSystem)
		}
	}
}

func TestSuggestGenerationFailureYieldsEmpty(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{objectErr: errors.New("model down")}
	mem := &fakeMemClient{records: historyRecords()}
	o := newTestOrchestrator(llm, &fakeSearcher{}, &fakeContents{}, mem)

	if got := o.Suggest(context.Background(), "u1", nil); got != nil {
		t.Fatalf("suggestions after generation failure = %v", got)
	}
}

func TestSuggestUntaggedHistorySkipsGeneration(t *testing.T) {
	t.Parallel()
	llm := &fakeLLM{}
	mem := &fakeMemClient{records: []memory.Record{{Memory: "stray fragment"}}}
	o := newTestOrchestrator(llm, &fakeSearcher{}, &fakeContents{}, mem)

	if got := o.Suggest(context.Background(), "u1", nil); len(got) != 0 {
		t.Fatalf("suggestions for untagged history = %v", got)
	}
	if llm.objectCalls != 0 {
		t.Fatalf("generation called %d times with no grouped questions", llm.objectCalls)
	}
}
