package openai_provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ydovzhyk/insight-agent/provider/models"
)

func TestComplete(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		msgs := req["messages"].([]any)
		first := msgs[0].(map[string]any)
		if first["role"] != "system" {
			t.Errorf("first message role = %v", first["role"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "hello"}}},
		})
	}))
	defer srv.Close()

	c := NewClient("k", time.Second).WithAPIURL(srv.URL)
	got, err := c.Complete(context.Background(), "sys", []models.Message{{Role: "user", Content: "hi"}}, models.Options{Model: "gpt-4o-mini", Temperature: 0.7})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Complete() = %q", got)
	}
}

func TestCompleteObject(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["response_format"] == nil {
			t.Error("response_format not sent")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": `{"relevant":"only this"}`}}},
		})
	}))
	defer srv.Close()

	c := NewClient("k", time.Second).WithAPIURL(srv.URL)
	var out struct {
		Relevant string `json:"relevant"`
	}
	schema := json.RawMessage(`{"type":"object","properties":{"relevant":{"type":"string"}},"required":["relevant"]}`)
	if err := c.CompleteObject(context.Background(), "sys", nil, schema, &out, models.Options{Model: "gpt-4o-mini"}); err != nil {
		t.Fatalf("CompleteObject: %v", err)
	}
	if out.Relevant != "only this" {
		t.Fatalf("out = %+v", out)
	}
}

func TestCompleteStream(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, tok := range []string{"Hel", "lo"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", tok)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewClient("k", time.Second).WithAPIURL(srv.URL)
	stream, err := c.CompleteStream(context.Background(), "sys", []models.Message{{Role: "user", Content: "hi"}}, models.Options{Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("CompleteStream: %v", err)
	}
	defer stream.Close()

	var full string
	for {
		tok, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Recv: %v", err)
		}
		full += tok
	}
	if full != "Hello" {
		t.Fatalf("streamed text = %q", full)
	}
}

func TestCompleteErrorStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("k", time.Second).WithAPIURL(srv.URL)
	if _, err := c.Complete(context.Background(), "", nil, models.Options{Model: "m"}); err == nil {
		t.Fatal("expected error on 401")
	}
}
