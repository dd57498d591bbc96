package memory

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// NoMemorySentinel is returned by Recall when the store has nothing for the
// user or is unreachable. Downstream code branches on exactly this value.
const NoMemorySentinel = "No relevant memories found in memory."

const (
	recallLimit  = 300
	historyLimit = 500
)

// Gate is the fail-soft boundary in front of the memory store. The store is
// an optional enrichment: reads degrade to the sentinel and writes are
// log-and-drop, so an outage never touches the answer path.
type Gate struct {
	client Client
	logger *log.Logger
}

func NewGate(client Client, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.New(log.Writer(), "[MEMORY] ", log.LstdFlags)
	}
	return &Gate{client: client, logger: logger}
}

// Lookup searches the user's memory for fragments matching the query.
// Failures degrade to an empty slice and a log line, never an error.
func (g *Gate) Lookup(ctx context.Context, query, userID string) []Record {
	if g == nil || g.client == nil {
		return nil
	}
	records, err := g.client.Search(ctx, query, userID, recallLimit)
	if err != nil {
		g.logger.Printf("search error for user %s: %v", userID, err)
		return nil
	}
	return records
}

// Recall searches the user's memory for fragments matching the query and
// joins them into one labeled text blob. Never returns an error: failures
// and empty results both collapse to NoMemorySentinel.
func (g *Gate) Recall(ctx context.Context, query, userID string) string {
	return Join(g.Lookup(ctx, query, userID))
}

// Join folds memory fragments into one labeled blob; empty input yields
// NoMemorySentinel so downstream code has exactly one branch for "memory
// absent."
func Join(records []Record) string {
	if len(records) == 0 {
		return NoMemorySentinel
	}
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "#%d: %s", i+1, r.Memory)
	}
	return b.String()
}

// Remember persists one conversation turn, tagged with the originating
// question so history can be grouped later. Errors are logged only.
func (g *Gate) Remember(ctx context.Context, userID, question, answer string) {
	if g == nil || g.client == nil {
		return
	}
	turns := []Turn{
		{Role: "user", Content: question},
		{Role: "assistant", Content: answer},
	}
	if err := g.client.Add(ctx, userID, turns, map[string]any{"question": question}); err != nil {
		g.logger.Printf("add error for user %s: %v", userID, err)
		return
	}
	g.logger.Printf("saved turn for user %s", userID)
}

// History returns the user's full memory history for suggestion mining.
// Failures degrade to an empty slice, which callers treat as "no memory."
func (g *Gate) History(ctx context.Context, userID string) []Record {
	if g == nil || g.client == nil {
		return nil
	}
	records, err := g.client.Search(ctx, "everything", userID, historyLimit)
	if err != nil {
		g.logger.Printf("history error for user %s: %v", userID, err)
		return nil
	}
	return records
}
