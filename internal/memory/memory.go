package memory

import "context"

// Record is one memory fragment returned by the store, together with the
// metadata it was written with. Metadata carries the originating question
// under the "question" key; that tag is the join key for grouping.
type Record struct {
	ID       string         `json:"id"`
	Memory   string         `json:"memory"`
	Metadata map[string]any `json:"metadata"`
}

// Question returns the originating question tag, or "" when absent.
func (r Record) Question() string {
	if r.Metadata == nil {
		return ""
	}
	q, _ := r.Metadata["question"].(string)
	return q
}

// Turn is one message of a conversation exchange to persist.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the hosted memory store. Reads are always scoped to a
// single user; a missing scope would leak one user's memory into another's
// context.
type Client interface {
	Search(ctx context.Context, query, userID string, limit int) ([]Record, error)
	Add(ctx context.Context, userID string, turns []Turn, metadata map[string]any) error
}
