package inmemory_session

import (
	"context"
	"sync"
	"time"

	"github.com/ydovzhyk/insight-agent/internal/session"
)

type entry struct {
	questions []string
	expiresAt time.Time
}

// Store keeps surfaced questions in process memory with a TTL. Suitable for
// single-instance deployments and tests.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*entry
}

func NewStore(ttl time.Duration) session.Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{ttl: ttl, entries: make(map[string]*entry)}
}

func (s *Store) Seen(ctx context.Context, userID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, userID)
		return nil, nil
	}
	out := make([]string, len(e.questions))
	copy(out, e.questions)
	return out, nil
}

func (s *Store) Mark(ctx context.Context, userID string, questions []string) error {
	if len(questions) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok || time.Now().After(e.expiresAt) {
		e = &entry{}
		s.entries[userID] = e
	}
	e.questions = append(e.questions, questions...)
	e.expiresAt = time.Now().Add(s.ttl)
	return nil
}
