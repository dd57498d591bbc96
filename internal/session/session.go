package session

import "context"

// Store tracks which suggestion questions were already surfaced to a user
// session, so repeat calls do not offer the same follow-ups again. All
// callers treat store failures as an empty history; suggestions are
// cosmetic and must not break on a store outage.
type Store interface {
	// Seen returns the questions already surfaced for the user.
	Seen(ctx context.Context, userID string) ([]string, error)

	// Mark records questions as surfaced for the user.
	Mark(ctx context.Context, userID string, questions []string) error
}
