package redis_session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ydovzhyk/insight-agent/internal/session"
)

// Store keeps surfaced questions in a redis list per user so repeat
// suppression survives restarts and works across instances.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(addr, password string, db int, ttl time.Duration) session.Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: rdb, ttl: ttl}
}

func key(userID string) string { return fmt.Sprintf("suggestions:%s:seen", userID) }

func (s *Store) Seen(ctx context.Context, userID string) ([]string, error) {
	return s.client.LRange(ctx, key(userID), 0, -1).Result()
}

func (s *Store) Mark(ctx context.Context, userID string, questions []string) error {
	if len(questions) == 0 {
		return nil
	}
	vals := make([]interface{}, len(questions))
	for i, q := range questions {
		vals[i] = q
	}
	k := key(userID)
	if err := s.client.RPush(ctx, k, vals...).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, k, s.ttl).Err()
}
