package inmemory_session

import (
	"context"
	"reflect"
	"testing"
	"time"
)

func TestMarkAndSeen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(time.Hour)

	if err := s.Mark(ctx, "u1", []string{"q1", "q2"}); err != nil {
		t.Fatalf("Mark: %v", err)
	}
	if err := s.Mark(ctx, "u1", []string{"q3"}); err != nil {
		t.Fatalf("Mark: %v", err)
	}

	got, err := s.Seen(ctx, "u1")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"q1", "q2", "q3"}) {
		t.Fatalf("Seen() = %v", got)
	}

	other, err := s.Seen(ctx, "u2")
	if err != nil || other != nil {
		t.Fatalf("Seen(u2) = %v, %v", other, err)
	}
}

func TestSeenExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewStore(time.Millisecond)
	_ = s.Mark(ctx, "u1", []string{"q1"})
	time.Sleep(5 * time.Millisecond)
	got, err := s.Seen(ctx, "u1")
	if err != nil || got != nil {
		t.Fatalf("Seen() after expiry = %v, %v", got, err)
	}
}
