package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func newTestLimiter(limit int, window time.Duration) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	l := NewLimiter(store, limit, window)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAcceptsUpToLimitThenRejects(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)
	ctx := context.Background()

	for k := 1; k <= 5; k++ {
		dec, err := l.Check(ctx, "10.0.0.5")
		if err != nil {
			t.Fatalf("check %d: %v", k, err)
		}
		if !dec.Allowed {
			t.Fatalf("request %d should be allowed", k)
		}
		if dec.Remaining != 5-k {
			t.Fatalf("request %d: remaining = %d, want %d", k, dec.Remaining, 5-k)
		}
	}

	dec, err := l.Check(ctx, "10.0.0.5")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec.Allowed {
		t.Fatalf("request %d should be rejected", 6)
	}
	if dec.Remaining != 0 {
		t.Fatalf("rejected remaining = %d, want 0", dec.Remaining)
	}
}

func TestLimiterRejectedRequestsAreNotCounted(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	if dec, _ := l.Check(ctx, "a"); !dec.Allowed {
		t.Fatalf("first request must pass")
	}
	// hammering a full bucket must not extend or grow it
	for i := 0; i < 10; i++ {
		if dec, _ := l.Check(ctx, "a"); dec.Allowed {
			t.Fatalf("request should be rejected")
		}
	}
	store := l.store.(*MemoryStore)
	bucket := l.now().Unix() / 60
	count, _ := store.Get(ctx, fmt.Sprintf("rate:a:%d", bucket))
	if count != 1 {
		t.Fatalf("bucket count = %d, want 1", count)
	}
}

func TestLimiterNextBucketResets(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)
	ctx := context.Background()

	l.Check(ctx, "b")
	l.Check(ctx, "b")
	if dec, _ := l.Check(ctx, "b"); dec.Allowed {
		t.Fatalf("bucket should be full")
	}

	*now = now.Add(time.Minute)
	dec, err := l.Check(ctx, "b")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.Allowed {
		t.Fatalf("first request of the next bucket must be accepted")
	}
	if dec.Remaining != 1 {
		t.Fatalf("fresh bucket remaining = %d, want 1", dec.Remaining)
	}
}

func TestLimiterIdentitiesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	if dec, _ := l.Check(ctx, "10.0.0.1"); !dec.Allowed {
		t.Fatalf("first identity should pass")
	}
	if dec, _ := l.Check(ctx, "10.0.0.1"); dec.Allowed {
		t.Fatalf("first identity should now be limited")
	}
	if dec, _ := l.Check(ctx, "10.0.0.2"); !dec.Allowed {
		t.Fatalf("second identity must not share the bucket")
	}
}

func TestLimiterDefaults(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 0, 0)
	if l.Limit() != DefaultLimit || l.Window() != DefaultWindow {
		t.Fatalf("defaults = %d/%s", l.Limit(), l.Window())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	ctx := context.Background()

	if n, _ := s.Incr(ctx, "k", time.Minute); n != 1 {
		t.Fatalf("first incr = %d", n)
	}
	if n, _ := s.Incr(ctx, "k", time.Minute); n != 2 {
		t.Fatalf("second incr = %d", n)
	}

	now = now.Add(61 * time.Second)
	if n, _ := s.Get(ctx, "k"); n != 0 {
		t.Fatalf("expired key should read 0, got %d", n)
	}
	if n, _ := s.Incr(ctx, "k", time.Minute); n != 1 {
		t.Fatalf("incr after expiry should restart at 1, got %d", n)
	}
}
