package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// CounterStore is the shared counter the limiter leans on. Incr must
// initialize an absent key to 1 and arm its expiry; when the backend supports
// it (Redis) the increment is atomic, the in-memory fallback is best effort.
type CounterStore interface {
	Get(ctx context.Context, key string) (int, error)
	Incr(ctx context.Context, key string, ttl time.Duration) (int, error)
}

// Decision is the outcome of one limiter check plus the quota metadata
// attached to accepted requests.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Window    time.Duration
}

// Limiter counts requests per identity in fixed windows. The bucket key is
// (identity, floor(now/window)); a bucket's counter expires on its own once
// the window has passed.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

const (
	DefaultLimit  = 100
	DefaultWindow = 60 * time.Second
)

func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *Limiter) Limit() int            { return l.limit }
func (l *Limiter) Window() time.Duration { return l.window }

// Check decides whether the identity may proceed in the current window.
// A rejected request is not counted, so a full bucket stays exactly full
// until it expires.
func (l *Limiter) Check(ctx context.Context, identity string) (Decision, error) {
	bucket := l.now().Unix() / int64(l.window/time.Second)
	key := fmt.Sprintf("rate:%s:%d", identity, bucket)

	count, err := l.store.Get(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	if count >= l.limit {
		return Decision{Allowed: false, Limit: l.limit, Remaining: 0, Window: l.window}, nil
	}
	count, err = l.store.Incr(ctx, key, l.window)
	if err != nil {
		return Decision{}, err
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Limit: l.limit, Remaining: remaining, Window: l.window}, nil
}
