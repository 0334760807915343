package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps counters in process memory. Limits are only per process;
// run the Redis store when several server processes must share one quota.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	count     int
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ent, ok := s.entries[key]
	if !ok || s.now().After(ent.expiresAt) {
		return 0, nil
	}
	return ent.count, nil
}

func (s *MemoryStore) Incr(ctx context.Context, key string, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	ent, ok := s.entries[key]
	if !ok || now.After(ent.expiresAt) {
		s.entries[key] = &memoryEntry{count: 1, expiresAt: now.Add(ttl)}
		s.sweepLocked(now)
		return 1, nil
	}
	ent.count++
	return ent.count, nil
}

// sweepLocked drops expired buckets so the map does not grow with one entry
// per identity per window forever. Called opportunistically on inserts.
func (s *MemoryStore) sweepLocked(now time.Time) {
	if len(s.entries) < 4096 {
		return
	}
	for k, ent := range s.entries {
		if now.After(ent.expiresAt) {
			delete(s.entries, k)
		}
	}
}
