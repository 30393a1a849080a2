package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// shardCount splits the per-user limiter map across mutex-protected shards
// instead of one global lock, to keep the hot admission path from
// serializing on a single mutex.
const shardCount = 32

type shard struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// InMemoryLimiter is the default rate limiter: buckets are created lazily
// on first sighting of a user_id and never evicted during the process
// lifetime.
type InMemoryLimiter struct {
	rps     int
	shards  [shardCount]*shard
}

// NewInMemoryLimiter builds a limiter refilling at rps tokens/second/user
// with a burst of rps (one second's worth of headroom).
func NewInMemoryLimiter(rps int) *InMemoryLimiter {
	l := &InMemoryLimiter{rps: rps}
	for i := range l.shards {
		l.shards[i] = &shard{buckets: make(map[string]*rate.Limiter)}
	}
	return l
}

func (l *InMemoryLimiter) shardFor(userID string) *shard {
	h := fnv32(userID)
	return l.shards[h%shardCount]
}

func (l *InMemoryLimiter) Check(_ context.Context, userID string) (bool, error) {
	s := l.shardFor(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[userID]
	if !ok {
		b = rate.NewLimiter(rate.Limit(l.rps), l.rps)
		s.buckets[userID] = b
	}
	return b.Allow(), nil
}

func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
