// Package ratelimit implements per-user rate limiting: a keyed token
// bucket per user_id. Two implementations share the Limiter interface: an
// in-process sharded-map default, and a Redis-backed one for multi-instance
// deployments; the admission handler is agnostic to which is wired.
package ratelimit

import "context"

// Limiter's Check reports whether user_id has a token
// available and, if so, atomically consumes it. Non-blocking, thread-safe.
type Limiter interface {
	Check(ctx context.Context, userID string) (bool, error)
}
