// Package idempotency implements the Idempotency Resolver: it turns a
// client-supplied key into the deterministic order_id that the Admission
// Handler can hand back before any DB work occurs, deriving a UUIDv5 from
// the client key so the same key always derives the same order_id.
package idempotency

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Namespace is the fixed UUIDv5 namespace every order_id is derived
// against, so that the same key always yields the same order_id across
// replicas and retries.
var Namespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// ErrInvalidKey is returned when the supplied key is not a valid UUID
// textual form once trimmed.
var ErrInvalidKey = errors.New("invalid idempotency key")

// Resolve validates key and derives the deterministic order_id. The key
// itself need not be a meaningful UUID of its own, but it must be
// syntactically a UUID; this resolver enforces that before deriving.
func Resolve(key string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(key)
	if _, err := uuid.Parse(trimmed); err != nil {
		return uuid.UUID{}, ErrInvalidKey
	}
	return uuid.NewSHA1(Namespace, []byte(trimmed)), nil
}
