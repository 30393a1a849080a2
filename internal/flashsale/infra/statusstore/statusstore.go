// Package statusstore implements a process-wide concurrent map from
// order_id to OrderProcessingState, with a compare-and-set update that
// enforces the "only transition Pending → terminal" invariant, built as
// an explicit sync-guarded struct rather than an unsynchronized global.
// It is constructed once in the DI container and threaded through the
// admission handler, worker and status-poll handler as a shared field, not
// a package-level singleton.
package statusstore

import (
	"sync"

	"github.com/google/uuid"

	"flashsale/internal/flashsale/domain/model"
)

// Store is safe for concurrent use by multiple readers and writers.
type Store struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]model.OrderProcessingState
}

func New() *Store {
	return &Store{entries: make(map[uuid.UUID]model.OrderProcessingState)}
}

// Insert records state at id. If an entry already exists and is terminal,
// the insert is a no-op: overwriting a terminal state with Pending is
// forbidden — this is what makes a duplicate admission for an in-flight
// idempotency key harmless.
func (s *Store) Insert(id uuid.UUID, state model.OrderProcessingState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[id]; ok && existing.IsTerminal() {
		return
	}
	s.entries[id] = state
}

// Get returns the current state for id, if any.
func (s *Store) Get(id uuid.UUID) (model.OrderProcessingState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.entries[id]
	return state, ok
}

// Update performs the monotone Pending → terminal compare-and-set. It
// reports false (and does not mutate) if id has no entry or is already
// terminal, since the worker must never overwrite a recorded outcome.
func (s *Store) Update(id uuid.UUID, newState model.OrderProcessingState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[id]
	if !ok || existing.IsTerminal() {
		return false
	}
	s.entries[id] = newState
	return true
}

// Len reports the number of entries currently resident; used by tests
// asserting that queue saturation leaves the store size unchanged for the
// rejected request.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
