// Package queue implements the bounded queue: a fixed-capacity FIFO
// with reserve-then-send permit semantics. A buffered channel alone cannot
// express "reserve now, decide later whether to send" without a race
// between the capacity check and the send, so reservation is a separate
// counting semaphore (chan struct{}) and the item channel is sent to only
// after a successful non-blocking semaphore acquire.
package queue

import (
	"errors"

	"flashsale/internal/flashsale/domain/model"
)

// ErrFull is returned by TryReserve when the queue is at capacity.
var ErrFull = errors.New("queue is full")

// Permit is a scoped right to send exactly one item. Dropping it without
// sending (calling Release instead of the owning Queue's Send) returns the
// slot to the pool.
type Permit struct {
	q        *Queue
	released bool
}

// Release gives back the reserved slot without publishing anything. Safe
// to call multiple times; only the first has effect. The admission use
// case does not call it: it sends on every permit it reserves, with no
// cancellation point between reserve and send.
func (p *Permit) Release() {
	if p.released {
		return
	}
	p.released = true
	<-p.q.sem
}

// Queue is a single-producer-or-multi-producer, single-consumer bounded
// FIFO of capacity K (default 100).
type Queue struct {
	sem   chan struct{}
	items chan model.QueueItem
}

func New(capacity int) *Queue {
	return &Queue{
		sem:   make(chan struct{}, capacity),
		items: make(chan model.QueueItem, capacity),
	}
}

// TryReserve attempts a non-blocking slot reservation. Returns ErrFull
// immediately if the queue is at capacity — this is the decision point
// that lets admission respond 503 before any order_id or status entry is
// published.
func (q *Queue) TryReserve() (*Permit, error) {
	select {
	case q.sem <- struct{}{}:
		return &Permit{q: q}, nil
	default:
		return nil, ErrFull
	}
}

// Send consumes permit, publishing item. The permit must have come from
// this Queue's TryReserve and must not already be released.
func (q *Queue) Send(permit *Permit, item model.QueueItem) {
	if permit.released {
		panic("queue: send using an already-released permit")
	}
	permit.released = true
	q.items <- item
}

// Recv suspends until an item is available or the queue is closed, in
// which case ok is false. Each successful Recv also returns the slot its
// item held reserved back to the semaphore, since the worker has now taken
// ownership of the item.
func (q *Queue) Recv() (model.QueueItem, bool) {
	item, ok := <-q.items
	if ok {
		<-q.sem
	}
	return item, ok
}

// Len reports the current number of in-flight items, backing the
// order_queue_depth gauge.
func (q *Queue) Len() int {
	return len(q.items)
}

// Close stops accepting new sends. Callers must first stop calling
// TryReserve/Send from admission before closing, then let the worker
// drain remaining items via Recv.
func (q *Queue) Close() {
	close(q.items)
}
