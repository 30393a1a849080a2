package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the persisted terminal/non-terminal state of an Order row,
// backed by the persisted-schema enum('PENDING','CONFIRMED','FAILED').
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

// Order is the durable record of a fulfilled (or failed) purchase attempt.
// Once written with a terminal status it is immutable.
type Order struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FlashSaleID    uuid.UUID
	Quantity       int
	Status         OrderStatus
	IdempotencyKey string
	CreatedAt      time.Time
}

// NewConfirmedOrder constructs the Order row written by the fulfillment
// transaction's step 6 (INSERT ... VALUES (..., 'CONFIRMED', ...)).
func NewConfirmedOrder(id, userID, flashSaleID uuid.UUID, quantity int, idempotencyKey string, now time.Time) *Order {
	return &Order{
		ID:             id,
		UserID:         userID,
		FlashSaleID:    flashSaleID,
		Quantity:       quantity,
		Status:         OrderStatusConfirmed,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      now,
	}
}

// CreateOrderCommand is the immutable input to the fulfillment pipeline,
// constructed once by the Admission Handler and owned exclusively by the
// queue between send and worker receipt.
type CreateOrderCommand struct {
	OrderID        uuid.UUID
	UserID         uuid.UUID
	FlashSaleID    uuid.UUID
	Quantity       int
	IdempotencyKey string
}

// QueueItem pairs a command with the order_id already derived for it, so
// the worker never has to re-derive the idempotency-to-ID mapping.
type QueueItem struct {
	OrderID uuid.UUID
	Command CreateOrderCommand
}
