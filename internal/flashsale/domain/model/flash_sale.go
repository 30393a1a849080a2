// Package model holds the flash-sale pipeline's entities: FlashSale,
// Order, OrderProcessingState, QueueItem and CreateOrderCommand. Fields
// are exported directly because these types cross transaction boundaries
// as plain data carried between repository and use-case layers, not as
// encapsulated aggregates guarding their own invariants through methods.
package model

import (
	"time"

	"github.com/google/uuid"
)

// FlashSale is a time-bounded offering of a fixed inventory of a single
// product. It is created externally, mutated only inside a fulfillment
// transaction holding its row lock, and destroyed only administratively.
type FlashSale struct {
	ID                 uuid.UUID
	ProductID          uuid.UUID
	StartTime          time.Time
	EndTime            time.Time
	TotalInventory     int
	RemainingInventory int
	PerUserLimit       int
	CreatedAt          time.Time
}

// IsActive reports whether now falls within [StartTime, EndTime].
func (f *FlashSale) IsActive(now time.Time) bool {
	return !now.Before(f.StartTime) && !now.After(f.EndTime)
}

// IsSoldOut reports whether no inventory remains.
func (f *FlashSale) IsSoldOut() bool {
	return f.RemainingInventory <= 0
}

// HasInventoryFor reports whether quantity units can still be debited.
func (f *FlashSale) HasInventoryFor(quantity int) bool {
	return f.RemainingInventory >= quantity
}
