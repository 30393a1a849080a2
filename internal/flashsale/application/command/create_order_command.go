// Package command holds the request-shaped inputs to the admission
// use case, validated with struct tags instead of hand-written
// `if field == "" { return err }` checks.
package command

import "github.com/google/uuid"

// SubmitOrderCommand is the POST /orders request body plus the
// Idempotency-Key header, before order_id derivation.
type SubmitOrderCommand struct {
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	FlashSaleID    uuid.UUID `json:"flash_sale_id" validate:"required"`
	Quantity       int       `json:"quantity" validate:"required,gt=0"`
	IdempotencyKey string    `json:"-" validate:"required"`
}
