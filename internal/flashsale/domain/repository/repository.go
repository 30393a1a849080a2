// Package repository declares the two ports the fulfillment transaction is
// written against, narrowed to exactly the operations that transaction
// needs, each taking an explicit transaction-bound connection rather than
// an ambient context — no repository here owns a pool.
package repository

import (
	"context"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/shared/infra/database"

	"github.com/google/uuid"
)

// FlashSaleRepository is the persistence port for the flash_sales table.
type FlashSaleRepository interface {
	// FindByIDWithLock MUST issue SELECT ... FOR UPDATE so the caller holds
	// the row lock for the remainder of its transaction.
	FindByIDWithLock(ctx context.Context, tx database.Transaction, id uuid.UUID) (*model.FlashSale, error)

	// Update writes back remaining_inventory.
	Update(ctx context.Context, tx database.Transaction, sale *model.FlashSale) error
}

// OrderRepository is the persistence port for the orders table.
type OrderRepository interface {
	// Save INSERTs a new order row. Implementations surface a unique
	// violation on idempotency_key as a distinctly classified *apperrors.RepoError
	// (Kind == apperrors.RepoConflict) rather than a generic database error.
	Save(ctx context.Context, tx database.Transaction, order *model.Order) error

	// FindByIdempotencyKey backs both the step-1 short-circuit and the
	// step-7 re-query after a losing race on the unique constraint.
	FindByIdempotencyKey(ctx context.Context, tx database.Transaction, key string) (*model.Order, error)
}
