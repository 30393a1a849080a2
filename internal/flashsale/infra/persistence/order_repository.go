package persistence

import (
	"context"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/domain/repository"
	"flashsale/internal/flashsale/infra/persistence/dto"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type OrderRepository struct{}

func NewOrderRepository() repository.OrderRepository {
	return &OrderRepository{}
}

// Save INSERTs the order row. A unique violation on
// idempotency_key surfaces as a *apperrors.RepoError with Kind ==
// RepoConflict, which the fulfillment service interprets as a lost race,
// not a generic failure.
func (r *OrderRepository) Save(ctx context.Context, tx database.Transaction, order *model.Order) error {
	const query = `
		INSERT INTO orders (id, user_id, flash_sale_id, quantity, status, idempotency_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	d := dto.FromOrder(order)
	_, err := tx.ExecContext(ctx, query,
		d.ID, d.UserID, d.FlashSaleID, d.Quantity, d.Status, d.IdempotencyKey, d.CreatedAt)
	if err != nil {
		return apperrors.MapSQLError(err, "save_order", "Order")
	}
	return nil
}

// FindByIdempotencyKey backs both the step-1 short-circuit and the step-7
// re-query after a losing race on the unique constraint.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, tx database.Transaction, key string) (*model.Order, error) {
	const query = `
		SELECT id, user_id, flash_sale_id, quantity, status, idempotency_key, created_at
		FROM orders
		WHERE idempotency_key = $1`

	var row dto.OrderDTO
	if err := tx.GetContext(ctx, &row, query, key); err != nil {
		return nil, apperrors.MapSQLError(err, "find_order_by_idempotency_key", "Order")
	}
	return row.ToDomain(), nil
}
