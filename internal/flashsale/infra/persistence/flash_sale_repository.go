// Package persistence implements the repository ports against PostgreSQL
// via sqlx, mapping through the dto package and taking the FOR UPDATE row
// lock the fulfillment transaction depends on.
package persistence

import (
	"context"

	"github.com/google/uuid"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/domain/repository"
	"flashsale/internal/flashsale/infra/persistence/dto"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type FlashSaleRepository struct{}

func NewFlashSaleRepository() repository.FlashSaleRepository {
	return &FlashSaleRepository{}
}

// FindByIDWithLock issues SELECT ... FOR UPDATE, the row lock that
// serializes all concurrent fulfillments for this sale.
func (r *FlashSaleRepository) FindByIDWithLock(ctx context.Context, tx database.Transaction, id uuid.UUID) (*model.FlashSale, error) {
	const query = `
		SELECT id, product_id, start_time, end_time, total_inventory,
		       remaining_inventory, per_user_limit, created_at
		FROM flash_sales
		WHERE id = $1
		FOR UPDATE`

	var row dto.FlashSaleDTO
	if err := tx.GetContext(ctx, &row, query, id); err != nil {
		return nil, apperrors.MapSQLError(err, "find_flash_sale_with_lock", "FlashSale")
	}
	return row.ToDomain(), nil
}

// Update writes back remaining_inventory. Race-free because the caller
// already holds the row lock from FindByIDWithLock within the same
// transaction.
func (r *FlashSaleRepository) Update(ctx context.Context, tx database.Transaction, sale *model.FlashSale) error {
	const query = `UPDATE flash_sales SET remaining_inventory = $1 WHERE id = $2`

	if _, err := tx.ExecContext(ctx, query, sale.RemainingInventory, sale.ID); err != nil {
		return apperrors.MapSQLError(err, "update_flash_sale_inventory", "FlashSale")
	}
	return nil
}
