// Package dto holds the sqlx row-scanning shapes for flash_sales and
// orders: plain structs with `db` tags, kept separate from the domain
// model.
package dto

import (
	"time"

	"github.com/google/uuid"

	"flashsale/internal/flashsale/domain/model"
)

type FlashSaleDTO struct {
	ID                 uuid.UUID `db:"id"`
	ProductID          uuid.UUID `db:"product_id"`
	StartTime          time.Time `db:"start_time"`
	EndTime            time.Time `db:"end_time"`
	TotalInventory     int       `db:"total_inventory"`
	RemainingInventory int       `db:"remaining_inventory"`
	PerUserLimit       int       `db:"per_user_limit"`
	CreatedAt          time.Time `db:"created_at"`
}

func (d *FlashSaleDTO) ToDomain() *model.FlashSale {
	return &model.FlashSale{
		ID:                 d.ID,
		ProductID:          d.ProductID,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		TotalInventory:     d.TotalInventory,
		RemainingInventory: d.RemainingInventory,
		PerUserLimit:       d.PerUserLimit,
		CreatedAt:          d.CreatedAt,
	}
}

type OrderDTO struct {
	ID             uuid.UUID `db:"id"`
	UserID         uuid.UUID `db:"user_id"`
	FlashSaleID    uuid.UUID `db:"flash_sale_id"`
	Quantity       int       `db:"quantity"`
	Status         string    `db:"status"`
	IdempotencyKey string    `db:"idempotency_key"`
	CreatedAt      time.Time `db:"created_at"`
}

func (d *OrderDTO) ToDomain() *model.Order {
	return &model.Order{
		ID:             d.ID,
		UserID:         d.UserID,
		FlashSaleID:    d.FlashSaleID,
		Quantity:       d.Quantity,
		Status:         model.OrderStatus(d.Status),
		IdempotencyKey: d.IdempotencyKey,
		CreatedAt:      d.CreatedAt,
	}
}

func FromOrder(o *model.Order) *OrderDTO {
	return &OrderDTO{
		ID:             o.ID,
		UserID:         o.UserID,
		FlashSaleID:    o.FlashSaleID,
		Quantity:       o.Quantity,
		Status:         string(o.Status),
		IdempotencyKey: o.IdempotencyKey,
		CreatedAt:      o.CreatedAt,
	}
}
