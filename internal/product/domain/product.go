// Package domain holds the Product entity — exists so a FlashSale has a
// real product_id to reference.
package domain

import (
	"time"

	"github.com/google/uuid"

	"flashsale/shared/apperrors"
)

type Product struct {
	ID        uuid.UUID
	Name      string
	Price     float64
	CreatedAt time.Time
}

func NewProduct(name string, price float64) (*Product, error) {
	if name == "" {
		return nil, apperrors.NewDomainError("PRODUCT_NAME_EMPTY", "product name must not be empty")
	}
	if price <= 0 {
		return nil, apperrors.NewDomainError("PRODUCT_PRICE_INVALID", "product price must be positive")
	}

	return &Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     price,
		CreatedAt: time.Now(),
	}, nil
}
