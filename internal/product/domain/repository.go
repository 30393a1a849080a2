package domain

import (
	"context"

	"github.com/google/uuid"

	"flashsale/shared/infra/database"
)

type Repository interface {
	Save(ctx context.Context, db database.Database, product *Product) error
	FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*Product, error)
	List(ctx context.Context, db database.Database) ([]*Product, error)
}
