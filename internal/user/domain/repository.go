package domain

import (
	"context"

	"github.com/google/uuid"

	"flashsale/shared/infra/database"
)

// Repository is the CRUD port for users.
type Repository interface {
	Save(ctx context.Context, db database.Database, user *User) error
	FindByEmail(ctx context.Context, db database.Database, email string) (*User, error)
	FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*User, error)
}
