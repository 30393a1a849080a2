package infra

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flashsale/internal/user/domain"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{ID: r.ID, Email: r.Email, Username: r.Username, PasswordHash: r.PasswordHash, CreatedAt: r.CreatedAt}
}

type Repository struct{}

func NewRepository() domain.Repository {
	return &Repository{}
}

func (r *Repository) Save(ctx context.Context, db database.Database, user *domain.User) error {
	const query = `INSERT INTO users (id, email, username, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := db.ExecContext(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return apperrors.MapSQLError(err, "save_user", "User")
	}
	return nil
}

func (r *Repository) FindByEmail(ctx context.Context, db database.Database, email string) (*domain.User, error) {
	var row userRow
	const query = `SELECT id, email, username, password_hash, created_at FROM users WHERE email = $1`
	if err := db.Get(&row, query, email); err != nil {
		return nil, apperrors.MapSQLError(err, "find_user_by_email", "User")
	}
	return row.toDomain(), nil
}

func (r *Repository) FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*domain.User, error) {
	var row userRow
	const query = `SELECT id, email, username, password_hash, created_at FROM users WHERE id = $1`
	if err := db.Get(&row, query, id); err != nil {
		return nil, apperrors.MapSQLError(err, "find_user_by_id", "User")
	}
	return row.toDomain(), nil
}
