package infra

import (
	"context"
	"time"

	"github.com/google/uuid"

	"flashsale/internal/product/domain"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type productRow struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Price     float64   `db:"price"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *productRow) toDomain() *domain.Product {
	return &domain.Product{ID: r.ID, Name: r.Name, Price: r.Price, CreatedAt: r.CreatedAt}
}

type Repository struct{}

func NewRepository() domain.Repository {
	return &Repository{}
}

func (r *Repository) Save(ctx context.Context, db database.Database, product *domain.Product) error {
	const query = `INSERT INTO products (id, name, price, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.ExecContext(ctx, query, product.ID, product.Name, product.Price, product.CreatedAt)
	if err != nil {
		return apperrors.MapSQLError(err, "save_product", "Product")
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*domain.Product, error) {
	var row productRow
	const query = `SELECT id, name, price, created_at FROM products WHERE id = $1`
	if err := db.Get(&row, query, id); err != nil {
		return nil, apperrors.MapSQLError(err, "find_product_by_id", "Product")
	}
	return row.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, db database.Database) ([]*domain.Product, error) {
	var rows []productRow
	const query = `SELECT id, name, price, created_at FROM products ORDER BY created_at DESC`
	if err := db.Select(&rows, query); err != nil {
		return nil, apperrors.MapSQLError(err, "list_products", "Product")
	}

	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, rows[i].toDomain())
	}
	return products, nil
}
