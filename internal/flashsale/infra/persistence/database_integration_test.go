package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

const testDatabaseURL = "postgres://yanrodrigues@localhost/yanrodrigues?sslmode=disable"

func connectForTest(t *testing.T) database.Database {
	t.Helper()
	db, err := sqlx.Connect("postgres", testDatabaseURL)
	if err != nil {
		t.Skipf("skipping: no database available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("skipping: database unreachable: %v", err)
	}
	return database.NewSqlxDatabase(db)
}

// seedFlashSale inserts a product and a flash sale row directly, bypassing
// the repositories under test, and returns the sale id.
func seedFlashSale(t *testing.T, tx database.Transaction, remaining int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	productID := uuid.New()
	saleID := uuid.New()
	now := time.Now()

	_, err := tx.ExecContext(ctx,
		`INSERT INTO products (id, name, price, created_at) VALUES ($1, $2, $3, $4)`,
		productID, "seed product", 9.99, now)
	require.NoError(t, err)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO flash_sales (id, product_id, start_time, end_time, total_inventory, remaining_inventory, per_user_limit, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		saleID, productID, now.Add(-time.Hour), now.Add(time.Hour), 10, remaining, 0, now)
	require.NoError(t, err)

	return saleID
}

func TestFlashSaleRepository_FindByIDWithLockAndUpdate(t *testing.T) {
	db := connectForTest(t)
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	saleID := seedFlashSale(t, tx, 5)

	repo := NewFlashSaleRepository()
	sale, err := repo.FindByIDWithLock(context.Background(), tx, saleID)
	require.NoError(t, err)
	assert.Equal(t, 5, sale.RemainingInventory)

	sale.RemainingInventory = 2
	require.NoError(t, repo.Update(context.Background(), tx, sale))

	reloaded, err := repo.FindByIDWithLock(context.Background(), tx, saleID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.RemainingInventory)
}

func TestFlashSaleRepository_FindByIDWithLock_NotFound(t *testing.T) {
	db := connectForTest(t)
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	repo := NewFlashSaleRepository()
	_, err = repo.FindByIDWithLock(context.Background(), tx, uuid.New())
	require.Error(t, err)
	re, ok := apperrors.AsRepoError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.RepoNotFound, re.Kind)
}

func TestOrderRepository_SaveAndFindByIdempotencyKey(t *testing.T) {
	db := connectForTest(t)
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	saleID := seedFlashSale(t, tx, 10)
	repo := NewOrderRepository()

	order := model.NewConfirmedOrder(uuid.New(), uuid.New(), saleID, 2, "11111111-1111-1111-1111-111111111111", time.Now())
	require.NoError(t, repo.Save(context.Background(), tx, order))

	found, err := repo.FindByIdempotencyKey(context.Background(), tx, order.IdempotencyKey)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, model.OrderStatusConfirmed, found.Status)
}

func TestOrderRepository_Save_DuplicateIdempotencyKeyConflicts(t *testing.T) {
	db := connectForTest(t)
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	saleID := seedFlashSale(t, tx, 10)
	repo := NewOrderRepository()

	key := "22222222-2222-2222-2222-222222222222"
	first := model.NewConfirmedOrder(uuid.New(), uuid.New(), saleID, 1, key, time.Now())
	require.NoError(t, repo.Save(context.Background(), tx, first))

	second := model.NewConfirmedOrder(uuid.New(), uuid.New(), saleID, 1, key, time.Now())
	err = repo.Save(context.Background(), tx, second)
	require.Error(t, err)
	re, ok := apperrors.AsRepoError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.RepoConflict, re.Kind)
}

func TestOrderRepository_FindByIdempotencyKey_NotFound(t *testing.T) {
	db := connectForTest(t)
	tx, err := db.Begin()
	require.NoError(t, err)
	defer tx.Rollback()

	repo := NewOrderRepository()
	_, err = repo.FindByIdempotencyKey(context.Background(), tx, "33333333-3333-3333-3333-333333333333")
	require.Error(t, err)
	re, ok := apperrors.AsRepoError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.RepoNotFound, re.Kind)
}
