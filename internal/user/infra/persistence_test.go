package infra

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/internal/user/domain"
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

func TestRepository_SaveAndFindByEmailAndID(t *testing.T) {
	db := connectForTest(t)
	repo := NewRepository()

	u := &domain.User{
		ID:           uuid.New(),
		Email:        "persist-test-" + uuid.New().String() + "@example.com",
		Username:     "persisttest",
		PasswordHash: "hashed",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Save(context.Background(), db, u))

	byEmail, err := repo.FindByEmail(context.Background(), db, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := repo.FindByID(context.Background(), db, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
}

func TestRepository_FindByEmail_NotFound(t *testing.T) {
	db := connectForTest(t)
	repo := NewRepository()

	_, err := repo.FindByEmail(context.Background(), db, "ghost@example.com")
	require.Error(t, err)
	re, ok := apperrors.AsRepoError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.RepoNotFound, re.Kind)
}
