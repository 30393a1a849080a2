package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flashsale/internal/user/domain"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Save(ctx context.Context, db database.Database, user *domain.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return apperrors.NewRepoConflict("users_email_key")
	}
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db database.Database, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.NewRepoNotFound("User")
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db database.Database, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NewRepoNotFound("User")
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, nil)

	user, err := uc.Execute(context.Background(), "jane@example.com", "janedoe", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash, "password must be hashed before persisting")

	stored, ok := repo.byEmail["jane@example.com"]
	require.True(t, ok)
	assert.Equal(t, user.ID, stored.ID)
}

func TestRegisterUserUseCase_RejectsInvalidEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewRegisterUserUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), "not-an-email", "janedoe", "s3cret-password")
	require.Error(t, err)
	assert.Empty(t, repo.byEmail, "an invalid user must never reach Save")
}

func TestLoginUseCase_Execute_Success(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.byEmail["jane@example.com"] = &domain.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash)}

	uc := NewLoginUseCase(repo, nil)
	user, err := uc.Execute(context.Background(), "jane@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestLoginUseCase_Execute_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.byEmail["jane@example.com"] = &domain.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash)}

	uc := NewLoginUseCase(repo, nil)
	_, err = uc.Execute(context.Background(), "jane@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUseCase_Execute_UnknownEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewLoginUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), "ghost@example.com", "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
