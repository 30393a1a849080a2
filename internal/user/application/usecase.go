// Package application holds the register/login use cases.
package application

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"flashsale/internal/user/domain"
	"flashsale/shared/infra/database"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type RegisterUserUseCase struct {
	repo domain.Repository
	db   database.Database
}

func NewRegisterUserUseCase(repo domain.Repository, db database.Database) *RegisterUserUseCase {
	return &RegisterUserUseCase{repo: repo, db: db}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, email, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(email, username, string(hash))
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, uc.db, user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginUseCase struct {
	repo domain.Repository
	db   database.Database
}

func NewLoginUseCase(repo domain.Repository, db database.Database) *LoginUseCase {
	return &LoginUseCase{repo: repo, db: db}
}

func (uc *LoginUseCase) Execute(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.repo.FindByEmail(ctx, uc.db, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
