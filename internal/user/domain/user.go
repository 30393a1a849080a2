// Package domain holds the User entity — the user module exists so a
// flash-sale order has a real user_id to attribute, not as a core-pipeline
// component.
package domain

import (
	"net/mail"
	"time"

	"github.com/google/uuid"

	"flashsale/shared/apperrors"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser validates and constructs a User.
func NewUser(email, username, passwordHash string) (*User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperrors.NewDomainError("INVALID_EMAIL", "email is not a valid address")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, apperrors.NewDomainError("INVALID_USERNAME", "username must be between 3 and 50 characters")
	}

	return &User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}
