// Package token issues and validates bearer tokens for the user
// register/login endpoints using golang-jwt/jwt/v5, reading the signing
// secret from config instead of a hardcoded literal.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

func (s *Service) CreateToken(username, userID string) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"user_id":  userID,
		"exp":      time.Now().Add(s.ttl).Unix(),
	})
	return tok.SignedString(s.secret)
}

// ValidateToken accepts a raw or "Bearer "-prefixed Authorization header
// value and returns the claims on success.
func (s *Service) ValidateToken(header string) (jwt.MapClaims, error) {
	raw := strings.TrimPrefix(header, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
