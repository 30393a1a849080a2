package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/shared/apperrors"
)

func TestNewProduct_Valid(t *testing.T) {
	p, err := NewProduct("widget", 9.99)
	require.NoError(t, err)
	assert.Equal(t, "widget", p.Name)
	assert.Equal(t, 9.99, p.Price)
	assert.NotZero(t, p.ID)
}

func TestNewProduct_EmptyName(t *testing.T) {
	_, err := NewProduct("", 9.99)
	require.Error(t, err)
	de, ok := apperrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "PRODUCT_NAME_EMPTY", de.Code)
}

func TestNewProduct_NonPositivePrice(t *testing.T) {
	_, err := NewProduct("widget", 0)
	require.Error(t, err)
	de, ok := apperrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "PRODUCT_PRICE_INVALID", de.Code)

	_, err = NewProduct("widget", -5)
	require.Error(t, err)
	de, ok = apperrors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "PRODUCT_PRICE_INVALID", de.Code)
}
