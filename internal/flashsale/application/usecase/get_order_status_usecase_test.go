package usecase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/infra/statusstore"
	"flashsale/shared/apperrors"
)

func TestGetOrderStatus_Pending(t *testing.T) {
	store := statusstore.New()
	id := uuid.New()
	store.Insert(id, model.Pending())

	uc := NewGetOrderStatusUseCase(store)
	result, err := uc.Execute(id)
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
}

func TestGetOrderStatus_Completed(t *testing.T) {
	store := statusstore.New()
	id := uuid.New()
	store.Insert(id, model.Pending())
	store.Update(id, model.Completed(&model.Order{ID: id, Status: model.OrderStatusConfirmed}))

	uc := NewGetOrderStatusUseCase(store)
	result, err := uc.Execute(id)
	require.NoError(t, err)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, id, result.OrderID)
}

func TestGetOrderStatus_Failed(t *testing.T) {
	store := statusstore.New()
	id := uuid.New()
	store.Insert(id, model.Pending())
	store.Update(id, model.Failed("sold out"))

	uc := NewGetOrderStatusUseCase(store)
	result, err := uc.Execute(id)
	require.NoError(t, err)
	assert.Equal(t, "failed", result.Status)
	assert.Equal(t, "sold out", result.Message)
}

func TestGetOrderStatus_UnknownOrderID(t *testing.T) {
	store := statusstore.New()

	uc := NewGetOrderStatusUseCase(store)
	_, err := uc.Execute(uuid.New())
	require.Error(t, err)
	re, ok := apperrors.AsRepoError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.RepoNotFound, re.Kind)
}
