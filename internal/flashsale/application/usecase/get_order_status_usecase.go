package usecase

import (
	"github.com/google/uuid"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/infra/statusstore"
	"flashsale/shared/apperrors"
)

// OrderStatusResult shapes the status-poll response body.
type OrderStatusResult struct {
	Status  string // "pending" | "completed" | "failed"
	OrderID uuid.UUID
	Message string
}

type GetOrderStatusUseCase struct {
	store *statusstore.Store
}

func NewGetOrderStatusUseCase(store *statusstore.Store) *GetOrderStatusUseCase {
	return &GetOrderStatusUseCase{store: store}
}

func (uc *GetOrderStatusUseCase) Execute(orderID uuid.UUID) (*OrderStatusResult, error) {
	state, ok := uc.store.Get(orderID)
	if !ok {
		return nil, apperrors.NewRepoNotFound("Order")
	}

	switch state.Phase {
	case model.PhasePending:
		return &OrderStatusResult{Status: "pending"}, nil
	case model.PhaseCompleted:
		return &OrderStatusResult{Status: "completed", OrderID: state.Order.ID}, nil
	case model.PhaseFailed:
		return &OrderStatusResult{Status: "failed", Message: state.Reason}, nil
	default:
		return nil, apperrors.NewServiceError(apperrors.ServiceExternal, "unknown processing phase")
	}
}
