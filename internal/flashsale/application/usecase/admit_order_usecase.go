// Package usecase holds the order admission algorithm (validate →
// idempotency-derive → domain work → result struct) and the status lookup,
// with the HTTP-specific parts left to presentation/http.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"flashsale/internal/flashsale/application/command"
	"flashsale/internal/flashsale/domain/idempotency"
	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/domain/ratelimit"
	"flashsale/internal/flashsale/infra/queue"
	"flashsale/internal/flashsale/infra/statusstore"
	"flashsale/shared/apperrors"
	"flashsale/shared/metrics"
)

// AdmitOrderResult is the outcome handed back to the HTTP layer to shape
// the 202 response body.
type AdmitOrderResult struct {
	OrderID uuid.UUID
}

// AdmitOrderUseCase implements the admission algorithm exactly in the
// order that is load-bearing: parse key, derive ID, rate-limit, reserve
// queue slot, insert Pending, send, respond.
type AdmitOrderUseCase struct {
	limiter ratelimit.Limiter
	q       *queue.Queue
	store   *statusstore.Store
	metrics *metrics.Metrics
}

func NewAdmitOrderUseCase(limiter ratelimit.Limiter, q *queue.Queue, store *statusstore.Store, m *metrics.Metrics) *AdmitOrderUseCase {
	return &AdmitOrderUseCase{limiter: limiter, q: q, store: store, metrics: m}
}

func (uc *AdmitOrderUseCase) Execute(ctx context.Context, cmd command.SubmitOrderCommand) (*AdmitOrderResult, error) {
	// Step 1+2: parse & derive. A malformed key fails fast with no side
	// effects at all — no rate-limit consumption, no queue interaction.
	orderID, err := idempotency.Resolve(cmd.IdempotencyKey)
	if err != nil {
		return nil, apperrors.NewDomainError("INVALID_IDEMPOTENCY_KEY", "invalid idempotency key")
	}

	// Step 3: rate-limit check.
	allowed, err := uc.limiter.Check(ctx, cmd.UserID.String())
	if err != nil {
		return nil, apperrors.NewServiceError(apperrors.ServiceExternal, "rate limiter unavailable")
	}
	if !allowed {
		uc.metrics.RateLimitRejections.Inc()
		return nil, apperrors.NewServiceError(apperrors.ServiceRateLimitExceeded, "rate limit exceeded")
	}

	// Step 4: reserve a queue slot BEFORE any order_id is published to the
	// Status Store, so a full queue never creates an orphan Pending entry.
	permit, err := uc.q.TryReserve()
	if err != nil {
		uc.metrics.QueueOverflow.Inc()
		return nil, apperrors.NewServiceError(apperrors.ServiceQueueFull, "queue is full")
	}

	// Step 5: insert Pending. A duplicate admission for an in-flight key
	// leaves any terminal state untouched (Store.Insert's own no-op rule).
	uc.store.Insert(orderID, model.Pending())

	// Step 6: send using the reserved permit — cannot fail once reserved.
	item := model.QueueItem{
		OrderID: orderID,
		Command: model.CreateOrderCommand{
			OrderID:        orderID,
			UserID:         cmd.UserID,
			FlashSaleID:    cmd.FlashSaleID,
			Quantity:       cmd.Quantity,
			IdempotencyKey: cmd.IdempotencyKey,
		},
	}
	uc.q.Send(permit, item)

	return &AdmitOrderResult{OrderID: orderID}, nil
}
