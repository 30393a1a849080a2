// Package service holds the fulfillment transaction, the serializable
// core of the pipeline: idempotent short-circuit, locked fetch,
// temporal/inventory checks, debit, insert, and a re-query on a losing
// race against the idempotency_key unique constraint.
package service

import (
	"context"
	"errors"
	"time"

	"flashsale/internal/flashsale/domain/model"
	"flashsale/internal/flashsale/domain/repository"
	"flashsale/shared/apperrors"
	"flashsale/shared/infra/database"
)

// FulfillmentService executes one fulfillment attempt within a caller-
// supplied transaction. It never opens or commits a transaction itself —
// that is the worker's responsibility, keeping this
// service composable and independently testable against mock repositories.
type FulfillmentService struct {
	flashSales repository.FlashSaleRepository
	orders     repository.OrderRepository
	now        func() time.Time
}

func NewFulfillmentService(flashSales repository.FlashSaleRepository, orders repository.OrderRepository) *FulfillmentService {
	return &FulfillmentService{flashSales: flashSales, orders: orders, now: time.Now}
}

// errRaceLost is returned internally when step 7's re-query must be
// retried from the top; the worker's caller never sees this type, only the
// Order it eventually returns or a terminal apperrors error.
type errRaceLost struct{ err error }

func (e *errRaceLost) Error() string { return "fulfillment: lost race on idempotency key: " + e.err.Error() }
func (e *errRaceLost) Unwrap() error { return e.err }

// Fulfill runs the full algorithm once. Callers (the Queue Worker) own
// retrying on apperrors.IsRetryable and on the internal race-lost signal.
func (s *FulfillmentService) Fulfill(ctx context.Context, tx database.Transaction, cmd model.CreateOrderCommand) (*model.Order, error) {
	// Step 1: idempotent short-circuit.
	if existing, err := s.orders.FindByIdempotencyKey(ctx, tx, cmd.IdempotencyKey); err == nil {
		return existing, nil
	} else if re, ok := apperrors.AsRepoError(err); !ok || re.Kind != apperrors.RepoNotFound {
		return nil, err
	}

	// Step 2: acquire row lock.
	sale, err := s.flashSales.FindByIDWithLock(ctx, tx, cmd.FlashSaleID)
	if err != nil {
		return nil, err
	}

	// Step 3: temporal check.
	if !sale.IsActive(s.now()) {
		return nil, apperrors.NewBusinessRuleError("flash sale is not active")
	}

	// Step 4: inventory check.
	if !sale.HasInventoryFor(cmd.Quantity) {
		return nil, apperrors.NewConflictError("sold out")
	}

	// Step 5: debit (race-free: the row is locked).
	sale.RemainingInventory -= cmd.Quantity
	if err := s.flashSales.Update(ctx, tx, sale); err != nil {
		return nil, err
	}

	// Step 6: persist order.
	order := model.NewConfirmedOrder(cmd.OrderID, cmd.UserID, cmd.FlashSaleID, cmd.Quantity, cmd.IdempotencyKey, s.now())
	if err := s.orders.Save(ctx, tx, order); err != nil {
		// Step 7: race on idempotency key. A sibling worker committed this
		// order first; the debit we just performed must not be committed
		// without the matching order, so the caller MUST roll back and
		// retry from step 1, which will then hit the short-circuit.
		if re, ok := apperrors.AsRepoError(err); ok && re.Kind == apperrors.RepoConflict {
			return nil, &errRaceLost{err: err}
		}
		return nil, err
	}

	// Step 8.
	return order, nil
}

// IsRaceLost reports whether err signals the step-7 retry-from-top case.
func IsRaceLost(err error) bool {
	var rl *errRaceLost
	return errors.As(err, &rl)
}

