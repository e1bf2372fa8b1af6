package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
)

// boundedStore puts a deadline on every store call and translates store
// errors into service errors. models.ErrVersionConflict is passed through
// wrapped so the retry loop can recognise it.
type boundedStore struct {
	store   TransactionStore
	timeout time.Duration
}

func (b boundedStore) create(ctx context.Context, txn *models.Transaction) error {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.store.Create(callCtx, txn); err != nil {
		return translateStoreError(callCtx, err, "failed to create transaction")
	}
	return nil
}

func (b boundedStore) load(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	txn, err := b.store.Load(callCtx, id)
	if err != nil {
		return nil, translateStoreError(callCtx, err, "failed to load transaction")
	}
	return txn, nil
}

func (b boundedStore) compareAndSwap(ctx context.Context, expectedVersion int64, next *models.Transaction) (*models.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	saved, err := b.store.CompareAndSwap(callCtx, next.ID, expectedVersion, next)
	if err != nil {
		return nil, translateStoreError(callCtx, err, "failed to save transaction")
	}
	return saved, nil
}

func (b boundedStore) listByParticipant(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	txns, err := b.store.ListByParticipant(callCtx, userID)
	if err != nil {
		return nil, translateStoreError(callCtx, err, "failed to list transactions")
	}
	return txns, nil
}

func translateStoreError(callCtx context.Context, err error, message string) error {
	switch {
	case errors.Is(err, models.ErrVersionConflict):
		return fmt.Errorf("%s: %w", message, err)
	case errors.Is(err, models.ErrNotFound):
		return &ServiceError{
			Code:    ErrCodeTransactionNotFound,
			Message: "transaction not found",
			Err:     ErrNotFound,
		}
	case errors.Is(err, context.Canceled), errors.Is(callCtx.Err(), context.Canceled):
		return requestCanceled(message)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return &ServiceError{
			Code:    ErrCodeStoreUnavailable,
			Message: message + ": store did not answer in time",
			Err:     ErrStoreUnavailable,
		}
	default:
		return internalError(message, err)
	}
}
