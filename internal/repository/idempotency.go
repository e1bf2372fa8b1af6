package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/models"
)

// IdempotencyRepository stores responses of processed mutating requests
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type idempotencyRepository struct {
	db *db.DB
}

// NewIdempotencyRepository creates a new IdempotencyRepository
func NewIdempotencyRepository(database *db.DB) IdempotencyRepository {
	return &idempotencyRepository{db: database}
}

// Get returns the stored response for key and path, or nil when there is none
func (r *idempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, request_path, request_hash, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND request_path = $2
	`

	var idemKey models.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key, requestPath).Scan(
		&idemKey.Key,
		&idemKey.RequestPath,
		&idemKey.RequestHash,
		&idemKey.ResponseStatus,
		&idemKey.ResponseBody,
		&idemKey.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return &idemKey, nil
}

// Store saves the response. The first stored response for a key and path wins.
func (r *idempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	if idemKey.CreatedAt.IsZero() {
		idemKey.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO idempotency_keys (key, request_path, request_hash, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, request_path) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		idemKey.Key,
		idemKey.RequestPath,
		idemKey.RequestHash,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
		idemKey.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// DeleteOlderThan removes keys created before cutoff and returns how many were removed
func (r *idempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency keys: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}
