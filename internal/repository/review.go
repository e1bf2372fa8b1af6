package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const reviewColumns = `
	id, transaction_id, reviewer_id, rating, what_went_well,
	additional_comments, created_at, updated_at`

// ReviewRepository stores the single review attached to a completed transaction
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, transactionID uuid.UUID) error
}

type reviewRepository struct {
	db *db.DB
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(database *db.DB) ReviewRepository {
	return &reviewRepository{db: database}
}

// Create inserts a review. A second review for the same transaction fails
// with models.ErrDuplicateReview.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}

	query := `
		INSERT INTO reviews (id, transaction_id, reviewer_id, rating, what_went_well, additional_comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		review.ID,
		review.TransactionID,
		review.ReviewerID,
		review.Rating,
		pq.Array(tagStrings(review.WhatWentWell)),
		review.AdditionalComments,
	).Scan(&review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("transaction %s: %w", review.TransactionID, models.ErrDuplicateReview)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByTransaction retrieves the review of a transaction
func (r *reviewRepository) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*models.Review, error) {
	query := `SELECT ` + reviewColumns + `
		FROM reviews
		WHERE transaction_id = $1
	`

	review, err := scanReview(r.db.QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review of transaction %s: %w", transactionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// Update replaces the rating, tags and comments of a transaction's review
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	query := `
		UPDATE reviews
		SET rating = $2,
		    what_went_well = $3,
		    additional_comments = $4,
		    updated_at = NOW()
		WHERE transaction_id = $1
		RETURNING ` + reviewColumns

	saved, err := scanReview(r.db.QueryRowContext(ctx, query,
		review.TransactionID,
		review.Rating,
		pq.Array(tagStrings(review.WhatWentWell)),
		review.AdditionalComments,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("review of transaction %s: %w", review.TransactionID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return saved, nil
}

// Delete removes the review of a transaction
func (r *reviewRepository) Delete(ctx context.Context, transactionID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE transaction_id = $1`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("review of transaction %s: %w", transactionID, models.ErrNotFound)
	}

	return nil
}

func scanReview(row rowScanner) (*models.Review, error) {
	var (
		review models.Review
		tags   pq.StringArray
	)

	err := row.Scan(
		&review.ID,
		&review.TransactionID,
		&review.ReviewerID,
		&review.Rating,
		&tags,
		&review.AdditionalComments,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	review.WhatWentWell = make([]models.ReviewTag, 0, len(tags))
	for _, tag := range tags {
		review.WhatWentWell = append(review.WhatWentWell, models.ReviewTag(tag))
	}
	return &review, nil
}

func tagStrings(tags []models.ReviewTag) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, string(tag))
	}
	return out
}
