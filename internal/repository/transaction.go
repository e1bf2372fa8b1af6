// Package repository provides data access layer implementations for the negotiation service.
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

const uniqueViolation = pq.ErrorCode("23505")

const transactionColumns = `
	id, listing_id, buyer_id, seller_id, status, proposed_by,
	payment_method, delivery_method, meet_location, meet_time,
	version, created_at, updated_at`

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	Load(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	CompareAndSwap(ctx context.Context, id uuid.UUID, expectedVersion int64, next *models.Transaction) (*models.Transaction, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
}

// transactionRepository implements TransactionRepository on PostgreSQL
type transactionRepository struct {
	db *db.DB
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(database *db.DB) TransactionRepository {
	return &transactionRepository{db: database}
}

// Create inserts a new transaction and fills in its timestamps
func (r *transactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	if txn.Version == 0 {
		txn.Version = 1
	}

	query := `
		INSERT INTO transactions (
			id, listing_id, buyer_id, seller_id, status, proposed_by,
			payment_method, delivery_method, meet_location, meet_time, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		txn.ID,
		txn.ListingID,
		txn.BuyerID,
		txn.SellerID,
		txn.Status,
		txn.ProposedBy,
		nullString(string(txn.PaymentMethod)),
		nullString(string(txn.DeliveryMethod)),
		nullString(txn.MeetLocation),
		nullTime(txn),
		txn.Version,
	).Scan(&txn.CreatedAt, &txn.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", models.ErrDuplicateTransaction, txn.ID)
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// Load retrieves a transaction by id
func (r *transactionRepository) Load(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}

	return txn, nil
}

// CompareAndSwap writes next only if the stored version still equals expectedVersion.
// The stored version is incremented by exactly one on success.
func (r *transactionRepository) CompareAndSwap(ctx context.Context, id uuid.UUID, expectedVersion int64, next *models.Transaction) (*models.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $3,
		    proposed_by = $4,
		    payment_method = $5,
		    delivery_method = $6,
		    meet_location = $7,
		    meet_time = $8,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $1 AND version = $2
		RETURNING ` + transactionColumns

	saved, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		id,
		expectedVersion,
		next.Status,
		next.ProposedBy,
		nullString(string(next.PaymentMethod)),
		nullString(string(next.DeliveryMethod)),
		nullString(next.MeetLocation),
		nullTime(next),
	))
	if err == nil {
		return saved, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM transactions WHERE id = $1)`, id,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("transaction %s: %w", id, models.ErrNotFound)
	}

	return nil, fmt.Errorf("transaction %s at version %d: %w", id, expectedVersion, models.ErrVersionConflict)
}

// ListByParticipant returns every transaction where userID is the buyer or the seller, newest first
func (r *transactionRepository) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		txn            models.Transaction
		status         string
		proposedBy     string
		paymentMethod  sql.NullString
		deliveryMethod sql.NullString
		meetLocation   sql.NullString
		meetTime       sql.NullTime
	)

	err := row.Scan(
		&txn.ID,
		&txn.ListingID,
		&txn.BuyerID,
		&txn.SellerID,
		&status,
		&proposedBy,
		&paymentMethod,
		&deliveryMethod,
		&meetLocation,
		&meetTime,
		&txn.Version,
		&txn.CreatedAt,
		&txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	txn.Status = models.TransactionStatus(status)
	txn.ProposedBy = models.Role(proposedBy)
	txn.PaymentMethod = models.PaymentMethod(paymentMethod.String)
	txn.DeliveryMethod = models.DeliveryMethod(deliveryMethod.String)
	txn.MeetLocation = meetLocation.String
	if meetTime.Valid {
		mt := meetTime.Time.UTC()
		txn.MeetTime = &mt
	}

	return &txn, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(txn *models.Transaction) sql.NullTime {
	if txn.MeetTime == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: txn.MeetTime.UTC(), Valid: true}
}
