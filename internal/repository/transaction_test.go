package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusmarket/negotiation/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingTransaction() *models.Transaction {
	return &models.Transaction{
		ID:         uuid.New(),
		ListingID:  uuid.New(),
		BuyerID:    uuid.New(),
		SellerID:   uuid.New(),
		Status:     models.TransactionStatusPending,
		ProposedBy: models.RoleNone,
		Version:    1,
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	t.Run("inserts and fills timestamps", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		txn := newPendingTransaction()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery("INSERT INTO transactions").
			WithArgs(txn.ID, txn.ListingID, txn.BuyerID, txn.SellerID,
				"PENDING", "NONE", nil, nil, nil, nil, int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(context.Background(), txn)

		require.NoError(t, err)
		assert.Equal(t, now, txn.CreatedAt)
		assert.Equal(t, now, txn.UpdatedAt)
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)

		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newPendingTransaction())

		assert.ErrorIs(t, err, models.ErrDuplicateTransaction)
	})

	t.Run("assigns id and version when unset", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		txn := newPendingTransaction()
		txn.ID = uuid.Nil
		txn.Version = 0

		mock.ExpectQuery("INSERT INTO transactions").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

		require.NoError(t, repo.Create(context.Background(), txn))
		assert.NotEqual(t, uuid.Nil, txn.ID)
		assert.Equal(t, int64(1), txn.Version)
	})
}

func TestTransactionRepository_Load(t *testing.T) {
	t.Run("scans nullable columns", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)

		txn := newPendingTransaction()
		meet := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
		created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		mock.ExpectQuery("SELECT (.+) FROM transactions WHERE id = \\$1").
			WithArgs(txn.ID).
			WillReturnRows(sqlmock.NewRows(transactionRowColumns).AddRow(
				txn.ID.String(), txn.ListingID.String(), txn.BuyerID.String(), txn.SellerID.String(),
				"NEGOTIATING", "BUYER", "VENMO", "MEETUP", "Bobst Library", meet,
				int64(3), created, created,
			))

		got, err := repo.Load(context.Background(), txn.ID)

		require.NoError(t, err)
		assert.Equal(t, txn.ID, got.ID)
		assert.Equal(t, txn.BuyerID, got.BuyerID)
		assert.Equal(t, models.TransactionStatusNegotiating, got.Status)
		assert.Equal(t, models.RoleBuyer, got.ProposedBy)
		assert.Equal(t, models.PaymentMethodVenmo, got.PaymentMethod)
		assert.Equal(t, models.DeliveryMethodMeetup, got.DeliveryMethod)
		assert.Equal(t, "Bobst Library", got.MeetLocation)
		require.NotNil(t, got.MeetTime)
		assert.True(t, meet.Equal(*got.MeetTime))
		assert.Equal(t, int64(3), got.Version)
	})

	t.Run("null terms stay unset", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		txn := newPendingTransaction()

		mock.ExpectQuery("SELECT (.+) FROM transactions").
			WillReturnRows(sqlmock.NewRows(transactionRowColumns).AddRow(
				txn.ID.String(), txn.ListingID.String(), txn.BuyerID.String(), txn.SellerID.String(),
				"PENDING", "NONE", nil, nil, nil, nil,
				int64(1), time.Now(), time.Now(),
			))

		got, err := repo.Load(context.Background(), txn.ID)

		require.NoError(t, err)
		assert.Empty(t, got.PaymentMethod)
		assert.Empty(t, got.DeliveryMethod)
		assert.Empty(t, got.MeetLocation)
		assert.Nil(t, got.MeetTime)
	})

	t.Run("missing row is not found", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)

		mock.ExpectQuery("SELECT (.+) FROM transactions").WillReturnError(sql.ErrNoRows)

		got, err := repo.Load(context.Background(), uuid.New())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		dbErr := errors.New("connection reset")

		mock.ExpectQuery("SELECT (.+) FROM transactions").WillReturnError(dbErr)

		_, err := repo.Load(context.Background(), uuid.New())

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, models.ErrNotFound)
	})
}

func TestTransactionRepository_CompareAndSwap(t *testing.T) {
	t.Run("matching version is updated", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)

		next := newPendingTransaction()
		next.Status = models.TransactionStatusCancelled

		mock.ExpectQuery("UPDATE transactions").
			WithArgs(next.ID, int64(4), "CANCELLED", "NONE", nil, nil, nil, nil).
			WillReturnRows(sqlmock.NewRows(transactionRowColumns).AddRow(
				next.ID.String(), next.ListingID.String(), next.BuyerID.String(), next.SellerID.String(),
				"CANCELLED", "NONE", nil, nil, nil, nil,
				int64(5), time.Now(), time.Now(),
			))

		saved, err := repo.CompareAndSwap(context.Background(), next.ID, 4, next)

		require.NoError(t, err)
		assert.Equal(t, int64(5), saved.Version)
		assert.Equal(t, models.TransactionStatusCancelled, saved.Status)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		next := newPendingTransaction()

		mock.ExpectQuery("UPDATE transactions").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(next.ID).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		saved, err := repo.CompareAndSwap(context.Background(), next.ID, 2, next)

		assert.Nil(t, saved)
		assert.ErrorIs(t, err, models.ErrVersionConflict)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		database, mock := setupMockDB(t)
		repo := NewTransactionRepository(database)
		next := newPendingTransaction()

		mock.ExpectQuery("UPDATE transactions").WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.CompareAndSwap(context.Background(), next.ID, 1, next)

		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestTransactionRepository_ListByParticipant(t *testing.T) {
	database, mock := setupMockDB(t)
	repo := NewTransactionRepository(database)

	userID := uuid.New()
	first := newPendingTransaction()
	second := newPendingTransaction()

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE buyer_id = \\$1 OR seller_id = \\$1 ORDER BY created_at DESC").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows(transactionRowColumns).
			AddRow(first.ID.String(), first.ListingID.String(), userID.String(), first.SellerID.String(),
				"PENDING", "NONE", nil, nil, nil, nil, int64(1), time.Now(), time.Now()).
			AddRow(second.ID.String(), second.ListingID.String(), second.BuyerID.String(), userID.String(),
				"SCHEDULED", "NONE", "CASH", "PICKUP", nil, nil, int64(4), time.Now(), time.Now()))

	txns, err := repo.ListByParticipant(context.Background(), userID)

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, first.ID, txns[0].ID)
	assert.Equal(t, models.TransactionStatusScheduled, txns[1].Status)
	assert.Equal(t, models.DeliveryMethodPickup, txns[1].DeliveryMethod)
}
