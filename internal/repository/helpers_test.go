package repository

import (
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusmarket/negotiation/internal/db"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*db.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet(), "unmet sql expectations")
		_ = sqlDB.Close()
	})

	return db.New(sqlDB, slog.New(slog.DiscardHandler)), mock
}

var transactionRowColumns = []string{
	"id", "listing_id", "buyer_id", "seller_id", "status", "proposed_by",
	"payment_method", "delivery_method", "meet_location", "meet_time",
	"version", "created_at", "updated_at",
}
