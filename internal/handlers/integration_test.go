//go:build integration

//nolint:errcheck // unchecked errors are acceptable in test files
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/db"
	"github.com/campusmarket/negotiation/internal/events"
	"github.com/campusmarket/negotiation/internal/metrics"
	"github.com/campusmarket/negotiation/internal/repository"
	"github.com/campusmarket/negotiation/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// integrationServer runs the full router against PostgreSQL configured through
// the usual DB_* environment variables.
type integrationServer struct {
	Server    *httptest.Server
	Database  *db.DB
	ListingID uuid.UUID
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
}

func setupIntegration(t *testing.T) *integrationServer {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err, "failed to load config")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	database, err := db.Connect(context.Background(), &cfg.Database, logger)
	require.NoError(t, err, "failed to connect to database")
	require.NoError(t, database.Migrate(), "failed to migrate")

	ts := &integrationServer{
		Database:  database,
		ListingID: uuid.New(),
		SellerID:  uuid.New(),
		BuyerID:   uuid.New(),
	}
	ts.resetData(t)

	reg := prometheus.NewRegistry()
	m := metrics.NewNegotiationMetrics(reg)
	transactions := repository.NewTransactionRepository(database)
	listings := repository.NewListingRepository(database)
	profiles := repository.NewProfileRepository(database)
	publisher := events.NopPublisher{}

	handler := NewHandler(
		service.NewPurchaseService(transactions, listings, publisher, m, &cfg.Negotiation, logger),
		service.NewNegotiationService(transactions, publisher, m, &cfg.Negotiation, logger),
		service.NewQueryService(transactions, listings, profiles, &cfg.Negotiation, logger),
		service.NewReviewService(transactions, repository.NewReviewRepository(database), profiles, &cfg.Negotiation, logger),
		database,
		logger,
	)
	router, err := NewRouter(handler, repository.NewIdempotencyRepository(database), reg, logger)
	require.NoError(t, err)

	ts.Server = httptest.NewServer(router)
	t.Cleanup(func() {
		ts.Server.Close()
		_ = ts.Database.Close()
	})
	return ts
}

// resetData recreates the listing and profile tables owned by other services
// with the columns this service reads.
func (ts *integrationServer) resetData(t *testing.T) {
	t.Helper()

	_, err := ts.Database.ExecContext(context.Background(), `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY, netid VARCHAR(32), email VARCHAR(255)
		);
		CREATE TABLE IF NOT EXISTS listings (
			id UUID PRIMARY KEY, user_id UUID NOT NULL, title TEXT NOT NULL,
			price NUMERIC(10,2) NOT NULL, status VARCHAR(16) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS listing_images (
			listing_id UUID NOT NULL, url TEXT NOT NULL,
			is_primary BOOLEAN NOT NULL DEFAULT FALSE, sort_order INTEGER NOT NULL DEFAULT 0
		);
		TRUNCATE TABLE reviews, transactions, idempotency_keys, listing_images, listings, users;
	`)
	require.NoError(t, err, "failed to prepare schema")

	_, err = ts.Database.ExecContext(context.Background(), `
		INSERT INTO users (id, netid, email) VALUES ($1, 'sl123', 'sl123@campus.edu'), ($2, NULL, 'by456@campus.edu');
		INSERT INTO listings (id, user_id, title, price, status) VALUES ($3, $1, 'Desk lamp', 12.50, 'active');
		INSERT INTO listing_images (listing_id, url, is_primary) VALUES ($3, 'https://img.example/lamp.jpg', TRUE);
	`, ts.SellerID, ts.BuyerID, ts.ListingID)
	require.NoError(t, err, "failed to seed data")
}

func (ts *integrationServer) post(t *testing.T, path string, actorID uuid.UUID, body, idempotencyKey string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-User-ID", actorID.String())
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (ts *integrationServer) purchase(t *testing.T) api.Transaction {
	t.Helper()

	resp := ts.post(t, "/api/v1/listings/"+ts.ListingID.String()+"/purchase", ts.BuyerID, "", "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var txn api.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&txn))
	return txn
}

func (ts *integrationServer) propose(t *testing.T, txnID uuid.UUID) {
	t.Helper()

	meet := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	body := fmt.Sprintf(`{"payment_method":"CASH","delivery_method":"MEETUP","meet_location":"Library steps","meet_time":%q}`, meet)
	resp := ts.post(t, "/api/v1/transactions/"+txnID.String()+"/proposals", ts.BuyerID, body, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestIntegration_PurchaseToCompletion(t *testing.T) {
	ts := setupIntegration(t)

	txn := ts.purchase(t)
	ts.propose(t, txn.ID)

	resp := ts.post(t, "/api/v1/transactions/"+txn.ID.String()+"/confirm", ts.SellerID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.post(t, "/api/v1/transactions/"+txn.ID.String()+"/mark-sold", ts.SellerID, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var completed api.Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completed))
	resp.Body.Close()

	assert.Equal(t, "COMPLETED", completed.Status)
	assert.Equal(t, int64(4), completed.Version)

	req, err := http.NewRequest(http.MethodGet, ts.Server.URL+"/api/v1/transactions/"+txn.ID.String(), nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", ts.SellerID.String())
	getResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer getResp.Body.Close()

	var view api.TransactionView
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&view))
	assert.Equal(t, "by456", view.CounterpartLabel)
	require.NotNil(t, view.Listing)
	assert.Equal(t, "12.50", view.Listing.Price)
	assert.Equal(t, "https://img.example/lamp.jpg", view.Listing.PrimaryImageURL)
}

func TestIntegration_IdempotentPurchase(t *testing.T) {
	ts := setupIntegration(t)
	path := "/api/v1/listings/" + ts.ListingID.String() + "/purchase"

	resp1 := ts.post(t, path, ts.BuyerID, "", "same-key")
	var body1 api.Transaction
	require.NoError(t, json.NewDecoder(resp1.Body).Decode(&body1))
	resp1.Body.Close()

	resp2 := ts.post(t, path, ts.BuyerID, "", "same-key")
	var body2 api.Transaction
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body2))
	resp2.Body.Close()

	assert.Equal(t, "true", resp2.Header.Get("X-Idempotent-Replayed"))
	assert.Equal(t, body1.ID, body2.ID)
}

func TestIntegration_ConcurrentConfirm_OnlyOneSucceeds(t *testing.T) {
	ts := setupIntegration(t)

	txn := ts.purchase(t)
	ts.propose(t, txn.ID)

	const numGoroutines = 10
	var wg sync.WaitGroup
	results := make(chan int, numGoroutines)

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := ts.post(t, "/api/v1/transactions/"+txn.ID.String()+"/confirm", ts.SellerID, "", "")
			results <- resp.StatusCode
			resp.Body.Close()
		}()
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for code := range results {
		switch code {
		case http.StatusOK:
			successCount++
		case http.StatusConflict:
			conflictCount++
		}
	}

	assert.Equal(t, 1, successCount, "exactly one confirm should succeed")
	assert.Equal(t, numGoroutines-1, conflictCount, "all others should conflict")
}
