package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campusmarket/negotiation/internal/api"
	"github.com/campusmarket/negotiation/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	handler *Handler,
	idempotencyRepo middleware.IdempotencyRepository,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) (http.Handler, error) {
	mux := http.NewServeMux()
	api.RegisterDocsRoutes(mux)

	mux.HandleFunc("GET /health", handler.GetHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	mux.HandleFunc("POST /api/v1/listings/{listingId}/purchase", handler.InitiatePurchase)
	mux.HandleFunc("GET /api/v1/transactions", handler.ListTransactions)
	mux.HandleFunc("GET /api/v1/transactions/{transactionId}", handler.GetTransaction)
	mux.HandleFunc("POST /api/v1/transactions/{transactionId}/proposals", handler.ProposeTerms)
	mux.HandleFunc("POST /api/v1/transactions/{transactionId}/confirm", handler.ConfirmTerms)
	mux.HandleFunc("POST /api/v1/transactions/{transactionId}/mark-sold", handler.MarkSold)
	mux.HandleFunc("POST /api/v1/transactions/{transactionId}/cancel", handler.Cancel)
	mux.HandleFunc("POST /api/v1/transactions/{transactionId}/review", handler.CreateReview)
	mux.HandleFunc("GET /api/v1/transactions/{transactionId}/review", handler.GetReview)
	mux.HandleFunc("PUT /api/v1/transactions/{transactionId}/review", handler.UpdateReview)
	mux.HandleFunc("DELETE /api/v1/transactions/{transactionId}/review", handler.DeleteReview)

	doc, err := api.LoadSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := middleware.RequestValidator(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	var finalHandler http.Handler = mux

	finalHandler = validator(finalHandler)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)
	finalHandler = middleware.Actor(logger)(finalHandler)

	return finalHandler, nil
}
