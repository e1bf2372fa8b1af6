// Package handlers implements HTTP handlers for the negotiation API.
package handlers

import (
	"log/slog"

	"github.com/campusmarket/negotiation/internal/service"
)

// Handler serves every /api/v1 endpoint and /health
type Handler struct {
	purchases     service.Purchaser
	negotiator    service.Negotiator
	reader        service.TransactionReader
	reviews       service.Reviewer
	healthChecker service.HealthChecker
	logger        *slog.Logger
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	purchases service.Purchaser,
	negotiator service.Negotiator,
	reader service.TransactionReader,
	reviews service.Reviewer,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		purchases:     purchases,
		negotiator:    negotiator,
		reader:        reader,
		reviews:       reviews,
		healthChecker: healthChecker,
		logger:        logger,
	}
}
