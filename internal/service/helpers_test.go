package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/campusmarket/negotiation/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNegotiationConfig() *config.NegotiationConfig {
	return &config.NegotiationConfig{
		MaxSwapAttempts:      5,
		StoreTimeout:         time.Second,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
	}
}

func testMetrics() *metrics.NegotiationMetrics {
	return metrics.NewNegotiationMetrics(prometheus.NewRegistry())
}
