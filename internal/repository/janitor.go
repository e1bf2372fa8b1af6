package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// IdempotencyJanitor periodically deletes stored responses older than a TTL
type IdempotencyJanitor struct {
	repo     IdempotencyRepository
	clock    clockwork.Clock
	logger   *slog.Logger
	ttl      time.Duration
	interval time.Duration
}

// NewIdempotencyJanitor creates a janitor that runs every interval
func NewIdempotencyJanitor(repo IdempotencyRepository, ttl, interval time.Duration, logger *slog.Logger) *IdempotencyJanitor {
	return &IdempotencyJanitor{
		repo:     repo,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
		ttl:      ttl,
		interval: interval,
	}
}

// WithClock replaces the time source, for tests
func (j *IdempotencyJanitor) WithClock(clock clockwork.Clock) *IdempotencyJanitor {
	j.clock = clock
	return j
}

// Run purges expired keys until ctx is cancelled
func (j *IdempotencyJanitor) Run(ctx context.Context) {
	ticker := j.clock.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			j.PurgeOnce(ctx)
		}
	}
}

// PurgeOnce deletes keys created before now minus the TTL
func (j *IdempotencyJanitor) PurgeOnce(ctx context.Context) {
	cutoff := j.clock.Now().Add(-j.ttl)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		j.logger.Error("failed to purge idempotency keys", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.Info("purged expired idempotency keys", "count", deleted, "cutoff", cutoff)
	}
}
