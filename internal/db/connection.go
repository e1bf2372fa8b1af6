// Package db provides database connection and management utilities.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusmarket/negotiation/internal/config"
	"github.com/cenkalti/backoff/v5"

	// Import postgres driver for registration with database/sql)
	_ "github.com/lib/pq"
)

const connectAttempts = 5

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	logger *slog.Logger
}

// Connect opens the pool and waits for the database to answer a ping,
// retrying with exponential backoff while it starts up.
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 5 * time.Second

	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		if err := sqlDB.PingContext(ctx); err != nil {
			logger.Warn("database not ready", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(connectAttempts))
	if err != nil {
		_ = sqlDB.Close()
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to database",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	return New(sqlDB, logger), nil
}

// New wraps an open pool. Connect is the usual entry point; New serves callers
// that manage the *sql.DB themselves, such as sqlmock-backed tests.
func New(sqlDB *sql.DB, logger *slog.Logger) *DB {
	return &DB{
		DB:     sqlDB,
		logger: logger,
	}
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}
