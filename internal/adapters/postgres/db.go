// Package postgres provides lib/pq-backed repository implementations.
// Absent rows come back as (nil, nil); unique violations wrap
// domain.ErrConflict. Schema is managed out of band.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to the database and verifies the connection with a ping.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return db, nil
}

// HealthChecker reports database pool health for the readiness endpoint.
type HealthChecker struct {
	db *sql.DB
}

// NewHealthChecker creates a HealthChecker over the pool.
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name implements ports.HealthChecker.
func (h *HealthChecker) Name() string { return "postgres" }

// HealthCheck implements ports.HealthChecker.
func (h *HealthChecker) HealthCheck(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
