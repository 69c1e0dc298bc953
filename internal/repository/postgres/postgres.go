// Package postgres persists planner runs to PostgreSQL, grounded on the
// teacher's internal/repository/postgres package (sql.Open("postgres",
// ...), PingContext health check, one file per aggregate).
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps a SQL database connection for all PostgreSQL operations.
type DB struct {
	*sql.DB
}

// New opens and health-checks a PostgreSQL connection.
func New(connString string) (*DB, error) {
	sqldb, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqldb}, nil
}

// Close closes the database connection.
func (db *DB) Close() error { return db.DB.Close() }

// Health checks database connectivity.
func (db *DB) Health(ctx context.Context) error { return db.PingContext(ctx) }

// Schema is the idempotent DDL for the runs table; cmd/server applies it
// at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               uuid PRIMARY KEY,
	created_at       timestamptz NOT NULL,
	seed             bigint NOT NULL,
	cooling          double precision NOT NULL,
	comfort_weight   double precision NOT NULL,
	best_energy      double precision NOT NULL,
	cancelled        boolean NOT NULL,
	agent_plans      jsonb NOT NULL,
	target_staffing  double precision[] NOT NULL,
	planned_staffing double precision[] NOT NULL,
	report_table     text NOT NULL
);
`
