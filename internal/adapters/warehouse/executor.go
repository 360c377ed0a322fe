// Package warehouse provides read-only access to the reporting warehouse:
// the skills summary table and the opportunity table joined to accounts.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the "postgres" driver used for the warehouse connection.
	_ "github.com/lib/pq"
)

// Rows is the subset of *sql.Rows the stores consume. Declared here so tests
// can supply canned result sets without a live database.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Executor runs a query string against the warehouse and returns its rows.
// This is the single capability the core consumes; everything above it is
// read-only reshaping.
type Executor interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
}

// DB wraps a *sql.DB as an Executor.
type DB struct {
	db *sql.DB
}

// Open connects to the warehouse with the given DSN.
func Open(dsn string) (*DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: empty dsn", ErrQueryExecutor)
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open warehouse: %w", err)
	}
	return &DB{db: db}, nil
}

// Query implements Executor.
func (d *DB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("warehouse query: %w", err)
	}
	return rows, nil
}

// Ping verifies the connection.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("warehouse ping: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	return d.db.Close()
}
