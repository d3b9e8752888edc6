package postgres

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the repositories need.
// *sql.DB, *sql.Tx and circuitbreaker.GuardedDB all satisfy it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
