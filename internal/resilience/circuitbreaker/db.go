package circuitbreaker

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// DBConfig opens after five straight failures and retries the database after 30s.
// Requests the client abandoned are not held against the database.
func DBConfig() Config {
	return Config{
		Name:           "database",
		HalfOpenProbes: 3,
		Window:         time.Minute,
		Cooldown:       30 * time.Second,
		TripRatio:      1,
		MinSamples:     5,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	}
}

// GuardedDB runs queries through a Breaker. It has the method set the
// postgres repositories expect from *sql.DB.
type GuardedDB struct {
	*Breaker
	db *sql.DB
}

// NewGuardedDB guards db with DBConfig.
func NewGuardedDB(db *sql.DB) *GuardedDB {
	return NewGuardedDBWithConfig(db, DBConfig())
}

func NewGuardedDBWithConfig(db *sql.DB, cfg Config) *GuardedDB {
	return &GuardedDB{Breaker: New(cfg), db: db}
}

func (g *GuardedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return Run(g.Breaker, func() (*sql.Rows, error) {
		return g.db.QueryContext(ctx, query, args...)
	})
}

func (g *GuardedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return Run(g.Breaker, func() (sql.Result, error) {
		return g.db.ExecContext(ctx, query, args...)
	})
}

// QueryRowContext bypasses the breaker because *sql.Row reports its error only on Scan.
func (g *GuardedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return g.db.QueryRowContext(ctx, query, args...)
}

func (g *GuardedDB) PingContext(ctx context.Context) error {
	return g.Do(func() error { return g.db.PingContext(ctx) })
}

// DB returns the unguarded pool, for stats and shutdown.
func (g *GuardedDB) DB() *sql.DB { return g.db }
