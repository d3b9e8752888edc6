package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuarded(t *testing.T, name string) (*GuardedDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := DBConfig()
	cfg.Name = name
	cfg.Cooldown = 50 * time.Millisecond
	return NewGuardedDBWithConfig(db, cfg), mock
}

func TestNewGuardedDB(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	g := NewGuardedDB(db)

	assert.Same(t, db, g.DB())
	assert.Equal(t, "database", g.Name())
	assert.False(t, g.IsOpen())
}

func TestGuardedDB_PassesQueriesThrough(t *testing.T) {
	g, mock := newGuarded(t, "db-pass")
	ctx := context.Background()

	mock.ExpectQuery("SELECT id, title FROM notes").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow("n1", "Groceries"))
	mock.ExpectExec("DELETE FROM notes").
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := g.QueryContext(ctx, "SELECT id, title FROM notes")
	require.NoError(t, err)
	_ = rows.Close()

	res, err := g.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", "n1")
	require.NoError(t, err)
	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardedDB_OpensAfterFiveFailures(t *testing.T) {
	g, mock := newGuarded(t, "db-trip")
	ctx := context.Background()
	down := errors.New("connection refused")

	for range 5 {
		mock.ExpectExec("UPDATE notes").WillReturnError(down)
	}
	for i := range 5 {
		_, err := g.ExecContext(ctx, "UPDATE notes SET title = $1", fmt.Sprint(i))
		assert.ErrorIs(t, err, down)
	}
	require.True(t, g.IsOpen())

	_, err := g.QueryContext(ctx, "SELECT id FROM notes")
	assert.ErrorIs(t, err, ErrOpenState)
	assert.NoError(t, mock.ExpectationsWereMet(), "open breaker must not reach the database")
}

func TestGuardedDB_AbandonedRequestsDoNotTrip(t *testing.T) {
	g, mock := newGuarded(t, "db-cancel")

	for range 6 {
		mock.ExpectExec("UPDATE notes").WillReturnError(context.Canceled)
	}
	for range 6 {
		_, _ = g.ExecContext(context.Background(), "UPDATE notes SET title = 'x'")
	}

	assert.False(t, g.IsOpen())
}

func TestGuardedDB_Ping(t *testing.T) {
	g, mock := newGuarded(t, "db-ping")

	mock.ExpectPing()
	assert.NoError(t, g.PingContext(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("no route to host"))
	assert.Error(t, g.PingContext(context.Background()))

	assert.NoError(t, mock.ExpectationsWereMet())
}
