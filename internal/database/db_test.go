package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// *pgxpool.Pool 必須滿足 DB
var _ DB = (*pgxpool.Pool)(nil)

type idRow struct{ id string }

func (r idRow) Scan(dest ...any) error {
	if len(dest) != 1 {
		return errors.New("expected one column")
	}
	*(dest[0].(*string)) = r.id
	return nil
}

func TestFakeDBPanicsWhenUnset(t *testing.T) {
	ctx := context.Background()
	db := &FakeDB{}
	require.PanicsWithValue(t, "unexpected QueryRow", func() { db.QueryRow(ctx, "") })
	require.PanicsWithValue(t, "unexpected Ping", func() { _ = db.Ping(ctx) })
	require.NotPanics(t, db.Close)
}

func TestFakeDBDelegates(t *testing.T) {
	ctx := context.Background()
	var gotSQL string
	var gotArgs []any
	closed := false

	db := &FakeDB{
		QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			gotSQL, gotArgs = sql, args
			return idRow{id: "p1"}
		},
		PingFn:  func(context.Context) error { return errors.New("down") },
		CloseFn: func() { closed = true },
	}

	var id string
	require.NoError(t, db.QueryRow(ctx, "SELECT id FROM profiles WHERE user_id = $1", "user_1").Scan(&id))
	require.Equal(t, "p1", id)
	require.Equal(t, "SELECT id FROM profiles WHERE user_id = $1", gotSQL)
	require.Equal(t, []any{"user_1"}, gotArgs)

	require.EqualError(t, db.Ping(ctx), "down")
	db.Close()
	require.True(t, closed)
}
