package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"minutes/internal/platform/store/pg"
)

// pgxConn is satisfied by both *pgxpool.Pool and pgx.Tx
type pgxConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgConn struct{ c pgxConn }

func (p pgConn) exec(ctx context.Context, q string, args []any) (CommandTag, error) {
	return p.c.Exec(ctx, q, args...)
}

func (p pgConn) query(ctx context.Context, q string, args []any) (Rows, error) {
	rs, err := p.c.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

func (p pgConn) queryRow(ctx context.Context, q string, args []any) Row {
	return pgRow{p.c.QueryRow(ctx, q, args...)}
}

type pgBackend struct {
	pgConn
	p *pg.PG
}

func newPGBackend(p *pg.PG) pgBackend { return pgBackend{pgConn: pgConn{p.Pool}, p: p} }

func (b pgBackend) begin(ctx context.Context) (txConn, error) {
	tx, err := b.p.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return pgTx{pgConn{tx}, tx}, nil
}

func (b pgBackend) ping(ctx context.Context) error {
	if b.p == nil || b.p.Pool == nil {
		return errors.New("pg: pool closed")
	}
	return b.p.Pool.Ping(ctx)
}

func (b pgBackend) close() error { b.p.Close(); return nil }

type pgTx struct {
	pgConn
	tx pgx.Tx
}

func (t pgTx) commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t pgTx) rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

type pgRow struct{ pgx.Row }

func (r pgRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

// pgRows adds Columns to pgx.Rows; pgconn.CommandTag already satisfies CommandTag
type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	cols := make([]string, len(fds))
	for i, fd := range fds {
		cols[i] = fd.Name
	}
	return cols
}
