package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"minutes/internal/platform/store/lite"
)

// sqlConn is the part of *sql.DB and *sql.Tx the sqlite backend needs
type sqlConn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// liteConn rewrites $N placeholders before handing statements to database/sql
type liteConn struct{ c sqlConn }

func (l liteConn) exec(ctx context.Context, q string, args []any) (CommandTag, error) {
	q = rebind(q)
	res, err := l.c.ExecContext(ctx, q, args...)
	if err != nil {
		return liteTag{}, err
	}
	n, _ := res.RowsAffected()
	return liteTag{verb: verbOf(q), n: n}, nil
}

func (l liteConn) query(ctx context.Context, q string, args []any) (Rows, error) {
	rs, err := l.c.QueryContext(ctx, rebind(q), args...)
	if err != nil {
		return nil, err
	}
	return &liteRows{Rows: rs}, nil
}

func (l liteConn) queryRow(ctx context.Context, q string, args []any) Row {
	return liteRow{l.c.QueryRowContext(ctx, rebind(q), args...)}
}

type liteBackend struct {
	liteConn
	l *lite.Lite
}

func newLiteBackend(l *lite.Lite) liteBackend { return liteBackend{liteConn: liteConn{l.DB}, l: l} }

func (b liteBackend) begin(ctx context.Context) (txConn, error) {
	tx, err := b.l.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return liteTx{liteConn{tx}, tx}, nil
}

func (b liteBackend) ping(ctx context.Context) error {
	if b.l == nil || b.l.DB == nil {
		return errors.New("sqlite: db closed")
	}
	return b.l.DB.PingContext(ctx)
}

func (b liteBackend) close() error { return b.l.Close() }

type liteTx struct {
	liteConn
	tx *sql.Tx
}

func (t liteTx) commit(context.Context) error   { return t.tx.Commit() }
func (t liteTx) rollback(context.Context) error { return t.tx.Rollback() }

// rebind turns $N into sqlite's ?N. A '$' followed by a digit never appears in quoted text here.
func rebind(q string) string {
	if !strings.Contains(q, "$") {
		return q
	}
	b := []byte(q)
	for i := 0; i+1 < len(b); i++ {
		if b[i] == '$' && b[i+1] >= '0' && b[i+1] <= '9' {
			b[i] = '?'
		}
	}
	return string(b)
}

func verbOf(q string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(q), " ")
	return strings.ToUpper(verb)
}

type liteRow struct{ *sql.Row }

func (r liteRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoRows
	}
	return err
}

type liteRows struct {
	*sql.Rows
	cols []string
}

func (r *liteRows) Close() { _ = r.Rows.Close() }

func (r *liteRows) Columns() []string {
	if r.cols == nil {
		r.cols, _ = r.Rows.Columns()
	}
	return r.cols
}

type liteTag struct {
	verb string
	n    int64
}

func (t liteTag) String() string      { return fmt.Sprintf("%s %d", t.verb, t.n) }
func (t liteTag) RowsAffected() int64 { return t.n }
