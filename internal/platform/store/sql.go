package store

import (
	"context"
	"time"
)

// conn is what a backend offers for a pool or an open transaction.
// Row.Scan must report a miss as ErrNoRows.
type conn interface {
	exec(ctx context.Context, q string, args []any) (CommandTag, error)
	query(ctx context.Context, q string, args []any) (Rows, error)
	queryRow(ctx context.Context, q string, args []any) Row
}

type txConn interface {
	conn
	commit(ctx context.Context) error
	rollback(ctx context.Context) error
}

type backend interface {
	conn
	begin(ctx context.Context) (txConn, error)
	ping(ctx context.Context) error
	close() error
}

// session is a traced RowQuerier over one conn
type session struct {
	c       conn
	dialect Dialect
	trace   emitter
}

func (s session) Dialect() Dialect { return s.dialect }

func (s session) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	tag, err := s.c.exec(ctx, sql, args)
	s.trace.emit(ctx, sql, args, start, err)
	return tag, err
}

func (s session) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := s.c.query(ctx, sql, args)
	s.trace.emit(ctx, sql, args, start, err)
	return rs, err
}

// QueryRow traces once the caller scans
func (s session) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{
		Row:  s.c.queryRow(ctx, sql, args),
		done: func(err error) { s.trace.emit(ctx, sql, args, start, err) },
	}
}

type tracedRow struct {
	Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.Row.Scan(dst...)
	r.done(err)
	return err
}

// pool is the TxRunner the Store hands out for each sql backend
type pool struct {
	session
	b backend
}

func newPool(b backend, d Dialect, tr QueryTracer, slowMs int) *pool {
	return &pool{
		session: session{c: b, dialect: d, trace: newEmitter(d, tr, slowMs)},
		b:       b,
	}
}

func (p *pool) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := p.b.begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(session{c: tx, dialect: p.dialect, trace: p.trace}); err != nil {
		_ = tx.rollback(ctx)
		return err
	}
	return tx.commit(ctx)
}

func (p *pool) Ping(ctx context.Context) error { return p.b.ping(ctx) }

func (p *pool) Close() error { return p.b.close() }
