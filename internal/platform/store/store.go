// Package store holds the relational and columnar backends behind the minutes services.
// Every sql backend speaks $N placeholders and reports a missed QueryRow as ErrNoRows.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"minutes/internal/platform/logger"
)

var (
	ErrNoRows = errors.New("store: no rows in result set")
	ErrNoSQL  = errors.New("store: no sql backend configured")
)

type Row interface {
	Scan(dest ...any) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the statement surface repos write against
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner runs fn in a transaction, rolling back when fn errors
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Clickhouse is the columnar sink for extracted leads
type Clickhouse interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Close() error
}

type Pinger interface{ Ping(context.Context) error }

// Store carries whichever backends were configured; unset ones stay nil
type Store struct {
	Log  logger.Logger
	PG   TxRunner
	Lite TxRunner
	CH   Clickhouse
}

// Option adjusts the Store before any backend opens
type Option func(*Store)

func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open connects every backend cfg enables. On failure the ones already open are closed.
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: zerolog.Nop()}
	for _, o := range opts {
		o(s)
	}

	steps := []struct {
		on   bool
		name string
		open func() error
	}{
		{cfg.PG.Enabled, "pg", func() (err error) { s.PG, err = openPG(ctx, cfg, s.Log); return }},
		{cfg.Lite.Enabled, "sqlite", func() (err error) { s.Lite, err = openLite(ctx, cfg, s.Log); return }},
		{cfg.CH.Enabled, "ch", func() (err error) { s.CH, err = openCH(ctx, cfg); return }},
	}
	for _, st := range steps {
		if !st.on {
			continue
		}
		if err := st.open(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("store: open %s: %w", st.name, err)
		}
		s.Log.Debug().Str("backend", st.name).Msg("store backend open")
	}
	return s, nil
}

// SQL is the primary relational backend: postgres when present, else sqlite
func (s *Store) SQL() (TxRunner, error) {
	if s != nil {
		for _, r := range []TxRunner{s.PG, s.Lite} {
			if r != nil {
				return r, nil
			}
		}
	}
	return nil, ErrNoSQL
}

type seam struct {
	name string
	v    any
}

func (s *Store) seams() []seam {
	out := make([]seam, 0, 3)
	if s.PG != nil {
		out = append(out, seam{"pg", s.PG})
	}
	if s.Lite != nil {
		out = append(out, seam{"sqlite", s.Lite})
	}
	if s.CH != nil {
		out = append(out, seam{"ch", s.CH})
	}
	return out
}

// Guard pings each backend that can answer
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	var errs []error
	for _, sm := range s.seams() {
		if p, ok := sm.v.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	var errs []error
	for _, sm := range s.seams() {
		if c, ok := sm.v.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", sm.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
