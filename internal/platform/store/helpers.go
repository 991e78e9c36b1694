package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	perr "minutes/internal/platform/errors"
)

var (
	ErrNotOneRow = errors.New("store: expected exactly one row affected")
	errManyRows  = errors.New("store: expected one row, got more")
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("%w (got %d)", ErrNotOneRow, n)
	}
	return nil
}

// Scalar reads the first column of the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (v T, err error) {
	err = q.QueryRow(ctx, sql, args...).Scan(&v)
	if err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// collect scans at most limit rows; limit < 0 reads them all
func collect[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), limit int, sql string, args []any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for (limit < 0 || len(out) < limit) && rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// One expects a single row; none is perr.ErrNotFound, several is an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	got, err := collect(ctx, q, scan, 2, sql, args)
	switch {
	case err != nil:
		return zero, err
	case len(got) == 0:
		return zero, perr.ErrNotFound
	case len(got) > 1:
		return zero, errManyRows
	}
	return got[0], nil
}

func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	return collect(ctx, q, scan, -1, sql, args)
}

// Values renders the VALUES tuples for n rows of width columns: ($1,$2),($3,$4)
func Values(n, width int) string {
	if n <= 0 || width <= 0 {
		return ""
	}
	var b strings.Builder
	p := 1
	for i := range n {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for j := range width {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(p))
			p++
		}
		b.WriteByte(')')
	}
	return b.String()
}
