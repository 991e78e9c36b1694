package store

import (
	"context"

	"minutes/internal/platform/store/ch"
)

// chSink is the Store's Clickhouse; it narrows ch.Rows whose Close returns an error
type chSink struct{ *ch.CH }

var _ interface {
	Clickhouse
	Pinger
} = chSink{}

func (s chSink) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := s.CH.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
