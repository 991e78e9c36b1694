package store

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"minutes/internal/platform/logger"
)

// QueryEvent is one traced statement
type QueryEvent struct {
	Backend   string
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives statement events from the sql backends
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements at info, or warn when slow, whatever the root level is
func Tracer(root logger.Logger) QueryTracer {
	return logTracer(root.Level(zerolog.DebugLevel).With().Str("component", "sql").Logger())
}

type logTracer zerolog.Logger

func (lt logTracer) OnQuery(_ context.Context, ev QueryEvent) {
	l := zerolog.Logger(lt)
	e := l.Info()
	if ev.Slow {
		e = l.Warn()
	}
	e.Str("backend", ev.Backend).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1e3).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("sql query")
}

// emitter is a nil-safe tracer handle; slowUS < 0 never marks slow
type emitter struct {
	backend string
	tracer  QueryTracer
	slowUS  int64
}

func newEmitter(d Dialect, tr QueryTracer, slowMs int) emitter {
	return emitter{backend: d.String(), tracer: tr, slowUS: int64(slowMs) * 1000}
}

func (e emitter) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if e.tracer == nil {
		return
	}
	us := time.Since(start).Microseconds()
	e.tracer.OnQuery(ctx, QueryEvent{
		Backend:   e.backend,
		SQL:       sql,
		Args:      args,
		ElapsedUS: us,
		Err:       err,
		Slow:      e.slowUS >= 0 && us >= e.slowUS,
	})
}

// compact puts a multi-line statement on one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
