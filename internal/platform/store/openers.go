package store

import (
	"context"
	"fmt"
	"time"

	"minutes/internal/core/version"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store/ch"
	"minutes/internal/platform/store/lite"
	"minutes/internal/platform/store/pg"
)

const (
	pingBackoffStart = 150 * time.Millisecond
	pingBackoffMax   = 2 * time.Second
)

// openPG builds the pool then pings until postgres answers or the attempts run out
func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{URL: cfg.PG.URL, MaxConns: cfg.PG.MaxConns, AppName: cfg.AppName}, nil)
	if err != nil {
		return nil, err
	}
	attempts := max(cfg.PG.ConnectRetries, 1)
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	wait := pingBackoffStart
	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = p.Pool.Ping(pctx)
		cancel()
		if err == nil {
			return newPool(newPGBackend(p), Postgres, tracerFor(cfg.PG.LogSQL, log), cfg.PG.SlowQueryMs), nil
		}
		if i == attempts {
			break
		}
		log.Warn().Err(err).Int("attempt", i).Dur("retry_in", wait).Msg("postgres not ready")
		select {
		case <-ctx.Done():
			p.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, pingBackoffMax)
	}
	p.Close()
	return nil, fmt.Errorf("postgres unreachable after %d attempts: %w", attempts, err)
}

func openLite(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	l, err := lite.Open(ctx, lite.Config{Path: cfg.Lite.Path, BusyTimeout: cfg.Lite.BusyTimeout})
	if err != nil {
		return nil, err
	}
	return newPool(newLiteBackend(l), SQLite, tracerFor(cfg.Lite.LogSQL, log), cfg.Lite.SlowQueryMs), nil
}

func openCH(ctx context.Context, cfg Config) (Clickhouse, error) {
	c, err := ch.Open(ctx, ch.Config{
		URL:  cfg.CH.URL,
		Role: cfg.AppName,
		Tag:  version.Info(cfg.AppName).Version,
	})
	if err != nil {
		return nil, err
	}
	return chSink{c}, nil
}

func tracerFor(on bool, log logger.Logger) QueryTracer {
	if !on {
		return nil
	}
	return Tracer(log)
}
