package pg

import (
	"context"
	"errors"
	"testing"

	"minutes/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatalf("expected parse error, got nil")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	testkit.Serial(t)

	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})

	_, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/db?sslmode=disable"}, nil)
	if err == nil {
		t.Fatalf("expected newPool error, got nil")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{} // zero value; never closed
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return fake, nil
	})

	mutated := false
	p, err := Open(context.Background(), Config{
		URL:      "postgres://u:p@h:5432/db?sslmode=disable",
		MaxConns: 7,
		AppName:  "minutes-extract",
	}, func(*pgxpool.Config) { mutated = true })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if p.Pool != fake || !mutated {
		t.Fatalf("pool=%v mutated=%v", p.Pool, mutated)
	}
	if seen.MaxConns != 7 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "minutes-extract" {
		t.Fatalf("application_name = %q", got)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
