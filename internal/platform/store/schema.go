package store

import (
	"context"
	"fmt"
)

// Dialect names the SQL flavor behind a RowQuerier
type Dialect int

const (
	// Postgres is the default dialect
	Postgres Dialect = iota
	// SQLite is the modernc sqlite dialect
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Dialected is implemented by the adapters and their transactions
type Dialected interface{ Dialect() Dialect }

// DialectOf reports q's dialect, Postgres when q does not say
func DialectOf(q RowQuerier) Dialect {
	if d, ok := q.(Dialected); ok {
		return d.Dialect()
	}
	return Postgres
}

// minutes, songs, leaders and song_leader_joins keep the layout of the historic minutes.db
var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS minutes (
		id       BIGINT PRIMARY KEY,
		name     TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		date     TEXT NOT NULL DEFAULT '',
		minutes  BYTEA NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id       BIGSERIAL PRIMARY KEY,
		page_num TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS songs_page_num_idx ON songs (page_num)`,
	`CREATE TABLE IF NOT EXISTS leaders (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS song_leader_joins (
		lead_id    BIGSERIAL PRIMARY KEY,
		minutes_id BIGINT NOT NULL REFERENCES minutes(id) ON DELETE CASCADE,
		song_id    BIGINT NOT NULL REFERENCES songs(id),
		leader_id  BIGINT NOT NULL REFERENCES leaders(id)
	)`,
	`CREATE INDEX IF NOT EXISTS song_leader_joins_minutes_idx ON song_leader_joins (minutes_id)`,
	`CREATE TABLE IF NOT EXISTS leads (
		minutes_id BIGINT NOT NULL REFERENCES minutes(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		run_id     UUID NOT NULL,
		leader     TEXT NOT NULL,
		song       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (minutes_id, seq)
	)`,
}

var liteSchema = []string{
	`CREATE TABLE IF NOT EXISTS minutes (
		id       INTEGER PRIMARY KEY,
		name     TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		date     TEXT NOT NULL DEFAULT '',
		minutes  BLOB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		page_num TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS songs_page_num_idx ON songs (page_num)`,
	`CREATE TABLE IF NOT EXISTS leaders (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS song_leader_joins (
		lead_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		minutes_id INTEGER NOT NULL REFERENCES minutes(id) ON DELETE CASCADE,
		song_id    INTEGER NOT NULL REFERENCES songs(id),
		leader_id  INTEGER NOT NULL REFERENCES leaders(id)
	)`,
	`CREATE INDEX IF NOT EXISTS song_leader_joins_minutes_idx ON song_leader_joins (minutes_id)`,
	`CREATE TABLE IF NOT EXISTS leads (
		minutes_id INTEGER NOT NULL REFERENCES minutes(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		run_id     TEXT NOT NULL,
		leader     TEXT NOT NULL,
		song       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		PRIMARY KEY (minutes_id, seq)
	)`,
}

// chSchema is the columnar copy of leads; later runs replace earlier ones per (minutes_id, seq)
var chSchema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		minutes_id Int64,
		seq        UInt32,
		run_id     UUID,
		leader     String,
		song       String,
		is_break   Bool,
		created_at DateTime64(3, 'UTC')
	) ENGINE = ReplacingMergeTree(created_at)
	ORDER BY (minutes_id, seq)`,
}

// EnsureSchema creates the minutes tables in tx's dialect; it is idempotent
func EnsureSchema(ctx context.Context, tx TxRunner) error {
	stmts := pgSchema
	if DialectOf(tx) == SQLite {
		stmts = liteSchema
	}
	return tx.Tx(ctx, func(q RowQuerier) error {
		for _, s := range stmts {
			if _, err := q.Exec(ctx, s); err != nil {
				return fmt.Errorf("store: ensure schema (%s): %w", DialectOf(tx), err)
			}
		}
		return nil
	})
}

// EnsureCHSchema creates the clickhouse leads table
func EnsureCHSchema(ctx context.Context, c Clickhouse) error {
	for _, s := range chSchema {
		if err := c.Exec(ctx, s); err != nil {
			return fmt.Errorf("store: ensure clickhouse schema: %w", err)
		}
	}
	return nil
}

// Ensure creates the schema on every configured backend
func (s *Store) Ensure(ctx context.Context) error {
	for _, r := range []TxRunner{s.PG, s.Lite} {
		if r == nil {
			continue
		}
		if err := EnsureSchema(ctx, r); err != nil {
			return err
		}
	}
	if s.CH != nil {
		return EnsureCHSchema(ctx, s.CH)
	}
	return nil
}
