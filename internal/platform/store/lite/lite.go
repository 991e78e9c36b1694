// Package lite opens the sqlite database holding the minutes tables
package lite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Config configures the sqlite handle
type Config struct {
	// Path is a file path or ":memory:"
	Path        string
	BusyTimeout time.Duration
}

// Lite owns the database/sql handle
type Lite struct {
	DB *sql.DB
}

// Memory reports whether path names a private in-memory database
func Memory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// Open opens the database, enables foreign keys and, for files, WAL
func Open(ctx context.Context, cfg Config) (*Lite, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite: empty path")
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, err
	}
	// each connection to :memory: is its own database
	if Memory(cfg.Path) {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{"PRAGMA foreign_keys=ON"}
	if cfg.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout.Milliseconds()))
	}
	if !Memory(cfg.Path) {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %s: %w", p, err)
		}
	}
	return &Lite{DB: db}, nil
}

// Close closes the handle; nil safe
func (l *Lite) Close() error {
	if l == nil || l.DB == nil {
		return nil
	}
	return l.DB.Close()
}
