// Package repo reads song pages from the songs table
package repo

import (
	"context"

	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/store"
)

// Storage is the songs table surface
type Storage interface {
	SongIDs(ctx context.Context) ([]string, error)
}

type binder struct{}

// NewSQL returns a binder for either sql dialect
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

type sqlRepo struct{ q repokit.Queryer }

// SongIDs implements songbook.Source
func (r *sqlRepo) SongIDs(ctx context.Context) ([]string, error) {
	return store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var page string
		err := row.Scan(&page)
		return page, err
	}, `SELECT page_num FROM songs`)
}
