// Package repo provides the minutes table repository
package repo

import (
	"context"

	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/store"
	"minutes/internal/services/minutes/domain"
)

// Storage is the minutes table surface
type Storage interface {
	Get(ctx context.Context, id int64) (domain.Raw, error)
	Page(ctx context.Context, afterID int64, limit int) ([]int64, error)
	Index(ctx context.Context) ([]domain.Summary, error)
	Put(ctx context.Context, r domain.Raw) error
}

type binder struct{}

// NewSQL returns a binder for either sql dialect
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

type sqlRepo struct{ q repokit.Queryer }

func (r *sqlRepo) Get(ctx context.Context, id int64) (domain.Raw, error) {
	return store.One(ctx, r.q, func(row store.Row) (domain.Raw, error) {
		var d domain.Raw
		err := row.Scan(&d.ID, &d.Name, &d.Location, &d.Date, &d.Minutes)
		return d, err
	}, `SELECT id, name, location, date, minutes FROM minutes WHERE id = $1`, id)
}

func (r *sqlRepo) Page(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	return store.Many(ctx, r.q, func(row store.Row) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	}, `SELECT id FROM minutes WHERE id > $1 ORDER BY id LIMIT $2`, afterID, limit)
}

func (r *sqlRepo) Index(ctx context.Context) ([]domain.Summary, error) {
	return store.Many(ctx, r.q, func(row store.Row) (domain.Summary, error) {
		var s domain.Summary
		err := row.Scan(&s.ID, &s.Name, &s.Location, &s.Date)
		return s, err
	}, `SELECT id, name, location, date FROM minutes ORDER BY id`)
}

func (r *sqlRepo) Put(ctx context.Context, d domain.Raw) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO minutes (id, name, location, date, minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			location = excluded.location,
			date = excluded.date,
			minutes = excluded.minutes`,
		d.ID, d.Name, d.Location, d.Date, d.Minutes)
	return err
}
