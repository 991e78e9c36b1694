// Package repo provides the leads and song_leader_joins repositories
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"minutes/internal/core/extract"
	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/store"
)

// leadCols is the width of one leads row in a multi-row insert
const leadCols = 6

// maxBatch keeps a single insert below sqlite's 32766 bound parameter limit
const maxBatch = 500

// Storage is the leads table surface
type Storage interface {
	RequireMinutes(ctx context.Context, minutesID int64) error
	Replace(ctx context.Context, minutesID int64, runID uuid.UUID, at time.Time, recs []extract.Record) error
	Recorded(ctx context.Context, minutesID int64) ([]extract.Record, error)
}

type binder struct{}

// NewSQL returns a binder for either sql dialect
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

type sqlRepo struct{ q repokit.Queryer }

// RequireMinutes fails with perr.ErrNotFound when the document does not exist
func (r *sqlRepo) RequireMinutes(ctx context.Context, minutesID int64) error {
	_, err := store.One(ctx, r.q, func(row store.Row) (int64, error) {
		var id int64
		return id, row.Scan(&id)
	}, `SELECT id FROM minutes WHERE id = $1`, minutesID)
	return err
}

// Replace deletes the document's leads and inserts recs in order; callers run it in a tx
func (r *sqlRepo) Replace(ctx context.Context, minutesID int64, runID uuid.UUID, at time.Time, recs []extract.Record) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM leads WHERE minutes_id = $1`, minutesID); err != nil {
		return err
	}
	run := runID.String()
	for start := 0; start < len(recs); start += maxBatch {
		chunk := recs[start:min(start+maxBatch, len(recs))]
		args := make([]any, 0, len(chunk)*leadCols)
		for i, rec := range chunk {
			args = append(args, minutesID, start+i, run, rec.Leader, rec.Song, at)
		}
		_, err := r.q.Exec(ctx,
			`INSERT INTO leads (minutes_id, seq, run_id, leader, song, created_at) VALUES `+
				store.Values(len(chunk), leadCols),
			args...)
		if err != nil {
			return err
		}
	}
	return nil
}

// Recorded reads curated leads in entry order
func (r *sqlRepo) Recorded(ctx context.Context, minutesID int64) ([]extract.Record, error) {
	return store.Many(ctx, r.q, func(row store.Row) (extract.Record, error) {
		var rec extract.Record
		err := row.Scan(&rec.Leader, &rec.Song)
		return rec, err
	}, `
		SELECT l.name, s.page_num
		FROM song_leader_joins j
		JOIN leaders l ON l.id = j.leader_id
		JOIN songs s ON s.id = j.song_id
		WHERE j.minutes_id = $1
		ORDER BY j.lead_id`, minutesID)
}
