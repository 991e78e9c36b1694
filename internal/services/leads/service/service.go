// Package service persists extracted leads and reads curated ones
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"minutes/internal/core/extract"
	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store"
	"minutes/internal/services/leads/repo"
)

const (
	writeAttempts = 4
	writeBackoff  = 50 * time.Millisecond
)

// Service implements domain.WriterPort and domain.RecordedPort
type Service struct {
	DB     repokit.TxRunner
	CH     store.Clickhouse // optional mirror
	Binder repokit.Binder[repo.Storage]

	now func() time.Time
}

// New constructs the service; ch may be nil
func New(db repokit.TxRunner, ch store.Clickhouse, b repokit.Binder[repo.Storage]) *Service {
	return &Service{DB: db, CH: ch, Binder: b, now: func() time.Time { return time.Now().UTC() }}
}

// Write implements domain.WriterPort
// the sql write is authoritative; a failed clickhouse mirror is logged, not returned
func (s *Service) Write(ctx context.Context, minutesID int64, runID uuid.UUID, recs []extract.Record) error {
	if s.DB == nil {
		return perr.Unavailablef("leads: no sql backend configured")
	}
	at := s.now()
	// workers share one sqlite file, so a busy database is retried
	tx := repokit.WithRetry(repokit.WithBeginHooks(s.DB, func(ctx context.Context, q repokit.Queryer) error {
		return s.Binder.Bind(q).RequireMinutes(ctx, minutesID)
	}), writeAttempts, writeBackoff)
	err := repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		return s.Binder.Bind(q).Replace(ctx, minutesID, runID, at, recs)
	})
	if err != nil {
		return perr.FromSQL(err, "leads: write")
	}
	if err := s.Mirror(ctx, minutesID, runID, at, recs); err != nil {
		logger.C(ctx).Warn().Err(err).Int64("minutes_id", minutesID).Msg("leads: clickhouse mirror failed")
	}
	return nil
}

// Mirror appends recs to the clickhouse leads table; a nil sink is a no-op
func (s *Service) Mirror(ctx context.Context, minutesID int64, runID uuid.UUID, at time.Time, recs []extract.Record) error {
	if s.CH == nil || len(recs) == 0 {
		return nil
	}
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		rows[i] = []any{minutesID, uint32(i), runID, rec.Leader, rec.Song, rec.IsBreak(), at}
	}
	return s.CH.Insert(ctx, "leads", rows)
}

// Recorded implements domain.RecordedPort
func (s *Service) Recorded(ctx context.Context, minutesID int64) ([]extract.Record, error) {
	if s.DB == nil {
		return nil, perr.Unavailablef("leads: no sql backend configured")
	}
	recs, err := s.Binder.Bind(s.DB).Recorded(ctx, minutesID)
	return recs, perr.FromSQL(err, "leads: recorded")
}
