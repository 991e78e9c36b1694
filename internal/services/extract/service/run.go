package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"minutes/internal/core/extract"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	dom "minutes/internal/services/extract/domain"
	leadsdom "minutes/internal/services/leads/domain"
)

type outcome struct {
	records int
	diags   []extract.Diagnostic
	score   leadsdom.Score
	err     error
}

// Run implements domain.RunnerPort
// ids are paged in ascending order and each page is fanned out to a bounded pool
// a failed document is counted and logged; the run continues
func (s *Service) Run(ctx context.Context, in dom.RunOptions) (dom.Summary, error) {
	sum := dom.Summary{RunID: uuid.New(), ByKind: map[extract.DiagnosticKind]int{}}
	if s.Minutes == nil {
		return sum, perr.Unavailablef("extract: minutes reader not wired")
	}
	if in.To > 0 && in.From > in.To {
		return sum, perr.InvalidArgf("extract: from %d is after to %d", in.From, in.To)
	}
	if !in.DryRun && s.Leads == nil {
		return sum, perr.Unavailablef("extract: leads writer not wired")
	}
	workers := in.Workers
	if workers <= 0 {
		workers = s.Cfg.Workers
	}
	page := in.Page
	if page <= 0 {
		page = s.Cfg.PageSize
	}
	if in.Evaluate {
		sum.Score = &leadsdom.Score{}
	}

	ctx = logger.WithRun(ctx, sum.RunID.String())
	log := logger.C(ctx)
	log.Info().Int64("from", in.From).Int64("to", in.To).Int("workers", workers).
		Bool("dry_run", in.DryRun).Bool("evaluate", in.Evaluate).Msg("extract: run started")

	after := max(in.From-1, 0)
	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		ids, err := s.Minutes.Page(ctx, after, page)
		if err != nil {
			return sum, err
		}
		if in.To > 0 {
			for i, id := range ids {
				if id > in.To {
					ids = ids[:i]
					break
				}
			}
		}
		if len(ids) == 0 {
			break
		}

		out := make([]outcome, len(ids))
		sem := make(chan struct{}, workers)
		wg := sync.WaitGroup{}
		launched := 0
		for i, id := range ids {
			if ctx.Err() != nil {
				break
			}
			launched++
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, id int64) {
				defer func() { <-sem; wg.Done() }()
				out[i] = s.one(ctx, id, sum.RunID, in)
			}(i, id)
		}
		wg.Wait()

		for i, o := range out[:launched] {
			if o.err != nil {
				sum.Failed++
				log.Error().Err(o.err).Int64("minutes_id", ids[i]).Msg("extract: document failed")
				continue
			}
			sum.Docs++
			sum.Records += o.records
			sum.Diagnostics += len(o.diags)
			for k, n := range extract.Count(o.diags) {
				sum.ByKind[k] += n
			}
			if sum.Score != nil {
				sum.Score.Add(o.score)
			}
		}
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		// a short page is not the end: the minutes service may cap the page size
		after = ids[len(ids)-1]
		if in.To > 0 && after >= in.To {
			break
		}
	}

	ev := log.Info().Int("docs", sum.Docs).Int("records", sum.Records).
		Int("diagnostics", sum.Diagnostics).Int("failed", sum.Failed)
	if sum.Score != nil {
		ev = ev.Float64("recall", sum.Score.Recall()).Float64("precision", sum.Score.Precision())
	}
	ev.Msg("extract: run finished")
	return sum, nil
}

func (s *Service) one(ctx context.Context, id int64, runID uuid.UUID, in dom.RunOptions) outcome {
	ctx = logger.WithMinutes(ctx, id)
	doc, err := s.Minutes.Get(ctx, id)
	if err != nil {
		return outcome{err: err}
	}
	res, err := s.Extract(ctx, doc.Text, s.Cfg.Options)
	if err != nil {
		return outcome{err: err}
	}
	logDiagnostics(ctx, res.Diagnostics)

	o := outcome{records: len(res.Records), diags: res.Diagnostics}
	if !in.DryRun {
		if err := s.Leads.Write(ctx, id, runID, res.Records); err != nil {
			return outcome{err: err}
		}
	}
	if in.Evaluate {
		if o.score, err = s.score(ctx, id, res.Records); err != nil {
			return outcome{err: err}
		}
	}
	return o
}
