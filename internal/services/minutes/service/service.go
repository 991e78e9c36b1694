// Package service implements the minutes reader and importer
package service

import (
	"context"

	"minutes/internal/core/normalize"
	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/minutes/domain"
	"minutes/internal/services/minutes/repo"
)

// Config for the minutes service
type Config struct {
	// HardLimit caps Page; defaults to 1000
	HardLimit int
}

// Service implements domain.ReaderPort and domain.WriterPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Norm   *normalize.Normalizer
	Cfg    Config
}

// New constructs the service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 1000
	}
	return &Service{DB: db, Binder: b, Norm: normalize.New(), Cfg: cfg}
}

func (s *Service) repo() (repo.Storage, error) {
	if s.DB == nil {
		return nil, perr.Unavailablef("minutes: no sql backend configured")
	}
	return s.Binder.Bind(s.DB), nil
}

// Get implements domain.ReaderPort
func (s *Service) Get(ctx context.Context, id int64) (domain.Document, error) {
	r, err := s.repo()
	if err != nil {
		return domain.Document{}, err
	}
	raw, err := r.Get(ctx, id)
	if err != nil {
		return domain.Document{}, perr.FromSQL(err, "minutes: get")
	}
	return domain.Document{
		ID:       raw.ID,
		Name:     raw.Name,
		Location: raw.Location,
		Date:     raw.Date,
		Text:     s.Norm.Minutes(raw.Minutes),
	}, nil
}

// Page implements domain.ReaderPort
func (s *Service) Page(ctx context.Context, afterID int64, limit int) ([]int64, error) {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	r, err := s.repo()
	if err != nil {
		return nil, err
	}
	ids, err := r.Page(ctx, afterID, limit)
	return ids, perr.FromSQL(err, "minutes: page")
}

// Index implements domain.ReaderPort
func (s *Service) Index(ctx context.Context) ([]domain.Summary, error) {
	r, err := s.repo()
	if err != nil {
		return nil, err
	}
	out, err := r.Index(ctx)
	return out, perr.FromSQL(err, "minutes: index")
}

// Put implements domain.WriterPort; an existing id is replaced
func (s *Service) Put(ctx context.Context, raw domain.Raw) error {
	if raw.ID <= 0 {
		return perr.InvalidArgf("minutes: id must be positive")
	}
	if raw.Minutes == nil {
		raw.Minutes = []byte{}
	}
	r, err := s.repo()
	if err != nil {
		return err
	}
	return perr.FromSQL(r.Put(ctx, raw), "minutes: put")
}
