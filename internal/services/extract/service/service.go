// Package service implements single-document and batch leader extraction
package service

import (
	"context"
	"errors"

	"minutes/internal/core/extract"
	"minutes/internal/core/scanner"
	"minutes/internal/core/songbook"
	perr "minutes/internal/platform/errors"
	"minutes/internal/platform/logger"
	dom "minutes/internal/services/extract/domain"
	leadsdom "minutes/internal/services/leads/domain"
	mindom "minutes/internal/services/minutes/domain"
	songsdom "minutes/internal/services/songs/domain"
)

// Config for the extract service
type Config struct {
	Workers  int
	PageSize int
	Options  extract.Options
}

// Service implements domain.ExtractorPort and domain.RunnerPort
type Service struct {
	Minutes  mindom.ReaderPort
	Leads    leadsdom.WriterPort
	Recorded leadsdom.RecordedPort
	Songs    songsdom.IndexPort
	Books    songbook.Books
	Scan     *scanner.Scanner
	Cfg      Config
}

// New constructs the extract service; Workers and PageSize get defaults
func New(sc *scanner.Scanner, songs songsdom.IndexPort, books songbook.Books, cfg Config) *Service {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	if books == nil {
		books = songbook.DefaultBooks()
	}
	return &Service{Songs: songs, Books: books, Scan: sc, Cfg: cfg}
}

// Defaults implements domain.ExtractorPort
func (s *Service) Defaults() extract.Options { return s.Cfg.Options }

// Grammar implements domain.ExtractorPort
func (s *Service) Grammar() dom.GrammarInfo {
	g := s.Scan.Grammar()
	info := dom.GrammarInfo{Fingerprint: g.Fingerprint(), Order: g.Order(), Captures: map[string][]string{}}
	for _, name := range info.Order {
		if caps := g.Captures(name); len(caps) > 0 {
			info.Captures[name] = caps
		}
	}
	return info
}

func (s *Service) extractor(ctx context.Context, opts extract.Options) (*extract.Extractor, error) {
	var ix *songbook.Index
	if s.Songs != nil {
		var err error
		if ix, err = s.Songs.Index(ctx); err != nil {
			return nil, err
		}
	}
	return extract.New(ix, s.Books, opts), nil
}

// Extract implements domain.ExtractorPort
func (s *Service) Extract(ctx context.Context, text string, opts extract.Options) (extract.Result, error) {
	ex, err := s.extractor(ctx, opts)
	if err != nil {
		return extract.Result{}, err
	}
	res, err := ex.Run(s.Scan.Scan(text))
	if err != nil {
		var pm *scanner.PartialMatchError
		if errors.As(err, &pm) {
			logger.C(ctx).Error().Err(err).Int("offset", pm.Offset).Msg("extract: grammar failed to cover input")
		}
		return res, perr.Wrap(err, perr.ErrorCodeUnknown, "extract: scan")
	}
	return res, nil
}

// Tokens implements domain.ExtractorPort; spaces are dropped unless keepSpace
func (s *Service) Tokens(ctx context.Context, text string, keepSpace bool) ([]scanner.Token, error) {
	out := []scanner.Token{}
	for tok, err := range s.Scan.Scan(text) {
		if err != nil {
			logger.C(ctx).Error().Err(err).Msg("extract: grammar failed to cover input")
			return out, perr.Wrap(err, perr.ErrorCodeUnknown, "extract: scan")
		}
		if !keepSpace && extract.KindOf(tok.Name) == extract.Space {
			continue
		}
		out = append(out, tok)
	}
	return out, nil
}

// Document implements domain.ExtractorPort
func (s *Service) Document(ctx context.Context, id int64, opts extract.Options, evaluate bool) (dom.DocumentResult, error) {
	if s.Minutes == nil {
		return dom.DocumentResult{}, perr.Unavailablef("extract: minutes reader not wired")
	}
	ctx = logger.WithMinutes(ctx, id)
	doc, err := s.Minutes.Get(ctx, id)
	if err != nil {
		return dom.DocumentResult{}, err
	}
	res, err := s.Extract(ctx, doc.Text, opts)
	if err != nil {
		return dom.DocumentResult{}, err
	}
	out := dom.DocumentResult{
		Minutes: mindom.Summary{ID: doc.ID, Name: doc.Name, Location: doc.Location, Date: doc.Date},
		Result:  res,
	}
	if evaluate {
		sc, err := s.score(ctx, id, res.Records)
		if err != nil {
			return out, err
		}
		out.Score = &sc
	}
	return out, nil
}

func (s *Service) score(ctx context.Context, id int64, recs []extract.Record) (leadsdom.Score, error) {
	if s.Recorded == nil {
		return leadsdom.Score{}, perr.Unavailablef("extract: recorded leads not wired")
	}
	want, err := s.Recorded.Recorded(ctx, id)
	if err != nil {
		return leadsdom.Score{}, err
	}
	return leadsdom.Compare(recs, want), nil
}

func logDiagnostics(ctx context.Context, ds []extract.Diagnostic) {
	l := logger.C(ctx)
	for _, d := range ds {
		l.Debug().
			Str("kind", string(d.Kind)).
			Str("token", d.Token).
			Int("offset", d.Offset).
			Str("text", d.Text).
			Msg("extract: diagnostic")
	}
}
