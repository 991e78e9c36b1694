// Package service loads the song index once per process
package service

import (
	"context"

	"minutes/internal/core/songbook"
	"minutes/internal/modkit/repokit"
	perr "minutes/internal/platform/errors"
	"minutes/internal/services/songs/repo"
)

// Service implements domain.IndexPort
type Service struct {
	loader *songbook.Loader
}

// New constructs the service; with no sql backend the index is empty
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage]) *Service {
	var src songbook.Source = emptySource{}
	if db != nil {
		src = sqlSource{st: b.Bind(db)}
	}
	return &Service{loader: songbook.NewLoader(src)}
}

// Index implements domain.IndexPort
func (s *Service) Index(ctx context.Context) (*songbook.Index, error) {
	return s.loader.Index(ctx)
}

type sqlSource struct{ st repo.Storage }

func (s sqlSource) SongIDs(ctx context.Context) ([]string, error) {
	ids, err := s.st.SongIDs(ctx)
	return ids, perr.FromSQL(err, "songs: list pages")
}

type emptySource struct{}

func (emptySource) SongIDs(context.Context) ([]string, error) { return nil, nil }
