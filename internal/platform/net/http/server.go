package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
)

const shutdownGrace = 10 * time.Second

// Server owns the root chi mux and the listener
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

// NewServer reads PORT from cfg, ":4000" when unset
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux: mux,
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx ends, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("http shutting down")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	return s.srv.Shutdown(sctx)
}
