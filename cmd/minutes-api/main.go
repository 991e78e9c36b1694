package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	phttp "minutes/internal/platform/net/http"
	"minutes/internal/platform/store"

	"minutes/internal/services/api"
)

func main() {
	// .env first so CORE_* keys below can come from it
	if err := config.LoadEnvFiles(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load env files")
	}
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// CORE_STORE_*: postgres or sqlite, optional clickhouse
	st, err := store.Open(ctx, store.FromConfig(root, "minutes-api"), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("store close failed")
		}
	}()

	repokit.MustGuard(ctx, st)
	if apiCfg.MayBool("ENSURE_SCHEMA", false) {
		if err := st.Ensure(ctx); err != nil {
			l.Fatal().Err(err).Msg("ensure schema failed")
		}
	}

	// reads CORE_API_PORT
	srv := phttp.NewServer(apiCfg)
	err = api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
