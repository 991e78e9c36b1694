package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"minutes/internal/modkit"
	"minutes/internal/modkit/module"
	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store"

	extractdom "minutes/internal/services/extract/domain"
	extractmod "minutes/internal/services/extract/module"
	leadsmod "minutes/internal/services/leads/module"
	minutesmod "minutes/internal/services/minutes/module"
	songsmod "minutes/internal/services/songs/module"
)

func mustSetEnv(k, v string) {
	if v != "" {
		_ = os.Setenv(k, v)
	}
}

func main() {
	var (
		from      = flag.Int64("from", 0, "first minutes id, inclusive (0 = open)")
		to        = flag.Int64("to", 0, "last minutes id, inclusive (0 = open)")
		id        = flag.Int64("id", 0, "extract one document and print it instead of running a batch")
		workers   = flag.Int("workers", 0, "concurrency (0 = CORE_EXTRACT_WORKERS)")
		page      = flag.Int("page", 0, "page size in documents (0 = CORE_EXTRACT_PAGE)")
		dryRun    = flag.Bool("dry-run", false, "extract but do not write leads")
		evaluate  = flag.Bool("evaluate", false, "score against the recorded leads")
		titles    = flag.Bool("titles", false, "resolve songs from book titles")
		breaks    = flag.Bool("breaks", false, "emit break records")
		keepSpace = flag.Bool("keep-space", false, "keep whitespace tokens")
		strict    = flag.Bool("strict", false, "drop songs missing from the song index")
		gram      = flag.String("grammar", "", "grammar YAML replacing the embedded one")
		books     = flag.String("books", "", "YAML of book title: abbreviation")
		sqlite    = flag.String("sqlite", "", "sqlite file (sets CORE_STORE_SQLITE_PATH)")
		schema    = flag.Bool("schema", false, "create missing tables before running")
	)
	flag.Parse()

	if err := config.LoadEnvFiles(); err != nil {
		log.Fatalf("load env files: %v", err)
	}
	mustSetEnv("CORE_STORE_SQLITE_PATH", *sqlite)

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConfig(root, "minutes-extract"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	// fail fast when a configured backend does not answer
	repokit.MustGuard(ctx, st)

	if *schema {
		if err := st.Ensure(ctx); err != nil {
			l.Fatal().Err(err).Msg("ensure schema failed")
		}
	}

	deps := modkit.Deps{Cfg: root, CH: st.CH, Log: *l}
	if sql, err := st.SQL(); err == nil {
		deps.SQL = sql
	} else {
		l.Fatal().Err(err).Msg("no sql backend; set CORE_STORE_PG_URL or -sqlite")
	}

	// Build dependency modules first
	mm := minutesmod.New(deps)
	sm := songsmod.New(deps)
	lm := leadsmod.New(deps)

	// Build extract with ports pulled from the dependency modules
	em, err := extractmod.New(
		deps,
		extractmod.Options{
			Workers:     *workers,
			PageSize:    *page,
			SongTitles:  *titles,
			Breaks:      *breaks,
			KeepSpace:   *keepSpace,
			StrictSongs: *strict,
			GrammarFile: *gram,
			BooksFile:   *books,
		},
		extractmod.WithDepsModules(mm, sm, lm),
	)
	if err != nil {
		l.Fatal().Err(err).Msg("extract module")
	}

	// Register ports
	for _, m := range []module.Module{mm, sm, lm, em} {
		module.Register(m.Name(), m.Ports())
	}

	ports := module.MustPortsOf[extractmod.Ports](em)
	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")

	if *id != 0 {
		res, err := ports.Extractor.Document(ctx, *id, ports.Extractor.Defaults(), *evaluate)
		if err != nil {
			l.Fatal().Err(err).Int64("minutes_id", *id).Msg("extract failed")
		}
		if err := out.Encode(res); err != nil {
			l.Fatal().Err(err).Msg("write result")
		}
		return
	}

	sum, err := ports.Runner.Run(ctx, extractdom.RunOptions{
		From:     *from,
		To:       *to,
		Workers:  *workers,
		Page:     *page,
		DryRun:   *dryRun,
		Evaluate: *evaluate,
	})
	if err != nil {
		l.Fatal().Err(err).Msg("extract run failed")
	}
	if err := out.Encode(sum); err != nil {
		l.Fatal().Err(err).Msg("write summary")
	}
}
