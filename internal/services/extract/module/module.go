// Package module implements the extract module
package module

import (
	"fmt"
	"os"

	"minutes/internal/core/extract"
	"minutes/internal/core/grammar"
	"minutes/internal/core/scanner"
	"minutes/internal/core/songbook"
	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/extract/domain"
	"minutes/internal/services/extract/service"
)

// Ports exposed by the extract module
type Ports struct {
	Extractor domain.ExtractorPort
	Runner    domain.RunnerPort
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
	opts  Options
}

// New constructs the extract module
// a grammar or books file that fails to load is returned as an error
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("extract"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("extract module: expected WithPorts(extract/domain.Ports)")
	}
	if ports.Minutes == nil || ports.Songs == nil {
		panic("extract module: Ports missing Minutes or Songs")
	}

	cfg := FromConfig(deps.Cfg).merge(overrides)

	g, err := loadGrammar(cfg.GrammarFile)
	if err != nil {
		return nil, err
	}
	books := songbook.DefaultBooks()
	if cfg.BooksFile != "" {
		data, err := os.ReadFile(cfg.BooksFile)
		if err != nil {
			return nil, fmt.Errorf("extract module: books file: %w", err)
		}
		extra, err := songbook.ParseBooks(data)
		if err != nil {
			return nil, err
		}
		books = books.Merge(extra)
	}

	svc := service.New(scanner.New(g), ports.Songs, books, service.Config{
		Workers:  cfg.Workers,
		PageSize: cfg.PageSize,
		Options: extract.Options{
			SongTitles:  cfg.SongTitles,
			Breaks:      cfg.Breaks,
			KeepSpace:   cfg.KeepSpace,
			StrictSongs: cfg.StrictSongs,
		},
	})
	svc.Minutes = ports.Minutes
	svc.Leads = ports.Leads
	svc.Recorded = ports.Recorded

	deps.Log.Info().
		Str("grammar", g.Fingerprint()).
		Int("workers", svc.Cfg.Workers).
		Int("books", len(books)).
		Msg("extract module ready")

	return &Module{deps: deps, opts: cfg, ports: Ports{Extractor: svc, Runner: svc}}, nil
}

func loadGrammar(path string) (*grammar.Compiled, error) {
	if path == "" {
		return grammar.Minutes()
	}
	return grammar.LoadFile(path)
}

// Options returns the merged module options
func (m *Module) Options() Options { return m.opts }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "extract" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }



// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
