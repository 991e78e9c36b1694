// Package module mounts the extract endpoints over the extract service
package module

import (
	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/modkit/swaggerkit"
	exhttp "minutes/internal/services/api/extract/http"
	exdom "minutes/internal/services/extract/domain"
)

// Ports is the extractor this module serves, passed with modkit.WithPorts
type Ports struct {
	Extractor exdom.ExtractorPort
}

type Module struct {
	built modkit.Built
	ex    exdom.ExtractorPort
}

// New panics without an Extractor port
func New(_ modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("extract-api"),
		modkit.WithPrefix("/extract"),
	}, opts...)...)

	p, _ := b.Ports.(Ports)
	if p.Extractor == nil {
		panic("extract-api module: WithPorts(Ports{Extractor}) is required")
	}

	fp := p.Extractor.Grammar().Fingerprint
	swaggerkit.Register(func(spec map[string]any) {
		if info, ok := spec["info"].(map[string]any); ok {
			info["x-grammar"] = fp
		}
	})
	return &Module{built: b, ex: p.Extractor}
}

func (m *Module) Name() string { return m.built.Name }

// Ports is nil; this module only consumes
func (m *Module) Ports() any { return nil }

func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(r httpkit.Router) { exhttp.Register(r, m.ex) })
}
