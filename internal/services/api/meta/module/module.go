// Package module mounts the meta endpoints
package module

import (
	"time"

	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	metahttp "minutes/internal/services/api/meta/http"
)

// Info is what the process serves, passed with modkit.WithPorts
type Info struct {
	ServiceName string
	Grammar     string // compiled grammar fingerprint
}

type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	info, _ := b.Ports.(Info)
	if info.ServiceName == "" {
		info.ServiceName = "minutes-api"
	}
	return &Module{built: b, deps: metahttp.Deps{
		ServiceName: info.ServiceName,
		StartedAt:   time.Now(),
		Grammar:     info.Grammar,
		SQL:         deps.SQL,
		CH:          deps.CH,
	}}
}

func (m *Module) Name() string { return m.built.Name }

// Ports is nil; meta only reads
func (m *Module) Ports() any { return nil }

func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(r httpkit.Router) { metahttp.Register(r, m.deps) })
}
