// Package module provides the minutes module
package module

import (
	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/minutes/domain"
	"minutes/internal/services/minutes/repo"
	"minutes/internal/services/minutes/service"
)

// Ports exposed by the minutes module
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New constructs the minutes module over deps.SQL
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	svc := service.New(deps.SQL, repo.NewSQL(), service.Config{HardLimit: opts.HardLimit})
	return &Module{ports: Ports{Reader: svc, Writer: svc}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "minutes" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }



// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
