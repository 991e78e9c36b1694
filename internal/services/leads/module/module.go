// Package module provides the leads module
package module

import (
	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/leads/domain"
	"minutes/internal/services/leads/repo"
	"minutes/internal/services/leads/service"
)

// Ports exposed by the leads module
type Ports struct {
	Writer   domain.WriterPort
	Recorded domain.RecordedPort
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New constructs the leads module over deps.SQL, mirroring to deps.CH when set
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.SQL, deps.CH, repo.NewSQL())
	return &Module{ports: Ports{Writer: svc, Recorded: svc}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "leads" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }



// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
