// Package module provides the songs module
package module

import (
	"minutes/internal/modkit"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/services/songs/domain"
	"minutes/internal/services/songs/repo"
	"minutes/internal/services/songs/service"
)

// Ports exposed by the songs module
type Ports struct {
	Index domain.IndexPort
}

// Module implements modkit.Module
type Module struct {
	ports Ports
}

// New constructs the songs module over deps.SQL
func New(deps modkit.Deps) *Module {
	return &Module{ports: Ports{Index: service.New(deps.SQL, repo.NewSQL())}}
}

// Name implements modkit.Module
func (m *Module) Name() string { return "songs" }

// Ports implements modkit.Module
func (m *Module) Ports() any { return m.ports }



// MountRoutes implements modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
