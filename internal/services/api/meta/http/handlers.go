// Package http serves the meta endpoints: liveness, readiness, version and service info
package http

import (
	"context"
	"net/http"
	"reflect"
	"time"

	"minutes/internal/core/version"
	"minutes/internal/modkit/httpkit"
	"minutes/internal/modkit/module"
)

const readyTimeout = 2 * time.Second

// Pinger is any backend that can be pinged
type Pinger interface {
	Ping(context.Context) error
}

// Deps for the meta handlers; SQL and CH may be nil or typed nil
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Grammar     string
	SQL         any
	CH          any
}

type handlers struct{ deps Deps }

func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"minutes-api"`
	Started string `json:"started" example:"2026-03-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T09:05:00Z"`
}

// ReadyCheck is one backend check: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"sql"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"database is locked"`
}

// ReadyResponse status is ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T09:05:00Z"`
}

// ServiceResponse reports uptime and the wired modules
type ServiceResponse struct {
	Name    string   `json:"name"    example:"minutes-api"`
	Started string   `json:"started" example:"2026-03-01T09:00:00Z"`
	Uptime  int64    `json:"uptime"  example:"300"`
	Modules []string `json:"modules" example:"extract,leads,minutes,songs"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(time.Now())}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with a check per backend
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	sql := checkBackend(ctx, "sql", h.deps.SQL)
	ch := checkBackend(ctx, "ch", h.deps.CH)

	// sql is required; clickhouse is an optional mirror
	status := "ok"
	switch {
	case sql.Status == "fail" || ch.Status == "fail":
		status = "fail"
	case sql.Status != "ok" || ch.Status == "unknown":
		status = "degraded"
	}
	return ReadyResponse{Status: status, Checks: []ReadyCheck{sql, ch}, Now: stamp(time.Now())}, nil
}

func checkBackend(ctx context.Context, name string, backend any) ReadyCheck {
	if backend == nil || isNil(backend) {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	p, ok := backend.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: "unknown"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build info and grammar fingerprint
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(h.deps.ServiceName).WithGrammar(h.deps.Grammar), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Uptime and wired modules
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
		Modules: module.Names(),
	}, nil
}

// typed nils come from unset optional stores
func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}
