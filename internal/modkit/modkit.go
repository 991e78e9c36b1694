// Package modkit wires service modules: shared deps go in, ports come out and
// routes mount under the module prefix
package modkit

import (
	"net/http"

	"minutes/internal/modkit/httpkit"
	"minutes/internal/modkit/module"
	"minutes/internal/modkit/repokit"
	"minutes/internal/platform/config"
	"minutes/internal/platform/logger"
	"minutes/internal/platform/store"
	pstrings "minutes/internal/platform/strings"
)

type Module = module.Module

// Deps are shared by every module; SQL and CH are nil when that backend is off
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	SQL repokit.TxRunner
	CH  store.Clickhouse
}

// Built is the result of applying Options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

type Option func(*Built)

func WithName(name string) Option { return func(b *Built) { b.Name = name } }

func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware, applied in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes; the receiving module owns T
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Build applies opts in order; later options win
// a blank name or a root prefix is a wiring bug and panics
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Name = pstrings.MustString(b.Name, "module name")
	if b.Prefix != "" {
		b.Prefix = pstrings.MustPrefix(b.Prefix)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes register under b.Prefix behind the module middleware
// without a prefix register mounts directly and Mw is unused
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	if b.Prefix == "" {
		register(r)
		return
	}
	r.Route(b.Prefix, func(sub httpkit.Router) {
		sub.Use(b.Mw...)
		register(sub)
	})
}
