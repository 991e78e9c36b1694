// Package httpkit is what modules use to mount routes; they never import the platform
// http package directly
package httpkit

import (
	"net/http"

	phttp "minutes/internal/platform/net/http"
)

type (
	Router   = phttp.Router
	Envelope = phttp.Envelope
)

// Endpoint returns the data for a 200 envelope or an error to map
type Endpoint func(*http.Request) (any, error)

func (e Endpoint) handler() phttp.Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := e(r)
		if err != nil {
			return phttp.Error(err)
		}
		return phttp.OK(out)
	})
}

func Get(r Router, path string, e Endpoint)  { r.Get(path, e.handler()) }
func Post(r Router, path string, e Endpoint) { r.Post(path, e.handler()) }

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
