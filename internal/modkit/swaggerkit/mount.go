// Package swaggerkit serves the embedded OpenAPI document and Swagger UI
package swaggerkit

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	phttp "minutes/internal/platform/net/http"
)

// Options for Mount; TitleSuffix is appended to info.title (e.g. "staging")
type Options struct {
	Enabled     bool
	TitleSuffix string
}

// Mount serves /api/docs when enabled; doc.json comes from the swag registry
func Mount(r phttp.Router, o Options) {
	if !o.Enabled {
		return
	}
	register(o.TitleSuffix)
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(instanceName),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
