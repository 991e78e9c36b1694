// Package middleware is the http middleware set: chi's stock handlers behind plain
// constructors plus the zerolog access log and JSON panic recovery
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib middleware shape
type Middleware = func(http.Handler) http.Handler

func RequestID() Middleware         { return chimw.RequestID }
func RealIP() Middleware            { return chimw.RealIP }
func NoCache() Middleware           { return chimw.NoCache }
func StripSlashes() Middleware      { return chimw.StripSlashes }
func Heartbeat(p string) Middleware { return chimw.Heartbeat(p) }

// Timeout cancels the request context after d; 0 disables it
func Timeout(d time.Duration) Middleware {
	if d <= 0 {
		return passThrough
	}
	return chimw.Timeout(d)
}

// Throttle caps in-flight requests; 0 disables it
func Throttle(limit int) Middleware {
	if limit <= 0 {
		return passThrough
	}
	return chimw.Throttle(limit)
}

// Compress gzips responses at level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// CORS allows origins to call the read and extract endpoints
func CORS(origins []string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}

func passThrough(next http.Handler) http.Handler { return next }
