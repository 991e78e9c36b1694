package middleware

import (
	"net/http"
	"time"

	"minutes/internal/platform/logger"
	pnet "minutes/internal/platform/net"
)

// RequestLogger puts the chi request id on the logger context; mount it after RequestID
func RequestLogger() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := pnet.RequestID(r.Context()); id != "" {
				r = r.WithContext(logger.WithRequest(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

type recorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rec *recorder) WriteHeader(code int) {
	if rec.status == 0 {
		rec.status = code
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *recorder) Write(b []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += n
	return n, err
}

func (rec *recorder) Unwrap() http.ResponseWriter { return rec.ResponseWriter }

// AccessLog logs one line per request; requests at or over slow log at warn
func AccessLog(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &recorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case rec.status >= http.StatusInternalServerError:
				evt = log.Error()
			case slow > 0 && elapsed >= slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.Status()).
				Int("bytes", rec.bytes).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}

// Status is the written status, 200 when the handler wrote nothing
func (rec *recorder) Status() int {
	if rec.status == 0 {
		return http.StatusOK
	}
	return rec.status
}
