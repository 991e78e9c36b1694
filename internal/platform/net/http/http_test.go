package http_test

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"minutes/internal/platform/config"
	perr "minutes/internal/platform/errors"
	phttp "minutes/internal/platform/net/http"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return env
}

func TestRouter_RouteAndUse(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(api phttp.Router) {
		api.Use(func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Set("X-Scope", "v1")
				next.ServeHTTP(w, req)
			})
		})
		api.Get("/minutes/{id}", phttp.Handle(func(req *stdhttp.Request) phttp.Response {
			return phttp.OK(chi.URLParam(req, "id"))
		}))
		api.Post("/extract", phttp.Handle(func(*stdhttp.Request) phttp.Response {
			return phttp.OK("posted")
		}))
	})

	tests := []struct {
		method, path string
		status       int
		data         string
	}{
		{stdhttp.MethodGet, "/api/v1/minutes/12", stdhttp.StatusOK, "12"},
		{stdhttp.MethodPost, "/api/v1/extract", stdhttp.StatusOK, "posted"},
		{stdhttp.MethodPost, "/api/v1/minutes/12", stdhttp.StatusMethodNotAllowed, ""},
		{stdhttp.MethodGet, "/api/v2/minutes/12", stdhttp.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if tc.data == "" {
				return
			}
			if rec.Header().Get("X-Scope") != "v1" {
				t.Fatalf("scoped middleware did not run")
			}
			if env := decode(t, rec); env.Data != tc.data {
				t.Fatalf("data = %v", env.Data)
			}
		})
	}
}

func TestResponse_Write(t *testing.T) {
	tests := []struct {
		name   string
		resp   phttp.Response
		status int
		code   perr.ErrorCode
		msg    string
	}{
		{name: "ok", resp: phttp.OK(map[string]int{"records": 3}), status: stdhttp.StatusOK},
		{name: "zero status", resp: phttp.Response{Body: "x"}, status: stdhttp.StatusOK},
		{name: "not found", resp: phttp.Error(perr.NotFoundf("minutes 9")), status: stdhttp.StatusNotFound, code: perr.ErrorCodeNotFound, msg: "minutes 9"},
		{name: "foreign error", resp: phttp.Error(errors.New("boom")), status: stdhttp.StatusInternalServerError, msg: "boom"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := chimw.RequestID(phttp.Handle(func(*stdhttp.Request) phttp.Response { return tc.resp }))
			req := httptest.NewRequest(stdhttp.MethodGet, "/", nil)
			req.Header.Set(chimw.RequestIDHeader, "req-7")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Fatalf("content type = %q", ct)
			}
			env := decode(t, rec)
			if env.StatusCode != tc.status || env.Status != stdhttp.StatusText(tc.status) || env.RequestID != "req-7" {
				t.Fatalf("envelope = %+v", env)
			}
			if env.Code != tc.code || env.Error != tc.msg {
				t.Fatalf("error fields = %v %q", env.Code, env.Error)
			}
		})
	}
}

func TestMountProfiler(t *testing.T) {
	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "/debug", true)
	rec := httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("enabled profiler status = %d", rec.Code)
	}

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	rec = httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/debug/pprof/cmdline", nil))
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler status = %d", rec.Code)
	}
}

func TestServer_RunStopsWithContext(t *testing.T) {
	t.Setenv("MINUTES_TEST_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("MINUTES_TEST_"))
	if srv.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", srv.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_DefaultPort(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("MINUTES_UNSET_")).Addr(); got != ":4000" {
		t.Fatalf("addr = %q", got)
	}
}
