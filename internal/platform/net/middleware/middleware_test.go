package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	perr "minutes/internal/platform/errors"
	phttp "minutes/internal/platform/net/http"
	"minutes/internal/platform/net/middleware"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAccessLog_PassesThrough(t *testing.T) {
	tests := []struct {
		name   string
		slow   time.Duration
		h      http.HandlerFunc
		status int
		body   string
	}{
		{"implicit ok", 0, func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "led 42") }, http.StatusOK, "led 42"},
		{"explicit status", 0, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) }, http.StatusAccepted, ""},
		{"slow", time.Nanosecond, func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(time.Millisecond)
			_, _ = io.WriteString(w, "a")
			_, _ = io.WriteString(w, "b")
		}, http.StatusOK, "ab"},
		{"server error", 0, func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) }, http.StatusBadGateway, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(middleware.AccessLog(tc.slow)(tc.h), httptest.NewRequest(http.MethodGet, "/api/v1/extract/grammar", nil))
			if rec.Code != tc.status || rec.Body.String() != tc.body {
				t.Fatalf("got %d %q", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRecoverJSON(t *testing.T) {
	h := middleware.RequestID()(middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("grammar exploded")
	})))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil)
	req.Header.Set("X-Request-Id", "req-9")
	rec := serve(h, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env phttp.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID != "req-9" || env.Error != "internal error" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Fatalf("recovered %v", r)
		}
	}()
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRequestLogger_KeepsRequest(t *testing.T) {
	var seen string
	h := middleware.RequestID()(middleware.RequestLogger()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.URL.Path
	})))
	serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/ready", nil))
	if seen != "/api/v1/ready" {
		t.Fatalf("path = %q", seen)
	}
}

func TestDisabledLimits(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })
	for name, mw := range map[string]middleware.Middleware{
		"timeout":  middleware.Timeout(0),
		"throttle": middleware.Throttle(0),
		"both on":  func(h http.Handler) http.Handler { return middleware.Timeout(time.Second)(middleware.Throttle(2)(h)) },
	} {
		if rec := serve(mw(ok), httptest.NewRequest(http.MethodGet, "/", nil)); rec.Code != http.StatusTeapot {
			t.Fatalf("%s: status = %d", name, rec.Code)
		}
	}
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS([]string{"https://minutes.example"})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/extract", nil)
	req.Header.Set("Origin", "https://minutes.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(h, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://minutes.example" {
		t.Fatalf("allow origin = %q", got)
	}

	req.Header.Set("Origin", "https://elsewhere.example")
	rec = serve(h, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin allowed: %q", got)
	}
}
