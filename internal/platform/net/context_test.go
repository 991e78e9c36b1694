package net_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	pnet "minutes/internal/platform/net"
)

func TestRequestID(t *testing.T) {
	if got := pnet.RequestID(context.Background()); got != "" {
		t.Fatalf("bare ctx id = %q", got)
	}

	var seen string
	h := chimw.RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/extract/grammar", nil)
	req.Header.Set(chimw.RequestIDHeader, "run-42")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen != "run-42" {
		t.Fatalf("id = %q", seen)
	}
}
