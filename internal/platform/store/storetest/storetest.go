// Package storetest opens throwaway stores for package tests
package storetest

import (
	"context"
	"testing"

	"minutes/internal/platform/store"
)

// Memory opens a private in-memory sqlite store with the schema applied
// the store is closed when the test ends
func Memory(t testing.TB) *store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{Lite: store.LiteConfig{Enabled: true, Path: ":memory:"}})
	if err != nil {
		t.Fatalf("storetest: open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })
	if err := s.Ensure(ctx); err != nil {
		t.Fatalf("storetest: schema: %v", err)
	}
	return s
}

// Exec runs seed statements against the store's sql backend
func Exec(t testing.TB, s *store.Store, stmts ...string) {
	t.Helper()
	db, err := s.SQL()
	if err != nil {
		t.Fatalf("storetest: %v", err)
	}
	for _, q := range stmts {
		if _, err := db.Exec(context.Background(), q); err != nil {
			t.Fatalf("storetest: exec %q: %v", q, err)
		}
	}
}
