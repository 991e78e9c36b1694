// Package testkit provides testing helpers
package testkit

import (
	"strings"
	"testing"
)

// MustPanic fails the test unless fn panics
func MustPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails the test unless haystack contains needle; long output is logged in full
func MustContain(t testing.TB, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		return
	}
	if len(haystack) > 200 {
		t.Logf("full output:\n%s", haystack)
		haystack = haystack[:200] + "..."
	}
	t.Fatalf("expected %q to contain %q", haystack, needle)
}
