package testkit

import (
	"sync"
	"testing"
)

var seamMu sync.Mutex

// Swap replaces *target for the duration of the test
func Swap[T any](t testing.TB, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock until the test ends
// tests that Swap package-level seams call it first
func Serial(t testing.TB) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
