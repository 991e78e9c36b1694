package testkit

import (
	"strings"
	"testing"
)

// recorder captures Fatalf so failing assertions can be checked without failing the test
type recorder struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = format
}

func (r *recorder) Logf(string, ...any) {}

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("grammar: cycle") })

	r := &recorder{TB: t}
	MustPanic(r, func() {})
	if !r.failed {
		t.Fatalf("MustPanic should fail when fn returns")
	}
}

func TestMustNotPanic(t *testing.T) {
	MustNotPanic(t, func() {})

	r := &recorder{TB: t}
	MustNotPanic(r, func() { panic("boom") })
	if !r.failed {
		t.Fatalf("MustNotPanic should fail on panic")
	}
}

func TestMustContain(t *testing.T) {
	MustContain(t, "John Smith led 42.", "led 42")

	r := &recorder{TB: t}
	MustContain(r, strings.Repeat("x", 500), "led")
	if !r.failed {
		t.Fatalf("MustContain should fail on a miss")
	}
}

func TestSwap(t *testing.T) {
	Serial(t)
	v := "embedded"
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &v, "file")
		if v != "file" {
			t.Fatalf("v = %q", v)
		}
	})
	if v != "embedded" {
		t.Fatalf("not restored: %q", v)
	}

	fn := func() int { return 1 }
	t.Run("func seam", func(t *testing.T) {
		Swap(t, &fn, func() int { return 2 })
		if fn() != 2 {
			t.Fatalf("seam not swapped")
		}
	})
	if fn() != 1 {
		t.Fatalf("seam not restored")
	}
}
