package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{NotFoundf("minutes %d", 7), http.StatusNotFound},
		{InvalidArgf("bad id"), http.StatusUnprocessableEntity},
		{JSONErrf("bad body"), http.StatusBadRequest},
		{New(ErrorCodeValidation, "x"), http.StatusBadRequest},
		{New(ErrorCodeDuplicateKey, "x"), http.StatusConflict},
		{New(ErrorCodeForbidden, "x"), http.StatusForbidden},
		{Unavailablef("no store"), http.StatusServiceUnavailable},
		{PanicErrf("boom"), http.StatusInternalServerError},
		{New(ErrorCodeDB, "x"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := stderrs.New("disk full")
	err := fmt.Errorf("extract: %w", Wrap(cause, ErrorCodeDB, "write leads"))

	if err.Error() != "extract: write leads: disk full" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause lost")
	}
	if CodeOf(err) != ErrorCodeDB || !IsCode(err, ErrorCodeDB) {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if CodeOf(cause) != ErrorCodeUnknown || Root(nil) != nil {
		t.Fatalf("foreign error should be Unknown")
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil receiver")
	}
}

func TestWithFieldAndWire(t *testing.T) {
	base := InvalidArgf("from after to")
	withField := WithField(base, "from")

	if e, _ := As(base); e.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}
	w := WireFrom(withField)
	if w != (Wire{Code: ErrorCodeInvalidArgument, Message: "from after to", Field: "from"}) {
		t.Fatalf("wire = %+v", w)
	}

	foreign := stderrs.New("boom")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("foreign error should pass through")
	}
	if w := WireFrom(foreign); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
	if WireFrom(nil) != (Wire{}) {
		t.Fatalf("nil wire")
	}
}

func TestErrNotFound(t *testing.T) {
	err := fmt.Errorf("get minutes 9: %w", ErrNotFound)
	if !stderrs.Is(err, ErrNotFound) || !IsCode(err, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound not detected through wrapping")
	}
}
