package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "minutes/internal/platform/errors"
	pnet "minutes/internal/platform/net"
)

// Envelope wraps every JSON body the API writes
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return-style handlers produce. An error Body picks its own status.
type Response struct {
	Status int
	Body   any
}

func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

func Error(err error) Response { return Response{Body: err} }

// Handle adapts a return-style handler
func Handle(h func(*stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).Write(w, r)
	}
}

// Write renders resp as an Envelope
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	status := resp.Status
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		env.Code, env.Error = wire.Code, wire.Message
	} else {
		env.Data = resp.Body
	}
	if status == 0 {
		status = stdhttp.StatusOK
	}
	env.StatusCode, env.Status = status, stdhttp.StatusText(status)
	JSON(w, status, env)
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
